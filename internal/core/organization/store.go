// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package organization

import "context"

type Repository interface {
	GetByID(context context.Context, id string) (*Organization, error)
	Update(context context.Context, org *Organization) error
}
