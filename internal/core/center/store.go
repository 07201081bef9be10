// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package center

import "context"

// Repository is the persistence contract for centers. Every method takes the
// owning org id so that cross-tenant rows are invisible at the query level:
// a foreign center simply does not exist as far as callers can tell.
type Repository interface {
	List(context context.Context, orgID string, limit, offset int) ([]*Center, int, error)
	Get(context context.Context, orgID, id string) (*Center, error)
	Create(context context.Context, c *Center) error
	Update(context context.Context, c *Center) error
	Delete(context context.Context, orgID, id string) error
}
