// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import "context"

// Repository is the persistence contract for tasks. Both tenant ids are
// mandatory on every method: there is no code path that reads tasks across
// centers, which is what makes list responses safe to return unfiltered.
type Repository interface {
	List(context context.Context, orgID, centerID string, filter Filter, limit, offset int) ([]*Task, int, error)
	Get(context context.Context, orgID, centerID, id string) (*Task, error)
	Create(context context.Context, t *Task) error
	Update(context context.Context, t *Task) error
	Delete(context context.Context, orgID, centerID, id string) error
}
