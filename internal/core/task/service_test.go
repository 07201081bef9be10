// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/centra/internal/core/task"
	"github.com/taibuivan/centra/internal/platform/apperr"
)

// fakeRepository stores tasks in a slice and honors the tenant filters the
// way the SQL store does.
type fakeRepository struct {
	tasks []*task.Task
}

func (f *fakeRepository) List(_ context.Context, orgID, centerID string, filter task.Filter, limit, offset int) ([]*task.Task, int, error) {
	var matched []*task.Task
	for _, t := range f.tasks {
		if t.OrgID != orgID || t.CenterID != centerID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		matched = append(matched, t)
	}

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (f *fakeRepository) Get(_ context.Context, orgID, centerID, id string) (*task.Task, error) {
	for _, t := range f.tasks {
		if t.ID == id && t.OrgID == orgID && t.CenterID == centerID {
			return t, nil
		}
	}
	return nil, apperr.NotFound("Task")
}

func (f *fakeRepository) Create(_ context.Context, t *task.Task) error {
	f.tasks = append(f.tasks, t)
	return nil
}

func (f *fakeRepository) Update(_ context.Context, t *task.Task) error {
	for i, existing := range f.tasks {
		if existing.ID == t.ID {
			f.tasks[i] = t
			return nil
		}
	}
	return apperr.NotFound("Task")
}

func (f *fakeRepository) Delete(_ context.Context, orgID, centerID, id string) error {
	for i, t := range f.tasks {
		if t.ID == id && t.OrgID == orgID && t.CenterID == centerID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Task")
}

func seededRepository() *fakeRepository {
	return &fakeRepository{tasks: []*task.Task{
		{ID: "t1", OrgID: "org-1", CenterID: "c1", Title: "Restock supplies", Status: task.StatusOpen},
		{ID: "t2", OrgID: "org-1", CenterID: "c1", Title: "Quarterly report", Status: task.StatusDone},
		{ID: "t3", OrgID: "org-1", CenterID: "c2", Title: "Other center's task", Status: task.StatusOpen},
		{ID: "t4", OrgID: "org-2", CenterID: "c1", Title: "Foreign org task", Status: task.StatusOpen},
	}}
}

/*
TestService_ListTasks_CenterScope verifies the list is transparently
filtered by the session's (org, center) pair: tasks from another center or
org never appear, regardless of any client-supplied filter.
*/
func TestService_ListTasks_CenterScope(t *testing.T) {
	service := task.NewService(seededRepository(), slog.Default())

	tasks, total, err := service.ListTasks(context.Background(), "org-1", "c1", task.Filter{}, 20, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, total)
	ids := []string{tasks[0].ID, tasks[1].ID}
	assert.ElementsMatch(t, []string{"t1", "t2"}, ids)
}

/*
TestService_ListTasks_StatusFilter verifies the optional status filter
composes with the tenant scope.
*/
func TestService_ListTasks_StatusFilter(t *testing.T) {
	service := task.NewService(seededRepository(), slog.Default())

	tasks, total, err := service.ListTasks(context.Background(), "org-1", "c1", task.Filter{Status: task.StatusDone}, 20, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, total)
	require.Len(t, tasks, 1)
	assert.Equal(t, "t2", tasks[0].ID)
}

/*
TestService_GetTask_ForeignTenant verifies cross-tenant reads collapse to
not-found: the task is invisible, not forbidden.
*/
func TestService_GetTask_ForeignTenant(t *testing.T) {
	service := task.NewService(seededRepository(), slog.Default())

	// t3 exists, but in center c2.
	_, err := service.GetTask(context.Background(), "org-1", "c1", "t3")
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)

	// t4 exists, but in org-2.
	_, err = service.GetTask(context.Background(), "org-1", "c1", "t4")
	assert.Error(t, err)
}

/*
TestService_CreateTask verifies defaults and validation.
*/
func TestService_CreateTask(t *testing.T) {
	repo := seededRepository()
	service := task.NewService(repo, slog.Default())

	// 1. Default status applied.
	created, err := service.CreateTask(context.Background(), "org-1", "c1", task.Input{Title: "New task"})
	require.NoError(t, err)
	assert.Equal(t, task.StatusOpen, created.Status)
	assert.Equal(t, "org-1", created.OrgID)
	assert.Equal(t, "c1", created.CenterID)
	assert.NotEmpty(t, created.ID)

	// 2. Unknown status rejected.
	_, err = service.CreateTask(context.Background(), "org-1", "c1", task.Input{Title: "Bad", Status: "cancelled"})
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)

	// 3. Missing title rejected.
	_, err = service.CreateTask(context.Background(), "org-1", "c1", task.Input{})
	assert.Error(t, err)
}

/*
TestService_UpdateTask_KeepsStatusWhenOmitted verifies a partial update
without a status keeps the stored one.
*/
func TestService_UpdateTask_KeepsStatusWhenOmitted(t *testing.T) {
	service := task.NewService(seededRepository(), slog.Default())

	updated, err := service.UpdateTask(context.Background(), "org-1", "c1", "t2", task.Input{Title: "Quarterly report v2"})
	require.NoError(t, err)
	assert.Equal(t, task.StatusDone, updated.Status)
	assert.Equal(t, "Quarterly report v2", updated.Title)
}
