// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/centra/internal/users/auth"
)

// fakeAssignmentRepository is an in-memory [auth.AssignmentRepository].
type fakeAssignmentRepository struct {
	// assignments maps "userID/centerID" to (org, role) pairs.
	assignments map[string][]auth.AssignmentRef
	// permissions maps "orgID/roleName" to permission lists.
	permissions map[string][]string
	// centers maps userID to distinct center ids.
	centers map[string][]string
}

func (f *fakeAssignmentRepository) FindByUserAndCenter(_ context.Context, userID, centerID string) ([]auth.AssignmentRef, error) {
	return f.assignments[userID+"/"+centerID], nil
}

func (f *fakeAssignmentRepository) FindRolePermissions(_ context.Context, orgID, roleName string) ([]string, error) {
	return f.permissions[orgID+"/"+roleName], nil
}

func (f *fakeAssignmentRepository) FindDistinctCenterIDs(_ context.Context, userID string) ([]string, error) {
	return f.centers[userID], nil
}

/*
TestResolver_DeduplicatedUnion verifies that overlapping permission lists
across roles in the same center flatten to a set.
*/
func TestResolver_DeduplicatedUnion(t *testing.T) {
	repo := &fakeAssignmentRepository{
		assignments: map[string][]auth.AssignmentRef{
			"u1/c1": {
				{OrgID: "org-1", RoleName: "editor"},
				{OrgID: "org-1", RoleName: "creator"},
			},
		},
		permissions: map[string][]string{
			"org-1/editor":  {"task_read", "task_edit"},
			"org-1/creator": {"task_read", "task_create"},
		},
	}
	resolver := auth.NewResolver(repo)

	resolved, err := resolver.Resolve(context.Background(), "u1", "c1")
	require.NoError(t, err)

	// Union of both lists, de-duplicated by value.
	assert.Len(t, resolved, 3)
	assert.ElementsMatch(t, []string{"task_read", "task_edit", "task_create"}, resolved)
}

/*
TestResolver_NoAssignments verifies that a user without assignments in the
center resolves to an empty set, not an error.
*/
func TestResolver_NoAssignments(t *testing.T) {
	resolver := auth.NewResolver(&fakeAssignmentRepository{})

	resolved, err := resolver.Resolve(context.Background(), "u1", "c1")
	require.NoError(t, err)
	assert.Empty(t, resolved)
}

/*
TestResolver_UniqueCenter verifies auto center selection semantics: exactly
one distinct center auto-selects, zero or multiple do not.
*/
func TestResolver_UniqueCenter(t *testing.T) {
	repo := &fakeAssignmentRepository{
		centers: map[string][]string{
			"single":   {"c1"},
			"multiple": {"c1", "c2"},
		},
	}
	resolver := auth.NewResolver(repo)

	tests := []struct {
		name   string
		userID string
		want   *string
	}{
		{"one_center_auto_selected", "single", strPtr("c1")},
		{"two_centers_stay_unset", "multiple", nil},
		{"no_centers_stay_unset", "nobody", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.UniqueCenterForUser(context.Background(), tt.userID)
			require.NoError(t, err)

			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func strPtr(s string) *string { return &s }
