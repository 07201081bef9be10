// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package role_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/centra/internal/core/role"
	"github.com/taibuivan/centra/internal/platform/apperr"
	"github.com/taibuivan/centra/internal/platform/sec"
)

// fakeRoleRepository keeps roles keyed by "orgID/name".
type fakeRoleRepository struct {
	roles  map[string]*role.Role
	rights []*role.AccessRight
}

func (f *fakeRoleRepository) key(orgID, name string) string { return orgID + "/" + name }

func (f *fakeRoleRepository) ListRoles(_ context.Context, orgID string) ([]*role.Role, error) {
	var out []*role.Role
	for _, r := range f.roles {
		if r.OrgID == orgID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRoleRepository) GetRole(_ context.Context, orgID, name string) (*role.Role, error) {
	if r, ok := f.roles[f.key(orgID, name)]; ok {
		return r, nil
	}
	return nil, apperr.NotFound("Role")
}

func (f *fakeRoleRepository) CreateRole(_ context.Context, r *role.Role) error {
	if f.roles == nil {
		f.roles = map[string]*role.Role{}
	}
	if _, ok := f.roles[f.key(r.OrgID, r.Name)]; ok {
		return apperr.Conflict("Role already exists")
	}
	f.roles[f.key(r.OrgID, r.Name)] = r
	return nil
}

func (f *fakeRoleRepository) UpdateRole(_ context.Context, r *role.Role) error {
	f.roles[f.key(r.OrgID, r.Name)] = r
	return nil
}

func (f *fakeRoleRepository) DeleteRole(_ context.Context, orgID, name string) error {
	if _, ok := f.roles[f.key(orgID, name)]; !ok {
		return apperr.NotFound("Role")
	}
	delete(f.roles, f.key(orgID, name))
	return nil
}

func (f *fakeRoleRepository) SyncAccessRights(_ context.Context, registry map[string]string) error {
	f.rights = nil
	for permission, description := range registry {
		f.rights = append(f.rights, &role.AccessRight{Permission: permission, Description: description})
	}
	return nil
}

func (f *fakeRoleRepository) ListAccessRights(_ context.Context) ([]*role.AccessRight, error) {
	return f.rights, nil
}

// fakeAssignmentRepository tracks membership sets for referential checks.
type fakeAssignmentRepository struct {
	orgUsers    map[string]bool // "orgID/userID"
	orgCenters  map[string]bool // "orgID/centerID"
	assignments []*role.Assignment
}

func (f *fakeAssignmentRepository) ListByUser(_ context.Context, orgID, userID string) ([]*role.Assignment, error) {
	var out []*role.Assignment
	for _, a := range f.assignments {
		if a.OrgID == orgID && a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepository) ListByCenter(_ context.Context, orgID, centerID string) ([]*role.Assignment, error) {
	var out []*role.Assignment
	for _, a := range f.assignments {
		if a.OrgID == orgID && a.CenterID == centerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepository) Create(_ context.Context, a *role.Assignment) error {
	f.assignments = append(f.assignments, a)
	return nil
}

func (f *fakeAssignmentRepository) Delete(_ context.Context, target *role.Assignment) error {
	for i, a := range f.assignments {
		if *a == *target {
			f.assignments = append(f.assignments[:i], f.assignments[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Role assignment")
}

func (f *fakeAssignmentRepository) UserInOrg(_ context.Context, orgID, userID string) (bool, error) {
	return f.orgUsers[orgID+"/"+userID], nil
}

func (f *fakeAssignmentRepository) CenterInOrg(_ context.Context, orgID, centerID string) (bool, error) {
	return f.orgCenters[orgID+"/"+centerID], nil
}

const (
	testUserID   = "0190a1b2-0000-7000-8000-000000000001"
	testCenterID = "0190a1b2-0000-7000-8000-000000000002"
)

func newRoleService() (*role.Service, *fakeRoleRepository, *fakeAssignmentRepository) {
	roles := &fakeRoleRepository{roles: map[string]*role.Role{
		"org-1/editor": {OrgID: "org-1", Name: "editor", Permissions: []string{sec.PermTaskRead, sec.PermTaskEdit}},
	}}
	assignments := &fakeAssignmentRepository{
		orgUsers:   map[string]bool{"org-1/" + testUserID: true},
		orgCenters: map[string]bool{"org-1/" + testCenterID: true},
	}
	return role.NewService(roles, assignments, slog.Default()), roles, assignments
}

/*
TestService_CreateRole_RejectsUnknownPermission verifies the static registry
is the gatekeeper for role contents.
*/
func TestService_CreateRole_RejectsUnknownPermission(t *testing.T) {
	service, _, _ := newRoleService()

	_, err := service.CreateRole(context.Background(), "org-1", role.RoleInput{
		Name:        "auditor",
		Permissions: []string{sec.PermTaskRead, "launch_missiles"},
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

/*
TestService_CreateRole_DeduplicatesPermissions verifies repeated grants
collapse into one.
*/
func TestService_CreateRole_DeduplicatesPermissions(t *testing.T) {
	service, _, _ := newRoleService()

	created, err := service.CreateRole(context.Background(), "org-1", role.RoleInput{
		Name:        "viewer",
		Permissions: []string{sec.PermTaskRead, sec.PermTaskRead, sec.PermUserRead},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{sec.PermTaskRead, sec.PermUserRead}, created.Permissions)
}

/*
TestService_CreateAssignment verifies the write-time referential checks:
user in org, center in org, and role existence are all validated before
the grant is persisted.
*/
func TestService_CreateAssignment(t *testing.T) {
	foreignUser := "0190a1b2-0000-7000-8000-00000000000f"
	foreignCenter := "0190a1b2-0000-7000-8000-0000000000fc"

	tests := []struct {
		name     string
		input    role.AssignmentInput
		wantCode string
	}{
		{
			"valid_grant",
			role.AssignmentInput{UserID: testUserID, CenterID: testCenterID, RoleName: "editor"},
			"",
		},
		{
			"user_outside_org",
			role.AssignmentInput{UserID: foreignUser, CenterID: testCenterID, RoleName: "editor"},
			"UNPROCESSABLE",
		},
		{
			"center_outside_org",
			role.AssignmentInput{UserID: testUserID, CenterID: foreignCenter, RoleName: "editor"},
			"UNPROCESSABLE",
		},
		{
			"unknown_role",
			role.AssignmentInput{UserID: testUserID, CenterID: testCenterID, RoleName: "ghost"},
			"NOT_FOUND",
		},
		{
			"malformed_user_id",
			role.AssignmentInput{UserID: "not-a-uuid", CenterID: testCenterID, RoleName: "editor"},
			"VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, assignments := newRoleService()

			created, err := service.CreateAssignment(context.Background(), "org-1", tt.input)
			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, "org-1", created.OrgID)
				assert.Len(t, assignments.assignments, 1)
				return
			}

			require.Error(t, err)
			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, tt.wantCode, appError.Code)
			assert.Empty(t, assignments.assignments)
		})
	}
}

/*
TestService_SyncAccessRights verifies the catalog mirrors the registry.
*/
func TestService_SyncAccessRights(t *testing.T) {
	service, roles, _ := newRoleService()

	require.NoError(t, service.SyncAccessRights(context.Background()))

	rights, err := service.ListAccessRights(context.Background())
	require.NoError(t, err)
	assert.Len(t, rights, len(sec.Registry))
	for _, right := range rights {
		assert.Equal(t, sec.Registry[right.Permission], right.Description)
	}
	assert.Len(t, roles.rights, len(sec.Registry))
}
