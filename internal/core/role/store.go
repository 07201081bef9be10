// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package role

import "context"

// Repository is the persistence contract for roles and the access-right
// catalog. Role writes replace the permission set atomically.
type Repository interface {
	ListRoles(context context.Context, orgID string) ([]*Role, error)
	GetRole(context context.Context, orgID, name string) (*Role, error)
	CreateRole(context context.Context, role *Role) error
	UpdateRole(context context.Context, role *Role) error
	DeleteRole(context context.Context, orgID, name string) error

	SyncAccessRights(context context.Context, registry map[string]string) error
	ListAccessRights(context context.Context) ([]*AccessRight, error)
}

// AssignmentRepository is the persistence contract for role assignments,
// plus the existence probes the service needs for write-time referential
// checks against users and centers.
type AssignmentRepository interface {
	ListByUser(context context.Context, orgID, userID string) ([]*Assignment, error)
	ListByCenter(context context.Context, orgID, centerID string) ([]*Assignment, error)
	Create(context context.Context, assignment *Assignment) error
	Delete(context context.Context, assignment *Assignment) error

	UserInOrg(context context.Context, orgID, userID string) (bool, error)
	CenterInOrg(context context.Context, orgID, centerID string) (bool, error)
}
