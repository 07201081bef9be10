// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package role manages roles, their permission sets, and role assignments.

# Model

A role is identified by (org id, name): two organizations can each define a
"manager" role with entirely different permission sets. A role assignment
binds (user, org, center, role name); the same user may hold different roles
in different centers of the same organization.

Assignments are what the per-request permission resolution walks, so writes
here take effect on the very next request without touching issued tokens.
*/
package role

import "time"

// Role is a named permission set owned by one organization.
type Role struct {
	OrgID       string    `json:"org_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Assignment binds a user to a role within one center of the organization.
type Assignment struct {
	UserID    string    `json:"user_id"`
	OrgID     string    `json:"org_id"`
	CenterID  string    `json:"center_id"`
	RoleName  string    `json:"role_name"`
	CreatedAt time.Time `json:"created_at"`
}

// AccessRight is one row of the informational permission catalog, synced
// from the static registry at startup. Authorization never reads it.
type AccessRight struct {
	Permission  string `json:"permission"`
	Description string `json:"description"`
}

// Field names for validation
const (
	FieldName        = "name"
	FieldPermissions = "permissions"
	FieldUserID      = "user_id"
	FieldCenterID    = "center_id"
	FieldRoleName    = "role_name"
)
