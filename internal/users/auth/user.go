// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the identity and access management core.

It defines the User entity, the access-right resolver over the role graph,
and the token issuance flows (login, refresh, center selection).

# Architecture

This layer is the "Truth" of the system. Entities defined here have no
external dependencies and encapsulate all business rules related to user
identity and tenant context.
*/
package auth

import (
	"time"
)

// # Domain Entities

// User represents a member of exactly one organization.
//
// The organization reference is immutable after creation: there is no org
// transfer, so every token ever issued for this user carries the same org id.
type User struct {
	ID           string     `json:"id"`
	OrgID        string     `json:"org_id"`
	Username     string     `json:"username"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Explicitly omitted from JSON for security.
	IsOrgAdmin   bool       `json:"is_org_admin"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"-"`
}

// AssignmentRef is the (org, role) pair a role assignment points at.
// The resolver joins these against the role's permission list.
type AssignmentRef struct {
	OrgID    string
	RoleName string
}

// # Field Identifiers

// Global field names for validation and identity mapping in the auth domain.
const (
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldEmail           = "email"
	FieldFullName        = "full_name"
	FieldToken           = "token"
	FieldCenterID        = "center_id"
	FieldRefreshToken    = "refresh_token"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
)

// # Volatile Token Constraints

const (
	// ResetTokenTTL is the duration a password reset token remains valid.
	ResetTokenTTL = 1 * time.Hour

	// ResetTokenLength is the byte length of the random password reset token.
	ResetTokenLength = 32
)
