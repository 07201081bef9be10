// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package admin provides org-scoped user administration.
//
// Unlike the self-service account package, every operation here acts on
// OTHER accounts and is gated by user_* permissions. The org id always
// comes from the caller's principal, never from the request payload, so an
// administrator can only ever manage accounts of their own organization.
package admin

import (
	"context"

	"github.com/taibuivan/centra/internal/users/auth"
)

// Filter holds the optional list constraints on top of the org scope.
type Filter struct {
	Query string // Substring match against username, full name, and email.
}

// Repository is the persistence contract for user administration.
// The auth package owns the User entity; this package manages its lifecycle.
type Repository interface {
	List(context context.Context, orgID string, filter Filter, limit, offset int) ([]*auth.User, int, error)
	Get(context context.Context, orgID, id string) (*auth.User, error)
	Create(context context.Context, user *auth.User) error
	Update(context context.Context, user *auth.User) error
	SoftDelete(context context.Context, orgID, id string) error
}

// Field names for validation
const (
	FieldUsername = "username"
	FieldFullName = "full_name"
	FieldEmail    = "email"
	FieldPassword = "password"
)
