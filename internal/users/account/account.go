// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles self-service profile management.

It lets an authenticated user inspect their own identity and tenant context,
update their profile, rotate their password, and list the centers their role
assignments span — the data a client needs to drive the center picker.

# Architecture

  - Entities: This package depends on the auth package for the User entity.
  - Scope: Every operation acts on the caller's own account; no permission
    beyond authentication is required, and a session without a selected
    center is fully supported.
*/
package account

import (
	"context"

	"github.com/taibuivan/centra/internal/users/auth"
)

// # Domain Entities

// CenterRef is a lightweight view of a center the user is assigned to,
// used by the center picker before a session has a center in scope.
type CenterRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// # Repository Contracts

// Repository defines the persistence contract for self-service account data.
type Repository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		UpdateProfile modifies the mutable profile fields of an account.

		Parameters:
		  - context: context.Context
		  - user: *auth.User (Hydrated entity with changes)

		Returns:
		  - error: Storage or constraint failures
	*/
	UpdateProfile(context context.Context, user *auth.User) error

	/*
		UpdatePassword replaces only the password hash of an account.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error

	/*
		ListAssignedCenters returns the distinct centers the user holds at
		least one role assignment in, joined with their display data.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []CenterRef: Distinct assigned centers
		  - error: Retrieval failures
	*/
	ListAssignedCenters(context context.Context, userID string) ([]CenterRef, error)
}

// # Field Names

const (
	FieldFullName        = "full_name"
	FieldEmail           = "email"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
)
