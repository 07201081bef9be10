// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the credential-store contract for authentication.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByUsername returns the account with the given unique username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error
}

// # Role Graph Data Access

// AssignmentRepository exposes the role-assignment joins the resolver needs.
//
// All three queries are cheap point lookups over indexed composite keys —
// they run on every authenticated request, so no full scans are acceptable.
type AssignmentRepository interface {

	/*
		FindByUserAndCenter returns the (org, role) pairs assigned to the user
		in the given center.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - centerID: string

		Returns:
		  - []AssignmentRef: Matching assignments (possibly empty)
		  - error: Database retrieval failures
	*/
	FindByUserAndCenter(context context.Context, userID, centerID string) ([]AssignmentRef, error)

	/*
		FindRolePermissions returns the permission list of one role,
		scoped by its owning organization.

		Parameters:
		  - context: context.Context
		  - orgID: string
		  - roleName: string

		Returns:
		  - []string: Permission literals (possibly empty)
		  - error: Database retrieval failures
	*/
	FindRolePermissions(context context.Context, orgID, roleName string) ([]string, error)

	/*
		FindDistinctCenterIDs returns every distinct center the user holds at
		least one role assignment in.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []string: Distinct center ids (possibly empty)
		  - error: Database retrieval failures
	*/
	FindDistinctCenterIDs(context context.Context, userID string) ([]string, error)
}

// # Volatile Data Access

// ResetTokenRepository defines the contract for storing volatile password
// reset tokens with an expiry.
type ResetTokenRepository interface {

	/*
		Set stores a reset token associated with a userID for a limited duration.

		Parameters:
		  - context: context.Context
		  - token: string
		  - userID: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, token string, userID string, ttl time.Duration) error

	/*
		Get retrieves the userID associated with a given reset token.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - string: UserID
		  - error: Retrieval failures
	*/
	Get(context context.Context, token string) (string, error)

	/*
		Delete removes a reset token after successful use.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, token string) error
}
