// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/centra/internal/platform/apperr"
	"github.com/taibuivan/centra/internal/platform/sec"
	"github.com/taibuivan/centra/internal/platform/validate"
	"github.com/taibuivan/centra/internal/users/auth"
)

// # Service Layer

// Service orchestrates self-service account operations.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the caller's own account record.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	return service.repository.FindByID(context, userID)
}

// UpdateProfileInput defines the mutable subset of profile fields.
type UpdateProfileInput struct {
	FullName *string
	Email    *string
}

/*
UpdateProfile applies a partial set of changes to the caller's own profile.

Description: Username and org membership are immutable; only display data
can change here. Admin-driven edits of other accounts live in the admin
package.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: Validation, lookup, or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	validator := &validate.Validator{}
	if input.FullName != nil {
		validator.Required(FieldFullName, *input.FullName).MaxLen(FieldFullName, *input.FullName, 200)
	}
	if input.Email != nil {
		validator.Email(FieldEmail, *input.Email)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Email != nil {
		user.Email = *input.Email
	}

	if err := service.repository.UpdateProfile(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))
	return user, nil
}

// # Password Rotation

/*
ChangePassword rotates the caller's password after verifying the current one.

Description: The current-password check is what separates this flow from the
recovery flow: possession of a valid session is not proof of knowing the
password.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - error: Unauthorized for a wrong current password, validation or storage
    failures otherwise
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {
	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, currentPassword)
	validator.Required(FieldNewPassword, newPassword).MinLen(FieldNewPassword, newPassword, 8)
	if err := validator.Err(); err != nil {
		return err
	}

	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return fmt.Errorf("account_service_change_password_lookup_failed: %w", err)
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	newHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("account_service_change_password_hash_failed: %w", err)
	}

	if err := service.repository.UpdatePassword(context, userID, newHash); err != nil {
		return fmt.Errorf("account_service_change_password_update_failed: %w", err)
	}

	service.logger.Info("user_password_changed", slog.String("user_id", userID))
	return nil
}

// # Center Visibility

/*
ListAssignedCenters returns the centers the caller can select.

Description: This is the org-level self-service read kept open to sessions
without a selected center — the client needs it to render the center picker
in the first place.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []CenterRef: Distinct assigned centers
  - error: Retrieval failures
*/
func (service *Service) ListAssignedCenters(context context.Context, userID string) ([]CenterRef, error) {
	return service.repository.ListAssignedCenters(context, userID)
}
