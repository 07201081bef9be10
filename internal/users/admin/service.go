// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/centra/internal/platform/apperr"
	"github.com/taibuivan/centra/internal/platform/sec"
	"github.com/taibuivan/centra/internal/platform/validate"
	"github.com/taibuivan/centra/internal/users/auth"
	"github.com/taibuivan/centra/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListUsers(context context.Context, orgID string, filter Filter, limit, offset int) ([]*auth.User, int, error) {
	return service.repo.List(context, orgID, filter, limit, offset)
}

func (service *Service) GetUser(context context.Context, orgID, id string) (*auth.User, error) {
	return service.repo.Get(context, orgID, id)
}

// CreateInput defines the payload for provisioning a new account.
type CreateInput struct {
	Username   string
	FullName   string
	Email      string
	Password   string
	IsOrgAdmin bool
}

// CreateUser provisions a new account in the administrator's own org.
// The initial password is set by the administrator and expected to be
// rotated by the user through self-service.
func (service *Service) CreateUser(context context.Context, orgID string, input CreateInput) (*auth.User, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).MinLen(FieldUsername, input.Username, 3).MaxLen(FieldUsername, input.Username, 50)
	validator.Required(FieldFullName, input.FullName).MaxLen(FieldFullName, input.FullName, 200)
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password).MinLen(FieldPassword, input.Password, 8)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("admin_service_hash_password_failed: %w", err)
	}

	user := &auth.User{
		ID:           uuid.New(),
		OrgID:        orgID,
		Username:     input.Username,
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: passwordHash,
		IsOrgAdmin:   input.IsOrgAdmin,
	}

	if err := service.repo.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_created",
		slog.String("user_id", user.ID),
		slog.String("org_id", orgID),
		slog.String("username", user.Username),
	)
	return user, nil
}

// UpdateInput defines the admin-mutable subset of account fields. The
// username and org binding are immutable for the lifetime of the account.
type UpdateInput struct {
	FullName   *string
	Email      *string
	IsOrgAdmin *bool
}

func (service *Service) UpdateUser(context context.Context, orgID, id string, input UpdateInput) (*auth.User, error) {
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

	user, err := service.repo.Get(context, orgID, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.IsOrgAdmin != nil {
		user.IsOrgAdmin = *input.IsOrgAdmin
	}

	if err := service.repo.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_updated", slog.String("user_id", user.ID))
	return user, nil
}

// DeleteUser soft-deletes an account. An administrator cannot delete their
// own account through this path; self-deletion would strand the session.
func (service *Service) DeleteUser(context context.Context, orgID, id, callerID string) error {
	if id == callerID {
		return apperr.Unprocessable("You cannot delete your own account")
	}

	if err := service.repo.SoftDelete(context, orgID, id); err != nil {
		return err
	}

	service.logger.Warn("user_deleted",
		slog.String("user_id", id),
		slog.String("org_id", orgID),
		slog.String("deleted_by", callerID),
	)
	return nil
}
