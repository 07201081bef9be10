// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package role

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/centra/internal/platform/apperr"
	"github.com/taibuivan/centra/internal/platform/sec"
	"github.com/taibuivan/centra/internal/platform/validate"
)

type Service struct {
	roles       Repository
	assignments AssignmentRepository
	logger      *slog.Logger
}

func NewService(roles Repository, assignments AssignmentRepository, logger *slog.Logger) *Service {
	return &Service{
		roles:       roles,
		assignments: assignments,
		logger:      logger,
	}
}

// # Roles

func (service *Service) ListRoles(context context.Context, orgID string) ([]*Role, error) {
	return service.roles.ListRoles(context, orgID)
}

func (service *Service) GetRole(context context.Context, orgID, name string) (*Role, error) {
	return service.roles.GetRole(context, orgID, name)
}

// RoleInput defines the payload for creating or replacing a role.
type RoleInput struct {
	Name        string
	Description *string
	Permissions []string
}

func (service *Service) CreateRole(context context.Context, orgID string, input RoleInput) (*Role, error) {
	if err := service.validateRoleInput(input); err != nil {
		return nil, err
	}

	role := &Role{
		OrgID:       orgID,
		Name:        input.Name,
		Description: input.Description,
		Permissions: dedupe(input.Permissions),
	}

	if err := service.roles.CreateRole(context, role); err != nil {
		return nil, err
	}

	service.logger.Info("role_created",
		slog.String("org_id", orgID),
		slog.String("role", role.Name),
	)
	return role, nil
}

// UpdateRole replaces the description and permission set of an existing role.
// Every session holding the role picks the change up on its next request.
func (service *Service) UpdateRole(context context.Context, orgID, name string, input RoleInput) (*Role, error) {
	input.Name = name
	if err := service.validateRoleInput(input); err != nil {
		return nil, err
	}

	role, err := service.roles.GetRole(context, orgID, name)
	if err != nil {
		return nil, err
	}

	role.Description = input.Description
	role.Permissions = dedupe(input.Permissions)

	if err := service.roles.UpdateRole(context, role); err != nil {
		return nil, err
	}

	service.logger.Info("role_updated",
		slog.String("org_id", orgID),
		slog.String("role", name),
	)
	return role, nil
}

func (service *Service) DeleteRole(context context.Context, orgID, name string) error {
	if err := service.roles.DeleteRole(context, orgID, name); err != nil {
		return err
	}

	service.logger.Warn("role_deleted",
		slog.String("org_id", orgID),
		slog.String("role", name),
	)
	return nil
}

func (service *Service) validateRoleInput(input RoleInput) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 100)

	for _, permission := range input.Permissions {
		if !sec.IsRegistered(permission) {
			validator.Custom(FieldPermissions, true,
				fmt.Sprintf("Unknown permission: %s", permission))
		}
	}

	return validator.Err()
}

// # Assignments

func (service *Service) ListAssignmentsByUser(context context.Context, orgID, userID string) ([]*Assignment, error) {
	return service.assignments.ListByUser(context, orgID, userID)
}

func (service *Service) ListAssignmentsByCenter(context context.Context, orgID, centerID string) ([]*Assignment, error) {
	return service.assignments.ListByCenter(context, orgID, centerID)
}

// AssignmentInput defines the payload for granting a role.
type AssignmentInput struct {
	UserID   string
	CenterID string
	RoleName string
}

/*
CreateAssignment grants a role to a user in one center.

All three references are validated at write time against the caller's org:
the user must belong to the org, the center must belong to the org, and the
role must exist in the org. Rejecting bad references here is what lets the
per-request resolver trust every assignment row it reads.
*/
func (service *Service) CreateAssignment(context context.Context, orgID string, input AssignmentInput) (*Assignment, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUserID, input.UserID).UUID(FieldUserID, input.UserID)
	validator.Required(FieldCenterID, input.CenterID).UUID(FieldCenterID, input.CenterID)
	validator.Required(FieldRoleName, input.RoleName)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	userOK, err := service.assignments.UserInOrg(context, orgID, input.UserID)
	if err != nil {
		return nil, err
	}
	if !userOK {
		return nil, apperr.Unprocessable("User does not belong to this organization")
	}

	centerOK, err := service.assignments.CenterInOrg(context, orgID, input.CenterID)
	if err != nil {
		return nil, err
	}
	if !centerOK {
		return nil, apperr.Unprocessable("Center does not belong to this organization")
	}

	if _, err := service.roles.GetRole(context, orgID, input.RoleName); err != nil {
		return nil, err
	}

	assignment := &Assignment{
		UserID:   input.UserID,
		OrgID:    orgID,
		CenterID: input.CenterID,
		RoleName: input.RoleName,
	}

	if err := service.assignments.Create(context, assignment); err != nil {
		return nil, err
	}

	service.logger.Info("role_assigned",
		slog.String("org_id", orgID),
		slog.String("user_id", input.UserID),
		slog.String("center_id", input.CenterID),
		slog.String("role", input.RoleName),
	)
	return assignment, nil
}

func (service *Service) DeleteAssignment(context context.Context, orgID string, input AssignmentInput) error {
	assignment := &Assignment{
		UserID:   input.UserID,
		OrgID:    orgID,
		CenterID: input.CenterID,
		RoleName: input.RoleName,
	}

	if err := service.assignments.Delete(context, assignment); err != nil {
		return err
	}

	service.logger.Info("role_revoked",
		slog.String("org_id", orgID),
		slog.String("user_id", input.UserID),
		slog.String("center_id", input.CenterID),
		slog.String("role", input.RoleName),
	)
	return nil
}

// # Access-Right Catalog

// SyncAccessRights reconciles the informational catalog table with the
// static registry. Called once at startup.
func (service *Service) SyncAccessRights(context context.Context) error {
	if err := service.roles.SyncAccessRights(context, sec.Registry); err != nil {
		return fmt.Errorf("role_service_sync_access_rights_failed: %w", err)
	}

	service.logger.Info("access_rights_synced", slog.Int("count", len(sec.Registry)))
	return nil
}

func (service *Service) ListAccessRights(context context.Context) ([]*AccessRight, error) {
	return service.roles.ListAccessRights(context)
}

// dedupe removes duplicate permissions while preserving first-seen order.
func dedupe(permissions []string) []string {
	seen := make(map[string]struct{}, len(permissions))
	out := make([]string, 0, len(permissions))
	for _, permission := range permissions {
		if _, ok := seen[permission]; ok {
			continue
		}
		seen[permission] = struct{}{}
		out = append(out, permission)
	}
	return out
}
