// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package organization

import (
	"context"
	"log/slog"

	"github.com/taibuivan/centra/internal/platform/validate"
	"github.com/taibuivan/centra/pkg/slug"
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

func (service *Service) GetOrganization(context context.Context, id string) (*Organization, error) {
	return service.repo.GetByID(context, id)
}

// UpdateInput defines the mutable subset of organization fields. Nil fields
// are left untouched.
type UpdateInput struct {
	Name    *string
	OrgType *string
	Props   *Props
}

func (service *Service) UpdateOrganization(context context.Context, id string, input UpdateInput) (*Organization, error) {
	org, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, 200)
	}
	if input.OrgType != nil {
		validator.OneOf(FieldOrgType, *input.OrgType, OrgTypeCompany, OrgTypeNonprofit, OrgTypeEducation)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.Name != nil {
		org.Name = *input.Name
		org.Slug = slug.From(*input.Name)
	}
	if input.OrgType != nil {
		org.OrgType = *input.OrgType
	}
	if input.Props != nil {
		org.Props = *input.Props
	}

	if err := service.repo.Update(context, org); err != nil {
		return nil, err
	}

	service.logger.Info("organization_updated", slog.String("org_id", org.ID))
	return org, nil
}
