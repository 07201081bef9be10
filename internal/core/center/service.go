// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package center

import (
	"context"
	"log/slog"

	"github.com/taibuivan/centra/internal/platform/validate"
	"github.com/taibuivan/centra/pkg/slug"
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

func (service *Service) ListCenters(context context.Context, orgID string, limit, offset int) ([]*Center, int, error) {
	return service.repo.List(context, orgID, limit, offset)
}

func (service *Service) GetCenter(context context.Context, orgID, id string) (*Center, error) {
	return service.repo.Get(context, orgID, id)
}

func (service *Service) CreateCenter(context context.Context, orgID, name string) (*Center, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, 200)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	c := &Center{
		ID:    uuid.New(),
		OrgID: orgID,
		Name:  name,
		Slug:  slug.From(name),
	}

	if err := service.repo.Create(context, c); err != nil {
		return nil, err
	}

	service.logger.Info("center_created",
		slog.String("center_id", c.ID),
		slog.String("org_id", orgID),
	)
	return c, nil
}

func (service *Service) UpdateCenter(context context.Context, orgID, id, name string) (*Center, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, 200)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	c, err := service.repo.Get(context, orgID, id)
	if err != nil {
		return nil, err
	}

	c.Name = name
	c.Slug = slug.From(name)

	if err := service.repo.Update(context, c); err != nil {
		return nil, err
	}

	service.logger.Info("center_updated", slog.String("center_id", c.ID))
	return c, nil
}

func (service *Service) DeleteCenter(context context.Context, orgID, id string) error {
	if err := service.repo.Delete(context, orgID, id); err != nil {
		return err
	}

	service.logger.Warn("center_deleted",
		slog.String("center_id", id),
		slog.String("org_id", orgID),
	)
	return nil
}
