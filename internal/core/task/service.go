// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/centra/internal/platform/validate"
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

func (service *Service) ListTasks(context context.Context, orgID, centerID string, filter Filter, limit, offset int) ([]*Task, int, error) {
	return service.repo.List(context, orgID, centerID, filter, limit, offset)
}

func (service *Service) GetTask(context context.Context, orgID, centerID, id string) (*Task, error) {
	return service.repo.Get(context, orgID, centerID, id)
}

// Input defines the mutable task payload for create and update.
type Input struct {
	Title       string
	Description *string
	Status      string
	DueDate     *time.Time
	AssigneeID  *string
}

func (service *Service) CreateTask(context context.Context, orgID, centerID string, input Input) (*Task, error) {
	if input.Status == "" {
		input.Status = StatusOpen
	}
	if err := service.validateInput(input); err != nil {
		return nil, err
	}

	t := &Task{
		ID:          uuid.New(),
		OrgID:       orgID,
		CenterID:    centerID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		DueDate:     input.DueDate,
		AssigneeID:  input.AssigneeID,
	}

	if err := service.repo.Create(context, t); err != nil {
		return nil, err
	}

	service.logger.Info("task_created",
		slog.String("task_id", t.ID),
		slog.String("center_id", centerID),
	)
	return t, nil
}

func (service *Service) UpdateTask(context context.Context, orgID, centerID, id string, input Input) (*Task, error) {
	t, err := service.repo.Get(context, orgID, centerID, id)
	if err != nil {
		return nil, err
	}

	if input.Status == "" {
		input.Status = t.Status
	}
	if err := service.validateInput(input); err != nil {
		return nil, err
	}

	t.Title = input.Title
	t.Description = input.Description
	t.Status = input.Status
	t.DueDate = input.DueDate
	t.AssigneeID = input.AssigneeID

	if err := service.repo.Update(context, t); err != nil {
		return nil, err
	}

	service.logger.Info("task_updated", slog.String("task_id", t.ID))
	return t, nil
}

func (service *Service) DeleteTask(context context.Context, orgID, centerID, id string) error {
	if err := service.repo.Delete(context, orgID, centerID, id); err != nil {
		return err
	}

	service.logger.Info("task_deleted",
		slog.String("task_id", id),
		slog.String("center_id", centerID),
	)
	return nil
}

func (service *Service) validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 300)
	validator.OneOf(FieldStatus, input.Status, StatusOpen, StatusInProgress, StatusDone)
	if input.AssigneeID != nil {
		validator.UUID(FieldAssigneeID, *input.AssigneeID)
	}
	return validator.Err()
}
