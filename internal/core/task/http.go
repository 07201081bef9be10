// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/centra/internal/platform/middleware"
	requestutil "github.com/taibuivan/centra/internal/platform/request"
	"github.com/taibuivan/centra/internal/platform/respond"
	"github.com/taibuivan/centra/internal/platform/sec"
	"github.com/taibuivan/centra/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the task route group.
//
// Every handler scopes queries by the principal's (org, center) pair. A
// session without a selected center is rejected with 403 before any query
// runs — that is the null-center lockout, not a permission denial.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.Require(middleware.HasPermission(sec.PermTaskRead))).
		Get("/", handler.listTasks)
	router.With(middleware.Require(middleware.HasPermission(sec.PermTaskRead))).
		Get("/{id}", handler.getTask)
	router.With(middleware.Require(middleware.HasPermission(sec.PermTaskCreate))).
		Post("/", handler.createTask)
	router.With(middleware.Require(middleware.HasPermission(sec.PermTaskEdit))).
		Patch("/{id}", handler.updateTask)
	router.With(middleware.Require(middleware.HasPermission(sec.PermTaskDelete))).
		Delete("/{id}", handler.deleteTask)

	return router
}

func (handler *Handler) listTasks(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	centerID, err := requestutil.RequiredCenter(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	filter := Filter{
		Status:     request.URL.Query().Get("status"),
		AssigneeID: request.URL.Query().Get("assignee_id"),
	}

	tasks, total, err := handler.service.ListTasks(request.Context(), principal.OrgID, centerID, filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, tasks, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getTask(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	centerID, err := requestutil.RequiredCenter(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	t, err := handler.service.GetTask(request.Context(), principal.OrgID, centerID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, t)
}

type taskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	AssigneeID  *string    `json:"assignee_id"`
}

func (input taskRequest) toInput() Input {
	return Input{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		DueDate:     input.DueDate,
		AssigneeID:  input.AssigneeID,
	}
}

func (handler *Handler) createTask(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	centerID, err := requestutil.RequiredCenter(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input taskRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	t, err := handler.service.CreateTask(request.Context(), principal.OrgID, centerID, input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, t)
}

func (handler *Handler) updateTask(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	centerID, err := requestutil.RequiredCenter(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input taskRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	t, err := handler.service.UpdateTask(request.Context(), principal.OrgID, centerID, requestutil.ID(request, "id"), input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, t)
}

func (handler *Handler) deleteTask(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	centerID, err := requestutil.RequiredCenter(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteTask(request.Context(), principal.OrgID, centerID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
