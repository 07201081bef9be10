// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package center

import (
	"net/http"

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

// Routes returns the center route group. All queries are filtered by the
// principal's org, so a center id from another tenant yields 404, never 403.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.Require(middleware.HasPermission(sec.PermCenterRead))).
		Get("/", handler.listCenters)
	router.With(middleware.Require(middleware.HasPermission(sec.PermCenterRead))).
		Get("/{id}", handler.getCenter)
	router.With(middleware.Require(middleware.HasPermission(sec.PermCenterCreate))).
		Post("/", handler.createCenter)
	router.With(middleware.Require(middleware.HasPermission(sec.PermCenterEdit))).
		Patch("/{id}", handler.updateCenter)
	router.With(middleware.Require(middleware.HasPermission(sec.PermCenterDelete))).
		Delete("/{id}", handler.deleteCenter)

	return router
}

func (handler *Handler) listCenters(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	centers, total, err := handler.service.ListCenters(request.Context(), principal.OrgID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, centers, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getCenter(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	c, err := handler.service.GetCenter(request.Context(), principal.OrgID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, c)
}

type centerRequest struct {
	Name string `json:"name"`
}

func (handler *Handler) createCenter(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input centerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	c, err := handler.service.CreateCenter(request.Context(), principal.OrgID, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, c)
}

func (handler *Handler) updateCenter(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input centerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	c, err := handler.service.UpdateCenter(request.Context(), principal.OrgID, requestutil.ID(request, "id"), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, c)
}

func (handler *Handler) deleteCenter(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCenter(request.Context(), principal.OrgID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
