// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package organization

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/centra/internal/platform/middleware"
	requestutil "github.com/taibuivan/centra/internal/platform/request"
	"github.com/taibuivan/centra/internal/platform/respond"
	"github.com/taibuivan/centra/internal/platform/sec"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the organization route group.
//
// The org id path parameter must match the principal's own organization:
// there is no cross-tenant visibility, not even for listing.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.Require(middleware.HasPermission(sec.PermOrgRead))).
		Get("/", handler.listOrganizations)

	router.With(middleware.Require(
		middleware.SameOrgParam("id"),
		middleware.HasPermission(sec.PermOrgRead),
	)).Get("/{id}", handler.getOrganization)

	router.With(middleware.Require(
		middleware.SameOrgParam("id"),
		middleware.HasPermission(sec.PermOrgEdit),
	)).Patch("/{id}", handler.updateOrganization)

	return router
}

// listOrganizations returns the principal's own organization as a one-element
// list. The collection shape keeps the endpoint forward-compatible with
// multi-org memberships.
func (handler *Handler) listOrganizations(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	org, err := handler.service.GetOrganization(request.Context(), principal.OrgID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, []*Organization{org})
}

func (handler *Handler) getOrganization(writer http.ResponseWriter, request *http.Request) {
	org, err := handler.service.GetOrganization(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, org)
}

type updateRequest struct {
	Name    *string `json:"name"`
	OrgType *string `json:"org_type"`
	Props   *Props  `json:"properties"`
}

func (handler *Handler) updateOrganization(writer http.ResponseWriter, request *http.Request) {
	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	org, err := handler.service.UpdateOrganization(request.Context(), requestutil.ID(request, "id"), UpdateInput{
		Name:    input.Name,
		OrgType: input.OrgType,
		Props:   input.Props,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, org)
}
