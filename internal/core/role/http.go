// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package role

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/centra/internal/platform/middleware"
	requestutil "github.com/taibuivan/centra/internal/platform/request"
	"github.com/taibuivan/centra/internal/platform/respond"
	"github.com/taibuivan/centra/internal/platform/sec"
	"github.com/taibuivan/centra/internal/platform/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the role and assignment route groups.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Roles
	router.With(middleware.Require(middleware.HasPermission(sec.PermRoleRead))).
		Get("/", handler.listRoles)
	router.With(middleware.Require(middleware.HasPermission(sec.PermRoleRead))).
		Get("/{name}", handler.getRole)
	router.With(middleware.Require(middleware.HasPermission(sec.PermRoleCreate))).
		Post("/", handler.createRole)
	router.With(middleware.Require(middleware.HasPermission(sec.PermRoleEdit))).
		Put("/{name}", handler.updateRole)
	router.With(middleware.Require(middleware.HasPermission(sec.PermRoleDelete))).
		Delete("/{name}", handler.deleteRole)

	return router
}

// AssignmentRoutes returns the role-assignment route group.
func (handler *Handler) AssignmentRoutes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.Require(middleware.HasPermission(sec.PermAssignmentRead))).
		Get("/", handler.listAssignments)
	router.With(middleware.Require(middleware.HasPermission(sec.PermAssignmentEdit))).
		Post("/", handler.createAssignment)
	router.With(middleware.Require(middleware.HasPermission(sec.PermAssignmentEdit))).
		Delete("/", handler.deleteAssignment)

	return router
}

// AccessRightRoutes returns the informational permission catalog group.
func (handler *Handler) AccessRightRoutes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.Require(middleware.HasPermission(sec.PermRoleRead))).
		Get("/", handler.listAccessRights)

	return router
}

// # Role Endpoints

func (handler *Handler) listRoles(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	roles, err := handler.service.ListRoles(request.Context(), principal.OrgID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, roles)
}

func (handler *Handler) getRole(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	role, err := handler.service.GetRole(request.Context(), principal.OrgID, requestutil.Param(request, "name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, role)
}

type roleRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Permissions []string `json:"permissions"`
}

func (handler *Handler) createRole(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input roleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	role, err := handler.service.CreateRole(request.Context(), principal.OrgID, RoleInput{
		Name:        input.Name,
		Description: input.Description,
		Permissions: input.Permissions,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, role)
}

func (handler *Handler) updateRole(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input roleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	role, err := handler.service.UpdateRole(request.Context(), principal.OrgID, requestutil.Param(request, "name"), RoleInput{
		Description: input.Description,
		Permissions: input.Permissions,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, role)
}

func (handler *Handler) deleteRole(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteRole(request.Context(), principal.OrgID, requestutil.Param(request, "name")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Assignment Endpoints

// listAssignments filters by ?user_id= or ?center_id= (exactly one required).
func (handler *Handler) listAssignments(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID := request.URL.Query().Get("user_id")
	centerID := request.URL.Query().Get("center_id")

	switch {
	case userID != "" && centerID == "":
		assignments, err := handler.service.ListAssignmentsByUser(request.Context(), principal.OrgID, userID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, assignments)
	case centerID != "" && userID == "":
		assignments, err := handler.service.ListAssignmentsByCenter(request.Context(), principal.OrgID, centerID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, assignments)
	default:
		respond.Error(writer, request, validate.RequiredError("filter",
			"Exactly one of user_id or center_id is required"))
	}
}

type assignmentRequest struct {
	UserID   string `json:"user_id"`
	CenterID string `json:"center_id"`
	RoleName string `json:"role_name"`
}

func (handler *Handler) createAssignment(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input assignmentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	assignment, err := handler.service.CreateAssignment(request.Context(), principal.OrgID, AssignmentInput{
		UserID:   input.UserID,
		CenterID: input.CenterID,
		RoleName: input.RoleName,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, assignment)
}

func (handler *Handler) deleteAssignment(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input assignmentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteAssignment(request.Context(), principal.OrgID, AssignmentInput{
		UserID:   input.UserID,
		CenterID: input.CenterID,
		RoleName: input.RoleName,
	}); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Access-Right Endpoints

func (handler *Handler) listAccessRights(writer http.ResponseWriter, request *http.Request) {
	rights, err := handler.service.ListAccessRights(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, rights)
}
