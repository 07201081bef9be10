// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

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

// Routes returns the user-administration route group.
//
// Reading a single user is also allowed for the user themselves: the Any
// guard accepts either the user_read permission or a self match on the id.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.Require(middleware.HasPermission(sec.PermUserRead))).
		Get("/", handler.listUsers)
	router.With(middleware.Require(middleware.Any(
		middleware.HasPermission(sec.PermUserRead),
		middleware.Self("id"),
	))).Get("/{id}", handler.getUser)
	router.With(middleware.Require(middleware.HasPermission(sec.PermUserCreate))).
		Post("/", handler.createUser)
	router.With(middleware.Require(middleware.HasPermission(sec.PermUserEdit))).
		Patch("/{id}", handler.updateUser)
	router.With(middleware.Require(middleware.HasPermission(sec.PermUserDelete))).
		Delete("/{id}", handler.deleteUser)

	return router
}

func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	filter := Filter{Query: request.URL.Query().Get("q")}

	users, total, err := handler.service.ListUsers(request.Context(), principal.OrgID, filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.GetUser(request.Context(), principal.OrgID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

type createUserRequest struct {
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	IsOrgAdmin bool   `json:"is_org_admin"`
}

func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.CreateUser(request.Context(), principal.OrgID, CreateInput{
		Username:   input.Username,
		FullName:   input.FullName,
		Email:      input.Email,
		Password:   input.Password,
		IsOrgAdmin: input.IsOrgAdmin,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, user)
}

type updateUserRequest struct {
	FullName   *string `json:"full_name"`
	Email      *string `json:"email"`
	IsOrgAdmin *bool   `json:"is_org_admin"`
}

func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateUser(request.Context(), principal.OrgID, requestutil.ID(request, "id"), UpdateInput{
		FullName:   input.FullName,
		Email:      input.Email,
		IsOrgAdmin: input.IsOrgAdmin,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteUser(request.Context(), principal.OrgID, requestutil.ID(request, "id"), principal.UserID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
