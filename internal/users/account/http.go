// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/centra/internal/platform/middleware"
	requestutil "github.com/taibuivan/centra/internal/platform/request"
	"github.com/taibuivan/centra/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the self-service account route group.
//
// # Endpoints
//   - GET   /me              : Principal snapshot plus stored profile.
//   - PATCH /me              : Update own full name / email.
//   - GET   /centers         : Centers the caller can select.
//   - POST  /change-password : Rotate own password.
//
// Everything here requires authentication only — these are the endpoints a
// session without a selected center is still allowed to reach.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/me", handler.me)
	router.Patch("/me", handler.updateMe)
	router.Get("/centers", handler.listCenters)
	router.Post("/change-password", handler.changePassword)

	return router
}

// meResponse pairs the stored profile with the live session context.
type meResponse struct {
	UserID      string   `json:"user_id"`
	Username    string   `json:"username"`
	FullName    string   `json:"full_name"`
	Email       string   `json:"email"`
	OrgID       string   `json:"org_id"`
	CenterID    *string  `json:"center_id"`
	IsOrgAdmin  bool     `json:"is_org_admin"`
	Permissions []string `json:"permissions"`
}

func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.GetProfile(request.Context(), principal.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, meResponse{
		UserID:      user.ID,
		Username:    user.Username,
		FullName:    user.FullName,
		Email:       user.Email,
		OrgID:       principal.OrgID,
		CenterID:    principal.CenterID,
		IsOrgAdmin:  user.IsOrgAdmin,
		Permissions: principal.Permissions(),
	})
}

type updateMeRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
}

func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateProfile(request.Context(), principal.UserID, UpdateProfileInput{
		FullName: input.FullName,
		Email:    input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) listCenters(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	centers, err := handler.service.ListAssignedCenters(request.Context(), principal.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, centers)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ChangePassword(request.Context(), principal.UserID, input.CurrentPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Password has been changed"})
}
