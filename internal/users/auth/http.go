// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth provides the HTTP delivery layer for authentication.

It implements the gateway for the token lifecycle: login, refresh, center
selection, and password recovery.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Orchestrates JWT issuance; tokens travel in the response body.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/centra/internal/platform/middleware"
	requestutil "github.com/taibuivan/centra/internal/platform/request"
	"github.com/taibuivan/centra/internal/platform/respond"
	"github.com/taibuivan/centra/internal/platform/sec"
	"github.com/taibuivan/centra/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /login           : Authenticates and returns a token pair.
//   - POST /refresh         : Exchanges a refresh token for a new pair.
//   - POST /select-center   : Re-issues tokens scoped to a chosen center.
//   - POST /forgot-password : Starts the password recovery flow.
//   - POST /reset-password  : Completes the password recovery flow.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password", handler.resetPassword)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/select-center", handler.selectCenter)
	})

	return router
}

// # Request Payloads

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string  `json:"refresh_token"`
	CenterID     *string `json:"center_id,omitempty"` // Fallback for tokens issued without a center.
}

type selectCenterRequest struct {
	CenterID string `json:"center_id"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// # Response Payloads

// sessionResponse is the transport shape of an issued [Session].
type sessionResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	TokenType    string         `json:"token_type"`
	ExpiresIn    int64          `json:"expires_in"`
	User         *User          `json:"user"`
	Principal    principalView  `json:"principal"`
}

// principalView exposes the principal snapshot without internal state.
type principalView struct {
	UserID      string   `json:"user_id"`
	Username    string   `json:"username"`
	OrgID       string   `json:"org_id"`
	CenterID    *string  `json:"center_id"`
	IsOrgAdmin  bool     `json:"is_org_admin"`
	Permissions []string `json:"permissions"`
}

func newSessionResponse(session *Session) sessionResponse {
	return sessionResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    session.ExpiresIn,
		User:         session.User,
		Principal:    newPrincipalView(session.Principal),
	}
}

func newPrincipalView(principal *sec.Principal) principalView {
	return principalView{
		UserID:      principal.UserID,
		Username:    principal.Username,
		OrgID:       principal.OrgID,
		CenterID:    principal.CenterID,
		IsOrgAdmin:  principal.IsOrgAdmin,
		Permissions: principal.Permissions(),
	}
}

// # Endpoint Implementations

/*
login authenticates a user and issues a token pair.

POST /api/v1/auth/login

Response:
  - 200: sessionResponse with auto-selected center when unambiguous
  - 401: Invalid credentials (uniform, no field-level detail)
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newSessionResponse(session))
}

/*
refresh exchanges a refresh token for a new token pair.

POST /api/v1/auth/refresh

Response:
  - 200: sessionResponse
  - 401: Invalid, expired, or non-refresh token
  - 403: Fallback center not assigned to the user
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	var input refreshRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldRefreshToken, input.RefreshToken)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Refresh(request.Context(), input.RefreshToken, input.CenterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newSessionResponse(session))
}

/*
selectCenter re-issues the token pair scoped to an explicitly chosen center.

POST /api/v1/auth/select-center

Response:
  - 200: sessionResponse with the requested center and resolved permissions
  - 401: Not authenticated
  - 403: Center not among the user's role assignments
*/
func (handler *Handler) selectCenter(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input selectCenterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldCenterID, input.CenterID).UUID(FieldCenterID, input.CenterID)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.SelectCenter(request.Context(), principal, input.CenterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newSessionResponse(session))
}

/*
forgotPassword starts the password recovery flow.

POST /api/v1/auth/forgot-password

Response:
  - 200: Generic acknowledgement regardless of email existence
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The token is handed to the mail pipeline, never to the response:
	// returning it would let anyone reset anyone's password.
	if _, err := handler.authService.RequestPasswordReset(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		"message": "If the email exists, a reset link has been sent",
	})
}

/*
resetPassword completes the password recovery flow.

POST /api/v1/auth/reset-password

Response:
  - 200: Acknowledgement
  - 404: Unknown or expired token
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldToken, input.Token)
	validator.Required(FieldPassword, input.Password).MinLen(FieldPassword, input.Password, 8)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ResetPassword(request.Context(), input.Token, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Password has been reset"})
}
