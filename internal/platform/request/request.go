// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/centra/internal/platform/apperr"
	"github.com/taibuivan/centra/internal/platform/ctxutil"
	"github.com/taibuivan/centra/internal/platform/sec"
	"github.com/taibuivan/centra/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter (UUID/Slug) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Principal extracts the authenticated principal from the request context.

Returns nil if the request is not authenticated.
*/
func Principal(request *http.Request) *sec.Principal {
	return ctxutil.GetPrincipal(request.Context())
}

/*
RequiredPrincipal ensures the request is authenticated and returns the principal.

Returns:
  - *sec.Principal: The authenticated principal
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredPrincipal(request *http.Request) (*sec.Principal, error) {
	principal := ctxutil.GetPrincipal(request.Context())
	if principal == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return principal, nil
}

/*
RequiredCenter ensures the principal has a center selected and returns its id.

Returns:
  - string: Center UUID
  - error: apperr.Unauthorized if anonymous, apperr.Forbidden if no center selected
*/
func RequiredCenter(request *http.Request) (string, error) {
	principal, err := RequiredPrincipal(request)
	if err != nil {
		return "", err
	}

	// Center-scoped actions are locked out until the session selects a center.
	if principal.CenterID == nil {
		return "", apperr.Forbidden("No center selected for this session")
	}

	return *principal.CenterID, nil
}
