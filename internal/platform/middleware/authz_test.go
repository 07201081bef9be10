// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/centra/internal/platform/ctxutil"
	"github.com/taibuivan/centra/internal/platform/middleware"
	"github.com/taibuivan/centra/internal/platform/sec"
)

// fakePrincipalSource maps exact bearer tokens to principals.
type fakePrincipalSource struct {
	principals map[string]*sec.Principal
}

func (f *fakePrincipalSource) PrincipalFromToken(_ context.Context, token string) (*sec.Principal, error) {
	if principal, ok := f.principals[token]; ok {
		return principal, nil
	}
	return nil, errors.New("token is invalid")
}

// okHandler records whether the guarded handler body ran.
func okHandler(ran *bool) http.HandlerFunc {
	return func(writer http.ResponseWriter, _ *http.Request) {
		*ran = true
		writer.WriteHeader(http.StatusOK)
	}
}

func testPrincipal(orgID string, centerID *string, permissions ...string) *sec.Principal {
	return sec.NewPrincipal("u1", "alice", orgID, centerID, false, permissions)
}

/*
TestAuthenticate_GateNeverRejects verifies the gate's pass-through contract:
missing, malformed, and invalid credentials all yield an anonymous request,
never an error response.
*/
func TestAuthenticate_GateNeverRejects(t *testing.T) {
	source := &fakePrincipalSource{principals: map[string]*sec.Principal{
		"good-token": testPrincipal("org-1", nil),
	}}

	tests := []struct {
		name          string
		authorization string
		wantPrincipal bool
	}{
		{"no_header", "", false},
		{"not_bearer", "Basic abc123", false},
		{"invalid_token", "Bearer bad-token", false},
		{"valid_token", "Bearer good-token", true},
		{"case_insensitive_scheme", "bearer good-token", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *sec.Principal
			handler := middleware.Authenticate(source)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				seen = ctxutil.GetPrincipal(request.Context())
				writer.WriteHeader(http.StatusOK)
			}))

			request := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tt.authorization != "" {
				request.Header.Set("Authorization", tt.authorization)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			// The gate always lets the request through.
			assert.Equal(t, http.StatusOK, recorder.Code)
			if tt.wantPrincipal {
				require.NotNil(t, seen)
				assert.Equal(t, "alice", seen.Username)
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}

/*
TestRequire_AuthenticationSplit verifies the 401-vs-403 split: missing
principal is unauthenticated, present-but-unqualified is forbidden.
*/
func TestRequire_AuthenticationSplit(t *testing.T) {
	tests := []struct {
		name       string
		principal  *sec.Principal
		wantStatus int
	}{
		{"anonymous_gets_401", nil, http.StatusUnauthorized},
		{"missing_permission_gets_403", testPrincipal("org-1", nil), http.StatusForbidden},
		{"qualified_gets_200", testPrincipal("org-1", strPtr("c1"), "task_read"), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ran bool
			handler := middleware.Require(middleware.HasPermission("task_read"))(okHandler(&ran))

			request := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tt.principal != nil {
				request = request.WithContext(ctxutil.WithPrincipal(request.Context(), tt.principal))
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, ran)
		})
	}
}

/*
TestRequire_FailClosed verifies a guard declared without rules denies even a
fully privileged principal.
*/
func TestRequire_FailClosed(t *testing.T) {
	var ran bool
	handler := middleware.Require()(okHandler(&ran))

	principal := testPrincipal("org-1", strPtr("c1"), sec.AllPermissions()...)
	request := httptest.NewRequest(http.MethodGet, "/anything", nil)
	request = request.WithContext(ctxutil.WithPrincipal(request.Context(), principal))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.False(t, ran)
}

/*
TestRequire_TenantIsolation verifies that org-scoped guards reject principals
from another org regardless of their permission set.
*/
func TestRequire_TenantIsolation(t *testing.T) {
	router := chi.NewRouter()

	var ran bool
	router.With(middleware.Require(
		middleware.SameOrgParam("orgID"),
		middleware.HasPermission("org_read"),
	)).Get("/orgs/{orgID}", okHandler(&ran))

	tests := []struct {
		name       string
		principal  *sec.Principal
		path       string
		wantStatus int
	}{
		{"own_org", testPrincipal("org-1", strPtr("c1"), "org_read"), "/orgs/org-1", http.StatusOK},
		{"foreign_org", testPrincipal("org-2", strPtr("c1"), "org_read"), "/orgs/org-1", http.StatusForbidden},
		{"own_org_without_permission", testPrincipal("org-1", strPtr("c1")), "/orgs/org-1", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ran = false
			request := httptest.NewRequest(http.MethodGet, tt.path, nil)
			request = request.WithContext(ctxutil.WithPrincipal(request.Context(), tt.principal))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, ran)
		})
	}
}

/*
TestRequire_CenterRules verifies center-scoped predicates, including the
null-center lockout.
*/
func TestRequire_CenterRules(t *testing.T) {
	router := chi.NewRouter()

	var ran bool
	router.With(middleware.Require(middleware.SameCenterParam("centerID"))).
		Get("/centers/{centerID}/tasks", okHandler(&ran))

	tests := []struct {
		name       string
		principal  *sec.Principal
		wantStatus int
	}{
		{"matching_center", testPrincipal("org-1", strPtr("c1")), http.StatusOK},
		{"other_center", testPrincipal("org-1", strPtr("c2")), http.StatusForbidden},
		{"no_center_selected", testPrincipal("org-1", nil), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ran = false
			request := httptest.NewRequest(http.MethodGet, "/centers/c1/tasks", nil)
			request = request.WithContext(ctxutil.WithPrincipal(request.Context(), tt.principal))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, ran)
		})
	}
}

/*
TestRequire_AnyCombinator verifies OR semantics: self access and admin
permission each independently satisfy the guard.
*/
func TestRequire_AnyCombinator(t *testing.T) {
	router := chi.NewRouter()

	var ran bool
	router.With(middleware.Require(middleware.Any(
		middleware.Self("userID"),
		middleware.HasPermission("user_edit"),
	))).Put("/users/{userID}", okHandler(&ran))

	tests := []struct {
		name       string
		principal  *sec.Principal
		path       string
		wantStatus int
	}{
		{"self_without_permission", testPrincipal("org-1", nil), "/users/u1", http.StatusOK},
		{"other_user_with_permission", testPrincipal("org-1", strPtr("c1"), "user_edit"), "/users/u2", http.StatusOK},
		{"other_user_without_permission", testPrincipal("org-1", nil), "/users/u2", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ran = false
			request := httptest.NewRequest(http.MethodPut, tt.path, nil)
			request = request.WithContext(ctxutil.WithPrincipal(request.Context(), tt.principal))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

/*
TestRequireAuth verifies the bare authentication guard used by self-service
endpoints.
*/
func TestRequireAuth(t *testing.T) {
	var ran bool
	handler := middleware.RequireAuth(okHandler(&ran))

	// Anonymous: 401.
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/account/me", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, ran)

	// Authenticated, no permissions needed: 200.
	request := httptest.NewRequest(http.MethodGet, "/account/me", nil)
	request = request.WithContext(ctxutil.WithPrincipal(request.Context(), testPrincipal("org-1", nil)))
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, ran)
}

func strPtr(s string) *string { return &s }
