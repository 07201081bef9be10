// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package middleware provides the HTTP middleware chain for the Centra API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, AuthN/AuthZ, Rate Limiting, and CORS.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/centra/internal/platform/apperr"
	"github.com/taibuivan/centra/internal/platform/constants"
	"github.com/taibuivan/centra/internal/platform/ctxutil"
	"github.com/taibuivan/centra/internal/platform/respond"
	"github.com/taibuivan/centra/internal/platform/sec"
)

// # Authentication Gate

// PrincipalSource reconstitutes an authenticated principal from a bearer token.
//
// # Why an interface?
//
// Defining PrincipalSource here decouples the middleware from the auth
// service implementation, allowing mocks to be injected during unit testing.
// Implementations validate the token, decode its tenant claims, and perform
// the live permission resolution for the token's center.
type PrincipalSource interface {
	PrincipalFromToken(ctx context.Context, token string) (*sec.Principal, error)
}

// Authenticate extracts the bearer token and publishes the principal.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent or malformed, the request proceeds as anonymous.
//  3. If present, reconstruct the principal via [PrincipalSource].
//  4. Inject [*sec.Principal] into the request context for downstream use.
//
// Authentication failure is never an error response here: an invalid or
// expired token simply yields an anonymous request, and the authorization
// guards downstream decide whether to reject it. This keeps 401-vs-403
// semantics in exactly one place.
func Authenticate(source PrincipalSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Check ───────────────────────────────────────────────
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Principal Reconstruction ───────────────────────────────────
			principal, err := source.PrincipalFromToken(request.Context(), parts[1])
			if err != nil {
				// Invalid, expired, or refresh-typed token: log and proceed
				// unauthenticated.
				ctxutil.GetLogger(request.Context()).Debug("authentication_skipped",
					slog.String("reason", err.Error()),
				)
				next.ServeHTTP(writer, request)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// # Authorization Decision Point

// Rule is a single authorization predicate evaluated against the current
// principal and request. Rules compose with AND via [Require] and OR via [Any].
type Rule func(principal *sec.Principal, request *http.Request) bool

// HasPermission requires membership of the permission in the resolved set.
// A principal without a selected center has an empty set and always fails.
func HasPermission(permission string) Rule {
	return func(principal *sec.Principal, _ *http.Request) bool {
		return principal.HasPermission(permission)
	}
}

// SameOrgParam requires the named path parameter to equal the principal's org id.
func SameOrgParam(name string) Rule {
	return func(principal *sec.Principal, request *http.Request) bool {
		return principal.SameOrg(chi.URLParam(request, name))
	}
}

// SameCenterParam requires the named path parameter to equal the principal's
// selected center. A nil center mismatches every concrete center.
func SameCenterParam(name string) Rule {
	return func(principal *sec.Principal, request *http.Request) bool {
		return principal.InCenter(chi.URLParam(request, name))
	}
}

// Self requires the named path parameter to identify the principal's own account.
func Self(name string) Rule {
	return func(principal *sec.Principal, request *http.Request) bool {
		return principal.IsSelf(chi.URLParam(request, name))
	}
}

// CenterSelected requires the session to have a center in scope.
func CenterSelected() Rule {
	return func(principal *sec.Principal, _ *http.Request) bool {
		return principal.HasCenter()
	}
}

// Any combines rules with OR semantics.
func Any(rules ...Rule) Rule {
	return func(principal *sec.Principal, request *http.Request) bool {
		for _, rule := range rules {
			if rule(principal, request) {
				return true
			}
		}
		return false
	}
}

// Require evaluates the given rules with AND semantics strictly before the
// handler executes.
//
// # Semantics
//
//   - No principal in context: 401 Unauthorized.
//   - Empty rule list: 403 Forbidden. Fail-closed — an endpoint that
//     declares a guard without rules is a bug, and it must not be permissive.
//   - Any rule false: 403 Forbidden with a generic message. The handler body
//     never runs, so no partial execution is observable.
func Require(rules ...Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal := ctxutil.GetPrincipal(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if principal == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Fail-Closed Default ────────────────────────────────────────
			if len(rules) == 0 {
				respond.Error(writer, request, apperr.Forbidden("Access denied"))
				return
			}

			// ── 3. Rule Evaluation (AND) ──────────────────────────────────────
			for _, rule := range rules {
				if !rule(principal, request) {
					respond.Error(writer, request, apperr.Forbidden("Access denied"))
					return
				}
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It performs no
// permission checks — endpoints behind it either serve org-level
// self-service data or mount additional [Require] guards.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetPrincipal(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
