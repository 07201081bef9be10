// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/centra/internal/platform/apperr"
	"github.com/taibuivan/centra/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider defines the contract for minting and verifying signed tokens.
//
// The concrete implementation is [sec.TokenService]; the interface keeps the
// service testable with deterministic fakes.
type TokenProvider interface {
	// IssueAccessToken creates a signed access token with tenant context.
	IssueAccessToken(username, orgID string, centerID *string) (string, error)

	// IssueRefreshToken creates a signed refresh token with tenant context.
	IssueRefreshToken(username, orgID string, centerID *string) (string, error)

	// Verify checks signature and expiry and returns the decoded claims.
	Verify(token string) (*sec.TokenClaims, error)

	// AccessTTL reports the access token lifetime for expires_in responses.
	AccessTTL() time.Duration
}

// Service implements the authentication and token issuance use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to token issuance,
// center selection, or login logic must be reviewed by the security team.
type Service struct {
	users       UserRepository
	resolver    *Resolver
	resetTokens ResetTokenRepository
	tokens      TokenProvider
}

// NewService constructs a new auth [Service] with its dependencies.
func NewService(users UserRepository, resolver *Resolver, resetTokens ResetTokenRepository, tokens TokenProvider) *Service {
	return &Service{
		users:       users,
		resolver:    resolver,
		resetTokens: resetTokens,
		tokens:      tokens,
	}
}

// # Session Type

// Session is a freshly issued token pair plus the principal snapshot it
// represents. Returned by Login, Refresh, and SelectCenter.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // Seconds until the access token expires.
	Principal    *sec.Principal
	User         *User
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

/*
Login validates user credentials and issues a token pair.

Description: Verifies identity with a constant-time password comparison, then
auto-selects the user's center when their assignments span exactly one, and
embeds (username, org id, center id) into both tokens.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Token pair and principal snapshot
  - error: Unauthorized on any credential failure (no field-level detail, to
    prevent username enumeration) or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	user, err := service.users.FindByUsername(context, input.Username)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Auto center selection: exactly one distinct assigned center wins;
	// zero or multiple leave the session center-less.
	centerID, err := service.resolver.UniqueCenterForUser(context, user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_center_lookup_failed: %w", err)
	}

	return service.issueSession(context, user, centerID)
}

// # Refresh Flow

/*
Refresh exchanges a valid refresh token for a fresh token pair.

Description: Verifies the refresh token (signature, expiry, type marker),
re-loads the user, and re-derives tenant context. The center carried in the
old token is kept; when the old token had none, fallbackCenterID is honored
if it is among the user's assigned centers, otherwise auto-selection applies.

Parameters:
  - context: context.Context
  - refreshToken: string
  - fallbackCenterID: *string (optional center for tokens issued without one)

Returns:
  - *Session: Rotated token pair and principal snapshot
  - error: Unauthorized for any token problem, Forbidden for an unassigned
    fallback center
*/
func (service *Service) Refresh(context context.Context, refreshToken string, fallbackCenterID *string) (*Session, error) {
	claims, err := service.tokens.Verify(refreshToken)
	if err != nil || !claims.IsRefresh() {
		// Uniform failure: malformed, expired, tampered, and wrong-type
		// tokens are indistinguishable to the client.
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	user, err := service.users.FindByUsername(context, claims.Subject)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// The org reference is immutable, so a mismatch means the token was not
	// issued for this account state. Treat as invalid.
	if user.OrgID != claims.OrgID {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	centerID := claims.CenterID
	if centerID == nil {
		if fallbackCenterID != nil {
			if err := service.ensureAssignedCenter(context, user.ID, *fallbackCenterID); err != nil {
				return nil, err
			}
			centerID = fallbackCenterID
		} else {
			centerID, err = service.resolver.UniqueCenterForUser(context, user.ID)
			if err != nil {
				return nil, fmt.Errorf("auth_service_center_lookup_failed: %w", err)
			}
		}
	}

	return service.issueSession(context, user, centerID)
}

// # Center Selection

/*
SelectCenter re-issues the token pair with an explicitly chosen center.

Description: The flow users with zero or multiple center assignments must
take before doing anything permission-gated. Rejects centers the user holds
no role assignment in.

Parameters:
  - context: context.Context
  - principal: *sec.Principal (current authenticated principal)
  - centerID: string (requested center)

Returns:
  - *Session: Token pair scoped to the requested center
  - error: Forbidden when the center is not among the user's assignments
*/
func (service *Service) SelectCenter(context context.Context, principal *sec.Principal, centerID string) (*Session, error) {
	if err := service.ensureAssignedCenter(context, principal.UserID, centerID); err != nil {
		return nil, err
	}

	user, err := service.users.FindByID(context, principal.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("User no longer exists")
	}

	return service.issueSession(context, user, &centerID)
}

// # Authentication Gate Support

/*
PrincipalFromToken reconstitutes the authenticated principal for one request.

Description: Validates the access token, decodes the tenant claims, and runs
the live permission resolution for the token's center. A token without a
center yields a principal with an empty permission set — the resolver is
never invoked with a null center.

Parameters:
  - context: context.Context
  - token: string (bearer access token)

Returns:
  - *sec.Principal: Fresh per-request principal
  - error: Any validation or lookup failure (the gate logs it and proceeds
    unauthenticated; this is never surfaced to the client directly)
*/
func (service *Service) PrincipalFromToken(context context.Context, token string) (*sec.Principal, error) {
	claims, err := service.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	// Refresh tokens are exchange-only. Accepting them as API credentials
	// would stretch their 7-day lifetime over every endpoint.
	if claims.IsRefresh() {
		return nil, fmt.Errorf("auth: refresh token used as access credential")
	}

	user, err := service.users.FindByUsername(context, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("auth: token subject no longer exists: %w", err)
	}

	if user.OrgID != claims.OrgID {
		return nil, fmt.Errorf("auth: token org does not match account")
	}

	return service.buildPrincipal(context, user, claims.CenterID)
}

// # Password Recovery

/*
RequestPasswordReset initiates the forgot-password flow.

Description: Generates a secure token and stores it in the volatile store.
An unknown email returns success with no token to prevent enumeration.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: Reset token (empty for unknown emails)
  - error: Generation or storage failures
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) (string, error) {
	user, err := service.users.FindByEmail(context, email)
	if err != nil {
		return "", nil
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	if err := service.resetTokens.Set(context, token, user.ID, ResetTokenTTL); err != nil {
		return "", fmt.Errorf("auth_service_save_reset_token_failed: %w", err)
	}

	return token, nil
}

/*
ResetPassword completes the forgot-password flow.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - error: Validation or update failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	userID, err := service.resetTokens.Get(context, token)
	if err != nil {
		return err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	if err := service.users.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_password_update_failed: %w", err)
	}

	_ = service.resetTokens.Delete(context, token)

	return nil
}

// # Internal Helpers

// issueSession builds the principal and mints the access/refresh pair.
func (service *Service) issueSession(context context.Context, user *User, centerID *string) (*Session, error) {
	principal, err := service.buildPrincipal(context, user, centerID)
	if err != nil {
		return nil, err
	}

	accessToken, err := service.tokens.IssueAccessToken(user.Username, user.OrgID, centerID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	refreshToken, err := service.tokens.IssueRefreshToken(user.Username, user.OrgID, centerID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	return &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(service.tokens.AccessTTL().Seconds()),
		Principal:    principal,
		User:         user,
	}, nil
}

// buildPrincipal runs the live permission resolution for the given center.
// A nil center yields an empty permission set without touching the resolver.
func (service *Service) buildPrincipal(context context.Context, user *User, centerID *string) (*sec.Principal, error) {
	var permissions []string
	if centerID != nil {
		var err error
		permissions, err = service.resolver.Resolve(context, user.ID, *centerID)
		if err != nil {
			return nil, fmt.Errorf("auth_service_resolve_permissions_failed: %w", err)
		}
	}

	return sec.NewPrincipal(user.ID, user.Username, user.OrgID, centerID, user.IsOrgAdmin, permissions), nil
}

// ensureAssignedCenter rejects centers the user holds no assignment in.
func (service *Service) ensureAssignedCenter(context context.Context, userID, centerID string) error {
	centers, err := service.resolver.AssignedCenters(context, userID)
	if err != nil {
		return fmt.Errorf("auth_service_center_lookup_failed: %w", err)
	}

	for _, assigned := range centers {
		if assigned == centerID {
			return nil
		}
	}

	return apperr.Forbidden("Center is not assigned to this user")
}
