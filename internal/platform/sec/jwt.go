// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives, token management, and the
// authenticated principal model.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via narrow interfaces.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/centra/internal/platform/constants"
)

// TokenClaims is the payload embedded inside every Centra JWT.
//
// # Why tenant context in claims?
//
// Embedding OrgID and CenterID directly in the token lets the authentication
// middleware establish the tenant boundary WITHOUT a database round trip.
// Permissions are deliberately NOT embedded: they are re-resolved live on
// every request, so a revoked role takes effect without invalidating tokens.
type TokenClaims struct {
	jwt.RegisteredClaims

	// OrgID is the tenant boundary. Exactly one per token.
	OrgID string `json:"org_id"`

	// CenterID is the sub-tenant context. Nil when the user has not
	// selected a center yet (zero or multiple center assignments).
	CenterID *string `json:"center_id,omitempty"`

	// TokenType distinguishes refresh tokens from access tokens.
	// Empty for access tokens, "refresh" for refresh tokens.
	TokenType string `json:"token_type,omitempty"`
}

// Username returns the token subject.
func (c *TokenClaims) Username() string { return c.Subject }

// IsRefresh reports whether the claims belong to a refresh token.
func (c *TokenClaims) IsRefresh() bool { return c.TokenType == constants.TokenTypeRefresh }

// TokenService handles generation and verification of JWT tokens using HS512.
//
// # Concurrency
//
// The signing key is read-only after construction, so a single TokenService
// is safe for concurrent use by all request handlers.
type TokenService struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService creates a new TokenService with a symmetric signing key.
func NewTokenService(secret []byte, issuer string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("sec: signing secret must not be empty")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, fmt.Errorf("sec: token TTLs must be positive")
	}

	return &TokenService{
		secret:     secret,
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// # Issuance

// IssueAccessToken creates a signed access token carrying identity and
// tenant context (org id, optional center id).
func (service *TokenService) IssueAccessToken(username, orgID string, centerID *string) (string, error) {
	return service.issue(username, orgID, centerID, "", service.accessTTL)
}

// IssueRefreshToken creates a signed refresh token. It carries the same
// tenant context as the access token plus the "refresh" type marker.
func (service *TokenService) IssueRefreshToken(username, orgID string, centerID *string) (string, error) {
	return service.issue(username, orgID, centerID, constants.TokenTypeRefresh, service.refreshTTL)
}

// AccessTTL returns the configured access token lifetime.
func (service *TokenService) AccessTTL() time.Duration { return service.accessTTL }

// issue signs a token with the shared claim layout.
func (service *TokenService) issue(username, orgID string, centerID *string, tokenType string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		OrgID:     orgID,
		CenterID:  centerID,
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// # Verification

// Verify checks signature, expiry, and signing algorithm, returning the
// decoded claims on success.
func (service *TokenService) Verify(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Reject any algorithm other than HMAC. Accepting "none" or an
		// asymmetric method here would let clients forge tokens.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}

// Validate reports whether the token is well-formed, signed by us, and
// unexpired. Every failure mode (malformed, wrong signature, expired,
// unsupported algorithm) collapses to false — callers treat invalid tokens
// uniformly as unauthenticated, never as a server error.
func (service *TokenService) Validate(tokenString string) bool {
	_, err := service.Verify(tokenString)
	return err == nil
}

// IsRefreshToken reports whether the token carries the refresh marker.
// Returns false on any decode failure.
func (service *TokenService) IsRefreshToken(tokenString string) bool {
	claims, err := service.Verify(tokenString)
	if err != nil {
		return false
	}
	return claims.IsRefresh()
}

// # Claim Extraction

// DecodeUsername extracts the subject claim. Empty on failure.
func (service *TokenService) DecodeUsername(tokenString string) string {
	claims, err := service.Verify(tokenString)
	if err != nil {
		return ""
	}
	return claims.Subject
}

// DecodeOrgID extracts the org_id claim. Empty on failure.
func (service *TokenService) DecodeOrgID(tokenString string) string {
	claims, err := service.Verify(tokenString)
	if err != nil {
		return ""
	}
	return claims.OrgID
}

// DecodeCenterID extracts the center_id claim.
// Returns nil when the claim is absent or the token is invalid.
func (service *TokenService) DecodeCenterID(tokenString string) *string {
	claims, err := service.Verify(tokenString)
	if err != nil {
		return nil
	}
	return claims.CenterID
}

// DecodeExpiry extracts the exp claim. Zero time on failure.
func (service *TokenService) DecodeExpiry(tokenString string) time.Time {
	claims, err := service.Verify(tokenString)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
