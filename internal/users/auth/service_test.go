// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/centra/internal/platform/apperr"
	"github.com/taibuivan/centra/internal/platform/sec"
	"github.com/taibuivan/centra/internal/users/auth"
)

// fakeUserRepository is an in-memory [auth.UserRepository].
type fakeUserRepository struct {
	byUsername map[string]*auth.User
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range f.byUsername {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	if user, ok := f.byUsername[username]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range f.byUsername {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	for _, user := range f.byUsername {
		if user.ID == userID {
			user.PasswordHash = newHash
			return nil
		}
	}
	return apperr.NotFound("User")
}

// fakeResetTokenRepository is an in-memory [auth.ResetTokenRepository].
type fakeResetTokenRepository struct {
	tokens map[string]string
}

func (f *fakeResetTokenRepository) Set(_ context.Context, token, userID string, _ time.Duration) error {
	if f.tokens == nil {
		f.tokens = map[string]string{}
	}
	f.tokens[token] = userID
	return nil
}

func (f *fakeResetTokenRepository) Get(_ context.Context, token string) (string, error) {
	if userID, ok := f.tokens[token]; ok {
		return userID, nil
	}
	return "", apperr.NotFound("Reset token")
}

func (f *fakeResetTokenRepository) Delete(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

// newTestService wires an auth.Service over in-memory stores and a real
// HS512 token service.
func newTestService(t *testing.T, assignments *fakeAssignmentRepository) (*auth.Service, *sec.TokenService, *fakeUserRepository) {
	t.Helper()

	tokenService, err := sec.NewTokenService([]byte("service-test-secret"), "centra.test", time.Hour, 24*time.Hour)
	require.NoError(t, err)

	passwordHash, err := sec.HashPassword("admin123")
	require.NoError(t, err)

	users := &fakeUserRepository{byUsername: map[string]*auth.User{
		"admin": {
			ID:           "u-admin",
			OrgID:        "org-1",
			Username:     "admin",
			FullName:     "Default Admin",
			Email:        "admin@centra.app",
			PasswordHash: passwordHash,
			IsOrgAdmin:   true,
		},
	}}

	service := auth.NewService(users, auth.NewResolver(assignments), &fakeResetTokenRepository{}, tokenService)
	return service, tokenService, users
}

// singleCenterAssignments gives the admin one role in one center.
func singleCenterAssignments() *fakeAssignmentRepository {
	return &fakeAssignmentRepository{
		assignments: map[string][]auth.AssignmentRef{
			"u-admin/c1": {{OrgID: "org-1", RoleName: "org_admin"}},
		},
		permissions: map[string][]string{
			"org-1/org_admin": {"task_read", "task_create", "user_read"},
		},
		centers: map[string][]string{
			"u-admin": {"c1"},
		},
	}
}

/*
TestService_Login_AutoSelectsSingleCenter verifies the login happy path:
credentials verified, the single assigned center auto-populated, and both
tokens carrying the tenant context.
*/
func TestService_Login_AutoSelectsSingleCenter(t *testing.T) {
	service, tokens, _ := newTestService(t, singleCenterAssignments())

	session, err := service.Login(context.Background(), auth.LoginInput{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	require.NotNil(t, session.Principal.CenterID)
	assert.Equal(t, "c1", *session.Principal.CenterID)
	assert.Equal(t, "org-1", session.Principal.OrgID)
	assert.True(t, session.Principal.HasPermission("task_read"))

	// Claims round-trip through the real token service.
	assert.Equal(t, "admin", tokens.DecodeUsername(session.AccessToken))
	assert.Equal(t, "org-1", tokens.DecodeOrgID(session.AccessToken))
	require.NotNil(t, tokens.DecodeCenterID(session.AccessToken))
	assert.Equal(t, "c1", *tokens.DecodeCenterID(session.AccessToken))

	assert.False(t, tokens.IsRefreshToken(session.AccessToken))
	assert.True(t, tokens.IsRefreshToken(session.RefreshToken))
}

/*
TestService_Login_MultipleCentersStayUnset verifies that ambiguous center
assignments produce a center-less session with zero permissions.
*/
func TestService_Login_MultipleCentersStayUnset(t *testing.T) {
	assignments := singleCenterAssignments()
	assignments.centers["u-admin"] = []string{"c1", "c2"}
	service, _, _ := newTestService(t, assignments)

	session, err := service.Login(context.Background(), auth.LoginInput{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	assert.Nil(t, session.Principal.CenterID)
	assert.Empty(t, session.Principal.Permissions())
	assert.False(t, session.Principal.HasPermission("task_read"))
}

/*
TestService_Login_BadCredentials verifies the uniform unauthorized outcome
for unknown users and wrong passwords alike.
*/
func TestService_Login_BadCredentials(t *testing.T) {
	service, _, _ := newTestService(t, singleCenterAssignments())

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong_password", "admin", "nope"},
		{"unknown_user", "ghost", "admin123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), auth.LoginInput{Username: tt.username, Password: tt.password})
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			// Identical message for both failure modes: no enumeration.
			assert.Equal(t, "UNAUTHORIZED", appError.Code)
			assert.Equal(t, "Invalid login credentials", appError.Message)
		})
	}
}

/*
TestService_Refresh_RotatesPair verifies the refresh exchange keeps tenant
context and issues a fresh pair.
*/
func TestService_Refresh_RotatesPair(t *testing.T) {
	service, tokens, _ := newTestService(t, singleCenterAssignments())

	login, err := service.Login(context.Background(), auth.LoginInput{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	refreshed, err := service.Refresh(context.Background(), login.RefreshToken, nil)
	require.NoError(t, err)

	assert.Equal(t, "admin", tokens.DecodeUsername(refreshed.AccessToken))
	require.NotNil(t, refreshed.Principal.CenterID)
	assert.Equal(t, "c1", *refreshed.Principal.CenterID)
	assert.True(t, refreshed.Principal.HasPermission("user_read"))
}

/*
TestService_Refresh_RejectsAccessToken verifies the type marker check: an
access token can never be exchanged as a refresh token.
*/
func TestService_Refresh_RejectsAccessToken(t *testing.T) {
	service, _, _ := newTestService(t, singleCenterAssignments())

	login, err := service.Login(context.Background(), auth.LoginInput{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	_, err = service.Refresh(context.Background(), login.AccessToken, nil)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "UNAUTHORIZED", appError.Code)
}

/*
TestService_SelectCenter verifies explicit center selection accepts assigned
centers and rejects everything else.
*/
func TestService_SelectCenter(t *testing.T) {
	assignments := singleCenterAssignments()
	assignments.centers["u-admin"] = []string{"c1", "c2"}
	assignments.assignments["u-admin/c2"] = []auth.AssignmentRef{{OrgID: "org-1", RoleName: "org_admin"}}
	service, tokens, _ := newTestService(t, assignments)

	login, err := service.Login(context.Background(), auth.LoginInput{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	require.Nil(t, login.Principal.CenterID)

	// 1. Assigned center: new pair scoped to it.
	session, err := service.SelectCenter(context.Background(), login.Principal, "c2")
	require.NoError(t, err)
	require.NotNil(t, session.Principal.CenterID)
	assert.Equal(t, "c2", *session.Principal.CenterID)
	require.NotNil(t, tokens.DecodeCenterID(session.AccessToken))
	assert.Equal(t, "c2", *tokens.DecodeCenterID(session.AccessToken))

	// 2. Unassigned center: forbidden.
	_, err = service.SelectCenter(context.Background(), login.Principal, "c99")
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "FORBIDDEN", appError.Code)
}

/*
TestService_PrincipalFromToken verifies gate-side principal reconstruction,
including the refresh-token rejection and live permission resolution.
*/
func TestService_PrincipalFromToken(t *testing.T) {
	assignments := singleCenterAssignments()
	service, _, _ := newTestService(t, assignments)

	login, err := service.Login(context.Background(), auth.LoginInput{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	// 1. Access token reconstructs the full principal.
	principal, err := service.PrincipalFromToken(context.Background(), login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-admin", principal.UserID)
	assert.True(t, principal.HasPermission("task_create"))

	// 2. Refresh token is not an API credential.
	_, err = service.PrincipalFromToken(context.Background(), login.RefreshToken)
	assert.Error(t, err)

	// 3. Revoking the role mid-session empties the very next principal,
	//    while the token itself stays valid.
	assignments.assignments["u-admin/c1"] = nil
	principal, err = service.PrincipalFromToken(context.Background(), login.AccessToken)
	require.NoError(t, err)
	assert.False(t, principal.HasPermission("task_create"))
	assert.Empty(t, principal.Permissions())
}

/*
TestService_PasswordReset verifies the volatile token flow end to end.
*/
func TestService_PasswordReset(t *testing.T) {
	service, _, users := newTestService(t, singleCenterAssignments())

	// Unknown email: silent success, no token.
	token, err := service.RequestPasswordReset(context.Background(), "nobody@centra.app")
	require.NoError(t, err)
	assert.Empty(t, token)

	// Known email: token issued and consumable exactly once.
	token, err = service.RequestPasswordReset(context.Background(), "admin@centra.app")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, service.ResetPassword(context.Background(), token, "brand-new-pass"))
	assert.True(t, sec.CheckPasswordHash("brand-new-pass", users.byUsername["admin"].PasswordHash))

	err = service.ResetPassword(context.Background(), token, "again")
	assert.Error(t, err)
}
