// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/centra/internal/platform/apperr"
	"github.com/taibuivan/centra/internal/platform/sec"
	"github.com/taibuivan/centra/internal/users/account"
	"github.com/taibuivan/centra/internal/users/auth"
)

type fakeRepository struct {
	users   map[string]*auth.User
	centers map[string][]account.CenterRef
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeRepository) UpdateProfile(_ context.Context, user *auth.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

func (f *fakeRepository) ListAssignedCenters(_ context.Context, userID string) ([]account.CenterRef, error) {
	return f.centers[userID], nil
}

func newAccountService(t *testing.T) (*account.Service, *fakeRepository) {
	t.Helper()

	hash, err := sec.HashPassword("old-password")
	require.NoError(t, err)

	repo := &fakeRepository{
		users: map[string]*auth.User{
			"u1": {ID: "u1", OrgID: "org-1", Username: "alice", FullName: "Alice A.", Email: "alice@centra.app", PasswordHash: hash},
		},
		centers: map[string][]account.CenterRef{
			"u1": {{ID: "c1", Name: "North Campus", Slug: "north-campus"}},
		},
	}
	return account.NewService(repo, slog.Default()), repo
}

/*
TestService_UpdateProfile verifies partial updates touch only provided fields.
*/
func TestService_UpdateProfile(t *testing.T) {
	service, _ := newAccountService(t)

	fullName := "Alice Anders"
	updated, err := service.UpdateProfile(context.Background(), "u1", account.UpdateProfileInput{FullName: &fullName})
	require.NoError(t, err)

	assert.Equal(t, "Alice Anders", updated.FullName)
	assert.Equal(t, "alice@centra.app", updated.Email)

	// Invalid email rejected before any write.
	bad := "not-an-email"
	_, err = service.UpdateProfile(context.Background(), "u1", account.UpdateProfileInput{Email: &bad})
	assert.Error(t, err)
}

/*
TestService_ChangePassword verifies the current-password gate.
*/
func TestService_ChangePassword(t *testing.T) {
	service, repo := newAccountService(t)

	// Wrong current password: unauthorized, hash untouched.
	err := service.ChangePassword(context.Background(), "u1", "wrong", "new-password-1")
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "UNAUTHORIZED", appError.Code)
	assert.True(t, sec.CheckPasswordHash("old-password", repo.users["u1"].PasswordHash))

	// Short new password: validation error.
	err = service.ChangePassword(context.Background(), "u1", "old-password", "short")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// Correct flow rotates the hash.
	require.NoError(t, service.ChangePassword(context.Background(), "u1", "old-password", "new-password-1"))
	assert.True(t, sec.CheckPasswordHash("new-password-1", repo.users["u1"].PasswordHash))
	assert.False(t, sec.CheckPasswordHash("old-password", repo.users["u1"].PasswordHash))
}

/*
TestService_ListAssignedCenters verifies the pass-through read.
*/
func TestService_ListAssignedCenters(t *testing.T) {
	service, _ := newAccountService(t)

	centers, err := service.ListAssignedCenters(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, centers, 1)
	assert.Equal(t, "north-campus", centers[0].Slug)
}
