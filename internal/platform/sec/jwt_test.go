// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/centra/internal/platform/sec"
)

const testIssuer = "centra.test"

func newTestTokenService(t *testing.T) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService([]byte("unit-test-secret-key"), testIssuer, time.Hour, 24*time.Hour)
	require.NoError(t, err)
	return service
}

/*
TestTokenService_RoundTrip verifies that identity and tenant claims survive
an issue/decode cycle unchanged.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTestTokenService(t)
	centerID := "center-42"

	tests := []struct {
		name     string
		centerID *string
	}{
		{"with_center", &centerID},
		{"without_center", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := service.IssueAccessToken("alice", "org-1", tt.centerID)
			require.NoError(t, err)

			assert.Equal(t, "alice", service.DecodeUsername(token))
			assert.Equal(t, "org-1", service.DecodeOrgID(token))

			decodedCenter := service.DecodeCenterID(token)
			if tt.centerID == nil {
				assert.Nil(t, decodedCenter)
			} else {
				require.NotNil(t, decodedCenter)
				assert.Equal(t, *tt.centerID, *decodedCenter)
			}
		})
	}
}

/*
TestTokenService_Expiry verifies a token is valid within its TTL and invalid
once the TTL has elapsed.
*/
func TestTokenService_Expiry(t *testing.T) {
	// 1. Generous TTL: valid immediately after issuance.
	service := newTestTokenService(t)
	token, err := service.IssueAccessToken("alice", "org-1", nil)
	require.NoError(t, err)
	assert.True(t, service.Validate(token))

	// 2. Nanosecond TTL: expired by the time validation runs.
	expiring, err := sec.NewTokenService([]byte("unit-test-secret-key"), testIssuer, time.Nanosecond, time.Nanosecond)
	require.NoError(t, err)

	expiredToken, err := expiring.IssueAccessToken("alice", "org-1", nil)
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	assert.False(t, expiring.Validate(expiredToken))
}

/*
TestTokenService_TypeIsolation verifies that only refresh tokens carry the
refresh marker.
*/
func TestTokenService_TypeIsolation(t *testing.T) {
	service := newTestTokenService(t)

	accessToken, err := service.IssueAccessToken("alice", "org-1", nil)
	require.NoError(t, err)

	refreshToken, err := service.IssueRefreshToken("alice", "org-1", nil)
	require.NoError(t, err)

	assert.False(t, service.IsRefreshToken(accessToken))
	assert.True(t, service.IsRefreshToken(refreshToken))

	// Garbage never counts as a refresh token.
	assert.False(t, service.IsRefreshToken("not-a-token"))
}

/*
TestTokenService_TamperDetection verifies that modifying the signature
segment invalidates the token.
*/
func TestTokenService_TamperDetection(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.IssueAccessToken("alice", "org-1", nil)
	require.NoError(t, err)
	require.True(t, service.Validate(token))

	segments := strings.Split(token, ".")
	require.Len(t, segments, 3)

	// Flip one character of the signature segment.
	signature := []byte(segments[2])
	if signature[0] == 'A' {
		signature[0] = 'B'
	} else {
		signature[0] = 'A'
	}
	tampered := segments[0] + "." + segments[1] + "." + string(signature)

	assert.False(t, service.Validate(tampered))
}

/*
TestTokenService_WrongKey verifies tokens signed with a different key are rejected.
*/
func TestTokenService_WrongKey(t *testing.T) {
	service := newTestTokenService(t)

	other, err := sec.NewTokenService([]byte("a-completely-different-key"), testIssuer, time.Hour, 24*time.Hour)
	require.NoError(t, err)

	token, err := other.IssueAccessToken("alice", "org-1", nil)
	require.NoError(t, err)

	assert.False(t, service.Validate(token))
	_, err = service.Verify(token)
	assert.Error(t, err)
}

/*
TestTokenService_MalformedInput verifies that every decode failure collapses
to a zero-value result instead of an error or panic.
*/
func TestTokenService_MalformedInput(t *testing.T) {
	service := newTestTokenService(t)

	for _, input := range []string{"", "garbage", "a.b", "a.b.c.d", "ey.ey.ey"} {
		assert.False(t, service.Validate(input))
		assert.Empty(t, service.DecodeUsername(input))
		assert.Empty(t, service.DecodeOrgID(input))
		assert.Nil(t, service.DecodeCenterID(input))
		assert.True(t, service.DecodeExpiry(input).IsZero())
	}
}
