// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestNewRefreshToken verifies minting of opaque refresh token records.
*/
func TestNewRefreshToken(t *testing.T) {
	now := time.Now().UTC()

	first, err := newRefreshToken(now, 7*24*time.Hour)
	require.NoError(t, err)

	second, err := newRefreshToken(now, 7*24*time.Hour)
	require.NoError(t, err)

	// 1. Tokens must be unpredictable and unique
	assert.NotEmpty(t, first.Token)
	assert.NotEqual(t, first.Token, second.Token)

	// 2. Lifetime bookkeeping
	assert.Equal(t, now, first.CreatedAt)
	assert.Equal(t, now.Add(7*24*time.Hour), first.ExpiresAt)
	assert.True(t, first.IsActive(now))
	assert.False(t, first.IsRevoked())
}

/*
TestRefreshTokenRecord_Liveness verifies the expiry and revocation predicates.
*/
func TestRefreshTokenRecord_Liveness(t *testing.T) {
	now := time.Now().UTC()
	revokedAt := now.Add(-time.Hour)

	tests := []struct {
		name       string
		record     RefreshTokenRecord
		wantActive bool
	}{
		{
			name:       "live token",
			record:     RefreshTokenRecord{ExpiresAt: now.Add(time.Hour)},
			wantActive: true,
		},
		{
			name:       "expired token",
			record:     RefreshTokenRecord{ExpiresAt: now.Add(-time.Minute)},
			wantActive: false,
		},
		{
			name:       "expiring exactly now",
			record:     RefreshTokenRecord{ExpiresAt: now},
			wantActive: false,
		},
		{
			name:       "revoked but unexpired",
			record:     RefreshTokenRecord{ExpiresAt: now.Add(time.Hour), RevokedAt: &revokedAt},
			wantActive: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantActive, tt.record.IsActive(now))
		})
	}
}

/*
TestRetainNewestActive verifies the login retention cap.
*/
func TestRetainNewestActive(t *testing.T) {
	now := time.Now().UTC()
	revokedAt := now.Add(-time.Hour)

	var tokens []RefreshTokenRecord

	// 7 active tokens created a minute apart, oldest first
	for i := 0; i < 7; i++ {
		tokens = append(tokens, RefreshTokenRecord{
			Token:     string(rune('a' + i)),
			CreatedAt: now.Add(time.Duration(i-10) * time.Minute),
			ExpiresAt: now.Add(time.Hour),
		})
	}

	// plus one revoked and one expired, which never survive
	tokens = append(tokens,
		RefreshTokenRecord{Token: "revoked", CreatedAt: now, ExpiresAt: now.Add(time.Hour), RevokedAt: &revokedAt},
		RefreshTokenRecord{Token: "expired", CreatedAt: now, ExpiresAt: now.Add(-time.Minute)},
	)

	kept := retainNewestActive(tokens, now, MaxActiveRefreshTokens)

	require.Len(t, kept, MaxActiveRefreshTokens)

	// Newest first: tokens g, f, e, d, c survive; a and b are dropped
	assert.Equal(t, "g", kept[0].Token)
	assert.Equal(t, "c", kept[len(kept)-1].Token)
	for _, record := range kept {
		assert.True(t, record.IsActive(now))
	}
}

/*
TestPurgeStale verifies the rotation retention window.
*/
func TestPurgeStale(t *testing.T) {
	now := time.Now().UTC()
	justRevoked := now.Add(-time.Hour)
	longRevoked := now.Add(-25 * time.Hour)

	tokens := []RefreshTokenRecord{
		{Token: "active", ExpiresAt: now.Add(time.Hour)},
		{Token: "recently-revoked", ExpiresAt: now.Add(time.Hour), RevokedAt: &justRevoked},
		{Token: "long-revoked", ExpiresAt: now.Add(time.Hour), RevokedAt: &longRevoked},
		{Token: "expired", ExpiresAt: now.Add(-time.Minute)},
	}

	kept := purgeStale(tokens, now)

	require.Len(t, kept, 2)
	assert.Equal(t, "active", kept[0].Token)
	assert.Equal(t, "recently-revoked", kept[1].Token)
}

/*
TestFindToken verifies in-place lookup of embedded token records.
*/
func TestFindToken(t *testing.T) {
	tokens := []RefreshTokenRecord{
		{Token: "one"},
		{Token: "two"},
	}

	record := findToken(tokens, "two")
	require.NotNil(t, record)

	// The pointer aliases the slice so mutations persist
	record.ReplacedByToken = "three"
	assert.Equal(t, "three", tokens[1].ReplacedByToken)

	assert.Nil(t, findToken(tokens, "missing"))
}
