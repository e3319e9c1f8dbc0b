// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package auth

import (
	"fmt"
	"sort"
	"time"

	"github.com/comuna-ec/comuna/internal/platform/sec"
)

// # Refresh Token Lifecycle

// newRefreshToken mints a fresh opaque refresh token record.
//
// The token value is cryptographically random and never derived from account
// data; possession of the string is the only credential.
func newRefreshToken(now time.Time, ttl time.Duration) (RefreshTokenRecord, error) {
	token, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return RefreshTokenRecord{}, fmt.Errorf("auth_refresh_token_mint_failed: %w", err)
	}

	return RefreshTokenRecord{
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

// retainNewestActive applies the login retention policy.
//
// Only active tokens survive, ordered newest-first and capped at max. Any
// active token beyond the cap is dropped, which signs out the account's
// oldest devices.
func retainNewestActive(tokens []RefreshTokenRecord, now time.Time, max int) []RefreshTokenRecord {
	active := make([]RefreshTokenRecord, 0, len(tokens))
	for _, token := range tokens {
		if token.IsActive(now) {
			active = append(active, token)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})

	if len(active) > max {
		active = active[:max]
	}

	return active
}

// purgeStale applies the rotation retention policy.
//
// A record survives if it is still active, or if it was revoked recently
// enough that its ReplacedByToken chain is still useful for replay
// detection. Expired and long-revoked records are dropped.
func purgeStale(tokens []RefreshTokenRecord, now time.Time) []RefreshTokenRecord {
	kept := make([]RefreshTokenRecord, 0, len(tokens))
	for _, token := range tokens {
		if token.IsActive(now) {
			kept = append(kept, token)
			continue
		}
		if token.IsRevoked() && now.Sub(*token.RevokedAt) < RevokedTokenRetention {
			kept = append(kept, token)
		}
	}
	return kept
}

// findToken returns a pointer into tokens for the record matching value,
// or nil when absent. The pointer aliases the slice so callers can mutate
// the record in place before persisting the account.
func findToken(tokens []RefreshTokenRecord, value string) *RefreshTokenRecord {
	for i := range tokens {
		if tokens[i].Token == value {
			return &tokens[i]
		}
	}
	return nil
}
