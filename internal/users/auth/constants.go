// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package auth

import "time"

// # Authentication Constraints

const (
	// RefreshTokenLength is the byte length of the random secure token.
	RefreshTokenLength = 32

	// MaxActiveRefreshTokens caps how many active sessions an account may
	// hold after a login. Older active tokens beyond this cap are dropped,
	// effectively signing out the oldest devices.
	MaxActiveRefreshTokens = 5

	// RevokedTokenRetention is how long a revoked token record stays in the
	// embedded history after rotation. Keeping it briefly preserves the
	// ReplacedByToken chain for replay detection and audit.
	RevokedTokenRetention = 24 * time.Hour

	// ResetTokenTTL is the duration a password reset token remains valid.
	// Short-lived (1 hour) for security.
	ResetTokenTTL = 1 * time.Hour

	// ResetTokenLength is the byte length of the random password reset token.
	ResetTokenLength = 32
)
