// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (Account, RefreshTokenRecord) and logic
for authentication, authorization, and account lifecycle.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.

Refresh tokens are not a separate collection: each account embeds its own
token history, and every session mutation rewrites the account document as
a whole. This keeps a user's credential state in a single document with
single-document update semantics.
*/
package auth

import (
	"time"

	"github.com/comuna-ec/comuna/internal/platform/sec"
)

// # Domain Entities

// Account represents a registered member of the Comuna platform.
type Account struct {
	ID           string       `bson:"_id" json:"id"`
	Email        string       `bson:"email" json:"email"`
	FullName     string       `bson:"fullName" json:"fullName"`
	PasswordHash string       `bson:"passwordHash" json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `bson:"role" json:"role"`
	IsActive     bool         `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time    `bson:"createdAt" json:"createdAt"`
	LastLoginAt  *time.Time   `bson:"lastLoginAt,omitempty" json:"lastLoginAt,omitempty"`

	// RefreshTokens is the embedded session history. Never serialized to
	// clients; the opaque token strings are bearer credentials.
	RefreshTokens []RefreshTokenRecord `bson:"refreshTokens" json:"-"`
}

// RefreshTokenRecord is one entry in an account's embedded token history.
type RefreshTokenRecord struct {
	Token           string     `bson:"token" json:"-"`
	ExpiresAt       time.Time  `bson:"expiresAt" json:"-"`
	CreatedAt       time.Time  `bson:"createdAt" json:"-"`
	RevokedAt       *time.Time `bson:"revokedAt,omitempty" json:"-"`
	ReplacedByToken string     `bson:"replacedByToken,omitempty" json:"-"`
}

// IsExpired reports whether the token's lifetime has elapsed at the given instant.
func (r RefreshTokenRecord) IsExpired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// IsRevoked reports whether the token has been explicitly revoked.
func (r RefreshTokenRecord) IsRevoked() bool {
	return r.RevokedAt != nil
}

// IsActive reports whether the token is still usable: not revoked and not expired.
func (r RefreshTokenRecord) IsActive(now time.Time) bool {
	return !r.IsRevoked() && !r.IsExpired(now)
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail           = "email"
	FieldFullName        = "fullName"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldToken           = "token"
	FieldRefreshToken    = "refreshToken"
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"
	FieldAccessToken     = "accessToken"
	FieldTokenType       = "tokenType"
	FieldExpiresIn       = "expiresIn"
	FieldUser            = "user"
	FieldMessage         = "message"
)
