// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package auth

import (
	"context"
	"errors"
	"time"
)

// ErrTokenNoLongerActive is returned by [AccountStore.ReplaceIfTokenActive]
// when the guarding refresh token was revoked or expired between read and
// write. Callers must treat the rotation as failed and not retry.
var ErrTokenNoLongerActive = errors.New("refresh token no longer active")

// # Account Data Access

// AccountStore defines the data access contract for user accounts.
//
// Accounts are stored as whole documents with their embedded refresh-token
// history; there is no partial token update. Mutations load the account,
// rewrite its state in memory, and persist the full document.
type AccountStore interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Account: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Account, error)

	/*
		FindByEmail returns the account with the given (normalized) email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *Account: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*Account, error)

	/*
		FindByRefreshToken returns the account owning the given opaque token,
		regardless of whether the token is still active.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - *Account: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByRefreshToken(context context.Context, token string) (*Account, error)

	/*
		Create persists a brand-new account document.

		Parameters:
		  - context: context.Context
		  - account: *Account

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, account *Account) error

	/*
		Replace overwrites the stored document with the given account state.

		Parameters:
		  - context: context.Context
		  - account: *Account

		Returns:
		  - error: apperr.NotFound if the account vanished, or persistence failures
	*/
	Replace(context context.Context, account *Account) error

	/*
		ReplaceIfTokenActive overwrites the stored document only if the given
		refresh token is still active in the STORED document at write time.

		This is the compare-and-swap guard for token rotation: two concurrent
		refreshes with the same token race to revoke it, and exactly one wins.

		Parameters:
		  - context: context.Context
		  - account: *Account (the fully rewritten state to persist)
		  - token: string (the old token being rotated)

		Returns:
		  - error: ErrTokenNoLongerActive on a lost race, or persistence failures
	*/
	ReplaceIfTokenActive(context context.Context, account *Account, token string) error
}

// # Volatile Data Access

// ResetTokenRepository defines the contract for storing volatile password reset tokens.
type ResetTokenRepository interface {

	/*
		Set stores a reset token associated with a userID for a limited duration.

		Parameters:
		  - context: context.Context
		  - token: string
		  - userID: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, token string, userID string, ttl time.Duration) error

	/*
		Get retrieves the userID associated with a given reset token.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - string: UserID
		  - error: Retrieval failures
	*/
	Get(context context.Context, token string) (string, error)

	/*
		Delete removes a reset token after successful use.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, token string) error
}
