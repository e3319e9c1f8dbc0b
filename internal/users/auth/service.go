// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

/*
Package auth implements the core identity and access management (IAM) system.

It handles everything from user registration and secure password hashing to
session lifecycle management via JWT access tokens and opaque refresh tokens
embedded in the account document.

Architecture:

  - Service: Orchestrates business logic (Register, Login, Rotation).
  - Repository: Abstracted interfaces for MongoDB (Accounts) and Redis (Reset tokens).
  - Security: Leverages Bcrypt hashing and HS256-signed JWTs.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/comuna-ec/comuna/internal/platform/apperr"
	"github.com/comuna-ec/comuna/internal/platform/sec"
	"github.com/comuna-ec/comuna/pkg/pointer"
	"github.com/comuna-ec/comuna/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating signed access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - email: The email of the account.
	//   - fullName: The display name of the account.
	//   - role: The role of the account.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, email, fullName string, role sec.UserRole) (string, error)

	// AccessTokenTTL returns the configured access-token lifetime.
	AccessTokenTTL() time.Duration
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or rotation logic must be reviewed by the security team.
type Service struct {
	accounts        AccountStore
	resetTokens     ResetTokenRepository
	tokenProvider   TokenProvider
	refreshTokenTTL time.Duration
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	accounts AccountStore,
	resetTokens ResetTokenRepository,
	tokenProvider TokenProvider,
	refreshTokenTTL time.Duration,
) *Service {
	return &Service{
		accounts:        accounts,
		resetTokens:     resetTokens,
		tokenProvider:   tokenProvider,
		refreshTokenTTL: refreshTokenTTL,
	}
}

// Session represents a successfully established user session.
type Session struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresIn  time.Duration
	RefreshTokenExpiresAt time.Time
	User                  *Account
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Email    string
	FullName string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Enrolls a new member with a hashed credential and an initial
session, so registration immediately yields a usable token pair.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Session: Access and refresh tokens plus the created entity
  - err: Conflict (if the email exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Session, error) {
	email := normalizeEmail(input.Email)

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.accounts.FindByEmail(context, email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	now := time.Now().UTC()

	// Construct the new Account entity. Time-sortable ID keeps the _id index append-mostly.
	account := &Account{
		ID:            uuid.New(),
		Email:         email,
		FullName:      strings.TrimSpace(input.FullName),
		PasswordHash:  hashedPassword,
		Role:          sec.RoleUser,
		IsActive:      true,
		CreatedAt:     now,
		RefreshTokens: []RefreshTokenRecord{},
	}

	// Mint the initial session before the insert so the account is written
	// exactly once, token included.
	refreshToken, err := newRefreshToken(now, service.refreshTokenTTL)
	if err != nil {
		return nil, err
	}
	account.RefreshTokens = append(account.RefreshTokens, refreshToken)

	accessToken, err := service.tokenProvider.GenerateAccessToken(account.ID, account.Email, account.FullName, account.Role)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	// Persist the account to the database. The unique email index catches
	// the race where two registrations pass the lookup above concurrently.
	if err := service.accounts.Create(context, account); err != nil {
		return nil, err
	}

	return &Session{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken.Token,
		AccessTokenExpiresIn:  service.tokenProvider.AccessTokenTTL(),
		RefreshTokenExpiresAt: refreshToken.ExpiresAt,
		User:                  account,
	}, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials and issues security tokens.

Description: Verifies identity, performs constant-time password comparison,
applies the active-session retention cap, and appends a fresh refresh token
to the account's embedded history.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Transport-ready session identifiers
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	account, err := service.accounts.FindByEmail(context, normalizeEmail(input.Email))

	// An unknown email is a credential failure with a generic message to
	// prevent enumeration. Infrastructure failures are NOT credential
	// failures and bubble up so the boundary reports 500, not 401.
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, apperr.Unauthorized("Invalid credentials")
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	// Deactivated accounts must be indistinguishable from wrong credentials.
	if !account.IsActive {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, account.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	// Generate short-lived Access Token
	accessToken, err := service.tokenProvider.GenerateAccessToken(account.ID, account.Email, account.FullName, account.Role)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	now := time.Now().UTC()

	// Generate long-lived Refresh Token
	refreshToken, err := newRefreshToken(now, service.refreshTokenTTL)
	if err != nil {
		return nil, err
	}

	// Retention: append the new token, then keep only the newest active
	// sessions up to the cap. Oldest devices get signed out.
	account.RefreshTokens = append(account.RefreshTokens, refreshToken)
	account.RefreshTokens = retainNewestActive(account.RefreshTokens, now, MaxActiveRefreshTokens)

	account.LastLoginAt = pointer.To(now)

	if err := service.accounts.Replace(context, account); err != nil {
		return nil, fmt.Errorf("auth_service_login_persist_failed: %w", err)
	}

	return &Session{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken.Token,
		AccessTokenExpiresIn:  service.tokenProvider.AccessTokenTTL(),
		RefreshTokenExpiresAt: refreshToken.ExpiresAt,
		User:                  account,
	}, nil
}

// # Session Management

/*
RefreshSession implements the Refresh Token Rotation mechanism.

Description: Verifies the presented refresh token, revokes it to prevent reuse
(replay attack mitigation), links it to its successor via ReplacedByToken, and
issues a fresh pair of rotated tokens. Persistence goes through the guarded
replace, so two concurrent rotations of the same token cannot both win.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *Session: New session credentials
  - err: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken string) (*Session, error) {
	account, err := service.accounts.FindByRefreshToken(context, refreshToken)

	// No owning account means the token was never issued or its account is
	// gone. Anything else is an infrastructure failure and bubbles up.
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, apperr.Unauthorized("Invalid or expired refresh token")
		}
		return nil, fmt.Errorf("auth_service_refresh_lookup_failed: %w", err)
	}

	if !account.IsActive {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	now := time.Now().UTC()

	// Locate the presented token in the embedded history. A revoked or
	// expired record is rejected WITHOUT mutating the account: reuse of a
	// dead token must not disturb the legitimate session chain.
	record := findToken(account.RefreshTokens, refreshToken)
	if record == nil || !record.IsActive(now) {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Rotation: mint the successor first so the old record can point at it.
	newToken, err := newRefreshToken(now, service.refreshTokenTTL)
	if err != nil {
		return nil, err
	}

	record.RevokedAt = pointer.To(now)
	record.ReplacedByToken = newToken.Token

	account.RefreshTokens = append(account.RefreshTokens, newToken)
	account.RefreshTokens = purgeStale(account.RefreshTokens, now)

	// Guarded persistence: only commits if the old token is still active in
	// the STORED document. Losing the race means someone else already
	// rotated (or revoked) this token, so the caller's copy is spent.
	if err := service.accounts.ReplaceIfTokenActive(context, account, refreshToken); err != nil {
		if errors.Is(err, ErrTokenNoLongerActive) {
			return nil, apperr.Unauthorized("Invalid or expired refresh token")
		}
		return nil, fmt.Errorf("auth_service_rotation_persist_failed: %w", err)
	}

	// Generate a fresh Access Token
	accessToken, err := service.tokenProvider.GenerateAccessToken(account.ID, account.Email, account.FullName, account.Role)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_access_token_failed: %w", err)
	}

	return &Session{
		AccessToken:           accessToken,
		RefreshToken:          newToken.Token,
		AccessTokenExpiresIn:  service.tokenProvider.AccessTokenTTL(),
		RefreshTokenExpiresAt: newToken.ExpiresAt,
		User:                  account,
	}, nil
}

/*
RevokeToken permanently invalidates a single refresh token.

Description: Marks the token as revoked in the owner's embedded history.
Unknown or already-dead tokens are reported as not revoked rather than as
errors, so callers can't probe which tokens exist.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - bool: true if an active token was found and revoked
  - err: Storage failures only
*/
func (service *Service) RevokeToken(context context.Context, refreshToken string) (bool, error) {
	account, err := service.accounts.FindByRefreshToken(context, refreshToken)
	if err != nil {
		if apperr.IsAppError(err) {
			return false, nil
		}
		return false, err
	}

	now := time.Now().UTC()

	record := findToken(account.RefreshTokens, refreshToken)
	if record == nil || !record.IsActive(now) {
		return false, nil
	}

	record.RevokedAt = pointer.To(now)

	if err := service.accounts.Replace(context, account); err != nil {
		return false, fmt.Errorf("auth_service_revoke_persist_failed: %w", err)
	}

	return true, nil
}

/*
Logout revokes every active session belonging to the user.

Description: Idempotent; an unknown user or an account with no active
sessions is a successful no-op.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - err: Storage failures
*/
func (service *Service) Logout(context context.Context, userID string) error {
	account, err := service.accounts.FindByID(context, userID)
	if err != nil {
		// Already gone: logout is idempotent.
		if apperr.IsAppError(err) {
			return nil
		}
		return err
	}

	now := time.Now().UTC()
	if revokeAllActive(account, now) == 0 {
		return nil
	}

	if err := service.accounts.Replace(context, account); err != nil {
		return fmt.Errorf("auth_service_logout_persist_failed: %w", err)
	}

	return nil
}

// # Profile Access

/*
GetProfile returns the account for the given user ID.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Account: Hydrated entity
  - err: apperr.NotFound or storage failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*Account, error) {
	return service.accounts.FindByID(context, userID)
}

/*
GetByEmail returns the account registered under the given email.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *Account: Hydrated entity
  - err: apperr.NotFound or storage failures
*/
func (service *Service) GetByEmail(context context.Context, email string) (*Account, error) {
	return service.accounts.FindByEmail(context, normalizeEmail(email))
}

// # Password Management

/*
ChangePassword allows an authenticated user to update their credentials.

Description: Verifies the current password, stores the new hash, and revokes
every active session so all devices must authenticate again.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - err: Unauthorized or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {
	account, err := service.accounts.FindByID(context, userID)
	if err != nil {
		return err
	}

	// Verify the current password before allowing change
	if !sec.CheckPasswordHash(currentPassword, account.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	// Hash the brand new password
	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	account.PasswordHash = hashedPassword

	// Security Side Effect: revoke all sessions to force re-login everywhere
	revokeAllActive(account, time.Now().UTC())

	if err := service.accounts.Replace(context, account); err != nil {
		return fmt.Errorf("auth_service_change_password_persist_failed: %w", err)
	}

	return nil
}

/*
RequestPasswordReset initiates the forgot-password flow.

Description: Generates a secure token and saves it to Redis.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: Reset token
  - err: Generation errors
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) (string, error) {
	// Look up user.
	// NOTE: We don't return NOT_FOUND if the email doesn't exist to prevent user enumeration.
	account, err := service.accounts.FindByEmail(context, normalizeEmail(email))
	if err != nil {
		if apperr.IsAppError(err) {
			return "", nil
		}
		return "", fmt.Errorf("auth_service_reset_lookup_failed: %w", err)
	}

	// Generate reset token
	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	// Save to Redis
	if err := service.resetTokens.Set(context, token, account.ID, ResetTokenTTL); err != nil {
		return "", fmt.Errorf("auth_service_save_reset_token_failed: %w", err)
	}

	return token, nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Verifies the token, hashes the new password, updates the account,
and revokes all active sessions for security cleanup.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - err: Validation or update failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {

	// Retrieve the userID associated with the reset token from Redis
	userID, err := service.resetTokens.Get(context, token)
	if err != nil {
		return err
	}

	account, err := service.accounts.FindByID(context, userID)
	if err != nil {
		return err
	}

	// Hash the new password securely
	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	account.PasswordHash = hashedPassword

	// Security Cleanup: Revoke EVERY active session for this user
	revokeAllActive(account, time.Now().UTC())

	if err := service.accounts.Replace(context, account); err != nil {
		return fmt.Errorf("auth_service_reset_password_persist_failed: %w", err)
	}

	// Delete the used token from Redis
	_ = service.resetTokens.Delete(context, token)

	return nil
}

// # Helpers

// revokeAllActive marks every active embedded token as revoked and returns
// how many were touched.
func revokeAllActive(account *Account, now time.Time) int {
	revoked := 0
	for i := range account.RefreshTokens {
		if account.RefreshTokens[i].IsActive(now) {
			account.RefreshTokens[i].RevokedAt = pointer.To(now)
			revoked++
		}
	}
	return revoked
}

// normalizeEmail lowercases and trims an email so lookups are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
