// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comuna-ec/comuna/internal/platform/apperr"
	"github.com/comuna-ec/comuna/internal/platform/sec"
	"github.com/comuna-ec/comuna/internal/users/auth"
)

// # Test Doubles

// memoryAccountStore is an in-memory [auth.AccountStore]. It stores deep
// copies so that mutations of returned entities only persist through an
// explicit Replace, mirroring the real document store.
type memoryAccountStore struct {
	accounts map[string]*auth.Account
}

func newMemoryAccountStore() *memoryAccountStore {
	return &memoryAccountStore{accounts: make(map[string]*auth.Account)}
}

func cloneAccount(account *auth.Account) *auth.Account {
	clone := *account
	clone.RefreshTokens = make([]auth.RefreshTokenRecord, len(account.RefreshTokens))
	copy(clone.RefreshTokens, account.RefreshTokens)
	for i, token := range account.RefreshTokens {
		if token.RevokedAt != nil {
			revokedAt := *token.RevokedAt
			clone.RefreshTokens[i].RevokedAt = &revokedAt
		}
	}
	if account.LastLoginAt != nil {
		lastLogin := *account.LastLoginAt
		clone.LastLoginAt = &lastLogin
	}
	return &clone
}

func (store *memoryAccountStore) FindByID(_ context.Context, id string) (*auth.Account, error) {
	if account, ok := store.accounts[id]; ok {
		return cloneAccount(account), nil
	}
	return nil, apperr.NotFound("Account")
}

func (store *memoryAccountStore) FindByEmail(_ context.Context, email string) (*auth.Account, error) {
	for _, account := range store.accounts {
		if account.Email == email {
			return cloneAccount(account), nil
		}
	}
	return nil, apperr.NotFound("Account")
}

func (store *memoryAccountStore) FindByRefreshToken(_ context.Context, token string) (*auth.Account, error) {
	for _, account := range store.accounts {
		for _, record := range account.RefreshTokens {
			if record.Token == token {
				return cloneAccount(account), nil
			}
		}
	}
	return nil, apperr.NotFound("Account")
}

func (store *memoryAccountStore) Create(_ context.Context, account *auth.Account) error {
	for _, existing := range store.accounts {
		if existing.Email == account.Email {
			return apperr.Conflict("Email is already registered")
		}
	}
	store.accounts[account.ID] = cloneAccount(account)
	return nil
}

func (store *memoryAccountStore) Replace(_ context.Context, account *auth.Account) error {
	if _, ok := store.accounts[account.ID]; !ok {
		return apperr.NotFound("Account")
	}
	store.accounts[account.ID] = cloneAccount(account)
	return nil
}

func (store *memoryAccountStore) ReplaceIfTokenActive(_ context.Context, account *auth.Account, token string) error {
	stored, ok := store.accounts[account.ID]
	if !ok {
		return auth.ErrTokenNoLongerActive
	}

	now := time.Now().UTC()
	for _, record := range stored.RefreshTokens {
		if record.Token == token && record.IsActive(now) {
			store.accounts[account.ID] = cloneAccount(account)
			return nil
		}
	}

	return auth.ErrTokenNoLongerActive
}

// stored returns the persisted state of an account, bypassing the service.
func (store *memoryAccountStore) stored(t *testing.T, id string) *auth.Account {
	t.Helper()
	account, ok := store.accounts[id]
	require.True(t, ok, "account %s not stored", id)
	return account
}

// memoryResetTokenRepository is a TTL-less in-memory reset token store.
type memoryResetTokenRepository struct {
	tokens map[string]string
}

func newMemoryResetTokenRepository() *memoryResetTokenRepository {
	return &memoryResetTokenRepository{tokens: make(map[string]string)}
}

func (repo *memoryResetTokenRepository) Set(_ context.Context, token, userID string, _ time.Duration) error {
	repo.tokens[token] = userID
	return nil
}

func (repo *memoryResetTokenRepository) Get(_ context.Context, token string) (string, error) {
	if userID, ok := repo.tokens[token]; ok {
		return userID, nil
	}
	return "", apperr.NotFound("Reset token is invalid or expired")
}

func (repo *memoryResetTokenRepository) Delete(_ context.Context, token string) error {
	delete(repo.tokens, token)
	return nil
}

// # Fixtures

type fixture struct {
	service *auth.Service
	store   *memoryAccountStore
	resets  *memoryResetTokenRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tokenService, err := sec.NewTokenService(sec.TokenConfig{
		Secret:         "unit-test-signing-secret-0123456789",
		Issuer:         "comuna-api",
		Audience:       "comuna-clients",
		AccessTokenTTL: 15 * time.Minute,
	})
	require.NoError(t, err)

	store := newMemoryAccountStore()
	resets := newMemoryResetTokenRepository()

	return &fixture{
		service: auth.NewService(store, resets, tokenService, 7*24*time.Hour),
		store:   store,
		resets:  resets,
	}
}

func (f *fixture) register(t *testing.T, email, password string) *auth.Session {
	t.Helper()

	session, err := f.service.Register(context.Background(), auth.RegisterInput{
		Email:    email,
		FullName: "Ana Torres",
		Password: password,
	})
	require.NoError(t, err)
	return session
}

func activeTokenCount(account *auth.Account) int {
	now := time.Now().UTC()
	count := 0
	for _, record := range account.RefreshTokens {
		if record.IsActive(now) {
			count++
		}
	}
	return count
}

// # Registration

/*
TestService_Register verifies account enrollment and the initial session.
*/
func TestService_Register(t *testing.T) {
	f := newFixture(t)

	session := f.register(t, "Ana@Comuna.EC", "supersecret")

	// 1. Token pair issued immediately
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)

	// 2. Entity state
	user := session.User
	assert.Equal(t, "ana@comuna.ec", user.Email, "email must be normalized")
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "supersecret", user.PasswordHash, "password must never be stored in plain text")

	// 3. Persisted document carries the embedded token
	stored := f.store.stored(t, user.ID)
	require.Len(t, stored.RefreshTokens, 1)
	assert.Equal(t, session.RefreshToken, stored.RefreshTokens[0].Token)
}

/*
TestService_Register_DuplicateEmail verifies the uniqueness conflict.
*/
func TestService_Register_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana@comuna.ec", "supersecret")

	_, err := f.service.Register(context.Background(), auth.RegisterInput{
		Email:    "ANA@comuna.ec",
		FullName: "Impostor",
		Password: "password123",
	})

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

// # Login

/*
TestService_Login verifies credential checks and the retention cap.
*/
func TestService_Login(t *testing.T) {
	f := newFixture(t)
	registration := f.register(t, "ana@comuna.ec", "supersecret")

	session, err := f.service.Login(context.Background(), auth.LoginInput{
		Email:    "ana@comuna.ec",
		Password: "supersecret",
	})
	require.NoError(t, err)

	// 1. A fresh pair, distinct from the registration session
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEqual(t, registration.RefreshToken, session.RefreshToken)

	// 2. LastLoginAt is stamped
	stored := f.store.stored(t, session.User.ID)
	require.NotNil(t, stored.LastLoginAt)
}

/*
TestService_Login_Failures verifies that every failure mode is indistinguishable.
*/
func TestService_Login_Failures(t *testing.T) {
	f := newFixture(t)
	session := f.register(t, "ana@comuna.ec", "supersecret")

	// Deactivate a second account to probe the inactive path
	inactive := f.register(t, "dormant@comuna.ec", "supersecret")
	stored := f.store.stored(t, inactive.User.ID)
	stored.IsActive = false

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknown email", email: "ghost@comuna.ec", password: "supersecret"},
		{name: "wrong password", email: "ana@comuna.ec", password: "not-the-password"},
		{name: "inactive account", email: "dormant@comuna.ec", password: "supersecret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Login(context.Background(), auth.LoginInput{
				Email:    tt.email,
				Password: tt.password,
			})

			require.Error(t, err)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "UNAUTHORIZED", appErr.Code)
			assert.Equal(t, "Invalid credentials", appErr.Message)
		})
	}

	// The valid account's session was never disturbed
	assert.Equal(t, 1, activeTokenCount(f.store.stored(t, session.User.ID)))
}

/*
TestService_Login_RetentionCap verifies that repeated logins never exceed the
active-session cap.
*/
func TestService_Login_RetentionCap(t *testing.T) {
	f := newFixture(t)
	session := f.register(t, "ana@comuna.ec", "supersecret")

	for i := 0; i < 6; i++ {
		_, err := f.service.Login(context.Background(), auth.LoginInput{
			Email:    "ana@comuna.ec",
			Password: "supersecret",
		})
		require.NoError(t, err)
	}

	stored := f.store.stored(t, session.User.ID)
	assert.Equal(t, auth.MaxActiveRefreshTokens, activeTokenCount(stored))
	assert.LessOrEqual(t, len(stored.RefreshTokens), auth.MaxActiveRefreshTokens)
}

// # Rotation

/*
TestService_RefreshSession verifies token rotation and chain linkage.
*/
func TestService_RefreshSession(t *testing.T) {
	f := newFixture(t)
	registration := f.register(t, "ana@comuna.ec", "supersecret")

	rotated, err := f.service.RefreshSession(context.Background(), registration.RefreshToken)
	require.NoError(t, err)

	assert.NotEqual(t, registration.RefreshToken, rotated.RefreshToken)

	stored := f.store.stored(t, rotated.User.ID)

	// Old record: revoked and linked to its successor
	var old *auth.RefreshTokenRecord
	for i := range stored.RefreshTokens {
		if stored.RefreshTokens[i].Token == registration.RefreshToken {
			old = &stored.RefreshTokens[i]
		}
	}
	require.NotNil(t, old, "revoked record must be retained for the audit window")
	assert.True(t, old.IsRevoked())
	assert.Equal(t, rotated.RefreshToken, old.ReplacedByToken)

	// Exactly one active session remains
	assert.Equal(t, 1, activeTokenCount(stored))
}

/*
TestService_RefreshSession_ReuseIsRejected verifies that a spent token cannot
be replayed and that a replay does not disturb stored state.
*/
func TestService_RefreshSession_ReuseIsRejected(t *testing.T) {
	f := newFixture(t)
	registration := f.register(t, "ana@comuna.ec", "supersecret")

	rotated, err := f.service.RefreshSession(context.Background(), registration.RefreshToken)
	require.NoError(t, err)

	before := cloneAccount(f.store.stored(t, rotated.User.ID))

	// Replay the spent token
	_, err = f.service.RefreshSession(context.Background(), registration.RefreshToken)
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)

	// No mutation happened: the successor is still active and untouched
	after := f.store.stored(t, rotated.User.ID)
	assert.Equal(t, before.RefreshTokens, after.RefreshTokens)

	// The successor still works
	_, err = f.service.RefreshSession(context.Background(), rotated.RefreshToken)
	assert.NoError(t, err)
}

/*
TestService_RefreshSession_UnknownToken verifies rejection of never-issued tokens.
*/
func TestService_RefreshSession_UnknownToken(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana@comuna.ec", "supersecret")

	_, err := f.service.RefreshSession(context.Background(), "never-issued")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

// # Revocation

/*
TestService_RevokeToken verifies single-token revocation semantics.
*/
func TestService_RevokeToken(t *testing.T) {
	f := newFixture(t)
	registration := f.register(t, "ana@comuna.ec", "supersecret")

	// 1. Active token revokes successfully
	revoked, err := f.service.RevokeToken(context.Background(), registration.RefreshToken)
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, 0, activeTokenCount(f.store.stored(t, registration.User.ID)))

	// 2. Revoking again reports false, not an error
	revoked, err = f.service.RevokeToken(context.Background(), registration.RefreshToken)
	require.NoError(t, err)
	assert.False(t, revoked)

	// 3. Unknown token reports false
	revoked, err = f.service.RevokeToken(context.Background(), "never-issued")
	require.NoError(t, err)
	assert.False(t, revoked)
}

/*
TestService_Logout verifies that all active sessions are revoked at once.
*/
func TestService_Logout(t *testing.T) {
	f := newFixture(t)
	registration := f.register(t, "ana@comuna.ec", "supersecret")

	// Accumulate extra sessions
	for i := 0; i < 3; i++ {
		_, err := f.service.Login(context.Background(), auth.LoginInput{
			Email:    "ana@comuna.ec",
			Password: "supersecret",
		})
		require.NoError(t, err)
	}
	require.Greater(t, activeTokenCount(f.store.stored(t, registration.User.ID)), 1)

	require.NoError(t, f.service.Logout(context.Background(), registration.User.ID))
	assert.Equal(t, 0, activeTokenCount(f.store.stored(t, registration.User.ID)))

	// Idempotent, including for unknown users
	assert.NoError(t, f.service.Logout(context.Background(), registration.User.ID))
	assert.NoError(t, f.service.Logout(context.Background(), "no-such-user"))
}

// # Password Management

/*
TestService_ChangePassword verifies verification, rehash, and session cleanup.
*/
func TestService_ChangePassword(t *testing.T) {
	f := newFixture(t)
	registration := f.register(t, "ana@comuna.ec", "supersecret")
	userID := registration.User.ID

	// 1. Wrong current password is rejected
	err := f.service.ChangePassword(context.Background(), userID, "wrong", "brand-new-secret")
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	assert.Equal(t, "Current password is incorrect", appErr.Message)

	// 2. Correct current password rotates the credential
	require.NoError(t, f.service.ChangePassword(context.Background(), userID, "supersecret", "brand-new-secret"))

	// 3. Every session is revoked
	assert.Equal(t, 0, activeTokenCount(f.store.stored(t, userID)))

	// 4. Old password stops working, new one works
	_, err = f.service.Login(context.Background(), auth.LoginInput{Email: "ana@comuna.ec", Password: "supersecret"})
	assert.Error(t, err)

	_, err = f.service.Login(context.Background(), auth.LoginInput{Email: "ana@comuna.ec", Password: "brand-new-secret"})
	assert.NoError(t, err)
}

/*
TestService_PasswordResetFlow verifies the forgot/reset round trip.
*/
func TestService_PasswordResetFlow(t *testing.T) {
	f := newFixture(t)
	registration := f.register(t, "ana@comuna.ec", "supersecret")

	// 1. Unknown email yields no token and no error (anti-enumeration)
	token, err := f.service.RequestPasswordReset(context.Background(), "ghost@comuna.ec")
	require.NoError(t, err)
	assert.Empty(t, token)

	// 2. Known email yields a usable token
	token, err = f.service.RequestPasswordReset(context.Background(), "ana@comuna.ec")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, f.service.ResetPassword(context.Background(), token, "recovered-secret"))

	// 3. Sessions are revoked and the token is single-use
	assert.Equal(t, 0, activeTokenCount(f.store.stored(t, registration.User.ID)))
	assert.Error(t, f.service.ResetPassword(context.Background(), token, "again"))

	_, err = f.service.Login(context.Background(), auth.LoginInput{Email: "ana@comuna.ec", Password: "recovered-secret"})
	assert.NoError(t, err)
}

// # Profile Access

/*
TestService_Profiles verifies profile lookup by ID and email.
*/
func TestService_Profiles(t *testing.T) {
	f := newFixture(t)
	registration := f.register(t, "ana@comuna.ec", "supersecret")

	byID, err := f.service.GetProfile(context.Background(), registration.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@comuna.ec", byID.Email)

	byEmail, err := f.service.GetByEmail(context.Background(), "  ANA@Comuna.EC  ")
	require.NoError(t, err)
	assert.Equal(t, registration.User.ID, byEmail.ID)

	_, err = f.service.GetProfile(context.Background(), "no-such-user")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Infrastructure Failures

// unreachableAccountStore simulates a database outage on every lookup.
type unreachableAccountStore struct {
	*memoryAccountStore
	outage error
}

func (store *unreachableAccountStore) FindByEmail(context.Context, string) (*auth.Account, error) {
	return nil, store.outage
}

func (store *unreachableAccountStore) FindByRefreshToken(context.Context, string) (*auth.Account, error) {
	return nil, store.outage
}

/*
TestService_StoreOutageIsNotACredentialFailure verifies that a persistence
failure during login or refresh surfaces as an internal error, never as a
401 that would tell the client its credentials are wrong.
*/
func TestService_StoreOutageIsNotACredentialFailure(t *testing.T) {
	tokenService, err := sec.NewTokenService(sec.TokenConfig{
		Secret:         "unit-test-signing-secret-0123456789",
		Issuer:         "comuna-api",
		Audience:       "comuna-clients",
		AccessTokenTTL: 15 * time.Minute,
	})
	require.NoError(t, err)

	outage := errors.New("connection reset by peer")
	store := &unreachableAccountStore{
		memoryAccountStore: newMemoryAccountStore(),
		outage:             outage,
	}
	service := auth.NewService(store, newMemoryResetTokenRepository(), tokenService, 7*24*time.Hour)

	_, err = service.Login(context.Background(), auth.LoginInput{
		Email:    "ana@comuna.ec",
		Password: "supersecret",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, outage)
	assert.Nil(t, apperr.As(err), "store outage must not be classified as a business error")

	_, err = service.RefreshSession(context.Background(), "any-token")
	require.Error(t, err)
	assert.ErrorIs(t, err, outage)
	assert.Nil(t, apperr.As(err), "store outage must not be classified as a business error")

	_, err = service.RequestPasswordReset(context.Background(), "ana@comuna.ec")
	require.Error(t, err)
	assert.ErrorIs(t, err, outage)
}
