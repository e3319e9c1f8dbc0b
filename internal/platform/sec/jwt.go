// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces (e.g. [middleware.TokenVerifier]).
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthClaims represents the payload embedded inside a JWT Access Token.
//
// # Why custom claims?
//
// By embedding the UserID, Email, FullName, and Role directly inside the JWT,
// the [middleware.Authenticate] can reconstruct the active user context
// WITHOUT querying the database on every single API request. This provides
// massive read-scalability.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID   string `json:"uid"`
	Email    string `json:"eml"`
	FullName string `json:"fnm"`
	Role     string `json:"rol"`
}

// TokenConfig holds the process-wide signing settings, resolved once at
// startup and passed by reference into [NewTokenService]. Tests construct
// their own instance with a distinct secret and TTL per case.
type TokenConfig struct {
	// Secret is the symmetric HMAC signing key. Required.
	Secret string
	// Issuer is the 'iss' claim stamped on and demanded of every token.
	Issuer string
	// Audience is the 'aud' claim stamped on and demanded of every token.
	Audience string
	// AccessTokenTTL is the lifetime of issued access tokens.
	AccessTokenTTL time.Duration
}

// TokenService handles generation and verification of JWT tokens using HS256.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenService creates a new TokenService from an explicit configuration.
// An empty signing secret is a construction error so that a misconfigured
// deployment fails at startup, never per request.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("auth: signing secret is required")
	}

	ttl := cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	return &TokenService{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      ttl,
	}, nil
}

// AccessTokenTTL returns the lifetime applied to issued access tokens.
func (service *TokenService) AccessTokenTTL() time.Duration {
	return service.ttl
}

// GenerateAccessToken creates a new signed JWT access token for a user.
//
// Every token carries a fresh random jti so that two tokens issued within
// the same second remain distinguishable for replay detection.
func (service *TokenService) GenerateAccessToken(userID, email, fullName string, role UserRole) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			Audience:  jwt.ClaimStrings{service.audience},
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
		},
		UserID:   userID,
		Email:    email,
		FullName: fullName,
		Role:     string(role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("auth: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature, issuer, audience, and expiry of a JWT string.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	return service.verify(tokenString, false)
}

// VerifyTokenIgnoreExpiry validates everything except the token lifetime.
//
// It exists for refresh flows where the caller presents an access token that
// may already be expired; wrong-algorithm or bad-signature tokens are still
// rejected outright.
func (service *TokenService) VerifyTokenIgnoreExpiry(tokenString string) (*AuthClaims, error) {
	return service.verify(tokenString, true)
}

func (service *TokenService) verify(tokenString string, ignoreExpiry bool) (*AuthClaims, error) {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if ignoreExpiry {
		// Signature verification still happens; only claim validation
		// (exp/iss/aud) is skipped and re-checked manually below.
		options = append(options, jwt.WithoutClaimsValidation())
	} else {
		options = append(options,
			jwt.WithIssuer(service.issuer),
			jwt.WithAudience(service.audience),
			jwt.WithExpirationRequired(),
		)
	}

	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, keyFunc, options...)
	if err != nil {
		return nil, fmt.Errorf("auth: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, errors.New("auth: invalid token claims")
	}

	if ignoreExpiry {
		if claims.Issuer != service.issuer {
			return nil, errors.New("auth: invalid token issuer")
		}
		if !claimStringsContain(claims.Audience, service.audience) {
			return nil, errors.New("auth: invalid token audience")
		}
	}

	return claims, nil
}

// ExtractUserID performs a best-effort UNVERIFIED read of the subject claim.
//
// It is intended for diagnostic and logging paths only and must never feed
// an authorization decision. Returns an empty string on any parse failure.
func (service *TokenService) ExtractUserID(tokenString string) string {
	claims := &AuthClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return ""
	}
	return claims.UserID
}

func claimStringsContain(audience jwt.ClaimStrings, want string) bool {
	for _, a := range audience {
		if a == want {
			return true
		}
	}
	return false
}
