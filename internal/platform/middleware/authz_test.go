// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comuna-ec/comuna/internal/platform/middleware"
	"github.com/comuna-ec/comuna/internal/platform/sec"
)

// stubVerifier is a canned [middleware.TokenVerifier] that also exposes the
// unverified subject read, recording whether it was consulted.
type stubVerifier struct {
	claims        *sec.AuthClaims
	err           error
	hintedSubject string
	hintCalls     int
}

func (verifier *stubVerifier) VerifyToken(_ string) (*sec.AuthClaims, error) {
	return verifier.claims, verifier.err
}

func (verifier *stubVerifier) ExtractUserID(_ string) string {
	verifier.hintCalls++
	return verifier.hintedSubject
}

func runAuthenticate(t *testing.T, verifier middleware.TokenVerifier, header string) (*httptest.ResponseRecorder, *sec.AuthClaims) {
	t.Helper()

	var captured *sec.AuthClaims
	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		captured = middleware.GetUser(request.Context())
		writer.WriteHeader(http.StatusOK)
	})

	request := httptest.NewRequest("GET", "/protected", nil)
	if header != "" {
		request.Header.Set("Authorization", header)
	}

	recorder := httptest.NewRecorder()
	middleware.Authenticate(verifier)(next).ServeHTTP(recorder, request)
	return recorder, captured
}

func TestAuthenticate_AnonymousPassesThrough(t *testing.T) {
	verifier := &stubVerifier{err: errors.New("must not be called")}

	recorder, captured := runAuthenticate(t, verifier, "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Nil(t, captured)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	verifier := &stubVerifier{}

	recorder, _ := runAuthenticate(t, verifier, "Token abc")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthenticate_RejectedTokenConsultsSubjectHint(t *testing.T) {
	verifier := &stubVerifier{
		err:           errors.New("auth: invalid token"),
		hintedSubject: "user-123",
	}

	recorder, captured := runAuthenticate(t, verifier, "Bearer bad-token")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Nil(t, captured)
	assert.Equal(t, 1, verifier.hintCalls, "rejection path should read the unverified subject once")
}

func TestAuthenticate_ValidTokenInjectsClaims(t *testing.T) {
	verifier := &stubVerifier{
		claims: &sec.AuthClaims{UserID: "user-123", Role: "User"},
	}

	recorder, captured := runAuthenticate(t, verifier, "Bearer good-token")

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "user-123", captured.UserID)
	assert.Zero(t, verifier.hintCalls)
}
