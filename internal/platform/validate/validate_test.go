// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comuna-ec/comuna/internal/platform/apperr"
	"github.com/comuna-ec/comuna/internal/platform/validate"
)

func TestValidator_Passes(t *testing.T) {
	v := &validate.Validator{}
	err := v.
		Required("email", "dev@comuna.ec").
		Email("email", "dev@comuna.ec").
		MinLen("password", "supersecret", 8).
		MaxLen("fullName", "Ana Torres", 120).
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

func TestValidator_CollectsAllFailures(t *testing.T) {
	v := &validate.Validator{}
	err := v.
		Required("email", "  ").
		MinLen("password", "abc", 8).
		OneOf("role", "Owner", "Admin", "Moderator", "User", "Guest").
		Err()

	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Len(t, appErr.Details, 3)
}

func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid", value: "user@example.com", wantErr: false},
		{name: "missing at", value: "userexample.com", wantErr: true},
		{name: "empty", value: "", wantErr: true},
		{name: "display name form", value: "Ana <ana@example.com>", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			err := v.Email("email", tt.value).Err()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_Slug(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "simple", value: "medio-ambiente", wantErr: false},
		{name: "digits", value: "zona-7", wantErr: false},
		{name: "uppercase", value: "Medio-Ambiente", wantErr: true},
		{name: "trailing hyphen", value: "medio-", wantErr: true},
		{name: "spaces", value: "medio ambiente", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			err := v.Slug("slug", tt.value).Err()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_Custom(t *testing.T) {
	v := &validate.Validator{}
	err := v.Custom("password", "abc" != "abd", "Passwords do not match").Err()
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, "password", appErr.Details[0].Field)
}
