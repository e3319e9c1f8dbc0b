// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comuna-ec/comuna/internal/platform/sec"
)

/*
TestParseRole verifies the closed-set mapping with the Guest fallback.
*/
func TestParseRole(t *testing.T) {
	testCases := []struct {
		input    string
		expected sec.UserRole
	}{
		{input: "Admin", expected: sec.RoleAdmin},
		{input: "Moderator", expected: sec.RoleModerator},
		{input: "User", expected: sec.RoleUser},
		{input: "Guest", expected: sec.RoleGuest},
		{input: "admin", expected: sec.RoleGuest},
		{input: "superuser", expected: sec.RoleGuest},
		{input: "", expected: sec.RoleGuest},
	}

	for _, testCase := range testCases {
		t.Run("input "+testCase.input, func(t *testing.T) {
			assert.Equal(t, testCase.expected, sec.ParseRole(testCase.input))
		})
	}
}

/*
TestUserRole_AtLeast verifies the role hierarchy comparisons.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleModerator))
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleAdmin))
	assert.True(t, sec.RoleModerator.AtLeast(sec.RoleUser))
	assert.False(t, sec.RoleUser.AtLeast(sec.RoleModerator))
	assert.False(t, sec.RoleGuest.AtLeast(sec.RoleUser))

	// Unknown roles rank below Guest.
	assert.False(t, sec.UserRole("mystery").AtLeast(sec.RoleGuest))
}
