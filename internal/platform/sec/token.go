// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package sec

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateSecureToken returns a base64-encoded string carrying byteLength
// bytes of cryptographically secure randomness.
//
// It backs both refresh tokens (32 bytes, 256 bits of entropy) and one-shot
// password-reset tokens.
func GenerateSecureToken(byteLength int) (string, error) {
	buffer := make([]byte, byteLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("auth: failed to generate secure token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buffer), nil
}
