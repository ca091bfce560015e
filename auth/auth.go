// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AdminKeyHeader carries the motion admin key on advance and decide requests
const AdminKeyHeader = "X-Admin-Key"

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrMissingAdminKey = errors.New("admin key required")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateAdminKey derives the admin key of a motion with HMAC-SHA256.
// Deterministic, so it never needs to be stored.
func GenerateAdminKey(motionID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte("motion:" + motionID))
	sum := h.Sum(nil)
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks if the provided admin key is valid for the motion
func ValidateAdminKey(motionID, adminKey, salt string) error {
	expected := GenerateAdminKey(motionID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// RequireAdmin validates the admin key header of r against motionID
func RequireAdmin(r *http.Request, motionID, salt string) error {
	key := r.Header.Get(AdminKeyHeader)
	if key == "" {
		return ErrMissingAdminKey
	}
	return ValidateAdminKey(motionID, key, salt)
}
