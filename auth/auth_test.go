// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int // hex encoded length = byteLen * 2
	}{
		{"8 bytes", 8, 16},
		{"16 bytes", 16, 32},
		{"24 bytes", 24, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID() error = %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("GenerateID() length = %d, want %d", len(id), tt.wantLen)
			}
			// Verify it's valid hex
			for _, c := range id {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("GenerateID() contains invalid hex char: %c", c)
				}
			}
		})
	}

	// Test randomness - two IDs should be different
	id1, _ := GenerateID(16)
	id2, _ := GenerateID(16)
	if id1 == id2 {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestGenerateAdminKey(t *testing.T) {
	tests := []struct {
		name     string
		motionID string
		salt     string
	}{
		{"standard", "motion123", "secret-salt"},
		{"empty motion id", "", "salt"},
		{"empty salt", "motion456", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := GenerateAdminKey(tt.motionID, tt.salt)

			// Should not be empty
			if key == "" {
				t.Error("GenerateAdminKey() returned empty string")
			}

			// Should be deterministic
			key2 := GenerateAdminKey(tt.motionID, tt.salt)
			if key != key2 {
				t.Error("GenerateAdminKey() is not deterministic")
			}

			// Different inputs should produce different keys
			if tt.motionID != "" && tt.salt != "" {
				differentKey := GenerateAdminKey(tt.motionID+"x", tt.salt)
				if key == differentKey {
					t.Error("GenerateAdminKey() produced same key for different motion IDs")
				}
			}

			// Should be URL-safe (no padding)
			if strings.Contains(key, "=") {
				t.Error("GenerateAdminKey() contains padding characters")
			}
		})
	}
}

func TestValidateAdminKey(t *testing.T) {
	motionID := "test-motion-123"
	salt := "test-salt"
	validKey := GenerateAdminKey(motionID, salt)

	tests := []struct {
		name     string
		motionID string
		adminKey string
		salt     string
		wantErr  bool
	}{
		{"valid key", motionID, validKey, salt, false},
		{"wrong key", motionID, "wrong-key", salt, true},
		{"wrong motion id", "different-motion", validKey, salt, true},
		{"wrong salt", motionID, validKey, "different-salt", true},
		{"empty key", motionID, "", salt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminKey(tt.motionID, tt.adminKey, tt.salt)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAdminKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != ErrInvalidAdminKey {
				t.Errorf("ValidateAdminKey() error = %v, want %v", err, ErrInvalidAdminKey)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	salt := "test-salt"
	key := GenerateAdminKey("m1", salt)

	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{"valid", key, nil},
		{"missing", "", ErrMissingAdminKey},
		{"other motion", GenerateAdminKey("m2", salt), ErrInvalidAdminKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/motions/m1/advance", nil)
			if tt.header != "" {
				r.Header.Set(AdminKeyHeader, tt.header)
			}

			err := RequireAdmin(r, "m1", salt)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RequireAdmin() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
