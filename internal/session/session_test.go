package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return s
}

func TestParseToken(t *testing.T) {
	t.Run("extracts subject, email and expiry", func(t *testing.T) {
		exp := time.Now().Add(time.Hour).Truncate(time.Second)
		token := signedToken(t, jwt.MapClaims{
			"sub":   "user-42",
			"email": "gut@example.com",
			"exp":   exp.Unix(),
		})

		id, err := parseToken(token)
		if err != nil {
			t.Fatalf("parseToken() failed: %v", err)
		}
		if id.UserID != "user-42" {
			t.Errorf("UserID = %q, want user-42", id.UserID)
		}
		if id.Email != "gut@example.com" {
			t.Errorf("Email = %q, want gut@example.com", id.Email)
		}
		if !id.ExpiresAt.Equal(exp) {
			t.Errorf("ExpiresAt = %v, want %v", id.ExpiresAt, exp)
		}
	})

	t.Run("missing subject fails", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"email": "x@example.com"})
		if _, err := parseToken(token); err == nil {
			t.Error("parseToken() accepted a token without a subject")
		}
	})

	t.Run("garbage fails", func(t *testing.T) {
		if _, err := parseToken("not-a-jwt"); err == nil {
			t.Error("parseToken() accepted garbage")
		}
	})
}
