// Package session keeps custody of the backend-issued access token and
// extracts the signed-in user's identity from it. Authentication itself
// happens against the hosted backend; gutlog only stores the resulting
// token in the OS keyring and reads its claims.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zalando/go-keyring"

	"github.com/hfletcher/gutlog/internal/constants"
)

var (
	// ErrNotSignedIn is returned when no token is stored in the keyring.
	ErrNotSignedIn = errors.New("not signed in")
	// ErrTokenExpired is returned when the stored token has expired.
	ErrTokenExpired = errors.New("session expired, sign in again")
	// ErrKeyringUnavailable is returned when the OS keyring is not available.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Identity is what gutlog knows about the signed-in user.
type Identity struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// parseToken reads the claims without verifying the signature. The
// backend verifies tokens server-side; locally the token is only a
// carrier for the user id and expiry.
func parseToken(token string) (Identity, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return Identity{}, fmt.Errorf("invalid access token: %w", err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return Identity{}, errors.New("access token has no subject claim")
	}

	id := Identity{UserID: sub}
	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		id.ExpiresAt = exp.Time
	}
	return id, nil
}

// Login validates the token shape and stores it in the OS keyring.
func Login(token string) (Identity, error) {
	id, err := parseToken(token)
	if err != nil {
		return Identity{}, err
	}
	if !id.ExpiresAt.IsZero() && id.ExpiresAt.Before(time.Now()) {
		return Identity{}, ErrTokenExpired
	}

	if err := keyring.Set(constants.AppName, constants.KeyringTokenUser, token); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return id, nil
}

// Logout removes the stored token. Logging out while signed out is fine.
func Logout() error {
	err := keyring.Delete(constants.AppName, constants.KeyringTokenUser)
	if err != nil && err != keyring.ErrNotFound {
		return fmt.Errorf("failed to remove token from keyring: %w", err)
	}
	return nil
}

// Current returns the signed-in identity, or ErrNotSignedIn.
func Current() (Identity, error) {
	token, err := keyring.Get(constants.AppName, constants.KeyringTokenUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return Identity{}, ErrNotSignedIn
		}
		return Identity{}, fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}

	id, err := parseToken(token)
	if err != nil {
		return Identity{}, err
	}
	if !id.ExpiresAt.IsZero() && id.ExpiresAt.Before(time.Now()) {
		return Identity{}, ErrTokenExpired
	}
	return id, nil
}

// CurrentUserID returns the signed-in user id, or "" when anonymous.
// Errors collapse to anonymous: local-only operation is always allowed.
func CurrentUserID() string {
	id, err := Current()
	if err != nil {
		return ""
	}
	return id.UserID
}

// KeyringAvailable checks if the OS keyring responds. Best effort.
func KeyringAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}
