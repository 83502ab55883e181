package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

// CookieName is the session cookie set on login and cleared on logout.
const CookieName = "cpm_session"

// secretKey signs session cookies. Overridable from config at startup.
var secretKey = []byte("cpm-dev-session-key")

// SetSecretKey replaces the signing key. Call once during startup, before
// any cookie is issued.
func SetSecretKey(key string) {
	if key != "" {
		secretKey = []byte(key)
	}
}

var ErrInvalidSession = errors.New("invalid session token")

// SignSession wraps a user id into a "payload.signature" token.
func SignSession(userID string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(userID))
	return payload + "." + signature(payload)
}

// VerifySession checks the token signature and returns the user id.
func VerifySession(token string) (string, error) {
	payload, sig, ok := strings.Cut(token, ".")
	if !ok {
		return "", ErrInvalidSession
	}
	if !hmac.Equal([]byte(sig), []byte(signature(payload))) {
		return "", ErrInvalidSession
	}
	userID, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrInvalidSession
	}
	return string(userID), nil
}

func signature(payload string) string {
	mac := hmac.New(sha256.New, secretKey)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
