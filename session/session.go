package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// StorageKey is the fixed key the session record is persisted under.
const StorageKey = "connecthub.session"

// Session is the in-memory and persisted record for the currently
// signed-in user. A Session with an empty AuthToken is never treated
// as logged-in.
type Session struct {
	UserID       string `json:"user_id"`
	DisplayName  string `json:"display_name"`
	Email        string `json:"email"`
	Role         string `json:"role,omitempty"`
	AuthToken    string `json:"auth_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Valid reports whether the session carries an auth token.
func (s Session) Valid() bool {
	return s.AuthToken != ""
}

// ExpiresAt peeks at the auth token's exp claim without verifying the
// signature; the client never validates signatures, only the server does.
// Returns the zero time when the token is not a JWT or carries no expiry.
func (s Session) ExpiresAt() time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.AuthToken, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
