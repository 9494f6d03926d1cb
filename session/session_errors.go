package session

import "errors"

var (
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrNoRefreshToken    = errors.New("session has no refresh token")
	ErrUnexpectedPayload = errors.New("unexpected login payload")
)
