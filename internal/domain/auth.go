package domain

import (
	"errors"
	"time"
)

// SessionTTL is the fixed validity window of an issued session token.
const SessionTTL = 7 * 24 * time.Hour

var (
	ErrMissingCredential = errors.New("missing credential")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrStoreUnavailable  = errors.New("user store unavailable")
	ErrConfiguration     = errors.New("configuration error")
	ErrInvalidToken      = errors.New("invalid session token")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrUserNotFound      = errors.New("user not found")
)

