package auth

import "errors"

// Token decode failures reported by TokenManager.
var (
	ErrTokenMalformed   = errors.New("token malformed")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrTokenExpired     = errors.New("token expired")
)

// Flow failures reported by the auth service and refresh token store.
var (
	ErrAlreadyRegistered    = errors.New("member name already registered")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrAccessMalformed      = errors.New("access token malformed")
	ErrRefreshInvalid       = errors.New("refresh token invalid")
	ErrRefreshExpired       = errors.New("refresh token expired")
	ErrSessionNotFound      = errors.New("refresh session not found")
	ErrRefreshMismatch      = errors.New("refresh token mismatch")
	ErrStoreUnavailable     = errors.New("refresh token store unavailable")
)
