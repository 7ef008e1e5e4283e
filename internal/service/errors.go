package service

import "errors"

var (
	// ErrEmailTaken indicates a registration attempt with an email that is
	// already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers unknown email, wrong password and
	// invalid/expired tokens alike, so callers cannot probe which accounts
	// exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrScriptNotFound covers both a nonexistent script id and one owned by
	// a different account.
	ErrScriptNotFound = errors.New("script not found")
	// ErrValidation marks malformed or out-of-range input rejected before it
	// reaches the store.
	ErrValidation = errors.New("validation failed")
)
