package service

import "errors"

// Sentinel errors surfaced to the HTTP error handler, which maps them to
// status codes. Services wrap them with context via fmt.Errorf and %w.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("access denied")
	ErrSessionExpired     = errors.New("visitor session expired")

	// ErrTenantNotTrained means the chatbot has no vector collection yet:
	// a query arrived before any successful training run.
	ErrTenantNotTrained = errors.New("chatbot has not been trained yet")
)
