// Package common defines shared constants and sentinel errors used across
// the storage and service layers of spacebook. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorParse    = errors.New("malformed shard")
	ErrorIO       = errors.New("storage i/o failure")

	// Validation errors (rejected before any write).
	ErrorValidation    = errors.New("validation error")
	ErrorAlreadyExists = errors.New("already exists")

	// Lifecycle errors.
	ErrorInvalidTransition = errors.New("invalid status transition")

	// Auth errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrAccountPending = errors.New("account awaiting admin activation")
	ErrAccountBlocked = errors.New("account deactivated")
)
