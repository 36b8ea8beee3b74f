package service

import "errors"

var (
	// ErrInvalidState is returned when a lifecycle transition is requested
	// from a status that does not allow it.
	ErrInvalidState = errors.New("invalid lifecycle state for operation")

	// ErrRetentionNotExpired is returned when a hard delete is requested
	// before the org's retention window has elapsed.
	ErrRetentionNotExpired = errors.New("retention window has not expired")
)
