package service

import "errors"

var (
	// ErrNotActive is returned when resolving or dismissing a conflict
	// that is already resolved or dismissed.
	ErrNotActive = errors.New("conflict is not active")
	// ErrInvalidResolution is returned when the resolution id does not
	// belong to the conflict.
	ErrInvalidResolution = errors.New("resolution option does not belong to conflict")
	ErrMissingReason     = errors.New("dismiss reason is required")
	ErrMissingWeddingID  = errors.New("wedding id is required")
)
