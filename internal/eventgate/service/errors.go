package service

import "errors"

// Shared service errors forming the boundary taxonomy. Handlers map these to
// HTTP statuses; nothing below the service layer knows about them.
var (
	// ErrForbidden reports an authenticated principal lacking a required role.
	ErrForbidden = errors.New("operation not permitted")

	// ErrValidation reports malformed input; wrap it with the reason.
	ErrValidation = errors.New("invalid input")
)
