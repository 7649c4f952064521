package services

import "errors"

// Sentinel errors returned by the service layer. The API layer maps each to
// an HTTP status; anything not in this list is treated as a server error.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("access denied")
	ErrConflict     = errors.New("resource already exists")
	ErrValidation   = errors.New("invalid input")
	ErrInvalidState = errors.New("operation not allowed in current state")

	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")

	ErrDuplicateProposal = errors.New("a proposal for this project already exists")
	ErrProjectNotOpen    = errors.New("project is not open")
	ErrProposalDecided   = errors.New("proposal has already been decided")
	ErrDuplicateReview   = errors.New("contract already reviewed by this user")
)

// invalidStateError attaches a human-readable reason to ErrInvalidState so
// handlers can surface it without losing the errors.Is identity.
func invalidStateError(reason string) error {
	return &wrappedError{sentinel: ErrInvalidState, reason: reason}
}

func validationError(reason string) error {
	return &wrappedError{sentinel: ErrValidation, reason: reason}
}

type wrappedError struct {
	sentinel error
	reason   string
}

func (e *wrappedError) Error() string { return e.reason }
func (e *wrappedError) Unwrap() error { return e.sentinel }
