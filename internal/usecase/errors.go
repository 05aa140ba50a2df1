package usecase

import "errors"

// Failure taxonomy shared by every operation. Handlers translate these to
// HTTP statuses; nothing here is fatal to the process.
var (
	ErrValidation    = errors.New("validation failed")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrInvalidState  = errors.New("invalid state transition")
	ErrQuotaExceeded = errors.New("worker quota exceeded")
	ErrNotEligible   = errors.New("not eligible to review")
	ErrDuplicate     = errors.New("already reviewed")
	ErrInternal      = errors.New("internal error")
)
