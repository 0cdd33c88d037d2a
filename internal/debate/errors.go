package debate

import "errors"

// Sentinel errors for the debate domain. Callers classify failures with
// errors.Is; the HTTP layer maps each class to a status code.
var (
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("debate not found")
	ErrSessionClosed       = errors.New("debate has been closed")
	ErrInvalidRoleSequence = errors.New("message role repeats the previous role")
	ErrPersistence         = errors.New("persistence failure")
)
