package usecase

import (
	"errors"
	"fmt"
)

// ErrLeadNotFound signals an operation referencing an unknown lead id.
// Callers treat it as a no-op result, never as a crash.
var ErrLeadNotFound = errors.New("lead not found")

// PersistenceError wraps a blob store failure. The in-memory collection
// stays authoritative for the session when Save fails; a malformed Load
// is recovered with the seed dataset and still reported through this type.
type PersistenceError struct {
	Op  string // "load" or "save"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("lead store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
