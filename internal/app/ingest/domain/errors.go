package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors
var (
	ErrPersisterClosed = errors.New("persister is not open")
	ErrNotFound        = errors.New("product not found")
)

// RejectionError reports that a candidate record failed validation. Reasons
// holds every violated rule, in check order, so callers can log a full
// diagnosis without re-running validation.
type RejectionError struct {
	Reasons []string
}

func (e *RejectionError) Error() string {
	return "validation failed: " + strings.Join(e.Reasons, "; ")
}

// DuplicateError reports that a record's (platform, URL) identity was already
// seen within the current ingestion session.
type DuplicateError struct {
	Key string
	URL string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate item: %s", e.URL)
}

// PersistenceError reports a storage failure while persisting a single record.
// It is terminal for that record only; the session continues.
type PersistenceError struct {
	Op  string // acquire, lookup, insert, update, history, commit
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
