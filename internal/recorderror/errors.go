// Package recorderror defines the error types returned by the record, session,
// store and export layers. Aggregation code never returns errors.
package recorderror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIndexOutOfRange is returned when a positional delete targets a missing entry.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrDuplicateCategory is returned when adding a category already in the set.
	ErrDuplicateCategory = errors.New("category already exists")
	// ErrUserExists is returned when registering an email that is already taken.
	ErrUserExists = errors.New("email already registered")
	// ErrInvalidCredentials is returned when email and password do not match a user.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotLoggedIn is returned by operations that need a current user.
	ErrNotLoggedIn = errors.New("no user logged in")
	// ErrNothingToExport is returned when every exported collection is empty.
	ErrNothingToExport = errors.New("no data to export")
	// ErrUnknownKind is returned for an unrecognized record kind name.
	ErrUnknownKind = errors.New("unknown record kind")
)

// ValidationError represents a presence check failure on a record or form.
type ValidationError struct {
	Kind   string
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("invalid %s: missing required fields: %s", e.Kind, strings.Join(e.Fields, ", "))
	}
	return fmt.Sprintf("invalid %s: %s", e.Kind, e.Reason)
}

// StorageError represents a failure reading or writing the record store.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IndexError wraps ErrIndexOutOfRange with the offending position.
type IndexError struct {
	Collection string
	Index      int
	Length     int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d not in [0, %d)", e.Collection, e.Index, e.Length)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// ExportError represents a failure producing an export target.
type ExportError struct {
	Target string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export to %s failed: %v", e.Target, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
