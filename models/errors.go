package models

import (
	"errors"
	"fmt"
)

// Error kinds shared by the loader, the report pipeline and the web layer
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrSchemaMismatch     = errors.New("schema mismatch")
	ErrEmptyAggregate     = errors.New("empty aggregate")
)

// StorageError reports a failed connection or query against the store
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrStorageUnavailable, e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrStorageUnavailable, e.Err}
}

// SchemaError reports CSV input that does not fit its table definition
type SchemaError struct {
	Table   string
	File    string
	Line    int // 0 when the problem is not tied to a line
	Column  string
	Message string
}

func (e *SchemaError) Error() string {
	loc := e.File
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.File, e.Line)
	}
	if e.Column != "" {
		return fmt.Sprintf("%s: %s (%s): column %q: %s", ErrSchemaMismatch, e.Table, loc, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s): %s", ErrSchemaMismatch, e.Table, loc, e.Message)
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

// ErrorCode maps an error onto the code returned by the API
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrStorageUnavailable):
		return "STORAGE_UNAVAILABLE"
	case errors.Is(err, ErrSchemaMismatch):
		return "SCHEMA_MISMATCH"
	case errors.Is(err, ErrEmptyAggregate):
		return "EMPTY_AGGREGATE"
	default:
		return "INTERNAL_ERROR"
	}
}
