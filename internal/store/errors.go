package store

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation is matched by *ValidationError.
	ErrValidation = errors.New("required field missing")
	// ErrDuplicate reports an existing (name, role) enrollment.
	ErrDuplicate = errors.New("employee already enrolled")
	// ErrNotFound reports that the workbook does not exist yet.
	ErrNotFound = errors.New("workbook not found")
)

// ValidationError lists the required fields that were empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// IOError wraps a failure reading, writing or decoding the workbook.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
