package nrrd

import (
	"errors"
	"fmt"
)

var (
	ErrFormat         = errors.New("nrrd: invalid format")
	ErrDuplicateField = errors.New("nrrd: duplicate header field")
	ErrMissingField   = errors.New("nrrd: missing required field")
	ErrMissingContext = errors.New("nrrd: missing context")
	ErrSizeMismatch   = errors.New("nrrd: size mismatch")
)

// FormatError reports malformed header or payload text, or an argument the
// codec cannot act on (index order, skips, encoding names).
type FormatError struct {
	Msg string
	Err error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return "nrrd: " + e.Msg + ": " + e.Err.Error()
	}
	return "nrrd: " + e.Msg
}

func (e *FormatError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFormat}
	}
	return []error{ErrFormat, e.Err}
}

func formatErrorf(format string, args ...any) error {
	return &FormatError{Msg: fmt.Sprintf(format, args...)}
}

func wrapFormatError(err error, format string, args ...any) error {
	return &FormatError{Msg: fmt.Sprintf(format, args...), Err: err}
}

// DuplicateFieldError is returned when a header repeats a field and
// duplicates are not allowed.
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("nrrd: duplicate header field: %q", e.Field)
}

func (e *DuplicateFieldError) Unwrap() error { return ErrDuplicateField }

// MissingFieldError is returned when a field needed to decode the payload is
// absent from the header.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("nrrd: header is missing required field: %q", e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// MissingContextError is returned when a relative data file cannot be
// resolved because no header filename was given.
type MissingContextError struct {
	DataFile string
}

func (e *MissingContextError) Error() string {
	return fmt.Sprintf("nrrd: filename must be specified when a relative data file path is given: %q", e.DataFile)
}

func (e *MissingContextError) Unwrap() error { return ErrMissingContext }

// SizeMismatchError is returned when the decoded element count differs from
// the product of the declared sizes.
type SizeMismatchError struct {
	Expected int64
	Actual   int64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("nrrd: size of the data does not equal the product of all the dimensions: %d-%d=%d",
		e.Expected, e.Actual, e.Expected-e.Actual)
}

func (e *SizeMismatchError) Unwrap() error { return ErrSizeMismatch }
