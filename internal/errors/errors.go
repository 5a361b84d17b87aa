// Package errors holds the sentinel errors shared across addsum and the
// CLIError type used to classify failures at the command boundary.
package errors

import (
	"errors"
	"fmt"
)

var (
	// CLI Errors
	ErrUsage        = errors.New("wrong number of arguments")
	ErrInvalidWidth = errors.New("valid checksum sizes are 8, 16, or 32")

	// File Errors
	ErrFileOpen = errors.New("unable to open file")
	ErrFileRead = errors.New("error reading file")

	// ErrAllocation exists to mirror the allocation failure kind of the
	// C tool. The Go runtime panics on allocation failure, so nothing returns it.
	ErrAllocation = errors.New("memory allocation failed")

	// Input Errors
	ErrDecompression = errors.New("decompression failed")

	// Output Errors
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrUnsupportedDigest = errors.New("unsupported digest algorithm")
	ErrOutputWrite       = errors.New("error writing output")

	// Verification Errors
	ErrInvalidExpected  = errors.New("expected checksum is not valid hexadecimal")
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// Configuration Errors
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrConfigParseError = errors.New("error parsing configuration")
)

// ErrorKind classifies an error for logging and exit handling.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindUsage
	KindInvalidWidth
	KindFileOpen
	KindAllocation
	KindInput
	KindOutput
	KindVerification
	KindConfig
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindInvalidWidth:
		return "invalid_width"
	case KindFileOpen:
		return "file_open"
	case KindAllocation:
		return "allocation"
	case KindInput:
		return "input"
	case KindOutput:
		return "output"
	case KindVerification:
		return "verification"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// CLIError pairs a failure kind with the underlying cause.
type CLIError struct {
	Kind ErrorKind
	Err  error
}

// NewCLIError wraps err with the given kind.
func NewCLIError(kind ErrorKind, err error) *CLIError {
	return &CLIError{Kind: kind, Err: err}
}

func (e *CLIError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Err.Error()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// Kind reports the kind of err. A CLIError anywhere in the chain wins,
// otherwise the sentinel it wraps decides.
func Kind(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}

	var ce *CLIError
	if errors.As(err, &ce) {
		return ce.Kind
	}

	switch {
	case errors.Is(err, ErrUsage):
		return KindUsage
	case errors.Is(err, ErrInvalidWidth):
		return KindInvalidWidth
	case errors.Is(err, ErrFileOpen):
		return KindFileOpen
	case errors.Is(err, ErrAllocation):
		return KindAllocation
	case errors.Is(err, ErrFileRead), errors.Is(err, ErrDecompression):
		return KindInput
	case errors.Is(err, ErrUnsupportedFormat), errors.Is(err, ErrUnsupportedDigest), errors.Is(err, ErrOutputWrite):
		return KindOutput
	case errors.Is(err, ErrInvalidExpected), errors.Is(err, ErrChecksumMismatch):
		return KindVerification
	case errors.Is(err, ErrConfigInvalid), errors.Is(err, ErrConfigParseError):
		return KindConfig
	default:
		return KindUnknown
	}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Wrap annotates a sentinel with detail, keeping it matchable with Is.
func Wrap(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
