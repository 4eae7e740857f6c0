package errors

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrDirectoryNotFound = errors.New("directory not found")
	ErrTopNOutOfRange    = errors.New("number of words out of range")
	ErrInputRead         = errors.New("input unreadable")
	ErrInvalidEncoding   = errors.New("invalid text encoding")
	ErrSinkFailed        = errors.New("output sink failed")
	ErrTimeout           = errors.New("operation timed out")
)

// Process exit codes returned by the CLI.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitConfig  = 2
	ExitInput   = 3
	ExitSink    = 4
	ExitTimeout = 5
)

// AppError carries a sentinel for errors.Is, the exit code for the CLI and,
// when wrapping a lower-level failure, the original Cause.
type AppError struct {
	Err      error
	Message  string
	ExitCode int
	Cause    error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

func New(sentinel error, exitCode int, message string) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  message,
		ExitCode: exitCode,
	}
}

func Newf(sentinel error, exitCode int, format string, args ...any) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  fmt.Sprintf(format, args...),
		ExitCode: exitCode,
	}
}

// Wrapf is Newf that keeps cause in the chain, so errors.Is and errors.As
// reach both sentinel and cause.
func Wrapf(sentinel error, exitCode int, cause error, format string, args ...any) *AppError {
	e := Newf(sentinel, exitCode, format, args...)
	e.Cause = cause
	return e
}

// Configf builds a configuration error around sentinel.
func Configf(sentinel error, format string, args ...any) *AppError {
	return Newf(sentinel, ExitConfig, format, args...)
}

// Inputf builds an input error around sentinel.
func Inputf(sentinel error, format string, args ...any) *AppError {
	return Newf(sentinel, ExitInput, format, args...)
}

func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.ExitCode
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrDirectoryNotFound), errors.Is(err, ErrTopNOutOfRange):
		return ExitConfig
	case errors.Is(err, ErrInputRead), errors.Is(err, ErrInvalidEncoding):
		return ExitInput
	case errors.Is(err, ErrSinkFailed):
		return ExitSink
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ExitTimeout
	default:
		return ExitFailure
	}
}
