// SPDX-License-Identifier: AGPL-3.0-or-later

// Package clierr attaches process exit codes to command errors.
package clierr

import (
	"errors"
	"fmt"
)

// Exit codes returned by the mergeplan binary.
const (
	ExitOK      = 0
	ExitRuntime = 1 // unreadable or malformed input, write failures
	ExitUsage   = 2 // bad flags, arguments or configuration
	ExitDrift   = 3 // generate --check found stale documents
)

type ExitCoder interface {
	error
	ExitCode() int
}

// ExitError is an error that carries an explicit process exit code.
// errors.Is/As see through it to the cause.
type ExitError struct {
	code  int
	msg   string
	cause error
}

func (e *ExitError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *ExitError) ExitCode() int { return e.code }

func (e *ExitError) Unwrap() error { return e.cause }

// New creates an ExitError with a message.
func New(code int, msg string) error {
	return &ExitError{code: normalize(code), msg: msg}
}

// Newf is a formatted variant of New.
func Newf(code int, format string, args ...any) error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates an ExitError around cause. A nil cause yields New(code, msg).
func Wrap(code int, msg string, cause error) error {
	if cause == nil {
		return New(code, msg)
	}
	return &ExitError{code: normalize(code), msg: msg, cause: cause}
}

// Usage marks err as a usage or configuration error.
func Usage(err error) error {
	if err == nil {
		return nil
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return err
	}
	return &ExitError{code: ExitUsage, msg: err.Error()}
}

// ExitCodeOf extracts an exit code from any error, defaulting to ExitRuntime.
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitOK
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return ExitRuntime
}

func normalize(code int) int {
	if code <= ExitOK {
		return ExitRuntime
	}
	return code
}
