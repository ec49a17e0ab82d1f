// Package errors defines the stable error code system for relcheck.
package errors

import (
	"errors"
	"fmt"
	"io"
)

// Code is a stable error code string.
type Code string

// Error codes. Stable public contract for CI consumers.
const (
	EUsage    Code = "E_USAGE"
	EInternal Code = "E_INTERNAL"

	// Manifest error codes
	ENoManifest      Code = "E_NO_MANIFEST"      // Cargo.toml missing or unreadable
	EInvalidManifest Code = "E_INVALID_MANIFEST" // Cargo.toml unparseable or missing package fields

	// Checker input error codes
	ENoChangelog       Code = "E_NO_CHANGELOG"       // changelog file missing or unreadable
	ENoDescriptor      Code = "E_NO_DESCRIPTOR"      // <name>.doap missing or unreadable
	EInvalidDescriptor Code = "E_INVALID_DESCRIPTOR" // descriptor has no usable revision element
	EInvalidConfig     Code = "E_INVALID_CONFIG"     // .relcheck.yaml present but invalid

	// Environment precondition error codes
	EGitNotInstalled Code = "E_GIT_NOT_INSTALLED" // git binary not on PATH
	ENoRepo          Code = "E_NO_REPO"           // target path is not inside a git repository
	EGitTagFailed    Code = "E_GIT_TAG_FAILED"    // git tag --list exited non-zero

	// Registry error codes
	ERegistryUnreachable Code = "E_REGISTRY_UNREACHABLE" // transport failure or timeout
	ERegistryResponse    Code = "E_REGISTRY_RESPONSE"    // non-2xx status or undecodable body

	// Result error codes
	EChecksFailed      Code = "E_CHECKS_FAILED"       // consistency findings exist (strict mode)
	EOutputWriteFailed Code = "E_OUTPUT_WRITE_FAILED" // could not append to the output file
)

// CheckError is the standard error type for relcheck errors.
type CheckError struct {
	Code    Code
	Msg     string
	Cause   error
	Details map[string]string // optional structured context
}

// Error returns the stable error format: "CODE: message".
func (e *CheckError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *CheckError) Unwrap() error {
	return e.Cause
}

// ExitCodeError wraps an error with an explicit process exit code.
type ExitCodeError struct {
	Err  error
	Code int
}

func (e *ExitCodeError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

func (e *ExitCodeError) ExitCode() int {
	return e.Code
}

// WithExitCode wraps err with a specific process exit code.
func WithExitCode(err error, code int) error {
	return &ExitCodeError{Err: err, Code: code}
}

// New creates a new CheckError with the given code and message.
func New(code Code, msg string) error {
	return &CheckError{Code: code, Msg: msg}
}

// NewWithDetails creates a new CheckError with code, message, and details.
// Details map is defensively copied (nil if empty).
func NewWithDetails(code Code, msg string, details map[string]string) error {
	return &CheckError{Code: code, Msg: msg, Details: copyDetails(details)}
}

// Wrap creates a new CheckError wrapping an underlying error.
func Wrap(code Code, msg string, err error) error {
	return &CheckError{Code: code, Msg: msg, Cause: err}
}

// WrapWithDetails creates a new CheckError wrapping an underlying error with details.
// Details map is defensively copied (nil if empty).
func WrapWithDetails(code Code, msg string, err error, details map[string]string) error {
	return &CheckError{Code: code, Msg: msg, Cause: err, Details: copyDetails(details)}
}

// GetCode extracts the error code from an error, or empty string if not a CheckError.
func GetCode(err error) Code {
	var ce *CheckError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// AsCheckError returns (*CheckError, true) if err is or wraps a CheckError.
func AsCheckError(err error) (*CheckError, bool) {
	var ce *CheckError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// copyDetails returns a defensive copy of the details map, or nil if empty/nil.
func copyDetails(details map[string]string) map[string]string {
	if len(details) == 0 {
		return nil
	}
	cp := make(map[string]string, len(details))
	for k, v := range details {
		cp[k] = v
	}
	return cp
}

// ExitCode returns the appropriate exit code for an error.
// Returns 0 if err is nil, 2 for E_USAGE, 1 for all other errors.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if ec, ok := err.(interface{ ExitCode() int }); ok {
		return ec.ExitCode()
	}
	if GetCode(err) == EUsage {
		return 2
	}
	return 1
}

// Print writes the error to w in the stable stderr format:
//
//	error_code: <CODE>
//	<message>
func Print(w io.Writer, err error) {
	if err == nil {
		return
	}
	var ce *CheckError
	if errors.As(err, &ce) {
		_, _ = fmt.Fprintf(w, "error_code: %s\n", ce.Code)
		_, _ = fmt.Fprintln(w, ce.Msg)
	} else {
		// Fallback for non-CheckError errors (should not happen in practice)
		_, _ = fmt.Fprintln(w, err.Error())
	}
}
