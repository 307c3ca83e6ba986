// Package errors provides structured, actionable errors for qstate's
// supporting infrastructure (configuration, bridge protocol, schema
// construction). Core engine failures stay sentinel errors checked
// with errors.Is; this package is for conditions a human operator has
// to fix. A structured error may wrap a sentinel as its cause so both
// checks work.
package errors

import (
	"fmt"
	"strings"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig   Category = "config"
	CategoryProtocol Category = "protocol"
	CategorySchema   Category = "schema"
)

// Error is a structured error with a stable code, a category, and an
// optional suggestion for fixing the condition.
type Error struct {
	// Code is a unique error identifier (e.g., "C001").
	Code string

	// Category is the error type (config, protocol, schema).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is the offending value or a longer explanation.
	Detail string

	// Suggestion describes how to fix the error.
	Suggestion string

	// Cause is the underlying error, if any.
	Cause error
}

// New creates a structured error.
func New(code string, category Category, message string) *Error {
	return &Error{Code: code, Category: category, Message: message}
}

// WithDetail attaches the offending value or a longer explanation.
func (e *Error) WithDetail(detail string) *Error {
	e.Detail = detail
	return e
}

// WithSuggestion attaches a fix suggestion.
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestion = suggestion
	return e
}

// WithCause attaches the underlying error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s]: %s", e.Code, e.Category, e.Message)
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Format renders the error for terminal output, suggestion included.
func (e *Error) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ERROR %s: %s\n", e.Code, e.Message)
	if e.Detail != "" {
		fmt.Fprintf(&b, "\n  %s\n", e.Detail)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, "\n  caused by: %v\n", e.Cause)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  hint: %s\n", e.Suggestion)
	}
	return b.String()
}
