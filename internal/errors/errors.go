// Package errors carries request and service failures through the HTTP
// layer. An Error separates what failed (Component, Op) from why (Message,
// wrapped cause) and remembers whether the client or the service is at
// fault, which is what the handlers need to pick a status code.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error for status mapping.
type Kind int

const (
	// Internal failures are the service's fault.
	Internal Kind = iota
	// Invalid failures are malformed or unsatisfiable requests.
	Invalid
	// NotFound failures reference a resource that does not exist.
	NotFound
)

// Error is a classified service error.
type Error struct {
	Kind      Kind
	Component string
	Op        string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Component != "" {
		b.WriteString(e.Component)
		b.WriteString(": ")
	}
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Err != nil {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error { return e.Err }

// Invalidf builds a client-fault error with a formatted message.
func Invalidf(component, op, format string, args ...interface{}) *Error {
	return &Error{
		Kind:      Invalid,
		Component: component,
		Op:        op,
		Message:   fmt.Sprintf(format, args...),
	}
}

// NotFoundf builds a missing-resource error with a formatted message.
func NotFoundf(component, op, format string, args ...interface{}) *Error {
	return &Error{
		Kind:      NotFound,
		Component: component,
		Op:        op,
		Message:   fmt.Sprintf(format, args...),
	}
}

// Wrap attaches component and operation context to a service-fault error.
// It returns nil for a nil cause.
func Wrap(err error, component, op, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Kind:      Internal,
		Component: component,
		Op:        op,
		Message:   message,
		Err:       err,
	}
}

// KindOf extracts the classification from an error chain, defaulting to
// Internal for plain errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}
