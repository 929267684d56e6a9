package client

import (
	"fmt"
	"time"
)

// ErrorType identifies the category of a client error.
type ErrorType string

const (
	// TransportError indicates a network-level failure (connection error,
	// timeout) reported by the transport.
	TransportError ErrorType = "transport"
	// RetriesExhaustedError indicates the retry budget was spent without a
	// transport-level success.
	RetriesExhaustedError ErrorType = "retries_exhausted"
	// InvalidMethodError indicates an endpoint method outside the supported
	// set.
	InvalidMethodError ErrorType = "invalid_method"
	// VariableError indicates a request variable that could not be
	// converted into a template value.
	VariableError ErrorType = "variable"
	// BodyReadError indicates the response body could not be read, or was
	// already consumed.
	BodyReadError ErrorType = "body_read"
	// DecodeError indicates the response body could not be decoded into the
	// requested shape.
	DecodeError ErrorType = "decode"
)

// ClientError is the common interface of errors produced by this package.
//
//nolint:revive // ClientError is intentionally named for clarity in external API usage
type ClientError interface {
	error
	Type() ErrorType
}

// transportError wraps a network-level failure from the transport.
type transportError struct {
	message string
	err     error
}

// NewTransportError creates a transport-level error.
func NewTransportError(message string, err error) ClientError {
	return &transportError{message: message, err: err}
}

func (e *transportError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("transport error: %s: %v", e.message, e.err)
	}
	return fmt.Sprintf("transport error: %s", e.message)
}

func (e *transportError) Type() ErrorType { return TransportError }
func (e *transportError) Unwrap() error   { return e.err }

// retriesExhaustedError wraps the last transport error after the retry
// budget is spent.
type retriesExhaustedError struct {
	attempts int
	delay    time.Duration
	err      error
}

// NewRetriesExhaustedError creates an error reporting a spent retry budget.
func NewRetriesExhaustedError(attempts int, delay time.Duration, err error) ClientError {
	return &retriesExhaustedError{attempts: attempts, delay: delay, err: err}
}

func (e *retriesExhaustedError) Error() string {
	return fmt.Sprintf("retries exhausted after %d attempts (delay %s): %v", e.attempts, e.delay, e.err)
}

func (e *retriesExhaustedError) Type() ErrorType { return RetriesExhaustedError }
func (e *retriesExhaustedError) Unwrap() error   { return e.err }

// Attempts reports how many attempts were made before giving up.
func (e *retriesExhaustedError) Attempts() int { return e.attempts }

// invalidMethodError reports an endpoint method outside the supported set.
type invalidMethodError struct {
	method string
}

// NewInvalidMethodError creates an error for an unsupported HTTP method.
func NewInvalidMethodError(method string) ClientError {
	return &invalidMethodError{method: method}
}

func (e *invalidMethodError) Error() string {
	return fmt.Sprintf("invalid HTTP method: %s", e.method)
}

func (e *invalidMethodError) Type() ErrorType { return InvalidMethodError }

// Method returns the rejected method string.
func (e *invalidMethodError) Method() string { return e.method }

// variableError reports a request variable that could not be serialized.
type variableError struct {
	name string
	err  error
}

// NewVariableError creates an error for an unserializable request variable.
func NewVariableError(name string, err error) ClientError {
	return &variableError{name: name, err: err}
}

func (e *variableError) Error() string {
	return fmt.Sprintf("variable %q: %v", e.name, e.err)
}

func (e *variableError) Type() ErrorType { return VariableError }
func (e *variableError) Unwrap() error   { return e.err }

// bodyError reports a failed or repeated response body consumption.
type bodyError struct {
	errType ErrorType
	message string
	err     error
}

// NewBodyReadError creates an error for a failed body read.
func NewBodyReadError(message string, err error) ClientError {
	return &bodyError{errType: BodyReadError, message: message, err: err}
}

// NewDecodeError creates an error for a failed body decode.
func NewDecodeError(message string, err error) ClientError {
	return &bodyError{errType: DecodeError, message: message, err: err}
}

func (e *bodyError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.errType, e.message, e.err)
	}
	return fmt.Sprintf("%s error: %s", e.errType, e.message)
}

func (e *bodyError) Type() ErrorType { return e.errType }
func (e *bodyError) Unwrap() error   { return e.err }
