package client

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test constants to avoid string duplication
const testConnectionFailed = "connection failed"

func TestErrorTypeFormatting(t *testing.T) {
	tests := []struct {
		name     string
		error    ClientError
		contains []string
	}{
		{
			name:     "transport error without wrapped error",
			error:    NewTransportError(testConnectionFailed, nil),
			contains: []string{"transport error", testConnectionFailed},
		},
		{
			name:     "transport error with wrapped error",
			error:    NewTransportError(testConnectionFailed, errors.New("underlying issue")),
			contains: []string{"transport error", testConnectionFailed, "underlying issue"},
		},
		{
			name:     "retries exhausted error",
			error:    NewRetriesExhaustedError(4, time.Second, errors.New("timeout")),
			contains: []string{"retries exhausted", "4 attempts", "1s", "timeout"},
		},
		{
			name:     "invalid method error",
			error:    NewInvalidMethodError("FETCH"),
			contains: []string{"invalid HTTP method", "FETCH"},
		},
		{
			name:     "variable error",
			error:    NewVariableError("payload", errors.New("not serializable")),
			contains: []string{"payload", "not serializable"},
		},
		{
			name:     "body read error",
			error:    NewBodyReadError("reading body", errors.New("broken pipe")),
			contains: []string{"body_read error", "reading body", "broken pipe"},
		},
		{
			name:     "decode error",
			error:    NewDecodeError("decoding JSON body", errors.New("unexpected token")),
			contains: []string{"decode error", "decoding JSON body", "unexpected token"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.error.Error()
			for _, expected := range tt.contains {
				assert.Contains(t, msg, expected, "error message should contain: %s", expected)
			}
		})
	}
}

func TestErrorTypeIdentification(t *testing.T) {
	tests := []struct {
		name     string
		error    ClientError
		expected ErrorType
	}{
		{name: "transport", error: NewTransportError("x", nil), expected: TransportError},
		{name: "retries exhausted", error: NewRetriesExhaustedError(1, 0, nil), expected: RetriesExhaustedError},
		{name: "invalid method", error: NewInvalidMethodError("x"), expected: InvalidMethodError},
		{name: "variable", error: NewVariableError("x", nil), expected: VariableError},
		{name: "body read", error: NewBodyReadError("x", nil), expected: BodyReadError},
		{name: "decode", error: NewDecodeError("x", nil), expected: DecodeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.error.Type())
		})
	}
}

func TestErrorUnwrapping(t *testing.T) {
	t.Run("transport error unwrapping", func(t *testing.T) {
		underlying := errors.New("connection refused")
		err := NewTransportError("failed to connect", underlying)

		assert.True(t, errors.Is(err, underlying))

		var target *transportError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, "failed to connect", target.message)
	})

	t.Run("retries exhausted preserves transport error chain", func(t *testing.T) {
		underlying := errors.New("dial tcp: timeout")
		transportErr := NewTransportError("request failed", underlying)
		err := NewRetriesExhaustedError(3, time.Second, transportErr)

		assert.True(t, errors.Is(err, underlying))

		var target *retriesExhaustedError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, 3, target.Attempts())
	})

	t.Run("nil wrapped error", func(t *testing.T) {
		err := NewTransportError("no cause", nil)
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			assert.Nil(t, unwrapper.Unwrap())
		} else {
			t.Fatal("transportError should implement Unwrap()")
		}
	})
}

func TestInvalidMethodAccessor(t *testing.T) {
	err := NewInvalidMethodError("brew")

	var target *invalidMethodError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "brew", target.Method())
}
