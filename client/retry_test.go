package client

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendChat(t *testing.T, ctx context.Context, c *Client) (*Response, error) {
	t.Helper()
	b, err := c.Request("testapi", "chat")
	require.NoError(t, err)
	b.Var("API_KEY", "secret").Var("message", "hi")
	return b.Send(ctx)
}

func TestRetryExhaustsBudget(t *testing.T) {
	transportErr := errors.New("connection refused")
	transport := &countingTransport{fn: func(int, *http.Request) (*http.Response, error) {
		return nil, transportErr
	}}
	c := testClient(t, &Config{
		Transport:  transport,
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	})

	resp, err := sendChat(t, context.Background(), c)
	assert.Nil(t, resp)
	require.Error(t, err)

	assert.Equal(t, 4, transport.calls(), "maxRetries=3 means exactly 4 attempts")

	var clientErr ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, RetriesExhaustedError, clientErr.Type())
	assert.True(t, errors.Is(err, transportErr), "last transport error must be preserved")
	assert.Contains(t, err.Error(), "4 attempts")
}

func TestRetryStopsOnFirstSuccess(t *testing.T) {
	transport := &countingTransport{fn: func(call int, _ *http.Request) (*http.Response, error) {
		if call < 2 {
			return nil, errors.New("timeout")
		}
		return okResponse(`{"ok": true}`), nil
	}}
	c := testClient(t, &Config{
		Transport:  transport,
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	})

	resp, err := sendChat(t, context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, 3, transport.calls(), "two failures then success means exactly 3 attempts")
}

func TestHTTPErrorStatusIsNotRetried(t *testing.T) {
	tests := []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway}

	for _, status := range tests {
		t.Run(http.StatusText(status), func(t *testing.T) {
			transport := &countingTransport{fn: func(int, *http.Request) (*http.Response, error) {
				return statusResponse(status, "error body"), nil
			}}
			c := testClient(t, &Config{
				Transport:  transport,
				MaxRetries: 3,
				RetryDelay: time.Millisecond,
			})

			resp, err := sendChat(t, context.Background(), c)
			require.NoError(t, err, "HTTP error statuses are a successful send")
			assert.Equal(t, status, resp.StatusCode())
			assert.False(t, resp.IsSuccess())
			assert.Equal(t, 1, transport.calls(), "HTTP error statuses must not be retried")
		})
	}
}

func TestZeroMaxRetriesMeansSingleAttempt(t *testing.T) {
	transport := &countingTransport{fn: func(int, *http.Request) (*http.Response, error) {
		return nil, errors.New("unreachable")
	}}
	c := testClient(t, &Config{Transport: transport, MaxRetries: 0})

	_, err := sendChat(t, context.Background(), c)
	require.Error(t, err)
	assert.Equal(t, 1, transport.calls())

	var clientErr ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, RetriesExhaustedError, clientErr.Type())
}

func TestRetryDelayIsAppliedBetweenAttempts(t *testing.T) {
	transport := &countingTransport{fn: func(int, *http.Request) (*http.Response, error) {
		return nil, errors.New("down")
	}}
	delay := 20 * time.Millisecond
	c := testClient(t, &Config{
		Transport:  transport,
		MaxRetries: 2,
		RetryDelay: delay,
	})

	start := time.Now()
	_, err := sendChat(t, context.Background(), c)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Equal(t, 3, transport.calls())
	// Two inter-attempt delays, no delay after the final attempt.
	assert.GreaterOrEqual(t, elapsed, 2*delay)
}

func TestRetryCanceledDuringDelay(t *testing.T) {
	transport := &countingTransport{fn: func(int, *http.Request) (*http.Response, error) {
		return nil, errors.New("down")
	}}
	c := testClient(t, &Config{
		Transport:  transport,
		MaxRetries: 5,
		RetryDelay: time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := sendChat(t, ctx, c)
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Equal(t, 1, transport.calls())
	case <-time.After(5 * time.Second):
		t.Fatal("send did not abort on cancellation")
	}
}

func TestSuccessResponseIsReturnedImmediately(t *testing.T) {
	transport := &countingTransport{fn: func(int, *http.Request) (*http.Response, error) {
		return okResponse(`{"id": 1}`), nil
	}}
	c := testClient(t, &Config{Transport: transport, MaxRetries: 3})

	resp, err := sendChat(t, context.Background(), c)
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())
	assert.Equal(t, 1, transport.calls())
}

func TestDescriptorIdenticalAcrossAttempts(t *testing.T) {
	transport := &countingTransport{fn: func(call int, _ *http.Request) (*http.Response, error) {
		if call < 2 {
			return nil, errors.New("flaky")
		}
		return okResponse(""), nil
	}}
	c := testClient(t, &Config{
		Transport:  transport,
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
	})

	_, err := sendChat(t, context.Background(), c)
	require.NoError(t, err)

	require.Len(t, transport.bodies, 3)
	for i := 1; i < len(transport.bodies); i++ {
		assert.Equal(t, transport.bodies[0], transport.bodies[i], "all attempts must send the same body")
		assert.Equal(t, transport.requests[0].URL.String(), transport.requests[i].URL.String())
	}
}
