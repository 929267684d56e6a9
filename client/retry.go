package client

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

// executorState tracks the retry executor through its lifecycle.
type executorState int

const (
	stateIdle executorState = iota
	stateAttempting
	stateSucceeded
	stateExhausted
)

// executor drives repeated attempts of an assembled descriptor against the
// transport. Transport success with any HTTP status, including 4xx/5xx, is
// overall success; only transport-level failures are retried. The fixed
// delay is applied between attempts, never after the final one.
type executor struct {
	client *Client
	state  executorState
}

func newExecutor(c *Client) *executor {
	return &executor{client: c, state: stateIdle}
}

// run makes up to maxRetries+1 attempts and returns the first response or,
// once the budget is spent, an error wrapping the last transport failure.
func (e *executor) run(ctx context.Context, desc *RequestDescriptor) (*Response, error) {
	e.state = stateAttempting

	maxAttempts := e.client.maxRetries + 1
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := e.attempt(ctx, desc, attempt)
		if err == nil {
			e.state = stateSucceeded
			return resp, nil
		}
		lastErr = err

		if attempt == maxAttempts {
			break
		}

		e.client.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", maxAttempts).
			Dur("retry_delay", e.client.retryDelay).
			Str("url", desc.URL).
			Msg("request attempt failed, retrying")

		if err := e.wait(ctx); err != nil {
			e.state = stateExhausted
			return nil, NewTransportError("canceled while waiting to retry", err)
		}
	}

	e.state = stateExhausted
	return nil, NewRetriesExhaustedError(maxAttempts, e.client.retryDelay, lastErr)
}

// attempt sends the descriptor once. The request is built fresh per attempt
// since the transport consumes the body reader.
func (e *executor) attempt(ctx context.Context, desc *RequestDescriptor, attempt int) (*Response, error) {
	if e.client.limiter != nil {
		if err := e.client.limiter.Wait(ctx); err != nil {
			return nil, NewTransportError("rate limiter wait aborted", err)
		}
	}

	var body io.Reader = http.NoBody
	if desc.HasBody {
		// A fresh reader per attempt; net/http also derives Content-Length
		// and GetBody from it.
		body = strings.NewReader(desc.Body)
	}

	req, err := http.NewRequestWithContext(ctx, desc.Method, desc.URL, body)
	if err != nil {
		return nil, NewTransportError("building request", err)
	}
	for key, value := range desc.Headers {
		req.Header.Set(key, value)
	}

	e.client.logRequest(desc, attempt)

	start := time.Now()
	resp, err := e.client.transport.Do(req)
	if err != nil {
		return nil, NewTransportError("request failed", err)
	}

	e.client.logResponse(desc, resp.StatusCode, time.Since(start))

	return newResponse(resp), nil
}

// wait blocks for the fixed retry delay or until the context is done.
func (e *executor) wait(ctx context.Context) error {
	if e.client.retryDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(e.client.retryDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
