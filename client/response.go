package client

import (
	"encoding/json"
	"io"
	"net/http"
)

// Response is a thin wrapper over the transport response. Status and
// headers are always available; the body is a single-consumption stream, so
// exactly one of Text, Bytes or JSON may be called, once.
type Response struct {
	inner    *http.Response
	consumed bool
}

func newResponse(resp *http.Response) *Response {
	return &Response{inner: resp}
}

// StatusCode returns the HTTP status code.
func (r *Response) StatusCode() int { return r.inner.StatusCode }

// IsSuccess reports whether the status code is in the 2xx range. Error
// statuses are still a successful send; branching on them is the caller's
// responsibility.
func (r *Response) IsSuccess() bool {
	return r.inner.StatusCode >= 200 && r.inner.StatusCode < 300
}

// Header returns the first value of the named response header.
func (r *Response) Header(name string) string { return r.inner.Header.Get(name) }

// Headers returns all response headers.
func (r *Response) Headers() http.Header { return r.inner.Header }

// Text consumes the body and returns it as a string.
func (r *Response) Text() (string, error) {
	data, err := r.consume()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Bytes consumes the body and returns the raw bytes.
func (r *Response) Bytes() ([]byte, error) {
	return r.consume()
}

// JSON consumes the body and decodes it into v.
func (r *Response) JSON(v any) error {
	data, err := r.consume()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return NewDecodeError("decoding JSON body", err)
	}
	return nil
}

func (r *Response) consume() ([]byte, error) {
	if r.consumed {
		return nil, NewBodyReadError("body already consumed", nil)
	}
	r.consumed = true
	defer r.inner.Body.Close()

	data, err := io.ReadAll(r.inner.Body)
	if err != nil {
		return nil, NewBodyReadError("reading body", err)
	}
	return data, nil
}
