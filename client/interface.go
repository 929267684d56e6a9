// Package client implements the request pipeline: it combines a provider
// catalog with caller-supplied variables, renders the endpoint's templates
// into a concrete HTTP request, executes it with fixed-delay retries, and
// wraps the transport response.
package client

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/callixhq/callix/config"
	"github.com/callixhq/callix/logger"
	"github.com/callixhq/callix/trace"
)

// HeaderXRequestID is the default header name used to stamp outbound
// requests with a request ID.
const HeaderXRequestID = trace.HeaderXRequestID

// Doer is the transport collaborator boundary. The default implementation
// is *http.Client; tests and callers may substitute their own.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the client configuration.
type Config struct {
	// Timeout is the per-request transport timeout. Zero falls back to 30s.
	Timeout time.Duration
	// MaxRetries is the number of additional attempts after the first.
	// Zero means a single attempt.
	MaxRetries int
	// RetryDelay is the fixed delay between attempts.
	RetryDelay time.Duration
	// ConfigPath points at a YAML provider catalog. Ignored when Source is
	// set; when both are empty the embedded default catalog is used.
	ConfigPath string
	// Source is an already-loaded provider catalog.
	Source *config.Config
	// DefaultHeaders are applied to every request below provider headers.
	// Values are sent as-is, not rendered.
	DefaultHeaders map[string]string
	// Logger receives request/response events. Defaults to a nop logger.
	Logger logger.Logger
	// Transport overrides the HTTP transport. Defaults to an *http.Client
	// with Timeout applied.
	Transport Doer
	// TraceIDHeader configures the header used for request ID propagation
	// (default: X-Request-ID).
	TraceIDHeader string
	// DisableTraceID turns off request ID stamping.
	DisableTraceID bool
	// RateLimit caps outbound attempts per second across the client.
	// Zero means unlimited.
	RateLimit rate.Limit
	// RateBurst is the limiter burst size (default 1 when RateLimit is set).
	RateBurst int
	// LogPayloads enables debug-level logging of headers and body payloads.
	LogPayloads bool
	// MaxPayloadLogBytes caps the number of body bytes logged when
	// LogPayloads is enabled (default 1024).
	MaxPayloadLogBytes int
}

const (
	defaultTimeout            = 30 * time.Second
	defaultMaxRetries         = 3
	defaultRetryDelay         = time.Second
	defaultMaxPayloadLogBytes = 1024
)

// DefaultConfig returns the stock client configuration: 30s timeout, 3
// retries with a 1s fixed delay, and the embedded default catalog.
func DefaultConfig() *Config {
	return &Config{
		Timeout:    defaultTimeout,
		MaxRetries: defaultMaxRetries,
		RetryDelay: defaultRetryDelay,
	}
}
