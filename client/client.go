package client

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/callixhq/callix/config"
	"github.com/callixhq/callix/logger"
	"github.com/callixhq/callix/template"
	"github.com/callixhq/callix/trace"
)

// Client issues templated requests against the providers of a catalog. It
// is safe for concurrent use: the catalog is read-only and every request
// builder is call-local.
type Client struct {
	catalog     *config.Config
	transport   Doer
	maxRetries  int
	retryDelay  time.Duration
	cfg         *Config
	logger      logger.Logger
	traceHeader string
	limiter     *rate.Limiter
}

// New creates a Client. A nil cfg uses DefaultConfig. The provider catalog
// is resolved from cfg.Source, then cfg.ConfigPath, then the embedded
// defaults.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	catalog := cfg.Source
	var err error
	switch {
	case catalog != nil:
	case cfg.ConfigPath != "":
		catalog, err = config.Load(cfg.ConfigPath)
	default:
		catalog, err = config.Default()
	}
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	transport := cfg.Transport
	if transport == nil {
		transport = &http.Client{Timeout: timeout}
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}

	traceHeader := cfg.TraceIDHeader
	if traceHeader == "" {
		traceHeader = trace.HeaderXRequestID
	}
	if cfg.DisableTraceID {
		traceHeader = ""
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(cfg.RateLimit, burst)
	}

	return &Client{
		catalog:     catalog,
		transport:   transport,
		maxRetries:  cfg.MaxRetries,
		retryDelay:  cfg.RetryDelay,
		cfg:         cfg,
		logger:      log,
		traceHeader: traceHeader,
		limiter:     limiter,
	}, nil
}

// Catalog exposes the loaded provider catalog.
func (c *Client) Catalog() *config.Config { return c.catalog }

// Request returns a builder for the named provider endpoint. Unknown names
// fail here, before any variables are attached.
func (c *Client) Request(provider, endpoint string) (*RequestBuilder, error) {
	providerCfg, err := c.catalog.Provider(provider)
	if err != nil {
		return nil, err
	}
	endpointCfg, ok := providerCfg.Endpoints[endpoint]
	if !ok {
		return nil, &config.EndpointNotFoundError{Provider: provider, Name: endpoint}
	}

	return &RequestBuilder{
		client:   c,
		provider: providerCfg,
		endpoint: endpointCfg,
		vars:     template.Vars{},
		headers:  map[string]string{},
	}, nil
}
