package config

import "time"

// Config is the in-memory representation of a provider catalog. It is
// constructed once at load time and read-only afterwards, so a single Config
// can be shared across any number of concurrent requests.
type Config struct {
	Providers map[string]Provider `koanf:"providers"`
}

// Provider describes a named external API service: its base URL, the
// default header templates applied to every request, and its endpoints.
type Provider struct {
	BaseURL   string              `koanf:"base_url" validate:"required,url"`
	Headers   map[string]string   `koanf:"headers"`
	Endpoints map[string]Endpoint `koanf:"endpoints"`
	Timeout   time.Duration       `koanf:"timeout"`
}

// Endpoint describes a single operation of a provider. Path, header values,
// query parameter values and the body are template strings rendered against
// the caller's variables at request time.
type Endpoint struct {
	Path         string            `koanf:"path" validate:"required"`
	Method       string            `koanf:"method" validate:"required"`
	BodyTemplate string            `koanf:"body_template"`
	QueryParams  map[string]string `koanf:"query_params"`
}

// Provider returns the named provider configuration.
func (c *Config) Provider(name string) (Provider, error) {
	provider, ok := c.Providers[name]
	if !ok {
		return Provider{}, &ProviderNotFoundError{Name: name}
	}
	return provider, nil
}

// Endpoint returns the named endpoint of the named provider.
func (c *Config) Endpoint(provider, endpoint string) (Endpoint, error) {
	p, err := c.Provider(provider)
	if err != nil {
		return Endpoint{}, err
	}
	ep, ok := p.Endpoints[endpoint]
	if !ok {
		return Endpoint{}, &EndpointNotFoundError{Provider: provider, Name: endpoint}
	}
	return ep, nil
}
