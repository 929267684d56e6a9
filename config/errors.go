package config

import "fmt"

// ConfigError reports an unreadable or malformed configuration source.
//
//nolint:revive // ConfigError is intentionally named for clarity in external API usage
type ConfigError struct {
	Source  string // file path or "bytes"/"default" for in-memory sources
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config %s: %s: %v", e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("config %s: %s", e.Source, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *ConfigError) Unwrap() error { return e.Err }

// ProviderNotFoundError reports a lookup of a provider name that the loaded
// configuration does not define.
type ProviderNotFoundError struct {
	Name string
}

// Error implements the error interface.
func (e *ProviderNotFoundError) Error() string {
	return fmt.Sprintf("provider not found: %s", e.Name)
}

// EndpointNotFoundError reports a lookup of an endpoint name that the
// provider does not define.
type EndpointNotFoundError struct {
	Provider string
	Name     string
}

// Error implements the error interface.
func (e *EndpointNotFoundError) Error() string {
	return fmt.Sprintf("endpoint not found: %s (provider %s)", e.Name, e.Provider)
}
