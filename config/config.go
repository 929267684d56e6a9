// Package config loads and holds the declarative provider catalog: base
// URLs, default header templates and endpoint definitions. Configuration is
// layered the same way regardless of source: embedded defaults first, then
// an optional YAML document, then CALLIX_-prefixed environment overrides.
package config

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	envprovider "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces environment variable overrides. Double underscores
// separate key segments so single underscores survive inside segment names,
// e.g. CALLIX_PROVIDERS__OPENAI__BASE_URL=https://proxy.internal.
const envPrefix = "CALLIX_"

//go:embed default-config.yaml
var defaultYAML []byte

var (
	defaultOnce sync.Once
	defaultCfg  *Config
	defaultErr  error
)

// Load reads the provider catalog from a YAML file, layered on top of the
// embedded defaults and below environment overrides. The returned Config is
// read-only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultYAML), yaml.Parser()); err != nil {
		return nil, &ConfigError{Source: "default", Message: "malformed embedded defaults", Err: err}
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, &ConfigError{Source: path, Message: "cannot read configuration", Err: err}
	}

	return finish(k, path)
}

// LoadBytes reads the provider catalog from an in-memory YAML document. The
// embedded defaults are not layered underneath; the document stands alone.
func LoadBytes(data []byte) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return nil, &ConfigError{Source: "bytes", Message: "malformed configuration", Err: err}
	}

	return finish(k, "bytes")
}

// LoadMap reads the provider catalog from a nested map, for catalogs built
// programmatically rather than parsed from YAML. Keys follow the YAML
// schema ("providers" at the top). The embedded defaults are not layered
// underneath.
func LoadMap(data map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(data, "."), nil); err != nil {
		return nil, &ConfigError{Source: "map", Message: "malformed configuration", Err: err}
	}

	return finish(k, "map")
}

// Default returns the embedded default catalog (the well-known chat
// completion providers). It is loaded once and shared process-wide.
func Default() (*Config, error) {
	defaultOnce.Do(func() {
		k := koanf.New(".")
		if err := k.Load(rawbytes.Provider(defaultYAML), yaml.Parser()); err != nil {
			defaultErr = &ConfigError{Source: "default", Message: "malformed embedded defaults", Err: err}
			return
		}
		defaultCfg, defaultErr = finish(k, "default")
	})
	return defaultCfg, defaultErr
}

// finish applies environment overrides, unmarshals and validates.
func finish(k *koanf.Koanf, source string) (*Config, error) {
	err := k.Load(envprovider.Provider(".", envprovider.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			return strings.ReplaceAll(key, "__", "."), value
		},
	}), nil)
	if err != nil {
		return nil, &ConfigError{Source: source, Message: "cannot read environment overrides", Err: err}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, &ConfigError{Source: source, Message: "malformed configuration", Err: err}
	}

	if err := Validate(&cfg); err != nil {
		return nil, &ConfigError{Source: source, Message: "invalid configuration", Err: err}
	}

	return &cfg, nil
}
