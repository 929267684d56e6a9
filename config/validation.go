package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks structural constraints of a loaded catalog: every provider
// needs a well-formed base URL and every endpoint needs a path and a method.
// Template contents are not checked here; placeholders are only resolved
// against variables at request time.
func Validate(cfg *Config) error {
	for name, provider := range cfg.Providers {
		if err := validate.Struct(provider); err != nil {
			return fmt.Errorf("provider %s: %w", name, err)
		}
		for epName, endpoint := range provider.Endpoints {
			if err := validate.Struct(endpoint); err != nil {
				return fmt.Errorf("provider %s, endpoint %s: %w", name, epName, err)
			}
		}
	}
	return nil
}
