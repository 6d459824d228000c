package config

import (
	"fmt"
	"time"

	"github.com/qiwenzhou/mytime-backend/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Analytics.validate(); err != nil {
		return fmt.Errorf("analytics: %w", err)
	}

	return nil
}

func (a *AnalyticsConfig) validate() error {
	if _, err := time.LoadLocation(a.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", a.Timezone, err)
	}
	if _, ok := domain.ParseSensitivity(a.DefaultSensitivity); !ok {
		return fmt.Errorf("invalid default_sensitivity %q (want loose, standard or strict)", a.DefaultSensitivity)
	}
	if a.SuggestionLimit <= 0 {
		return fmt.Errorf("suggestion_limit must be > 0 (got %d)", a.SuggestionLimit)
	}
	return nil
}
