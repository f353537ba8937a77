package config

import (
	"fmt"
	"strings"
)

var logLevels = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}

// Validate checks that cfg can be used to build a gateway.
func Validate(cfg *Config) error {
	switch cfg.Backend {
	case BackendGemini, BackendOpenAI:
	default:
		return fmt.Errorf("unknown backend %q (use %s or %s)", cfg.Backend, BackendGemini, BackendOpenAI)
	}

	if strings.TrimSpace(cfg.ContentModel) == "" {
		return fmt.Errorf("contentModel must not be empty")
	}
	if strings.TrimSpace(cfg.ImageModel) == "" {
		return fmt.Errorf("imageModel must not be empty")
	}
	if strings.TrimSpace(cfg.Listen) == "" {
		return fmt.Errorf("listen address must not be empty")
	}

	if cfg.LogLevel != "" && !contains(logLevels, strings.ToLower(cfg.LogLevel)) {
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}

	return nil
}

// RequireAPIKey reports a missing key with a hint on where to set it.
func RequireAPIKey(cfg *Config) error {
	if cfg.APIKey == "" {
		return &MissingAPIKeyError{Backend: cfg.Backend}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
