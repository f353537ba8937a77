/*
Package config handles loading and saving marketing-support configuration.

Configuration is stored in ~/.marketing-support.json. Environment variables
(optionally from a .env file in the working directory) override the file, and
the API key is only ever read from the environment.

Schema:
  {
    "backend": "gemini",
    "contentModel": "gemini-3-pro-preview",
    "imageModel": "gemini-2.5-flash-image",
    "dataDir": "/home/me/.marketing-support",
    "listen": "127.0.0.1:8787",
    "logLevel": "warn",
    "openaiBaseUrl": ""
  }
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/khanglvm/marketing-support/internal/gateway"
)

// Model backends.
const (
	BackendGemini = "gemini"
	BackendOpenAI = "openai"
)

// DefaultListen is the address of the local HTTP API.
const DefaultListen = "127.0.0.1:8787"

// Config represents the root configuration structure.
type Config struct {
	// Backend selects the model provider: "gemini" or "openai".
	Backend string `json:"backend" env:"MS_BACKEND"`

	// ContentModel generates marketing plans.
	ContentModel string `json:"contentModel" env:"MS_CONTENT_MODEL"`

	// ImageModel generates product visuals and logos.
	ImageModel string `json:"imageModel" env:"MS_IMAGE_MODEL"`

	// DataDir holds the local store. Empty means ~/.marketing-support.
	DataDir string `json:"dataDir,omitempty" env:"MS_DATA_DIR"`

	// Listen is the address used by `serve`.
	Listen string `json:"listen" env:"MS_LISTEN"`

	// LogLevel is one of debug, info, warn, error, disabled.
	LogLevel string `json:"logLevel" env:"MS_LOG_LEVEL"`

	// OpenAIBaseURL points the openai backend at a compatible server.
	OpenAIBaseURL string `json:"openaiBaseUrl,omitempty" env:"OPENAI_BASE_URL"`

	// APIKey authenticates with the backend. Never written to disk.
	APIKey string `json:"-" env:"API_KEY"`
}

// NewConfig creates a configuration with default values.
func NewConfig() *Config {
	return &Config{
		Backend:      BackendGemini,
		ContentModel: gateway.DefaultContentModel,
		ImageModel:   gateway.DefaultImageModel,
		Listen:       DefaultListen,
		LogLevel:     "warn",
	}
}

// GetDefaultConfigPath returns the path to ~/.marketing-support.json
func GetDefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".marketing-support.json"), nil
}

// Resolve builds the effective configuration: defaults, then the file at path
// if it exists, then the environment. The result is validated.
func Resolve(path string) (*Config, error) {
	cfg, err := LoadFrom(path)
	if err != nil {
		if _, ok := err.(*ConfigNotFoundError); !ok {
			return nil, err
		}
		cfg = NewConfig()
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
