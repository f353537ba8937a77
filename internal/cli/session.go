package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/khanglvm/marketing-support/internal/config"
	"github.com/khanglvm/marketing-support/internal/gateway"
	"github.com/khanglvm/marketing-support/internal/history"
	"github.com/khanglvm/marketing-support/internal/logging"
	"github.com/khanglvm/marketing-support/internal/metrics"
	"github.com/khanglvm/marketing-support/internal/shell"
	"github.com/khanglvm/marketing-support/internal/storage"
	"github.com/rs/zerolog/log"
)

// newModel builds the model backend. Tests replace it.
var newModel = defaultModel

// defaultModel builds the backend selected by cfg.
func defaultModel(ctx context.Context, cfg *config.Config) (gateway.Model, error) {
	if err := config.RequireAPIKey(cfg); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case config.BackendOpenAI:
		return gateway.NewOpenAIModel(cfg.APIKey, cfg.OpenAIBaseURL)
	default:
		return gateway.NewGeminiModel(ctx, cfg.APIKey, nil)
	}
}

// session is everything one command invocation needs.
type session struct {
	cfg     *config.Config
	store   *storage.SQLiteStorage
	metrics *metrics.Registry
	app     *shell.App
}

// resolveConfig loads the effective configuration and applies flag overrides.
func resolveConfig(flags *globalFlags) (*config.Config, string, error) {
	path := flags.configPath
	if path == "" {
		p, err := config.GetDefaultConfigPath()
		if err != nil {
			return nil, "", err
		}
		path = p
	}

	cfg, err := config.Resolve(path)
	if err != nil {
		return nil, path, err
	}
	if flags.dataDir != "" {
		cfg.DataDir = flags.dataDir
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	return cfg, path, nil
}

// openSession resolves config, sets up logging, opens the local store and
// builds the application shell. withModel also connects the model backend.
func openSession(ctx context.Context, flags *globalFlags, withModel bool) (*session, error) {
	cfg, _, err := resolveConfig(flags)
	if err != nil {
		return nil, err
	}
	if err := logging.Setup(cfg.LogLevel, os.Stderr, !flags.logJSON); err != nil {
		return nil, err
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	var gen shell.Generator = unavailableGenerator{}
	if withModel {
		model, err := newModel(ctx, cfg)
		if err != nil {
			store.Close()
			return nil, err
		}
		gw, err := gateway.New(model, gateway.Options{
			ContentModel: cfg.ContentModel,
			ImageModel:   cfg.ImageModel,
		})
		if err != nil {
			store.Close()
			return nil, err
		}
		gen = gw
	}

	reg := metrics.NewRegistry()
	app := shell.New(ctx, gen, history.NewStore(store), history.NewSettings(store), shell.Options{Metrics: reg})

	return &session{cfg: cfg, store: store, metrics: reg, app: app}, nil
}

// openStore opens the local store under the configured data directory. A store
// that cannot be opened degrades to memory with a warning.
func openStore(cfg *config.Config) (*storage.SQLiteStorage, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		var err error
		if dataDir, err = storage.DefaultDataDir(); err != nil {
			return nil, err
		}
	}
	store := storage.NewStorage(dataDir)
	if err := store.Init(); err != nil {
		log.Warn().Err(err).Msg("history will not be saved this session")
	}
	return store, nil
}

func (s *session) Close() error {
	return s.store.Close()
}

// unavailableGenerator backs sessions that only read local data.
type unavailableGenerator struct{}

var errNoModel = errors.New("this command does not connect to the model")

func (unavailableGenerator) GenerateContent(context.Context, gateway.ContentInput) (*gateway.MarketingPlan, error) {
	return nil, errNoModel
}

func (unavailableGenerator) GenerateProductVisual(context.Context, string, *gateway.InlineImage) (string, error) {
	return "", errNoModel
}

func (unavailableGenerator) GenerateLogo(context.Context, string, gateway.LogoStyle) (string, error) {
	return "", errNoModel
}

// outPath joins dir and name, defaulting dir to the working directory.
func outPath(dir, name string) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name)
}
