package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/khanglvm/marketing-support/internal/config"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the 'config' command group.
func NewConfigCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create and inspect configuration",
		Long: `Configuration lives in ~/.marketing-support.json. Environment variables
override it: API_KEY, MS_BACKEND, MS_CONTENT_MODEL, MS_IMAGE_MODEL, MS_DATA_DIR,
MS_LISTEN, MS_LOG_LEVEL and OPENAI_BASE_URL. A .env file in the working
directory is read too. The API key is only ever read from the environment.`,
	}

	cmd.AddCommand(newConfigInitCmd(flags))
	cmd.AddCommand(newConfigShowCmd(flags))
	cmd.AddCommand(newConfigPathCmd(flags))
	return cmd
}

func configPath(flags *globalFlags) (string, error) {
	if flags.configPath != "" {
		return flags.configPath, nil
	}
	return config.GetDefaultConfigPath()
}

func newConfigInitCmd(flags *globalFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(flags)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists: %s\n💡 Use --force to overwrite (a .bak copy is kept)", path)
			}

			if err := config.Save(config.NewConfig(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
			fmt.Fprintln(cmd.OutOrStdout(), "Set API_KEY in your environment or a .env file before generating.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config")
	return cmd
}

func newConfigShowCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := resolveConfig(flags)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "# %s (overridden by environment)\n", path)
			if err := writeJSON(w, cfg); err != nil {
				return err
			}
			if cfg.APIKey != "" {
				fmt.Fprintln(w, "API key: set")
			} else {
				fmt.Fprintln(w, "API key: not set")
			}
			return writeStorageStatus(cmd.Context(), w, cfg)
		},
	}
}

// writeStorageStatus reports where local data lives and how many keys it holds.
func writeStorageStatus(ctx context.Context, w io.Writer, cfg *config.Config) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if !store.Persistent() {
		fmt.Fprintln(w, "Storage: memory only (nothing is saved)")
		return nil
	}
	keys, err := store.Keys(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Storage: %s (%d keys)\n", store.Path(), len(keys))
	return nil
}

func newConfigPathCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(flags)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
