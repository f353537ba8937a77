package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/khanglvm/marketing-support/internal/web"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the 'serve' command for running the local API.
func NewServeCmd(flags *globalFlags) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local JSON API for a browser front end",
		Long: `Start a local HTTP server exposing the application over a JSON API:
plan generation, product visuals, logos, history, settings and the activity log.
Counters are available at /metrics.

The server is meant for a single local user and binds to 127.0.0.1 by default.`,
		Example: `  marketing-support serve
  marketing-support serve --listen 127.0.0.1:9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags, listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (overrides config)")
	return cmd
}

// runServe runs until SIGINT/SIGTERM/SIGQUIT, then shuts down gracefully.
func runServe(ctx context.Context, flags *globalFlags, listen string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	s, err := openSession(ctx, flags, true)
	if err != nil {
		return err
	}
	defer s.Close()

	if listen == "" {
		listen = s.cfg.Listen
	}

	srv := web.New(s.app, s.metrics)
	fmt.Fprintf(os.Stderr, "Serving on http://%s (Ctrl-C to stop)\n", listen)
	if err := srv.ListenAndServe(ctx, listen); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	log.Info().Msg("shutdown complete")
	return nil
}
