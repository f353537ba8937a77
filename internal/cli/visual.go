package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewVisualCmd creates the 'visual' command.
func NewVisualCmd(flags *globalFlags) *cobra.Command {
	var id, outDir string

	cmd := &cobra.Command{
		Use:   "visual",
		Short: "Generate (or regenerate) the product visual for a saved plan",
		Long: `Generate a product visual for a plan from history, described from its
product name. The newest plan is used unless --id is given. The image is saved
as <product_name>.png and attached to the matching history entries.

Press Ctrl-C to cancel; a canceled visual is discarded.`,
		Example: `  marketing-support visual
  marketing-support visual --id 1700000000000 --out ./images`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runVisual(ctx, cmd.OutOrStdout(), flags, id, outDir)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "History entry id (default: newest)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default: current directory)")

	return cmd
}

func runVisual(ctx context.Context, w io.Writer, flags *globalFlags, id, outDir string) error {
	s, err := openSession(ctx, flags, true)
	if err != nil {
		return err
	}
	defer s.Close()

	items := s.app.History()
	if len(items) == 0 {
		return fmt.Errorf("no saved plans\n💡 Run 'marketing-support generate' first")
	}
	if id == "" {
		id = items[0].ID
	}
	if err := s.app.SelectHistory(id); err != nil {
		return fmt.Errorf("%w: %s", err, id)
	}

	return writeVisual(ctx, w, s, s.app.Snapshot().Plan.ProductName, outDir)
}
