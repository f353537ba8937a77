package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/khanglvm/marketing-support/internal/display"
	"github.com/khanglvm/marketing-support/internal/gateway"
	"github.com/spf13/cobra"
)

// NewLogoCmd creates the 'logo' command.
func NewLogoCmd(flags *globalFlags) *cobra.Command {
	var style, outDir string

	cmd := &cobra.Command{
		Use:   "logo <brand>",
		Short: "Generate a brand logo",
		Long: `Generate a logo for a brand name in one of the styles: modern, minimalist,
luxury, colorful or vintage. The image is saved as <brand>_logo.png. Logos are
not added to history.`,
		Example: `  marketing-support logo Acme
  marketing-support logo "Acme Coffee" --style vintage --out ./images`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runLogo(ctx, cmd.OutOrStdout(), flags, strings.Join(args, " "), style, outDir)
		},
	}

	cmd.Flags().StringVarP(&style, "style", "s", string(gateway.StyleModern), "Logo style")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default: current directory)")

	return cmd
}

func runLogo(ctx context.Context, w io.Writer, flags *globalFlags, brand, style, outDir string) error {
	s, err := openSession(ctx, flags, true)
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Fprintf(w, "🎨 Generating %s logo for %s...\n", style, brand)
	uri, err := s.app.GenerateLogo(ctx, brand, gateway.LogoStyle(style))
	if err != nil {
		return err
	}

	path := outPath(outDir, display.LogoFileName(strings.TrimSpace(brand)))
	if err := display.WriteDataURI(uri, path); err != nil {
		return err
	}
	fmt.Fprintf(w, "✓ Logo saved to %s\n", path)
	return nil
}
