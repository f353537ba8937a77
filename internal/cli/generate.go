package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/khanglvm/marketing-support/internal/display"
	"github.com/khanglvm/marketing-support/internal/gateway"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	link     string
	photo    string
	price    string
	phone    string
	visual   bool
	outDir   string
	jsonOut  bool
	copyText bool
}

// NewGenerateCmd creates the 'generate' command.
func NewGenerateCmd(flags *globalFlags) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate marketing content from a product link or photo",
		Long: `Analyze a product link or photo and generate a marketing plan: caption,
hashtags, best posting time, strategy advice and a video script.

With a link the model also searches the web and lists its sources. Price and
phone number, when given, are woven into the caption. The plan is saved to
local history. Add --visual to also render a product visual.`,
		Example: `  marketing-support generate --link https://shop.example/widget --price 5000 --phone 09123456
  marketing-support generate --photo ./widget.jpg --visual --out ./images`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runGenerate(ctx, cmd.OutOrStdout(), flags, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.link, "link", "l", "", "Product page URL")
	f.StringVarP(&opts.photo, "photo", "p", "", "Product photo file")
	f.StringVar(&opts.price, "price", "", "Price to mention")
	f.StringVar(&opts.phone, "phone", "", "Contact phone to mention")
	f.BoolVar(&opts.visual, "visual", false, "Also generate a product visual")
	f.StringVarP(&opts.outDir, "out", "o", "", "Directory for generated images (default: current directory)")
	f.BoolVarP(&opts.jsonOut, "json", "j", false, "Output the plan as JSON")
	f.BoolVar(&opts.copyText, "copy-text", false, "Output only the caption and hashtags")

	return cmd
}

func runGenerate(ctx context.Context, w io.Writer, flags *globalFlags, opts *generateOptions) error {
	in := gateway.ContentInput{Link: opts.link, Price: opts.price, Phone: opts.phone}
	if opts.photo != "" {
		img, err := display.LoadImage(opts.photo)
		if err != nil {
			return err
		}
		in.Image = img
	}
	if in.Empty() {
		return fmt.Errorf("provide a product link (--link) or photo (--photo)")
	}

	s, err := openSession(ctx, flags, true)
	if err != nil {
		return err
	}
	defer s.Close()

	plan, err := s.app.Submit(ctx, in)
	if err != nil {
		return err
	}

	switch {
	case opts.jsonOut:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(plan); err != nil {
			return err
		}
	case opts.copyText:
		fmt.Fprintln(w, display.CopyAllText(*plan))
	default:
		display.RenderPlan(w, *plan)
	}

	if !opts.visual {
		return nil
	}
	return writeVisual(ctx, w, s, plan.ProductName, opts.outDir)
}

// writeVisual generates the product visual for the current plan and saves it.
func writeVisual(ctx context.Context, w io.Writer, s *session, productName, outDir string) error {
	fmt.Fprintln(w, "🎨 Generating product visual...")
	uri, err := s.app.GenerateVisual(ctx)
	if err != nil {
		return err
	}

	path := outPath(outDir, display.VisualFileName(productName))
	if err := display.WriteDataURI(uri, path); err != nil {
		return err
	}
	fmt.Fprintf(w, "✓ Visual saved to %s\n", path)
	return nil
}
