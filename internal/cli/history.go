package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/khanglvm/marketing-support/internal/display"
	"github.com/khanglvm/marketing-support/internal/history"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the 'history' command group.
func NewHistoryCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"hist"},
		Short:   "List, show, export or clear saved plans",
		Long:    `Manage the saved plans (the 20 most recent, newest first).`,
	}

	cmd.AddCommand(newHistoryListCmd(flags))
	cmd.AddCommand(newHistoryShowCmd(flags))
	cmd.AddCommand(newHistorySearchCmd(flags))
	cmd.AddCommand(newHistoryExportCmd(flags))
	cmd.AddCommand(newHistoryClearCmd(flags))

	return cmd
}

func newHistoryListCmd(flags *globalFlags) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer s.Close()

			items := s.app.History()
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), items)
			}
			display.RenderHistory(cmd.OutOrStdout(), items)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}

func newHistoryShowCmd(flags *globalFlags) *cobra.Command {
	var jsonOutput, copyText bool
	var outDir string

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a saved plan (default: newest)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return runHistoryShow(cmd.Context(), cmd.OutOrStdout(), flags, id, jsonOutput, copyText, outDir)
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	cmd.Flags().BoolVar(&copyText, "copy-text", false, "Output only the caption and hashtags")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Save the entry's visual, if any, to this directory")
	return cmd
}

func runHistoryShow(ctx context.Context, w io.Writer, flags *globalFlags, id string, jsonOutput, copyText bool, outDir string) error {
	s, err := openSession(ctx, flags, false)
	if err != nil {
		return err
	}
	defer s.Close()

	items := s.app.History()
	if len(items) == 0 {
		return fmt.Errorf("no saved plans")
	}
	if id == "" {
		id = items[0].ID
	}
	it, ok := history.Find(items, id)
	if !ok {
		return fmt.Errorf("history item not found: %s", id)
	}

	switch {
	case jsonOutput:
		if err := writeJSON(w, it); err != nil {
			return err
		}
	case copyText:
		fmt.Fprintln(w, display.ShareText(it.Plan))
	default:
		if it.ProductLink != "" {
			fmt.Fprintf(w, "🔗 %s\n", it.ProductLink)
		}
		display.RenderPlan(w, it.Plan)
	}

	if outDir != "" && it.ImageURL != "" {
		path := outPath(outDir, display.VisualFileName(it.ProductName))
		if err := display.WriteDataURI(it.ImageURL, path); err != nil {
			return err
		}
		fmt.Fprintf(w, "✓ Visual saved to %s\n", path)
	}
	return nil
}

func newHistorySearchCmd(flags *globalFlags) *cobra.Command {
	var jsonOutput bool
	var limit int

	cmd := &cobra.Command{
		Use:     "search <query>",
		Short:   "Search saved plans by product, caption, hashtags or strategy",
		Example: `  marketing-support history search "coffee mug"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer s.Close()

			results, err := s.app.SearchHistory(strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSON(w, results)
			}
			if len(results) == 0 {
				fmt.Fprintln(w, "No matching plans.")
				return nil
			}
			for _, r := range results {
				fmt.Fprintf(w, "%s  %s  (%.2f)\n", r.ID, r.ProductName, r.Score)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of results")
	return cmd
}

func newHistoryExportCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export <file.xlsx>",
		Short:   "Export saved plans to a spreadsheet",
		Example: `  marketing-support history export plans.xlsx`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer s.Close()

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", args[0], err)
			}
			defer f.Close()

			items := s.app.History()
			if err := history.ExportXLSX(f, items); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d plans to %s\n", len(items), args[0])
			return nil
		},
	}
	return cmd
}

func newHistoryClearCmd(flags *globalFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all saved plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("this deletes all saved plans\n💡 Re-run with --yes to confirm")
			}
			s, err := openSession(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.app.ClearHistory(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ History cleared")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deletion")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
