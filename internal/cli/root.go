/*
Package cli implements the marketing-support commands.

Every command builds its own session: effective configuration, logging, the
local store and, for commands that call the model, a gateway. Output goes to
the command's writer so it can be captured in tests.
*/
package cli

import (
	"github.com/khanglvm/marketing-support/internal/version"
	"github.com/spf13/cobra"
)

// globalFlags are shared by all commands.
type globalFlags struct {
	configPath string
	dataDir    string
	logLevel   string
	logJSON    bool
}

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "marketing-support",
		Short: "AI marketing content for your products",
		Long: `marketing-support turns a product link or photo into ready-to-post
marketing content: a caption, hashtags, the best time to post, strategy advice
and a short video script. It can also render a product visual and a logo.

Plans are saved locally (the 20 most recent) and can be reopened, exported
or served to a browser front end with 'marketing-support serve'.`,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Config file (default ~/.marketing-support.json)")
	pf.StringVar(&flags.dataDir, "data-dir", "", "Directory of the local store (overrides config)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error, disabled")
	pf.BoolVar(&flags.logJSON, "log-json", false, "Write logs as JSON lines")

	rootCmd.AddCommand(NewGenerateCmd(flags))
	rootCmd.AddCommand(NewVisualCmd(flags))
	rootCmd.AddCommand(NewLogoCmd(flags))
	rootCmd.AddCommand(NewHistoryCmd(flags))
	rootCmd.AddCommand(NewSettingsCmd(flags))
	rootCmd.AddCommand(NewServeCmd(flags))
	rootCmd.AddCommand(NewConfigCmd(flags))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}
