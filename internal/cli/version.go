package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/khanglvm/marketing-support/internal/version"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates the 'version' command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the current version, commit hash, build date and Go runtime.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd.OutOrStdout())
		},
	}
}

func runVersion(w io.Writer) error {
	v, c, d := version.GetVersionComponents()
	fmt.Fprintf(w, "Version:  %s\n", v)
	fmt.Fprintf(w, "Commit:   %s\n", c)
	fmt.Fprintf(w, "Built:    %s\n", d)
	fmt.Fprintf(w, "Go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return nil
}
