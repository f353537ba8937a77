package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSettingsCmd creates the 'settings' command group.
func NewSettingsCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage user settings",
	}
	cmd.AddCommand(newEmailCmd(flags))
	return cmd
}

func newEmailCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "email [address]",
		Short: "Show or save your email address",
		Example: `  marketing-support settings email
  marketing-support settings email me@example.com`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer s.Close()

			w := cmd.OutOrStdout()
			if len(args) == 0 {
				if email := s.app.Email(); email != "" {
					fmt.Fprintln(w, email)
				} else {
					fmt.Fprintln(w, "No email saved.")
				}
				return nil
			}

			if err := s.app.SaveEmail(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(w, "✓ Email saved: %s\n", s.app.Email())
			return nil
		},
	}
}
