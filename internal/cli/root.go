package cli

import "github.com/spf13/cobra"

// Execute runs the accesslens command tree.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "accesslens",
		Short:         "Website accessibility analysis with PDF reporting",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewScanCmd())
	return cmd
}
