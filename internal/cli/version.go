package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/scanlog/internal/config"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the scanlog version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "scanlog %s\n", config.Version)
		},
	}
}
