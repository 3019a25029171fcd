package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coe-tools/idremap/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show idremap version information.

Displays the idremap version, commit, build date and Go version.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			info := version.Get()
			out := c.OutOrStdout()
			fmt.Fprintf(out, "idremap version %s\n", info.Version)
			fmt.Fprintf(out, "  Commit:    %s\n", info.GitCommit)
			fmt.Fprintf(out, "  Built:     %s\n", info.BuildDate)
			fmt.Fprintf(out, "  Go:        %s\n", info.GoVersion)
			return nil
		},
	}
}
