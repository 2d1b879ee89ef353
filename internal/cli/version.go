package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time via -ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Display the current version of offshoot.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(app.Stdout, "offshoot version %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		},
	}
}
