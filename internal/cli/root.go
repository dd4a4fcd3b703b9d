// Package cli defines the Cobra command tree for garagectl, the operator tool of the
// garage backend.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/garage-backend/internal/app"
)

// version is set via -ldflags at build time.
var version = "dev"

// appFactory builds the wired application; overridden in tests.
type appFactory func(ctx context.Context) (*app.App, error)

func newRootCmd(newApp appFactory) *cobra.Command {
	root := &cobra.Command{
		Use:   "garagectl",
		Short: "Operator tool for the garage maintenance-prediction backend",
		Long: `garagectl runs one-off operations against the garage backend database:
schema migration, on-demand prediction refreshes and access token minting.

Configuration is read from the same environment variables as the server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newServeCmd(newApp),
		newMigrateCmd(),
		newRefreshCmd(newApp),
		newUsageCmd(newApp),
		newTokenCmd(newApp),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute(v string) {
	version = v
	if err := newRootCmd(app.New).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "garagectl %s\n", version)
		},
	}
}
