// Package cli implements the floorplan-mcp command-line interface.
//
// # Commands
//
//   - analyze: detect rooms, corridors and the navigation graph for one
//     image or a directory of images and write line-delimited JSON
//   - serve: run the MCP stdio server
//   - version: print build information
//
// # Logging
//
// All commands log to stderr through charmbracelet/log. The level comes
// from FLOORPLAN_LOG_LEVEL and --verbose (-v) forces debug. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ironsheep/floorplan-mcp/internal/logging"
)

var (
	version = "dev"     // semantic version
	commit  = "unknown" // git commit SHA
	date    = "unknown" // build timestamp
)

// SetVersion sets the build information reported by the version command.
// The main package calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the CLI.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "floorplan-mcp",
		Short:        "Rooms, corridors and navigation graphs from floor-plan images",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logging.LevelFromEnv(charmlog.InfoLevel)
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logging.New(cmd.ErrOrStderr(), level)))
		},
	}

	root.SetVersionTemplate(versionText())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func versionText() string {
	return fmt.Sprintf("floorplan-mcp %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), versionText())
		},
	}
}
