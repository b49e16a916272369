package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/floorplan-mcp/internal/config"
	"github.com/ironsheep/floorplan-mcp/internal/logging"
	"github.com/ironsheep/floorplan-mcp/internal/server"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Long: `Serve speaks the Model Context Protocol over stdin and stdout so that MCP
clients can analyze floor plans. Logs are written to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger := logging.FromContext(cmd.Context())
			srv, err := server.New(cfg, logger)
			if err != nil {
				return err
			}
			logger.Debug("mcp server starting", "version", version, "commit", commit)
			return srv.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (.toml, .yaml)")
	return cmd
}
