package cli

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/HendryAvila/cyclesense/internal/logging"
	"github.com/HendryAvila/cyclesense/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	Long: `Start the CycleSense MCP server using the stdio transport.

Artifacts are loaded once at startup; import them first with
"cyclesense artifacts import". Logs go to stderr (or log.file) so they
never mix with the protocol stream on stdout.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	s, cleanup, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	log := logging.WithPrefix("serve")
	log.Info("starting MCP server", "version", server.Version, "data_dir", cfg.DataDir)
	if err := mcpserver.ServeStdio(s); err != nil {
		return err
	}
	log.Info("MCP server stopped")
	return nil
}
