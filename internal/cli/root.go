// Package cli implements the cyclesense command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/cyclesense/internal/config"
	"github.com/HendryAvila/cyclesense/internal/logging"
	"github.com/HendryAvila/cyclesense/internal/server"
)

// cfg is the configuration loaded by the root command before any
// subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "cyclesense",
	Short: "Menstrual-cycle profiling and narrative reports",
	Long: `CycleSense assigns a cycle profile from three recorded cycles using two
pre-trained cluster models and renders it into a lay trying-to-conceive
report, a clinician report, or the models' technical evaluation report.

Getting Started:
  cyclesense artifacts import --sample      Load the bundled sample models
  cyclesense report --name Ana --age 30 --height 1.6 --weight 64 \
      --cycle 28,5,14 --cycle 30,5,15 --cycle 29,4,14
  cyclesense serve                          Start the MCP server (stdio)`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			loaded.Log.Level = level
		}
		if err := logging.Init(loaded.Log.Level, loaded.Log.File); err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		cfg = loaded
		logging.Debug("config loaded", "data_dir", cfg.DataDir, "history", cfg.History.Enabled)
		return nil
	},
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.Version = server.Version
	rootCmd.PersistentFlags().String("config", "", "Config file (default: $"+config.EnvConfigPath+" or ~/.cyclesense/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Override log level (debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() {
	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle(os.Stderr).Render("Error: "+err.Error()))
		logging.Close()
		os.Exit(1)
	}
}
