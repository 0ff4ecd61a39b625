package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/cyclesense/internal/server"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cyclesense v%s\n", server.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
