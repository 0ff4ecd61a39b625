package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/cyclesense/internal/report"
)

var technicalCmd = &cobra.Command{
	Use:     "technical",
	Aliases: []string{"eval"},
	Short:   "Print the clustering evaluation report of the loaded models",
	RunE:    runTechnical,
}

func init() {
	technicalCmd.Flags().Bool("json", false, "Output JSON")
	rootCmd.AddCommand(technicalCmd)
}

func runTechnical(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	bundle, err := s.LoadBundle()
	if err != nil {
		return err
	}
	tr := report.NewTechnicalReport(bundle)

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		data, err := tr.JSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, data)
		return nil
	}
	renderMarkdown(out, tr.Text())
	return nil
}
