package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/cyclesense/internal/store"
	"github.com/HendryAvila/cyclesense/internal/tools"
)

// --- cyclesense history ---

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Previously generated reports",
}

// --- cyclesense history list ---

var historyListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent reports, newest first",
	RunE:    runHistoryList,
}

// --- cyclesense history show ---

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one report in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

// --- cyclesense history prune ---

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the newest reports",
	RunE:  runHistoryPrune,
}

func init() {
	historyListCmd.Flags().String("kind", "", "Filter by kind (ttc, clinician)")
	historyListCmd.Flags().String("name", "", "Filter by user name")
	historyListCmd.Flags().Int("limit", 0, "Maximum reports to list (default: history.limit)")

	historyPruneCmd.Flags().Int("keep", 0, "Reports to keep (default: history.limit)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	kind, _ := cmd.Flags().GetString("kind")
	name, _ := cmd.Flags().GetString("name")
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = cfg.History.Limit
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.RecentReports(store.HistoryFilter{Kind: kind, Name: name, Limit: limit})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No reports found.")
		return nil
	}

	printHeader(out, fmt.Sprintf("Report History (%d)", len(records)))
	for _, r := range records {
		fmt.Fprintf(out, "  %s  %-9s %-12s %-28s %s\n",
			style(out, headerStyle).Render(r.ID),
			r.Kind, r.Name, r.Logical,
			style(out, dimStyle).Render(tools.Age(r.CreatedAt)))
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := s.GetReport(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printHeader(out, fmt.Sprintf("%s report for %s", rec.Kind, rec.Name))
	printField(out, "ID", rec.ID)
	printField(out, "Profile", rec.Logical)
	printField(out, "Clusters", rec.Combined)
	printField(out, "Created", rec.CreatedAt)
	fmt.Fprintln(out)
	renderMarkdown(out, rec.Body)
	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	keep, _ := cmd.Flags().GetInt("keep")
	if keep <= 0 {
		keep = cfg.History.Limit
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := s.PruneReports(keep)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d report(s), kept the newest %d.\n", n, keep)
	return nil
}
