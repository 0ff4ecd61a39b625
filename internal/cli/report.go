package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/cyclesense/internal/cycle"
	"github.com/HendryAvila/cyclesense/internal/profile"
	"github.com/HendryAvila/cyclesense/internal/report"
	"github.com/HendryAvila/cyclesense/internal/tools"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Profile three cycles and print a report",
	Long: `Assign a cycle profile and render the requested report.

Each --cycle is "length,menses,ovulation" in days, e.g. --cycle 28,5,14.
Exactly three are required. --kind accepts ttc, clinician, both or
technical.`,
	Example: `  cyclesense report --name Ana --age 30 --height 1.6 --weight 64 --pregnancies 2 \
      --cycle 28,5,14 --cycle 30,5,15 --cycle 29,4,14 --kind both`,
	RunE: runReport,
}

func init() {
	f := reportCmd.Flags()
	f.String("name", "", "User's name (required)")
	f.Int("age", 0, "Age in years (required)")
	f.Float64("height", 0, "Height in metres (required)")
	f.Float64("weight", 0, "Weight in kilograms (required)")
	f.Int("pregnancies", 0, "Number of previous pregnancies")
	f.Bool("complications", false, "User has reproductive complications")
	f.StringArray("cycle", nil, "Cycle as length,menses,ovulation (repeat 3 times)")
	f.String("kind", string(report.KindTTC), "Report kind: ttc, clinician, both or technical")
	f.Bool("no-save", false, "Do not record the report in history")
	_ = reportCmd.MarkFlagRequired("name")
	_ = reportCmd.MarkFlagRequired("cycle")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	kindFlag, _ := f.GetString("kind")
	kinds, err := report.ParseKinds(kindFlag)
	if err != nil {
		return err
	}

	name, _ := f.GetString("name")
	age, _ := f.GetInt("age")
	height, _ := f.GetFloat64("height")
	weight, _ := f.GetFloat64("weight")
	pregnancies, _ := f.GetInt("pregnancies")
	complications, _ := f.GetBool("complications")
	subject := cycle.Subject{
		Name:          name,
		Age:           age,
		HeightM:       height,
		WeightKg:      weight,
		Pregnancies:   pregnancies,
		Complications: complications,
	}
	if err := subject.Validate(); err != nil {
		return fmt.Errorf("invalid user details: %w", err)
	}

	cycleFlags, _ := f.GetStringArray("cycle")
	records, err := parseCycles(cycleFlags)
	if err != nil {
		return fmt.Errorf("invalid cycles: %w", err)
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	bundle, err := s.LoadBundle()
	if err != nil {
		return err
	}
	assigner, err := profile.New(bundle)
	if err != nil {
		return err
	}
	a, err := assigner.Assign(records)
	if err != nil {
		return err
	}
	rc := report.NewContext(subject, a)

	var observer tools.ReportObserver
	if noSave, _ := f.GetBool("no-save"); !noSave && cfg.History.Enabled {
		observer = tools.NewHistoryRecorder(s, cfg.History.Limit)
	}

	out := cmd.OutOrStdout()
	failed := 0
	for i, res := range report.NewRenderer(bundle).RenderAll(kinds, &rc) {
		if i > 0 {
			fmt.Fprintln(out, style(out, dimStyle).Render("---"))
		}
		if res.Err != nil {
			failed++
			fmt.Fprintln(out, errorStyle(out).Render(fmt.Sprintf("%s report unavailable: %v", res.Kind, res.Err)))
			continue
		}
		renderMarkdown(out, res.Text)
		if observer != nil && res.Kind.Personal() {
			observer.OnReport(res.Kind, &rc, res.Text)
		}
	}
	if failed == len(kinds) {
		return fmt.Errorf("no report could be rendered")
	}
	return nil
}
