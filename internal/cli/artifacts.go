package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/HendryAvila/cyclesense/internal/artifacts"
	"github.com/HendryAvila/cyclesense/internal/artifacts/sample"
	"github.com/HendryAvila/cyclesense/internal/store"
)

// --- cyclesense artifacts ---

var artifactsCmd = &cobra.Command{
	Use:   "artifacts",
	Short: "Manage the pre-trained model artifacts",
}

// --- cyclesense artifacts import ---

var artifactsImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import an artifact bundle (YAML) into the store",
	Long: `Validate an artifact bundle and replace the stored one with it.

The bundle holds both classifiers (features, scaler, centroids, names,
evaluation), the logical profile map and the cluster statistics. Use
--sample to import the illustrative bundle shipped with the binary.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runArtifactsImport,
}

// --- cyclesense artifacts info ---

var artifactsInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show what artifacts are loaded",
	RunE:  runArtifactsInfo,
}

// --- cyclesense artifacts export ---

var artifactsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the stored artifact bundle as YAML to stdout",
	RunE:  runArtifactsExport,
}

func init() {
	artifactsImportCmd.Flags().Bool("sample", false, "Import the bundled sample artifacts")

	artifactsCmd.AddCommand(artifactsImportCmd)
	artifactsCmd.AddCommand(artifactsInfoCmd)
	artifactsCmd.AddCommand(artifactsExportCmd)
	rootCmd.AddCommand(artifactsCmd)
}

func runArtifactsImport(cmd *cobra.Command, args []string) error {
	useSample, _ := cmd.Flags().GetBool("sample")

	var (
		spec   *artifacts.Spec
		source string
	)
	switch {
	case useSample && len(args) > 0:
		return fmt.Errorf("pass either a file or --sample, not both")
	case useSample:
		spec, source = sample.Spec(), "sample"
	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read artifact file: %w", err)
		}
		spec, err = artifacts.ParseYAML(data)
		if err != nil {
			return fmt.Errorf("failed to parse artifact file: %w", err)
		}
		source = args[0]
	default:
		return fmt.Errorf("an artifact file or --sample is required")
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.ImportSpec(spec, source)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, style(out, okStyle).Render("Artifacts imported from "+res.Source))
	printField(out, "Models", strconv.Itoa(res.Models))
	printField(out, "Clusters", strconv.Itoa(res.Clusters))
	printField(out, "Profiles", strconv.Itoa(res.LogicalNames))
	printField(out, "Stats rows", strconv.Itoa(res.StatsRows))
	printField(out, "Store", s.Path())
	return nil
}

func runArtifactsInfo(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	info, err := s.Info()
	if errors.Is(err, store.ErrNoArtifacts) {
		fmt.Fprintln(out, "No artifacts imported. Run: cyclesense artifacts import --sample")
		return nil
	}
	if err != nil {
		return err
	}
	bundle, err := s.LoadBundle()
	if err != nil {
		return err
	}

	imported := info.ImportedAt
	if ts, err := store.ParseTime(info.ImportedAt); err == nil {
		imported = fmt.Sprintf("%s (%s)", info.ImportedAt, humanize.Time(ts))
	}

	printHeader(out, "Artifacts")
	printField(out, "Source", info.Source)
	printField(out, "Imported", imported)
	printField(out, "Raw clusters", strconv.Itoa(len(bundle.Raw.Names)))
	printField(out, "Var clusters", strconv.Itoa(len(bundle.Variability.Names)))
	printField(out, "Profiles", strconv.Itoa(len(bundle.LogicalMap)))
	printField(out, "Stats rows", strconv.Itoa(bundle.Stats.Len()))
	printField(out, "Store", s.Path())
	return nil
}

func runArtifactsExport(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	spec, err := s.LoadSpec()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(spec)
	if err != nil {
		return fmt.Errorf("marshaling artifacts: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
