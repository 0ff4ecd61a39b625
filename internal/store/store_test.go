package store_test

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/HendryAvila/cyclesense/internal/artifacts"
	"github.com/HendryAvila/cyclesense/internal/artifacts/sample"
	"github.com/HendryAvila/cyclesense/internal/profile"
	"github.com/HendryAvila/cyclesense/internal/store"
)

// newTestStore creates a Store backed by a temp directory for isolation.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(store.Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ─── New / Initialization ───────────────────────────────────────────────────

func TestNew_CreatesDBFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := store.New(store.Config{DataDir: dir})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(filepath.Join(dir, store.DBFile)); err != nil {
		t.Fatalf("database file missing: %v", err)
	}
	if s.Path() != filepath.Join(dir, store.DBFile) {
		t.Errorf("Path() = %q", s.Path())
	}
}

func TestNew_WALMode(t *testing.T) {
	s := newTestStore(t)
	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatal(err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestNew_OpenFailure(t *testing.T) {
	restore := store.SetOpenDB(func(string, string) (*sql.DB, error) {
		return nil, errors.New("disk on fire")
	})
	defer restore()

	_, err := store.New(store.Config{DataDir: t.TempDir()})
	if err == nil {
		t.Fatal("expected error when the database cannot be opened")
	}
}

func TestNew_IdempotentReopen(t *testing.T) {
	dir := t.TempDir()
	s1, err := store.New(store.Config{DataDir: dir})
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := s1.ImportSpec(sample.Spec(), "sample"); err != nil {
		t.Fatalf("import: %v", err)
	}
	s1.Close()

	s2, err := store.New(store.Config{DataDir: dir})
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()
	if _, err := s2.LoadBundle(); err != nil {
		t.Fatalf("LoadBundle() after reopen: %v", err)
	}
}

// ─── Artifacts ──────────────────────────────────────────────────────────────

func TestLoadBundle_Empty(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.LoadBundle(); !errors.Is(err, store.ErrNoArtifacts) {
		t.Fatalf("err = %v, want ErrNoArtifacts", err)
	}
	if _, err := s.Info(); !errors.Is(err, store.ErrNoArtifacts) {
		t.Fatalf("Info() err = %v, want ErrNoArtifacts", err)
	}
}

func TestImportSpec_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := sample.Spec()

	res, err := s.ImportSpec(want, "bundle.yaml")
	if err != nil {
		t.Fatalf("ImportSpec() error: %v", err)
	}
	if res.Models != 2 || res.Clusters != 9 || res.LogicalNames != 13 || res.StatsRows != 13 {
		t.Errorf("ImportResult = %+v", res)
	}

	got, err := s.LoadSpec()
	if err != nil {
		t.Fatalf("LoadSpec() error: %v", err)
	}

	if fmt.Sprint(got.Raw.Features) != fmt.Sprint(want.Raw.Features) {
		t.Errorf("raw features = %v, want %v", got.Raw.Features, want.Raw.Features)
	}
	if got.Raw.Scaler != nil {
		t.Error("raw model should have no scaler")
	}
	if got.Variability.Scaler == nil || got.Variability.Scaler.Scale[1] != 1.5 {
		t.Errorf("variability scaler = %+v", got.Variability.Scaler)
	}
	if got.Variability.Centroids[4][1] != want.Variability.Centroids[4][1] {
		t.Errorf("centroid 4 = %v", got.Variability.Centroids[4])
	}
	if got.Raw.Names[2] != "Delayed" {
		t.Errorf("raw name 2 = %q", got.Raw.Names[2])
	}
	if got.Raw.Evaluation.Silhouette != 0.42 || got.Raw.Evaluation.SizesPercent[3] != 10.5 {
		t.Errorf("raw evaluation = %+v", got.Raw.Evaluation)
	}
	if got.LogicalMap["Extended + Critical"] != "Critical-Extended" {
		t.Errorf("logical map = %v", got.LogicalMap)
	}
	st := got.ClusterStats["Unstable-Compact"]
	if st.ComplicationRate == nil || *st.ComplicationRate != 100 {
		t.Errorf("stored rate should be kept as imported, got %+v", st)
	}
	if got.DatasetOverview != want.DatasetOverview {
		t.Errorf("overview = %q", got.DatasetOverview)
	}

	info, err := s.Info()
	if err != nil {
		t.Fatal(err)
	}
	if info.Source != "bundle.yaml" || info.ImportedAt == "" {
		t.Errorf("Info() = %+v", info)
	}
}

func TestImportSpec_KeepsMissingStatsAbsent(t *testing.T) {
	s := newTestStore(t)
	spec := sample.Spec()
	age := 40.0
	spec.ClusterStats = map[string]artifacts.ClusterStats{"Stable-Balanced": {AgeMean: &age}}
	spec.RateScale = artifacts.RatePercent

	if _, err := s.ImportSpec(spec, ""); err != nil {
		t.Fatal(err)
	}
	got, err := s.LoadSpec()
	if err != nil {
		t.Fatal(err)
	}
	st := got.ClusterStats["Stable-Balanced"]
	if st.AgeMean == nil || *st.AgeMean != 40 {
		t.Errorf("age mean = %v", st.AgeMean)
	}
	if st.BMIMean != nil || st.PregnancyMean != nil || st.ComplicationRate != nil {
		t.Errorf("absent stats came back as %+v", st)
	}
	if got.RateScale != artifacts.RatePercent {
		t.Errorf("rate scale = %q", got.RateScale)
	}
}

func TestImportSpec_ReplacesPrevious(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.ImportSpec(sample.Spec(), "first"); err != nil {
		t.Fatal(err)
	}

	spec := sample.Spec()
	spec.LogicalMap = map[string]string{"Balanced + Stable": "Stable-Balanced"}
	if _, err := s.ImportSpec(spec, "second"); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadSpec()
	if err != nil {
		t.Fatal(err)
	}
	if len(got.LogicalMap) != 1 {
		t.Errorf("logical map has %d entries after re-import, want 1", len(got.LogicalMap))
	}
	info, _ := s.Info()
	if info.Source != "second" {
		t.Errorf("source = %q, want second", info.Source)
	}
}

func TestImportSpec_RejectsInvalidBundle(t *testing.T) {
	s := newTestStore(t)
	spec := sample.Spec()
	delete(spec.Raw.Names, 3)

	if _, err := s.ImportSpec(spec, "broken"); err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := s.LoadSpec(); !errors.Is(err, store.ErrNoArtifacts) {
		t.Errorf("invalid import must not write anything, LoadSpec err = %v", err)
	}
}

func TestImportSpec_RejectsUnservableSchemaKeepsPrevious(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.ImportSpec(sample.Spec(), "sample"); err != nil {
		t.Fatal(err)
	}

	bad := sample.Spec()
	bad.Raw.Features[0] = "Age"
	_, err := s.ImportSpec(bad, "bad-schema")
	if !errors.Is(err, profile.ErrMissingFeature) {
		t.Fatalf("err = %v, want ErrMissingFeature", err)
	}

	info, err := s.Info()
	if err != nil {
		t.Fatal(err)
	}
	if info.Source != "sample" {
		t.Errorf("source = %q, want sample", info.Source)
	}
	b, err := s.LoadBundle()
	if err != nil {
		t.Fatalf("previous bundle no longer loads: %v", err)
	}
	if _, err := profile.New(b); err != nil {
		t.Errorf("previous bundle no longer servable: %v", err)
	}
}

func TestLoadBundle_ClassifiesLikeSample(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.ImportSpec(sample.Spec(), "sample"); err != nil {
		t.Fatal(err)
	}
	b, err := s.LoadBundle()
	if err != nil {
		t.Fatal(err)
	}

	id, err := b.Raw.Classifier.Predict([]float64{28, 30, 29, 14, 15, 14})
	if err != nil {
		t.Fatal(err)
	}
	if name, _ := b.Raw.Names.Name(id); name != "Balanced" {
		t.Errorf("raw prediction = %q, want Balanced", name)
	}
	if mean, ok := b.Stats.PregnancyMean("Stable-Balanced"); !ok || mean != 3.5 {
		t.Errorf("PregnancyMean = %v, %v", mean, ok)
	}
}

// ─── Reports ────────────────────────────────────────────────────────────────

func TestSaveReport_AssignsIDAndTime(t *testing.T) {
	s := newTestStore(t)
	id, err := s.SaveReport(store.ReportRecord{Kind: "ttc", Name: "Ana", Logical: "Stable-Balanced", Body: "Hi Ana"})
	if err != nil {
		t.Fatalf("SaveReport() error: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("id %q does not look like a uuid", id)
	}

	got, err := s.GetReport(id)
	if err != nil {
		t.Fatalf("GetReport() error: %v", err)
	}
	if got.Body != "Hi Ana" || got.Kind != "ttc" || got.CreatedAt == "" {
		t.Errorf("GetReport() = %+v", got)
	}
	if _, err := store.ParseTime(got.CreatedAt); err != nil {
		t.Errorf("CreatedAt %q does not parse: %v", got.CreatedAt, err)
	}
}

func TestSaveReport_RequiresKind(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.SaveReport(store.ReportRecord{Body: "x"}); err == nil {
		t.Fatal("expected error for missing kind")
	}
}

func TestGetReport_NotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetReport("nope"); !errors.Is(err, store.ErrReportNotFound) {
		t.Fatalf("err = %v, want ErrReportNotFound", err)
	}
}

func TestRecentReports_OrderAndFilters(t *testing.T) {
	s := newTestStore(t)
	records := []store.ReportRecord{
		{Kind: "ttc", Name: "Ana", Body: "1", CreatedAt: "2026-01-01 10:00:00"},
		{Kind: "clinician", Name: "Ana", Body: "2", CreatedAt: "2026-01-02 10:00:00"},
		{Kind: "ttc", Name: "Bea", Body: "3", CreatedAt: "2026-01-03 10:00:00"},
	}
	for _, r := range records {
		if _, err := s.SaveReport(r); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.RecentReports(store.HistoryFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].Body != "3" || all[2].Body != "1" {
		t.Errorf("RecentReports() order = %v", bodies(all))
	}

	ttc, _ := s.RecentReports(store.HistoryFilter{Kind: "ttc"})
	if len(ttc) != 2 {
		t.Errorf("kind filter returned %d, want 2", len(ttc))
	}

	ana, _ := s.RecentReports(store.HistoryFilter{Name: "ana"})
	if len(ana) != 2 {
		t.Errorf("name filter returned %d, want 2", len(ana))
	}

	one, _ := s.RecentReports(store.HistoryFilter{Limit: 1})
	if len(one) != 1 || one[0].Body != "3" {
		t.Errorf("limit 1 = %v", bodies(one))
	}
}

func TestPruneReports(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 5; i++ {
		if _, err := s.SaveReport(store.ReportRecord{
			Kind:      "ttc",
			Body:      fmt.Sprint(i),
			CreatedAt: fmt.Sprintf("2026-01-0%d 10:00:00", i+1),
		}); err != nil {
			t.Fatal(err)
		}
	}

	n, err := s.PruneReports(2)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("pruned %d, want 3", n)
	}
	left, _ := s.RecentReports(store.HistoryFilter{})
	if len(left) != 2 || left[0].Body != "4" || left[1].Body != "3" {
		t.Errorf("remaining = %v", bodies(left))
	}
}

func bodies(rs []store.ReportRecord) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Body
	}
	return out
}
