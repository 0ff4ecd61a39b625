package report

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/HendryAvila/cyclesense/internal/artifacts/sample"
	"github.com/HendryAvila/cyclesense/internal/cycle"
	"github.com/HendryAvila/cyclesense/internal/profile"
)

func exampleContext(t *testing.T) Context {
	t.Helper()
	a, err := profile.New(sample.Bundle())
	if err != nil {
		t.Fatalf("profile.New() error: %v", err)
	}
	assignment, err := a.Assign(cycle.Records{
		{Length: 28, MensesLength: 5, OvulationDay: 14},
		{Length: 30, MensesLength: 5, OvulationDay: 15},
		{Length: 29, MensesLength: 4, OvulationDay: 14},
	})
	if err != nil {
		t.Fatalf("Assign() error: %v", err)
	}
	return NewContext(cycle.Subject{
		Name:        "Ana",
		Age:         30,
		HeightM:     1.6,
		WeightKg:    64,
		Pregnancies: 2,
	}, assignment)
}

func TestTTC_EndToEnd(t *testing.T) {
	r := NewRenderer(sample.Bundle())
	got := r.TTC(exampleContext(t))

	want := "Hi Ana, here’s your CycleSense summary:\n\n" +
		"**Your cycle profile**: Stable-Balanced.\n\n" +
		"**Cycle profile description**: Your cycles are quite regular and steady; a reliable rhythm.\n\n" +
		"**TTC Note**: Most fertile baseline group. If there is difficulty conceiving, causes may lie outside cycle rhythm.\n\n" +
		"**Your stats**: Age 30, BMI 25.0, 2 pregnancies, no complications.\n"
	if got != want {
		t.Errorf("TTC() =\n%s\nwant\n%s", got, want)
	}
}

func TestTTC_WithComplications(t *testing.T) {
	c := exampleContext(t)
	c.Complications = true
	got := NewRenderer(sample.Bundle()).TTC(c)
	if !strings.Contains(got, "2 pregnancies, with complications.") {
		t.Errorf("stats line missing complications: %s", got)
	}
	if !strings.Contains(got, "User has reproductive complications") {
		t.Errorf("TTC note missing complications overlay: %s", got)
	}
}

func TestClinician_UsesClusterStats(t *testing.T) {
	got := NewRenderer(sample.Bundle()).Clinician(exampleContext(t))

	for _, want := range []string{
		"**Patient**: Ana, 30y\n",
		"**Profile**: Stable-Balanced\n",
		"**Cluster**: Consistently regular cycles;",
		"- Age 30 (cluster avg 31.0)\n",
		"- BMI 25.0 (cluster avg 23.4)\n",
		"- Pregnancies: 2 (cluster avg 3.5)\n",
		"- Complications: No (cluster rate 30%)\n",
		"**Interpretation**: Normal ovulatory pattern. No immediate cycle-related red flags.\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("clinician report missing %q\n%s", want, got)
		}
	}
}

func TestClinician_MissingStatsFallBack(t *testing.T) {
	b := sample.Bundle()
	b.Stats = nil
	c := exampleContext(t)

	got := NewRenderer(b).Clinician(c)
	for _, want := range []string{
		"- Age 30 (cluster avg 30.0)\n",
		"- BMI 25.0 (cluster avg 25.0)\n",
		"- Pregnancies: 2 (cluster avg 2.0)\n",
		"(cluster rate N/A)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("clinician report missing %q\n%s", want, got)
		}
	}
}

func TestClinician_UnmappedProfile(t *testing.T) {
	c := exampleContext(t)
	c.Assignment.Logical = "Balanced + Wobbly"
	got := NewRenderer(sample.Bundle()).Clinician(c)
	if !strings.Contains(got, "**Cluster**: Cycle profile combining length pattern and stability characteristics.") {
		t.Errorf("expected fallback description:\n%s", got)
	}
	if !strings.Contains(got, "cluster rate N/A") {
		t.Errorf("expected N/A rate for unknown profile:\n%s", got)
	}
}

func TestFormatRate(t *testing.T) {
	v := func(f float64) *float64 { return &f }
	tests := []struct {
		in   *float64
		want string
	}{
		{nil, "N/A"},
		{v(0), "0%"},
		{v(0.3), "30%"},
		{v(1), "100%"},
		{v(0.333), "33%"},
		{v(0.125), "12%"},
		{v(0.135), "14%"},
		{v(0.145), "14%"},
		{v(0.155), "16%"},
		{v(0.265), "26%"},
	}
	for _, tt := range tests {
		if got := formatRate(tt.in); got != tt.want {
			t.Errorf("formatRate(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTechnical_PassesMetricsThrough(t *testing.T) {
	tr := NewRenderer(sample.Bundle()).Technical()

	if tr.Raw.Silhouette != 0.42 {
		t.Errorf("raw silhouette = %v, want 0.42", tr.Raw.Silhouette)
	}
	if tr.Variability.SizesPercent[4] != 0.9 {
		t.Errorf("variability size[4] = %v, want 0.9", tr.Variability.SizesPercent[4])
	}
	if tr.Raw.Names[1] != "Balanced" {
		t.Errorf("raw name 1 = %q", tr.Raw.Names[1])
	}

	text := tr.Text()
	for _, want := range []string{
		"# Clustering Evaluation Report",
		"Dataset overview (n=114)",
		"### Raw Features Clustering",
		"- Silhouette: 0.42\n",
		"- Calinski-Harabasz: 118.6\n",
		"- Davies-Bouldin: 0.87\n",
		"**Cluster Size Distribution (%)**",
		"- 1: 44.7\n",
		"### Variability Feature Clusters → Semantic Names",
		"- 4: Critical\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("technical text missing %q", want)
		}
	}
}

func TestTechnical_JSON(t *testing.T) {
	out, err := NewRenderer(sample.Bundle()).Technical().JSON()
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var decoded struct {
		Raw struct {
			Silhouette float64 `json:"silhouette"`
		} `json:"raw"`
		DatasetOverview string `json:"dataset_overview"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Raw.Silhouette != 0.42 {
		t.Errorf("silhouette = %v", decoded.Raw.Silhouette)
	}
	if decoded.DatasetOverview == "" {
		t.Error("dataset overview missing")
	}
}

func TestTechnical_CopiesBundleMaps(t *testing.T) {
	b := sample.Bundle()
	tr := NewTechnicalReport(b)
	tr.Raw.Names[0] = "Mutated"
	if name, _ := b.Raw.Names.Name(0); name != "Compact" {
		t.Error("technical report aliases bundle name map")
	}
}

func TestRenderAll_IsolatesFailures(t *testing.T) {
	render := func(kind Kind, c *Context) (string, error) {
		switch kind {
		case KindTTC:
			panic("template exploded")
		case KindClinician:
			return "", errors.New("boom")
		}
		return "ok", nil
	}

	results := RenderAll([]Kind{KindTTC, KindClinician, KindTechnical}, nil, render)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Err == nil || !strings.Contains(results[0].Err.Error(), "panic: template exploded") {
		t.Errorf("ttc err = %v, want recovered panic", results[0].Err)
	}
	if results[1].Err == nil || !strings.Contains(results[1].Err.Error(), "boom") {
		t.Errorf("clinician err = %v", results[1].Err)
	}
	if results[2].Err != nil || results[2].Text != "ok" {
		t.Errorf("technical = %+v, want ok", results[2])
	}
}

func TestRenderer_RenderAll(t *testing.T) {
	r := NewRenderer(sample.Bundle())
	c := exampleContext(t)

	results := r.RenderAll([]Kind{KindTTC, KindClinician, KindTechnical}, &c)
	for _, res := range results {
		if res.Err != nil {
			t.Errorf("%s: %v", res.Kind, res.Err)
		}
		if res.Text == "" {
			t.Errorf("%s: empty text", res.Kind)
		}
	}

	results = r.RenderAll([]Kind{KindTTC, KindTechnical}, nil)
	if !errors.Is(results[0].Err, ErrNoContext) {
		t.Errorf("ttc without context err = %v, want ErrNoContext", results[0].Err)
	}
	if results[1].Err != nil {
		t.Errorf("technical without context err = %v", results[1].Err)
	}
}

func TestParseKind_ErrorListsKinds(t *testing.T) {
	_, err := ParseKind("weekly")
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
	for _, k := range Kinds() {
		if !strings.Contains(err.Error(), string(k)) {
			t.Errorf("error %q does not mention %q", err, k)
		}
	}
	for _, k := range Kinds() {
		if got, err := ParseKind(string(k)); err != nil || got != k {
			t.Errorf("ParseKind(%q) = %q, %v", k, got, err)
		}
	}
}

func TestParseKinds(t *testing.T) {
	tests := []struct {
		in      string
		want    []Kind
		wantErr bool
	}{
		{"ttc", []Kind{KindTTC}, false},
		{" Clinician ", []Kind{KindClinician}, false},
		{"technical", []Kind{KindTechnical}, false},
		{"both", []Kind{KindTTC, KindClinician}, false},
		{"BOTH", []Kind{KindTTC, KindClinician}, false},
		{"summary", nil, true},
		{"", nil, true},
	}
	for _, tt := range tests {
		got, err := ParseKinds(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKinds(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("ParseKinds(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseKinds(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
