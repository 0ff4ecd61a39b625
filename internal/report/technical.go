package report

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/HendryAvila/cyclesense/internal/artifacts"
)

// ModelReport carries one classifier's evaluation metrics and naming map,
// copied verbatim from the artifacts.
type ModelReport struct {
	Model            string          `json:"model"`
	Title            string          `json:"title"`
	NamesTitle       string          `json:"-"`
	Silhouette       float64         `json:"silhouette"`
	CalinskiHarabasz float64         `json:"calinski_harabasz"`
	DaviesBouldin    float64         `json:"davies_bouldin"`
	SizesPercent     map[int]float64 `json:"sizes_percent"`
	Names            map[int]string  `json:"names"`
}

// TechnicalReport is the static clustering-quality report.
type TechnicalReport struct {
	DatasetOverview string      `json:"dataset_overview"`
	Raw             ModelReport `json:"raw"`
	Variability     ModelReport `json:"variability"`
}

// Technical builds the technical report. No recomputation happens here.
func (r *Renderer) Technical() TechnicalReport {
	return NewTechnicalReport(r.bundle)
}

// NewTechnicalReport builds the technical report for a bundle.
func NewTechnicalReport(b *artifacts.Bundle) TechnicalReport {
	return TechnicalReport{
		DatasetOverview: b.DatasetOverview,
		Raw: modelReport(artifacts.ModelRaw, b.Raw,
			"Raw Features Clustering", "Raw Feature Clusters"),
		Variability: modelReport(artifacts.ModelVariability, b.Variability,
			"Variability Features Clustering", "Variability Feature Clusters"),
	}
}

func modelReport(name string, m artifacts.Model, title, namesTitle string) ModelReport {
	sizes := make(map[int]float64, len(m.Evaluation.SizesPercent))
	for id, pct := range m.Evaluation.SizesPercent {
		sizes[id] = pct
	}
	names := make(map[int]string, len(m.Names))
	for id, n := range m.Names {
		names[id] = n
	}
	return ModelReport{
		Model:            name,
		Title:            title,
		NamesTitle:       namesTitle,
		Silhouette:       m.Evaluation.Silhouette,
		CalinskiHarabasz: m.Evaluation.CalinskiHarabasz,
		DaviesBouldin:    m.Evaluation.DaviesBouldin,
		SizesPercent:     sizes,
		Names:            names,
	}
}

// Models returns the two model sections in display order.
func (t TechnicalReport) Models() []ModelReport {
	return []ModelReport{t.Raw, t.Variability}
}

// JSON returns the report as indented JSON.
func (t TechnicalReport) JSON() (string, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling technical report: %w", err)
	}
	return string(data), nil
}

// Text renders the report as markdown.
func (t TechnicalReport) Text() string {
	var b strings.Builder
	b.WriteString("# Clustering Evaluation Report\n\n")

	if t.DatasetOverview != "" {
		b.WriteString("## Dataset Overview\n\n")
		b.WriteString(t.DatasetOverview)
		b.WriteString("\n\n")
	}

	b.WriteString("## Evaluation Metrics\n\n")
	for _, m := range t.Models() {
		fmt.Fprintf(&b, "### %s\n\n", m.Title)
		fmt.Fprintf(&b, "- Silhouette: %s\n", FormatMetric(m.Silhouette))
		fmt.Fprintf(&b, "- Calinski-Harabasz: %s\n", FormatMetric(m.CalinskiHarabasz))
		fmt.Fprintf(&b, "- Davies-Bouldin: %s\n\n", FormatMetric(m.DaviesBouldin))
		b.WriteString("**Cluster Size Distribution (%)**\n\n")
		for _, id := range slices.Sorted(maps.Keys(m.SizesPercent)) {
			fmt.Fprintf(&b, "- %d: %s\n", id, FormatMetric(m.SizesPercent[id]))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Cluster Naming Maps\n\n")
	for _, m := range t.Models() {
		fmt.Fprintf(&b, "### %s → Semantic Names\n\n", m.NamesTitle)
		for _, id := range artifacts.NameMap(m.Names).IDs() {
			fmt.Fprintf(&b, "- %d: %s\n", id, m.Names[id])
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// FormatMetric prints a metric with the shortest representation that
// round-trips, so stored values appear exactly as recorded.
func FormatMetric(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
