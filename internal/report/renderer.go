package report

import (
	"fmt"
	"strings"

	"github.com/HendryAvila/cyclesense/internal/artifacts"
	"github.com/HendryAvila/cyclesense/internal/inference"
)

// Renderer formats reports for one artifact bundle.
type Renderer struct {
	bundle *artifacts.Bundle
	engine *inference.Engine
}

// NewRenderer creates a Renderer. The pregnancy overlay and the clinician
// demographics read the bundle's cluster statistics.
func NewRenderer(b *artifacts.Bundle) *Renderer {
	return &Renderer{
		bundle: b,
		engine: inference.New(b.Stats),
	}
}

// Engine exposes the inference engine the renderer uses.
func (r *Renderer) Engine() *inference.Engine {
	return r.engine
}

// TTC renders the user-facing trying-to-conceive summary.
func (r *Renderer) TTC(c Context) string {
	logical := c.Logical()
	complications := "no complications"
	if c.Complications {
		complications = "with complications"
	}

	return fmt.Sprintf(
		"Hi %s, here’s your CycleSense summary:\n\n"+
			"**Your cycle profile**: %s.\n\n"+
			"**Cycle profile description**: %s\n\n"+
			"**TTC Note**: %s\n\n"+
			"**Your stats**: Age %d, BMI %.1f, %d pregnancies, %s.\n",
		c.Name,
		logical,
		r.engine.ShortDescription(logical),
		r.engine.TTCNote(c.subject()),
		c.Age, c.BMI, c.Pregnancies, complications,
	)
}

// Clinician renders the clinician-facing summary. Cluster averages that are
// not available fall back to the patient's own value.
func (r *Renderer) Clinician(c Context) string {
	logical := c.Logical()
	stats, _ := r.bundle.Stats.Lookup(string(logical))

	complications := "No"
	if c.Complications {
		complications = "Yes"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Patient**: %s, %dy\n\n", c.Name, c.Age)
	fmt.Fprintf(&b, "**Profile**: %s\n\n", logical)
	fmt.Fprintf(&b, "**Cluster**: %s\n\n", r.engine.Describe(logical))
	b.WriteString("**Demographics**:\n")
	fmt.Fprintf(&b, "- Age %d (cluster avg %s)\n", c.Age, formatAverage(stats.AgeMean, float64(c.Age)))
	fmt.Fprintf(&b, "- BMI %.1f (cluster avg %s)\n", c.BMI, formatAverage(stats.BMIMean, c.BMI))
	fmt.Fprintf(&b, "- Pregnancies: %d (cluster avg %s)\n", c.Pregnancies, formatAverage(stats.PregnancyMean, float64(c.Pregnancies)))
	fmt.Fprintf(&b, "- Complications: %s (cluster rate %s)\n\n", complications, formatRate(stats.ComplicationRate))
	fmt.Fprintf(&b, "**Interpretation**: %s\n", r.engine.ClinicalNote(c.subject()))
	return b.String()
}

func formatAverage(v *float64, fallback float64) string {
	if v == nil {
		return fmt.Sprintf("%.1f", fallback)
	}
	return fmt.Sprintf("%.1f", *v)
}

// formatRate prints a fraction as a whole percent. The product is rounded
// half to even on its binary value, so 0.135 prints 14% and 0.125 prints 12%.
func formatRate(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.0f%%", *v*100)
}
