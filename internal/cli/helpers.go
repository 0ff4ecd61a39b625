package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/HendryAvila/cyclesense/internal/cycle"
	"github.com/HendryAvila/cyclesense/internal/store"
)

var (
	colorAccent = lipgloss.Color("#89b4fa")
	colorDim    = lipgloss.Color("#6c7086")
	colorRed    = lipgloss.Color("#f38ba8")
	colorGreen  = lipgloss.Color("#a6e3a1")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	labelStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	okStyle     = lipgloss.NewStyle().Foreground(colorGreen)
)

// isTerminal reports whether w is an interactive terminal. Styles are only
// applied when it is, so piped output stays plain.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// style returns s when w is a terminal and a no-op style otherwise.
func style(w io.Writer, s lipgloss.Style) lipgloss.Style {
	if isTerminal(w) {
		return s
	}
	return lipgloss.NewStyle()
}

func errorStyle(w io.Writer) lipgloss.Style {
	return style(w, lipgloss.NewStyle().Foreground(colorRed))
}

// printHeader prints a section title followed by an underline.
func printHeader(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", style(w, headerStyle).Render(title))
	fmt.Fprintln(w, style(w, dimStyle).Render(strings.Repeat("-", len(title)+2)))
}

// printField prints a labeled field.
func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", style(w, labelStyle).Render(fmt.Sprintf("%-14s", label+":")), value)
}

// renderMarkdown styles the heading lines of a markdown document for the
// terminal. Other lines, and everything when w is not a terminal, are
// printed unchanged.
func renderMarkdown(w io.Writer, doc string) {
	doc = strings.TrimRight(doc, "\n")
	if !isTerminal(w) {
		fmt.Fprintln(w, doc)
		return
	}
	for _, line := range strings.Split(doc, "\n") {
		if strings.HasPrefix(line, "#") {
			fmt.Fprintln(w, headerStyle.Render(strings.TrimLeft(line, "# ")))
			continue
		}
		fmt.Fprintln(w, line)
	}
}

// openStore opens the store under the configured data directory.
func openStore() (*store.Store, error) {
	s, err := store.New(cfg.StoreConfig())
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return s, nil
}

// parseCycle parses "length,menses,ovulation", e.g. "28,5,14".
func parseCycle(s string) (cycle.Record, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return cycle.Record{}, fmt.Errorf("cycle %q: want length,menses,ovulation", s)
	}
	var vals [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return cycle.Record{}, fmt.Errorf("cycle %q: %q is not a number", s, p)
		}
		vals[i] = v
	}
	return cycle.Record{Length: vals[0], MensesLength: vals[1], OvulationDay: vals[2]}, nil
}

// parseCycles parses exactly cycle.Count --cycle values and validates them.
func parseCycles(values []string) (cycle.Records, error) {
	var records cycle.Records
	if len(values) != cycle.Count {
		return records, fmt.Errorf("need exactly %d --cycle values, got %d", cycle.Count, len(values))
	}
	for i, v := range values {
		r, err := parseCycle(v)
		if err != nil {
			return records, err
		}
		records[i] = r
	}
	return records, records.Validate()
}
