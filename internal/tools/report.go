package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/cyclesense/internal/logging"
	"github.com/HendryAvila/cyclesense/internal/profile"
	"github.com/HendryAvila/cyclesense/internal/report"
	"github.com/mark3labs/mcp-go/mcp"
)

// ReportTool handles the cycle_report MCP tool.
// It profiles the user and renders the requested personal reports.
type ReportTool struct {
	assigner *profile.Assigner
	renderer *report.Renderer
	observer ReportObserver
}

// NewReportTool creates a ReportTool.
func NewReportTool(assigner *profile.Assigner, renderer *report.Renderer) *ReportTool {
	return &ReportTool{assigner: assigner, renderer: renderer}
}

// SetObserver wires an optional observer that sees every rendered report.
// Passing a nil *HistoryRecorder disables it.
func (t *ReportTool) SetObserver(o ReportObserver) {
	if h, ok := o.(*HistoryRecorder); ok && h == nil {
		t.observer = nil
		return
	}
	t.observer = o
}

// Definition returns the MCP tool definition for registration.
func (t *ReportTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(
			"Generate a CycleSense report from a user's details and three recorded cycles. " +
				"`ttc` is the lay trying-to-conceive summary, `clinician` the clinician-facing " +
				"summary with cluster averages, `both` renders the two and `technical` " +
				"appends the model evaluation report.",
		),
		mcp.WithString("kind",
			mcp.Description("Report kind: ttc, clinician, both or technical (default: ttc)"),
			mcp.DefaultString("ttc"),
			mcp.Enum(append(report.KindNames(), "both")...),
		),
	}
	opts = append(opts, subjectOptions()...)
	opts = append(opts, cycleOptions()...)
	return mcp.NewTool("cycle_report", opts...)
}

// Handle processes the cycle_report tool call.
func (t *ReportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kinds, err := report.ParseKinds(req.GetString("kind", "ttc"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	subject, err := readSubject(req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid user details: %v", err)), nil
	}
	records, err := readRecords(req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid cycles: %v", err)), nil
	}

	a, err := t.assigner.Assign(records)
	if err != nil {
		return nil, fmt.Errorf("assigning profile: %w", err)
	}
	rc := report.NewContext(subject, a)
	logging.Debug("rendering report", "kinds", kinds, "logical", a.Logical)

	var sections []string
	failed := 0
	for _, res := range t.renderer.RenderAll(kinds, &rc) {
		if res.Err != nil {
			failed++
			logging.Error("report rendering failed", "kind", res.Kind, "err", res.Err)
			sections = append(sections, fmt.Sprintf("**%s report unavailable:** %v\n", res.Kind, res.Err))
			continue
		}
		if t.observer != nil && res.Kind.Personal() {
			t.observer.OnReport(res.Kind, &rc, res.Text)
		}
		sections = append(sections, res.Text)
	}

	text := strings.Join(sections, "\n---\n\n")
	if failed == len(kinds) {
		return mcp.NewToolResultError(text), nil
	}
	return mcp.NewToolResultText(text), nil
}
