package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/HendryAvila/cyclesense/internal/store"
	"github.com/dustin/go-humanize"
	"github.com/mark3labs/mcp-go/mcp"
)

// HistoryTool handles the cycle_report_history MCP tool.
// It lists recently generated reports or returns one in full.
type HistoryTool struct {
	store        *store.Store
	defaultLimit int
}

// NewHistoryTool creates a HistoryTool.
func NewHistoryTool(s *store.Store, defaultLimit int) *HistoryTool {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	return &HistoryTool{store: s, defaultLimit: defaultLimit}
}

// Definition returns the MCP tool definition for registration.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("cycle_report_history",
		mcp.WithDescription(
			"List recently generated CycleSense reports, newest first. "+
				"Pass `id` to get one report's full text.",
		),
		mcp.WithString("id",
			mcp.Description("Report ID to show in full. If omitted, lists recent reports."),
		),
		mcp.WithString("kind",
			mcp.Description("Only list reports of this kind (ttc or clinician)"),
		),
		mcp.WithString("name",
			mcp.Description("Only list reports for this user name (case-insensitive)"),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum number of reports to list (default: %d)", t.defaultLimit)),
		),
	)
}

// Handle processes the cycle_report_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if id := req.GetString("id", ""); id != "" {
		rec, err := t.store.GetReport(id)
		if errors.Is(err, store.ErrReportNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("Report %q not found", id)), nil
		}
		if err != nil {
			return nil, err
		}
		header := fmt.Sprintf("# %s report for %s\n\n**ID:** `%s`\n**Created:** %s\n\n",
			rec.Kind, displayName(rec.Name), rec.ID, rec.CreatedAt)
		return mcp.NewToolResultText(header + rec.Body), nil
	}

	records, err := t.store.RecentReports(store.HistoryFilter{
		Kind:  req.GetString("kind", ""),
		Name:  req.GetString("name", ""),
		Limit: intArg(req, "limit", t.defaultLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	if len(records) == 0 {
		return mcp.NewToolResultText("No reports found."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Report History (%d)\n\n", len(records))
	b.WriteString("| ID | Kind | Name | Profile | Created |\n")
	b.WriteString("|----|------|------|---------|---------|\n")
	for _, r := range records {
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s | %s |\n",
			r.ID, r.Kind, displayName(r.Name), r.Logical, Age(r.CreatedAt))
	}
	return mcp.NewToolResultText(b.String()), nil
}

// Age renders a stored timestamp relative to now ("3 minutes ago"), or the
// raw value when it cannot be parsed.
func Age(createdAt string) string {
	ts, err := store.ParseTime(createdAt)
	if err != nil {
		return createdAt
	}
	return humanize.Time(ts)
}

func displayName(name string) string {
	if name == "" {
		return "—"
	}
	return name
}
