package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HendryAvila/cyclesense/internal/cycle"
	"github.com/HendryAvila/cyclesense/internal/logging"
	"github.com/HendryAvila/cyclesense/internal/profile"
	"github.com/mark3labs/mcp-go/mcp"
)

// AssignTool handles the cycle_assign_profile MCP tool.
// It runs only the classification step and reports the assignment together
// with the variability summary it was based on.
type AssignTool struct {
	assigner *profile.Assigner
}

// NewAssignTool creates an AssignTool.
func NewAssignTool(assigner *profile.Assigner) *AssignTool {
	return &AssignTool{assigner: assigner}
}

// Definition returns the MCP tool definition for registration.
func (t *AssignTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(
			"Assign a cycle profile from three recorded cycles. Returns the raw " +
				"(length) group, the variability group, the combined label, the " +
				"logical profile and the per-user variability summary (mean, std, cv).",
		),
	}
	opts = append(opts, cycleOptions()...)
	return mcp.NewTool("cycle_assign_profile", opts...)
}

type assignResponse struct {
	Assignment profile.Assignment `json:"assignment"`
	Known      bool               `json:"known_profile"`
	Summary    map[string]float64 `json:"variability_summary"`
}

// Handle processes the cycle_assign_profile tool call.
func (t *AssignTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, err := readRecords(req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid cycles: %v", err)), nil
	}

	a, err := t.assigner.Assign(records)
	if err != nil {
		return nil, fmt.Errorf("assigning profile: %w", err)
	}
	logging.Debug("profile assigned", "combined", a.Combined, "logical", a.Logical)

	resp := assignResponse{
		Assignment: a,
		Known:      a.Logical.Known(),
		Summary:    cycle.Summarize(cycle.NewFeatureVector(records)).Map(),
	}
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling assignment: %w", err)
	}

	response := fmt.Sprintf(
		"# Cycle Profile\n\n"+
			"**Profile:** %s\n"+
			"**Clusters:** %s\n\n"+
			"```json\n%s\n```\n",
		a.Logical, a.Combined, data,
	)
	return mcp.NewToolResultText(response), nil
}
