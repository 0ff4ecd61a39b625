package tools

import (
	"context"
	"fmt"

	"github.com/HendryAvila/cyclesense/internal/report"
	"github.com/mark3labs/mcp-go/mcp"
)

// TechnicalTool handles the cycle_technical_report MCP tool.
type TechnicalTool struct {
	renderer *report.Renderer
}

// NewTechnicalTool creates a TechnicalTool.
func NewTechnicalTool(renderer *report.Renderer) *TechnicalTool {
	return &TechnicalTool{renderer: renderer}
}

// Definition returns the MCP tool definition for registration.
func (t *TechnicalTool) Definition() mcp.Tool {
	return mcp.NewTool("cycle_technical_report",
		mcp.WithDescription(
			"Show the clustering-quality report of the loaded models: dataset overview, "+
				"silhouette, Calinski-Harabasz and Davies-Bouldin scores, cluster size "+
				"distribution and the cluster naming maps. Values are reported as recorded at training time.",
		),
		mcp.WithString("format",
			mcp.Description("Output format: markdown or json (default: markdown)"),
			mcp.DefaultString("markdown"),
			mcp.Enum("markdown", "json"),
		),
	)
}

// Handle processes the cycle_technical_report tool call.
func (t *TechnicalTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tr := t.renderer.Technical()

	switch format := req.GetString("format", "markdown"); format {
	case "markdown", "":
		return mcp.NewToolResultText(tr.Text()), nil
	case "json":
		out, err := tr.JSON()
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(out), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("Unknown format %q (want markdown or json)", format)), nil
	}
}
