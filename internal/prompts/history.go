package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// HistoryPrompt handles the cycle-history MCP prompt.
// It instructs the AI to summarize previously generated reports.
type HistoryPrompt struct{}

// NewHistoryPrompt creates a HistoryPrompt.
func NewHistoryPrompt() *HistoryPrompt {
	return &HistoryPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *HistoryPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("cycle-history",
		mcp.WithPromptDescription(
			"Review previously generated CycleSense reports and how a user's "+
				"profile has changed between them.",
		),
	)
}

// Handle processes the cycle-history prompt request.
func (p *HistoryPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "CycleSense report history",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `cycle_report_history` to list my recent reports.\n\n" +
						"Then:\n" +
						"1. Show them in a clear table, newest first\n" +
						"2. Point out if the profile changed between reports for the same person\n" +
						"3. Offer to open any report in full with its ID",
				),
			},
		},
	}, nil
}
