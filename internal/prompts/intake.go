// Package prompts implements MCP prompt handlers for CycleSense.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// IntakePrompt handles the cycle-intake MCP prompt.
// It guides the AI through collecting a user's details and cycles and
// generating their report.
type IntakePrompt struct{}

// NewIntakePrompt creates an IntakePrompt.
func NewIntakePrompt() *IntakePrompt {
	return &IntakePrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *IntakePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("cycle-intake",
		mcp.WithPromptDescription(
			"Collect a user's details and last three cycles, then generate "+
				"their CycleSense report.",
		),
		mcp.WithArgument("name",
			mcp.ArgumentDescription("Name of the user"),
		),
		mcp.WithArgument("audience",
			mcp.ArgumentDescription(
				"Who the report is for: 'ttc' (the user), 'clinician', or 'both'. Default: ttc",
			),
		),
	)
}

// Handle processes the cycle-intake prompt request.
func (p *IntakePrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	name := ""
	audience := "ttc"
	if args := req.Params.Arguments; args != nil {
		if n, ok := args["name"]; ok && n != "" {
			name = n
		}
		if a, ok := args["audience"]; ok && a != "" {
			audience = a
		}
	}

	who := "the user's name"
	if name != "" {
		who = fmt.Sprintf("name='%s'", name)
	}

	return &mcp.GetPromptResult{
		Description: "CycleSense intake",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I'd like a CycleSense report (kind: %s).\n\n"+
						"Please:\n"+
						"1. Ask me for %s, age, height in metres, weight in kg, number of previous pregnancies "+
						"and whether I have reproductive complications\n"+
						"2. Ask me for my last three cycles: total length, menses length and ovulation day of each\n"+
						"3. Check the values are in range (cycle 15-60 days, menses 2-10, ovulation day 10-30) "+
						"and ask again for anything that is not\n"+
						"4. Run `cycle_report` with kind='%s' and present the result as-is\n\n"+
						"This is informational only and is not a medical diagnosis.",
					audience, who, audience,
				)),
			},
		},
	}, nil
}
