package prompts

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func promptText(t *testing.T, r *mcp.GetPromptResult) string {
	t.Helper()
	if len(r.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(r.Messages))
	}
	tc, ok := r.Messages[0].Content.(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T", r.Messages[0].Content)
	}
	return tc.Text
}

func TestIntakePrompt_Defaults(t *testing.T) {
	r, err := NewIntakePrompt().Handle(context.Background(), mcp.GetPromptRequest{})
	if err != nil {
		t.Fatal(err)
	}
	text := promptText(t, r)
	if !strings.Contains(text, "kind='ttc'") {
		t.Errorf("default audience should be ttc: %s", text)
	}
	if !strings.Contains(text, "the user's name") {
		t.Errorf("should ask for the name: %s", text)
	}
}

func TestIntakePrompt_WithArguments(t *testing.T) {
	req := mcp.GetPromptRequest{}
	req.Params.Arguments = map[string]string{"name": "Ana", "audience": "both"}
	r, err := NewIntakePrompt().Handle(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	text := promptText(t, r)
	if !strings.Contains(text, "name='Ana'") || !strings.Contains(text, "kind='both'") {
		t.Errorf("arguments not applied: %s", text)
	}
}

func TestHistoryPrompt_ReferencesTool(t *testing.T) {
	r, err := NewHistoryPrompt().Handle(context.Background(), mcp.GetPromptRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(promptText(t, r), "cycle_report_history") {
		t.Error("prompt should reference cycle_report_history")
	}
}
