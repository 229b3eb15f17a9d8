package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers MCP prompts for common event planning workflows.
func RegisterPrompts(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("status_review").
		Description("Review where the event stands and what needs attention this week.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return userPrompt("Event Status Review", `Let's review the event. Please:

1. Read the overall and per-phase progress from the eventboard://dashboard resource
2. Read every task from the eventboard://tasks resource

Then tell me:
- Which categories are behind compared to their due date
- Which tasks are blocked, and who they are assigned to
- The three tasks that would raise overall progress the most if finished

Suggest concrete next steps I can take with the task.* tools.`), nil
		})

	srv.Prompt("category_triage").
		Description("Go through one category's tasks and decide what to do with each.").
		Argument("category_id", "Category to triage, for example cat-001", true).
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			categoryID := args["category_id"]
			if categoryID == "" {
				categoryID = "[Please name the category]"
			}
			return userPrompt("Category Triage", fmt.Sprintf(`Help me triage category %s.

1. Use category.get to load the category and its tasks
2. For every task that is not completed, propose one of:
   - a quick progress update (task.progress)
   - a status change, for example to blocked (task.status)
   - a new due date or assignee (task.edit)

Ask before changing anything, then apply the changes I approve.`, categoryID)), nil
		})

	srv.Prompt("event_day_checkin").
		Description("Run the front desk on the day: check guests in and keep the schedule in view.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return userPrompt("Event Day Check-in", `Today is the event. Please:

1. Show the schedule from the eventboard://schedule resource
2. Show the guest list and attendance counts with attendee.list

As guests arrive I will give you their names; find them and check them in
with attendee.checkin. Add walk-ins with attendee.add first.`), nil
		})

	return nil
}

func userPrompt(description, text string) *mcp.PromptResult {
	return &mcp.PromptResult{
		Description: description,
		Messages: []mcp.PromptMessage{
			{
				Role: string(mcp.RoleUser),
				Content: mcp.TextContent{
					Type: "text",
					Text: text,
				},
			},
		},
	}
}
