package textgen

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
)

const systemPrompt = "You are an assistant for an event planning team. " +
	"Answer in short plain-text paragraphs without markdown tables."

func insightsPrompt(categories []domain.Category, tasks []domain.Task) string {
	var b strings.Builder
	b.WriteString("Review the planning status below. Point out risks, blocked work and the next most useful actions.\n\n")
	writeCategories(&b, categories)

	b.WriteString("\nTasks:\n")
	if len(tasks) == 0 {
		b.WriteString("- none\n")
	}
	for _, t := range tasks {
		fmt.Fprintf(&b, "- [%s] %s (%s, %d%%, due %s, assigned %s)\n",
			t.CategoryID, t.Title, t.Status, t.Progress,
			t.DueDate.Format(domain.DateLayout), strings.Join(t.AssignedTo, ", "))
	}
	return b.String()
}

func weeklyReportPrompt(categories []domain.Category, overallProgress int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a weekly status report for stakeholders. Overall progress is %d%%.\n\n", overallProgress)
	writeCategories(&b, categories)
	return b.String()
}

func writeCategories(b *strings.Builder, categories []domain.Category) {
	b.WriteString("Categories:\n")
	if len(categories) == 0 {
		b.WriteString("- none\n")
	}
	for _, c := range categories {
		fmt.Fprintf(b, "- %s [%s, %s priority]: %d%% %s, due %s\n",
			c.Name, c.Phase, c.Priority, c.Progress, c.Status, c.DueDate.Format(domain.DateLayout))
	}
}
