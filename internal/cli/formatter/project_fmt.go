package formatter

import (
	"fmt"
	"strings"

	"github.com/taskchainhq/taskchain/internal/domain"
	"github.com/taskchainhq/taskchain/internal/scheduler"
)

// ProjectInspectData holds all data needed to render a project inspect view.
type ProjectInspectData struct {
	Project  *domain.Project
	Tasks    []*domain.Task
	Progress scheduler.Progress
	// Assignee is the resolved employee, nil when unassigned.
	Assignee *domain.Employee
}

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "TITLE", "START", "END", "ASSIGNED"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		assigned := Dim("--")
		if p.AssignedEmployee != nil {
			assigned = TruncID(*p.AssignedEmployee)
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Title),
			ShortDate(p.StartDate),
			ShortDate(p.EndDate),
			assigned,
		})
	}

	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatProjectInspect renders a project card: metadata, progress and the
// task chain.
func FormatProjectInspect(data ProjectInspectData) string {
	var b strings.Builder

	p := data.Project
	b.WriteString(StyleBold.Render(p.Title) + "\n")
	if p.Description != "" {
		b.WriteString(Dim(p.Description) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UUID  "), TruncID(p.ID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("START "), ShortDate(p.StartDate)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("END   "), ShortDate(p.EndDate)))
	if data.Assignee != nil {
		b.WriteString(fmt.Sprintf("%s  %s %s\n", StyleDim.Render("OWNER "),
			StyleFg.Render(data.Assignee.Name), DepartmentBadge(data.Assignee.Department)))
	}

	pr := data.Progress
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s %s\n",
		StyleDim.Render("DONE  "),
		RenderProgress(float64(pr.CompletionPercentage)/100, 20),
		Dim(fmt.Sprintf("(%d/%d tasks)", pr.CompletedTasks, pr.TaskCount))))
	if pr.HasSpan {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("SPAN  "),
			StyleFg.Render(fmt.Sprintf("%s → %s (%s)",
				pr.SpanStart.Format(domain.DateLayout),
				pr.SpanEnd.Format(domain.DateLayout),
				FormatDays(pr.CompletionDays)))))
	}

	if len(data.Tasks) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatTaskTable(data.Tasks))
	}

	return RenderBox("", b.String())
}
