package formatter

import (
	"fmt"

	"github.com/taskchainhq/taskchain/internal/domain"
)

// TimelineRow is one flattened (project, task) pair. Task is nil for
// projects without tasks.
type TimelineRow struct {
	Project *domain.Project
	Task    *domain.Task
}

// FormatTimeline renders the flattened cross-project timeline. The project
// title is printed once per project, on its first row.
func FormatTimeline(rows []TimelineRow) string {
	headers := []string{"PROJECT", "#", "TASK", "START", "END", "DAYS", "STATUS"}
	out := make([][]string, 0, len(rows))

	var lastProject string
	for _, r := range rows {
		title := ""
		if r.Project.ID != lastProject {
			title = Bold(r.Project.Title)
			lastProject = r.Project.ID
		}
		if r.Task == nil {
			out = append(out, []string{title, "", Dim("(no tasks)"), "", "", "", ""})
			continue
		}
		out = append(out, []string{
			title,
			Dim(fmt.Sprintf("%d", r.Task.Order)),
			StyleFg.Render(r.Task.Name),
			ShortDate(r.Task.StartDate),
			ShortDate(r.Task.EndDate),
			// Planned duration, so undated tasks show a span too.
			StyleFg.Render(FormatDays(r.Task.BusinessDays())),
			StatusPill(r.Task.Status),
		})
	}

	return RenderBox("Timeline", RenderTable(headers, out))
}

// FormatEmployeeList renders the employee directory.
func FormatEmployeeList(employees []*domain.Employee) string {
	headers := []string{"ID", "NAME", "EMAIL", "DEPARTMENT"}
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, []string{
			TruncID(e.ID),
			Bold(e.Name),
			StyleFg.Render(e.Email),
			DepartmentBadge(e.Department),
		})
	}
	return RenderBox("Employees", RenderTable(headers, rows))
}
