package formatter

import (
	"fmt"

	"github.com/taskchainhq/taskchain/internal/domain"
)

// FormatTaskTable renders a chain as an aligned table, one row per task in
// order.
func FormatTaskTable(tasks []*domain.Task) string {
	headers := []string{"#", "ID", "TASK", "START", "END", "DAYS", "STATUS"}
	rows := make([][]string, 0, len(tasks))

	for _, t := range tasks {
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", t.Order)),
			TruncID(t.ID),
			Bold(t.Name),
			ShortDate(t.StartDate),
			ShortDate(t.EndDate),
			StyleFg.Render(FormatDays(t.DurationDays())),
			StatusPill(t.Status),
		})
	}

	return RenderTable(headers, rows)
}

// FormatTaskList renders a project's chain inside a bordered box.
func FormatTaskList(projectTitle string, tasks []*domain.Task) string {
	return RenderBox(projectTitle, FormatTaskTable(tasks))
}

// FormatCascade summarizes a chain mutation for command output.
func FormatCascade(target *domain.Task, downstream int) string {
	var line string
	if target.Scheduled() {
		line = fmt.Sprintf("%s %s now runs %s → %s",
			StyleGreen.Render("✔"),
			Bold(target.Name),
			target.StartDate.Format(domain.DateLayout),
			target.EndDate.Format(domain.DateLayout))
	} else {
		line = fmt.Sprintf("%s %s is now unscheduled", StyleGreen.Render("✔"), Bold(target.Name))
	}
	if downstream == 1 {
		line += Dim(" (1 downstream task rescheduled)")
	} else if downstream > 1 {
		line += Dim(fmt.Sprintf(" (%d downstream tasks rescheduled)", downstream))
	}
	return line
}
