package scheduler

import (
	"math"
	"time"

	"github.com/taskchainhq/taskchain/internal/domain"
)

// Progress holds read-only aggregates derived from a project's task set.
type Progress struct {
	TaskCount            int
	CompletedTasks       int
	CompletionPercentage int

	// CompletionDays is the span in days from the earliest task start to the
	// latest task end among fully dated tasks, inclusive. HasSpan is false
	// when no task carries both dates.
	CompletionDays int
	HasSpan        bool
	SpanStart      time.Time
	SpanEnd        time.Time
}

// ComputeProgress derives aggregates from the current task set. It never
// mutates tasks.
func ComputeProgress(tasks []*domain.Task) Progress {
	var p Progress
	var earliest, latest *time.Time

	for _, t := range tasks {
		p.TaskCount++
		if t.Status == domain.TaskDone {
			p.CompletedTasks++
		}
		if !t.Scheduled() {
			continue
		}
		if earliest == nil || t.StartDate.Before(*earliest) {
			earliest = t.StartDate
		}
		if latest == nil || t.EndDate.After(*latest) {
			latest = t.EndDate
		}
	}

	if p.TaskCount > 0 {
		p.CompletionPercentage = int(math.Round(100 * float64(p.CompletedTasks) / float64(p.TaskCount)))
	}

	if earliest != nil && latest != nil {
		p.HasSpan = true
		p.SpanStart = *earliest
		p.SpanEnd = *latest
		p.CompletionDays = domain.DaysBetween(*earliest, *latest) + 1
	}

	return p
}
