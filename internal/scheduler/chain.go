package scheduler

import (
	"sort"
	"time"

	"github.com/taskchainhq/taskchain/internal/domain"
)

// TaskSpec describes one task to lay out when building a chain.
// CompletionDays defaults to 1 when absent or non-positive.
type TaskSpec struct {
	Name           string
	Description    string
	CompletionDays *int
	Status         domain.TaskStatus
}

// BuildChain lays out a contiguous task chain from a project start date.
// The first task starts on start; each task ends CompletionDays−1 days after
// its own start (a 1-day task starts and ends the same day); each subsequent
// task starts the day after its predecessor ends. Order is assigned 1..N in
// input order.
//
// The returned tasks carry no IDs or timestamps; the caller owns persistence.
func BuildChain(projectID string, start time.Time, specs []TaskSpec) ([]*domain.Task, error) {
	if start.IsZero() {
		return nil, domain.NewValidationError("start_date", "is required to lay out a task chain")
	}

	tasks := make([]*domain.Task, 0, len(specs))
	for i, spec := range specs {
		if spec.Name == "" {
			return nil, domain.NewValidationError("name", "is required for task %d", i+1)
		}
		days := domain.IntFromPtrWithDefault(1, spec.CompletionDays)
		if days < 1 {
			days = 1
		}
		status := spec.Status
		if status == "" {
			status = domain.TaskPending
		}
		if !domain.ValidTaskStatuses[status] {
			return nil, domain.NewValidationError("status", "unknown value %q for task %d", string(status), i+1)
		}
		tasks = append(tasks, &domain.Task{
			ProjectID:      projectID,
			Name:           spec.Name,
			Description:    spec.Description,
			Order:          i + 1,
			Status:         status,
			CompletionDays: days,
		})
	}

	if err := Relayout(start, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Relayout re-dates an existing chain from a new anchor start date,
// preserving each task's CompletionDays. Tasks are processed in Order.
// Dates are overwritten; callers wanting "not yet scheduled" tasks simply
// do not call Relayout for them.
func Relayout(start time.Time, chain []*domain.Task) error {
	if start.IsZero() {
		return domain.NewValidationError("start_date", "is required to lay out a task chain")
	}

	SortChain(chain)
	cursor := domain.Date(start)
	for _, t := range chain {
		days := t.CompletionDays
		if days < 1 {
			days = 1
			t.CompletionDays = 1
		}
		s := cursor
		e := domain.AddDays(s, days-1)
		t.StartDate = &s
		t.EndDate = &e
		cursor = domain.AddDays(e, 1)
	}
	return nil
}

// SortChain orders tasks by their Order field, ascending. Stable so equal
// orders (which the store forbids anyway) keep their relative position.
func SortChain(chain []*domain.Task) {
	sort.SliceStable(chain, func(i, j int) bool {
		return chain[i].Order < chain[j].Order
	})
}

// CompactOrders renumbers a chain to 1..N after a removal, preserving the
// existing relative order. Returns the tasks whose Order changed. Dates are
// deliberately not touched; removal never re-shifts the chain.
func CompactOrders(chain []*domain.Task) []*domain.Task {
	SortChain(chain)
	var changed []*domain.Task
	for i, t := range chain {
		want := i + 1
		if t.Order != want {
			t.Order = want
			changed = append(changed, t)
		}
	}
	return changed
}
