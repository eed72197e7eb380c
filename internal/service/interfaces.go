package service

import (
	"context"
	"time"

	"github.com/taskchainhq/taskchain/internal/domain"
	"github.com/taskchainhq/taskchain/internal/scheduler"
)

// ProjectDetail is a project together with its chain and computed progress.
type ProjectDetail struct {
	Project  *domain.Project
	Tasks    []*domain.Task
	Progress scheduler.Progress
}

// CascadeResult reports the outcome of a chain mutation: the mutated target
// plus every downstream task whose dates moved with it.
type CascadeResult struct {
	Task    *domain.Task
	Changed []*domain.Task
}

// Downstream returns how many tasks moved besides the target itself.
func (r *CascadeResult) Downstream() int {
	n := 0
	for _, t := range r.Changed {
		if t.ID != r.Task.ID {
			n++
		}
	}
	return n
}

type ProjectService interface {
	// Create persists the project and, when specs are given, its task chain.
	// With a project start date the chain is laid out contiguously from it;
	// without one the tasks are created undated.
	Create(ctx context.Context, p *domain.Project, specs []scheduler.TaskSpec) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	Inspect(ctx context.Context, id string) (*ProjectDetail, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	// SetDate sets or clears one of the project's own dates. Project dates
	// frame the plan; they never move the task chain.
	SetDate(ctx context.Context, id string, field domain.DateField, date *time.Time) error
	// AutoSchedule re-dates the whole chain contiguously from the project's
	// start date, overwriting any task dates.
	AutoSchedule(ctx context.Context, id string) ([]*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	// UpdateField updates non-scheduling fields; nil means leave unchanged.
	UpdateField(ctx context.Context, id string, name, description *string) (*domain.Task, error)
	// SetDate sets or clears a task date and cascades the move downstream.
	SetDate(ctx context.Context, id string, field domain.DateField, date *time.Time) (*CascadeResult, error)
	// Shift moves the task's dates by days (negative moves earlier) and
	// cascades the same delta downstream.
	Shift(ctx context.Context, id string, days int) (*CascadeResult, error)
	// SetCompletionDays resizes the task and cascades the end-date delta.
	SetCompletionDays(ctx context.Context, id string, days int) (*CascadeResult, error)
	SetStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error)
	// Delete removes the task and renumbers the remainder contiguously.
	// Remaining task dates stay where they are.
	Delete(ctx context.Context, id string) error
}

type EmployeeService interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) error
	Delete(ctx context.Context, id string) error
}

// TimelineEntry is one row of the flattened cross-project timeline. Task is
// nil for projects that have no tasks yet.
type TimelineEntry struct {
	Project *domain.Project
	Task    *domain.Task
}

type TimelineService interface {
	// Timeline returns every project in creation order, each expanded into
	// its chain in order.
	Timeline(ctx context.Context) ([]TimelineEntry, error)
}
