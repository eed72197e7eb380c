package scheduler

import (
	"fmt"
	"time"

	"github.com/taskchainhq/taskchain/internal/domain"
)

// The shift propagator implements the central scheduling invariant: moving
// one task moves everything after it in the chain by the same delta, without
// altering any task's own duration.
//
// All functions mutate the provided chain in place and return the tasks that
// actually changed. The returned set must be persisted as one unit; writing a
// subset would break chain contiguity. Every proposed task is validated
// before anything is returned; on error the caller must discard the snapshot
// and persist nothing.

// SetStartDate moves a task's start date and cascades the delta downstream.
// The task's duration is preserved: its end date is recomputed from the span
// it had before the move (or from CompletionDays when it was undated).
// Passing nil clears the start date and never cascades.
func SetStartDate(chain []*domain.Task, taskID string, newStart *time.Time) ([]*domain.Task, error) {
	target, err := findTask(chain, taskID)
	if err != nil {
		return nil, err
	}

	if newStart == nil {
		if target.StartDate == nil {
			return nil, nil
		}
		target.StartDate = nil
		return []*domain.Task{target}, nil
	}

	ns := domain.Date(*newStart)
	span := target.DurationDays() - 1
	ne := domain.AddDays(ns, span)

	// No prior anchor: the edit simply dates this task. There is no delta,
	// so downstream tasks stay where they are.
	if target.StartDate == nil {
		target.StartDate = &ns
		if target.EndDate == nil {
			target.EndDate = &ne
		}
		return validateChanged([]*domain.Task{target})
	}

	delta := domain.DaysBetween(*target.StartDate, ns)
	if delta == 0 && target.EndDate != nil && target.EndDate.Equal(ne) {
		return nil, nil
	}

	target.StartDate = &ns
	target.EndDate = &ne

	changed := []*domain.Task{target}
	changed = append(changed, shiftDownstream(chain, target.Order, delta)...)
	return validateChanged(changed)
}

// SetEndDate moves a task's end date. The task's own start date does not
// move, so its duration grows or shrinks, but downstream tasks still
// shift by the delta so the chain stays contiguous from the new end.
// Passing nil clears the end date and never cascades.
func SetEndDate(chain []*domain.Task, taskID string, newEnd *time.Time) ([]*domain.Task, error) {
	target, err := findTask(chain, taskID)
	if err != nil {
		return nil, err
	}

	if newEnd == nil {
		if target.EndDate == nil {
			return nil, nil
		}
		target.EndDate = nil
		return []*domain.Task{target}, nil
	}

	ne := domain.Date(*newEnd)
	if target.StartDate != nil && ne.Before(*target.StartDate) {
		return nil, domain.NewValidationError("end_date", "%s is before the task's start date", ne.Format(domain.DateLayout))
	}

	// No prior end date: set it without a cascade, there is no delta.
	if target.EndDate == nil {
		target.EndDate = &ne
		return validateChanged([]*domain.Task{target})
	}

	delta := domain.DaysBetween(*target.EndDate, ne)
	if delta == 0 {
		return nil, nil
	}

	target.EndDate = &ne

	changed := []*domain.Task{target}
	changed = append(changed, shiftDownstream(chain, target.Order, delta)...)
	return validateChanged(changed)
}

// ShiftTask moves a task by days (negative shifts earlier), applying the
// same delta to both of its dates and to every later task in the chain.
func ShiftTask(chain []*domain.Task, taskID string, days int) ([]*domain.Task, error) {
	target, err := findTask(chain, taskID)
	if err != nil {
		return nil, err
	}
	if days == 0 {
		return nil, nil
	}

	var changed []*domain.Task
	if shiftDates(target, days) {
		changed = append(changed, target)
	}
	changed = append(changed, shiftDownstream(chain, target.Order, days)...)
	return validateChanged(changed)
}

// SetCompletionDays updates a task's planned duration. When the task has
// both dates set, the end date is recomputed from the start and the delta
// cascades downstream. An undated task just records the new duration for
// when scheduling reaches it.
func SetCompletionDays(chain []*domain.Task, taskID string, days int) ([]*domain.Task, error) {
	target, err := findTask(chain, taskID)
	if err != nil {
		return nil, err
	}
	if days < 1 {
		return nil, domain.NewValidationError("completion_days", "must be a positive integer, got %d", days)
	}
	if days == target.CompletionDays && target.StartDate == nil {
		return nil, nil
	}

	target.CompletionDays = days

	if target.StartDate == nil {
		return validateChanged([]*domain.Task{target})
	}

	ne := domain.AddDays(*target.StartDate, days-1)
	delta := 0
	if target.EndDate != nil {
		delta = domain.DaysBetween(*target.EndDate, ne)
	}
	if target.EndDate != nil && delta == 0 {
		return validateChanged([]*domain.Task{target})
	}
	target.EndDate = &ne

	changed := []*domain.Task{target}
	changed = append(changed, shiftDownstream(chain, target.Order, delta)...)
	return validateChanged(changed)
}

// shiftDownstream moves every dated task with Order > after by delta days.
// Undated tasks are skipped: scheduling has not reached them yet.
func shiftDownstream(chain []*domain.Task, after int, delta int) []*domain.Task {
	if delta == 0 {
		return nil
	}
	var shifted []*domain.Task
	for _, t := range chain {
		if t.Order <= after {
			continue
		}
		if shiftDates(t, delta) {
			shifted = append(shifted, t)
		}
	}
	return shifted
}

// shiftDates moves whichever of a task's dates are set by delta days.
// Reports whether anything moved.
func shiftDates(t *domain.Task, delta int) bool {
	moved := false
	if t.StartDate != nil {
		s := domain.AddDays(*t.StartDate, delta)
		t.StartDate = &s
		moved = true
	}
	if t.EndDate != nil {
		e := domain.AddDays(*t.EndDate, delta)
		t.EndDate = &e
		moved = true
	}
	return moved
}

func findTask(chain []*domain.Task, taskID string) (*domain.Task, error) {
	for _, t := range chain {
		if t.ID == taskID {
			return t, nil
		}
	}
	return nil, fmt.Errorf("task %s: %w", taskID, domain.ErrNotFound)
}

// validateChanged validates every proposed task before the set is handed
// back for persistence.
func validateChanged(changed []*domain.Task) ([]*domain.Task, error) {
	for _, t := range changed {
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}
	return changed, nil
}
