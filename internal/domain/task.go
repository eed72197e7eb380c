package domain

import "time"

type Task struct {
	ID          string
	ProjectID   string
	Name        string
	Description string

	// Order defines the position in the project chain, 1-based and
	// contiguous within a project.
	Order int

	StartDate *time.Time
	EndDate   *time.Time
	Status    TaskStatus

	// CompletionDays is the planned duration in calendar days, inclusive of
	// the start and end day. A 1-day task starts and ends the same day.
	CompletionDays int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the task's own field invariants.
func (t *Task) Validate() error {
	if t.Name == "" {
		return NewValidationError("name", "is required")
	}
	if t.Order < 1 {
		return NewValidationError("order", "must be a positive integer, got %d", t.Order)
	}
	if t.CompletionDays < 1 {
		return NewValidationError("completion_days", "must be a positive integer, got %d", t.CompletionDays)
	}
	if !ValidTaskStatuses[t.Status] {
		return NewValidationError("status", "unknown value %q", string(t.Status))
	}
	if t.StartDate != nil && t.EndDate != nil && t.EndDate.Before(*t.StartDate) {
		return NewValidationError("end_date", "must not be before start_date")
	}
	return nil
}

// Scheduled reports whether both dates are set.
func (t *Task) Scheduled() bool {
	return t.StartDate != nil && t.EndDate != nil
}

// DurationDays returns the task's current span in days when both dates are
// set, falling back to CompletionDays otherwise. Always at least 1.
func (t *Task) DurationDays() int {
	if t.Scheduled() {
		if d := DaysBetween(*t.StartDate, *t.EndDate) + 1; d >= 1 {
			return d
		}
		return 1
	}
	if t.CompletionDays >= 1 {
		return t.CompletionDays
	}
	return 1
}

// CompletionTime returns the actual scheduled span in days, inclusive.
// Returns 0, false when either date is missing.
func (t *Task) CompletionTime() (int, bool) {
	if !t.Scheduled() {
		return 0, false
	}
	return DaysBetween(*t.StartDate, *t.EndDate) + 1, true
}

// BusinessDays is an alias for CompletionDays kept for timeline views.
// All durations are calendar days; there is no weekend-aware mode.
func (t *Task) BusinessDays() int {
	return t.CompletionDays
}

// Clone returns a shallow copy with the date pointers duplicated, so the
// scheduler can propose new chains without aliasing caller state.
func (t *Task) Clone() *Task {
	c := *t
	if t.StartDate != nil {
		d := *t.StartDate
		c.StartDate = &d
	}
	if t.EndDate != nil {
		d := *t.EndDate
		c.EndDate = &d
	}
	return &c
}
