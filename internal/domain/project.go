package domain

import "time"

type Project struct {
	ID               string
	Title            string
	Description      string
	StartDate        *time.Time
	EndDate          *time.Time
	AssignedEmployee *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks the project's own field invariants. It does not touch the
// task chain; chain invariants belong to the scheduler.
func (p *Project) Validate() error {
	if p.Title == "" {
		return NewValidationError("title", "is required")
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return NewValidationError("end_date", "must not be before start_date")
	}
	return nil
}

// CompletionTime returns the planned project span in days when both project
// dates are set, inclusive of the start and end day. Returns 0, false otherwise.
func (p *Project) CompletionTime() (int, bool) {
	if p.StartDate == nil || p.EndDate == nil {
		return 0, false
	}
	return DaysBetween(*p.StartDate, *p.EndDate) + 1, true
}

// DisplayID returns a short identifier for display, truncating the UUID.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
