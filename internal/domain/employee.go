package domain

import (
	"strings"
	"time"
)

// Employee is a directory entry referenced by projects. Ownership of the
// directory lives here; scheduling never depends on it.
type Employee struct {
	ID         string
	Name       string
	Email      string
	Department Department
	CreatedAt  time.Time
}

// Validate checks the employee's field invariants.
func (e *Employee) Validate() error {
	if e.Name == "" {
		return NewValidationError("name", "is required")
	}
	if e.Email == "" || !strings.Contains(e.Email, "@") {
		return NewValidationError("email", "must be a valid email address, got %q", e.Email)
	}
	if !ValidDepartments[e.Department] {
		return NewValidationError("department", "unknown value %q", string(e.Department))
	}
	return nil
}
