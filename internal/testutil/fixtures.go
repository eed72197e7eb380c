package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/taskchainhq/taskchain/internal/domain"
)

var testEmailCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithProjectDates(start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = &start
		p.EndDate = &end
	}
}

func WithProjectStart(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = &d
	}
}

func WithAssignedEmployee(id string) ProjectOption {
	return func(p *domain.Project) {
		p.AssignedEmployee = &id
	}
}

func WithProjectDescription(desc string) ProjectOption {
	return func(p *domain.Project) {
		p.Description = desc
	}
}

func NewTestProject(title string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithOrder(order int) TaskOption {
	return func(t *domain.Task) {
		t.Order = order
	}
}

func WithTaskDates(start, end time.Time) TaskOption {
	return func(t *domain.Task) {
		t.StartDate = &start
		t.EndDate = &end
	}
}

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithCompletionDays(days int) TaskOption {
	return func(t *domain.Task) {
		t.CompletionDays = days
	}
}

func NewTestTask(projectID, name string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:             uuid.New().String(),
		ProjectID:      projectID,
		Name:           name,
		Order:          1,
		Status:         domain.TaskPending,
		CompletionDays: 1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Employee options
type EmployeeOption func(*domain.Employee)

func WithDepartment(d domain.Department) EmployeeOption {
	return func(e *domain.Employee) {
		e.Department = d
	}
}

func WithEmail(email string) EmployeeOption {
	return func(e *domain.Employee) {
		e.Email = email
	}
}

func NewTestEmployee(name string, opts ...EmployeeOption) *domain.Employee {
	n := testEmailCounter.Add(1)
	e := &domain.Employee{
		ID:         uuid.New().String(),
		Name:       name,
		Email:      fmt.Sprintf("test%d@example.com", n),
		Department: domain.DeptEngineering,
		CreatedAt:  time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
