package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskchainhq/taskchain/internal/domain"
	"github.com/taskchainhq/taskchain/internal/repository"
)

type employeeService struct {
	employees repository.EmployeeRepo
}

func NewEmployeeService(employees repository.EmployeeRepo) EmployeeService {
	return &employeeService{employees: employees}
}

func (s *employeeService) Create(ctx context.Context, e *domain.Employee) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Department == "" {
		e.Department = domain.DeptOther
	}
	e.CreatedAt = time.Now().UTC()
	if err := e.Validate(); err != nil {
		return err
	}
	return s.employees.Create(ctx, e)
}

func (s *employeeService) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

func (s *employeeService) List(ctx context.Context) ([]*domain.Employee, error) {
	return s.employees.List(ctx)
}

func (s *employeeService) Update(ctx context.Context, e *domain.Employee) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return s.employees.Update(ctx, e)
}

func (s *employeeService) Delete(ctx context.Context, id string) error {
	// Projects pointing at the employee fall back to unassigned via FK.
	return s.employees.Delete(ctx, id)
}
