package repository

import (
	"context"
	"time"

	"github.com/taskchainhq/taskchain/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// List returns all projects in creation order.
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	// ListByProject returns the project's chain ordered by the order column.
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	// UpdateGuarded persists t only while the stored row still carries
	// expectedUpdatedAt, returning domain.ErrConflict otherwise. Chain
	// cascades write every affected task through this guard so a concurrent
	// mutation rolls the whole set back.
	UpdateGuarded(ctx context.Context, t *domain.Task, expectedUpdatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

type EmployeeRepo interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	// List returns all employees ordered by name.
	List(ctx context.Context) ([]*domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) error
	Delete(ctx context.Context, id string) error
}
