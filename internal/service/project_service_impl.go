package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskchainhq/taskchain/internal/db"
	"github.com/taskchainhq/taskchain/internal/domain"
	"github.com/taskchainhq/taskchain/internal/repository"
	"github.com/taskchainhq/taskchain/internal/scheduler"
)

type projectService struct {
	projects repository.ProjectRepo
	tasks    repository.TaskRepo
	uow      db.UnitOfWork
	locks    *ChainLocks
	observer UseCaseObserver
}

func NewProjectService(projects repository.ProjectRepo, tasks repository.TaskRepo, uow db.UnitOfWork, locks *ChainLocks, observers ...UseCaseObserver) ProjectService {
	return &projectService{
		projects: projects,
		tasks:    tasks,
		uow:      uow,
		locks:    locks,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project, specs []scheduler.TaskSpec) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"title": p.Title, "task_count": len(specs)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "project-create",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err = p.Validate(); err != nil {
		return err
	}

	var chain []*domain.Task
	if p.StartDate != nil {
		chain, err = scheduler.BuildChain(p.ID, *p.StartDate, specs)
		if err != nil {
			return err
		}
	} else {
		chain, err = buildUndatedChain(p.ID, specs)
		if err != nil {
			return err
		}
	}
	for _, t := range chain {
		t.ID = uuid.New().String()
		t.CreatedAt = now
		t.UpdatedAt = now
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)

		if err := txProjects.Create(ctx, p); err != nil {
			return err
		}
		for _, t := range chain {
			if err := txTasks.Create(ctx, t); err != nil {
				return err
			}
		}
		return nil
	})
}

// buildUndatedChain creates ordered but unscheduled tasks for a project that
// has no start date yet.
func buildUndatedChain(projectID string, specs []scheduler.TaskSpec) ([]*domain.Task, error) {
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
	return tasks, nil
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) Inspect(ctx context.Context, id string) (*ProjectDetail, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ProjectDetail{
		Project:  p,
		Tasks:    tasks,
		Progress: scheduler.ComputeProgress(tasks),
	}, nil
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return s.projects.Update(ctx, p)
}

func (s *projectService) SetDate(ctx context.Context, id string, field domain.DateField, date *time.Time) error {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	switch field {
	case domain.FieldStartDate:
		p.StartDate = date
	case domain.FieldEndDate:
		p.EndDate = date
	default:
		return domain.NewValidationError("field", "unknown date field %q", string(field))
	}
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return s.projects.Update(ctx, p)
}

func (s *projectService) AutoSchedule(ctx context.Context, id string) (chain []*domain.Task, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": id}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "project-autoschedule",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.StartDate == nil {
		return nil, domain.NewValidationError("start_date", "project has no start date to schedule from")
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		chain, err = txTasks.ListByProject(ctx, id)
		if err != nil {
			return err
		}
		expected := snapshotUpdatedAt(chain)
		if err := scheduler.Relayout(*p.StartDate, chain); err != nil {
			return err
		}
		return persistGuarded(ctx, txTasks, chain, expected)
	})
	if err != nil {
		return nil, err
	}
	fields["task_count"] = len(chain)
	return chain, nil
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	// Tasks go with the project via FK cascade.
	return s.projects.Delete(ctx, id)
}
