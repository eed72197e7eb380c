package service

import (
	"context"
	"time"

	"github.com/taskchainhq/taskchain/internal/db"
	"github.com/taskchainhq/taskchain/internal/domain"
	"github.com/taskchainhq/taskchain/internal/repository"
	"github.com/taskchainhq/taskchain/internal/scheduler"
)

type taskService struct {
	tasks    repository.TaskRepo
	uow      db.UnitOfWork
	locks    *ChainLocks
	observer UseCaseObserver
}

func NewTaskService(tasks repository.TaskRepo, uow db.UnitOfWork, locks *ChainLocks, observers ...UseCaseObserver) TaskService {
	return &taskService{
		tasks:    tasks,
		uow:      uow,
		locks:    locks,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *taskService) UpdateField(ctx context.Context, id string, name, description *string) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		t.Name = *name
	}
	if description != nil {
		t.Description = *description
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *taskService) SetDate(ctx context.Context, id string, field domain.DateField, date *time.Time) (*CascadeResult, error) {
	return s.mutateChain(ctx, "task-set-date", id, map[string]any{"field": string(field)},
		func(chain []*domain.Task) ([]*domain.Task, error) {
			switch field {
			case domain.FieldStartDate:
				return scheduler.SetStartDate(chain, id, date)
			case domain.FieldEndDate:
				return scheduler.SetEndDate(chain, id, date)
			default:
				return nil, domain.NewValidationError("field", "unknown date field %q", string(field))
			}
		})
}

func (s *taskService) Shift(ctx context.Context, id string, days int) (*CascadeResult, error) {
	return s.mutateChain(ctx, "task-shift", id, map[string]any{"days": days},
		func(chain []*domain.Task) ([]*domain.Task, error) {
			return scheduler.ShiftTask(chain, id, days)
		})
}

func (s *taskService) SetCompletionDays(ctx context.Context, id string, days int) (*CascadeResult, error) {
	return s.mutateChain(ctx, "task-set-duration", id, map[string]any{"days": days},
		func(chain []*domain.Task) ([]*domain.Task, error) {
			return scheduler.SetCompletionDays(chain, id, days)
		})
}

// mutateChain runs one propagator operation under the project lock: read the
// full chain in a transaction, apply the mutation, persist every changed task
// through the optimistic guard. Any failure rolls back the whole set.
func (s *taskService) mutateChain(ctx context.Context, useCase, taskID string, fields map[string]any, apply func(chain []*domain.Task) ([]*domain.Task, error)) (result *CascadeResult, err error) {
	startedAt := time.Now().UTC()
	fields["task_id"] = taskID
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      useCase,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	target, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(target.ProjectID)
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		chain, err := txTasks.ListByProject(ctx, target.ProjectID)
		if err != nil {
			return err
		}
		expected := snapshotUpdatedAt(chain)

		changed, err := apply(chain)
		if err != nil {
			return err
		}
		if err := persistGuarded(ctx, txTasks, changed, expected); err != nil {
			return err
		}

		result = &CascadeResult{Task: taskByID(chain, taskID), Changed: changed}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["changed_count"] = len(result.Changed)
	return result, nil
}

func (s *taskService) SetStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
	if !domain.ValidTaskStatuses[status] {
		return nil, domain.NewValidationError("status", "unknown value %q", string(status))
	}
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *taskService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"task_id": id}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "task-delete",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	target, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(target.ProjectID)
	defer unlock()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		if err := txTasks.Delete(ctx, id); err != nil {
			return err
		}
		remainder, err := txTasks.ListByProject(ctx, target.ProjectID)
		if err != nil {
			return err
		}
		expected := snapshotUpdatedAt(remainder)
		renumbered := scheduler.CompactOrders(remainder)
		return persistGuarded(ctx, txTasks, renumbered, expected)
	})
}
