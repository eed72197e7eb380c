package service

import (
	"context"
	"time"

	"github.com/taskchainhq/taskchain/internal/domain"
	"github.com/taskchainhq/taskchain/internal/repository"
)

// snapshotUpdatedAt records each task's updated_at before the scheduler
// mutates the chain, so writes can be guarded against concurrent edits.
func snapshotUpdatedAt(chain []*domain.Task) map[string]time.Time {
	m := make(map[string]time.Time, len(chain))
	for _, t := range chain {
		m[t.ID] = t.UpdatedAt
	}
	return m
}

// persistGuarded writes every changed task through the optimistic guard.
// A row modified since the snapshot fails with domain.ErrConflict and the
// enclosing transaction rolls the whole set back.
func persistGuarded(ctx context.Context, tasks repository.TaskRepo, changed []*domain.Task, expected map[string]time.Time) error {
	now := time.Now().UTC()
	for _, t := range changed {
		exp, ok := expected[t.ID]
		if !ok {
			exp = t.UpdatedAt
		}
		t.UpdatedAt = now
		if err := tasks.UpdateGuarded(ctx, t, exp); err != nil {
			return err
		}
	}
	return nil
}

// taskByID returns the chain member with the given ID, or nil.
func taskByID(chain []*domain.Task, id string) *domain.Task {
	for _, t := range chain {
		if t.ID == id {
			return t
		}
	}
	return nil
}
