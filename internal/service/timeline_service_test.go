package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskchainhq/taskchain/internal/domain"
	"github.com/taskchainhq/taskchain/internal/repository"
	"github.com/taskchainhq/taskchain/internal/scheduler"
	"github.com/taskchainhq/taskchain/internal/testutil"
)

func TestTimeline_FlattensProjectsInCreationOrder(t *testing.T) {
	database := testutil.NewTestDB(t)
	projRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	uow := testutil.NewTestUoW(database)
	locks := NewChainLocks()
	projects := NewProjectService(projRepo, taskRepo, uow, locks)
	timeline := NewTimelineService(projRepo, taskRepo)
	ctx := context.Background()

	first := &domain.Project{
		Title:     "First",
		StartDate: domain.DatePtr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	require.NoError(t, projects.Create(ctx, first, []scheduler.TaskSpec{
		{Name: "Design", CompletionDays: intPtr(2)},
		{Name: "Build"},
	}))
	// Force distinct creation timestamps for a deterministic order.
	second := &domain.Project{Title: "Second"}
	require.NoError(t, projects.Create(ctx, second, nil))
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	second.UpdatedAt = second.CreatedAt
	require.NoError(t, projRepo.Update(ctx, second))

	entries, err := timeline.Timeline(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "First", entries[0].Project.Title)
	assert.Equal(t, "Design", entries[0].Task.Name)
	assert.Equal(t, "Build", entries[1].Task.Name)

	// Projects with no tasks still appear, with a nil task.
	assert.Equal(t, "Second", entries[2].Project.Title)
	assert.Nil(t, entries[2].Task)
}

func TestTimeline_EmptyDatabase(t *testing.T) {
	database := testutil.NewTestDB(t)
	projRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	timeline := NewTimelineService(projRepo, taskRepo)

	entries, err := timeline.Timeline(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
