package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskchainhq/taskchain/internal/domain"
)

// seedLaunchProject creates the standard three-task chain starting 2024-01-01:
// Design 2d (01-01..01-02), Build 3d (01-03..01-05), Test 1d (01-06).
func seedLaunchProject(t *testing.T, projects ProjectService, tasks TaskService) (string, []*domain.Task) {
	t.Helper()
	ctx := context.Background()
	proj := &domain.Project{
		Title:     "Launch",
		StartDate: domain.DatePtr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	require.NoError(t, projects.Create(ctx, proj, launchSpecs()))
	chain, err := tasks.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, chain, 3)
	return proj.ID, chain
}

func TestTaskService_SetStartDate_CascadesDownstream(t *testing.T) {
	projects, tasks := newProjectService(t)
	ctx := context.Background()
	projID, chain := seedLaunchProject(t, projects, tasks)

	newStart := domain.Date(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	result, err := tasks.SetDate(ctx, chain[1].ID, domain.FieldStartDate, &newStart)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Downstream())

	after, err := tasks.ListByProject(ctx, projID)
	require.NoError(t, err)

	// Design untouched, Build moved with duration preserved, Test followed.
	assert.Equal(t, "2024-01-01", after[0].StartDate.Format(domain.DateLayout))
	assert.Equal(t, "2024-01-02", after[0].EndDate.Format(domain.DateLayout))
	assert.Equal(t, "2024-01-10", after[1].StartDate.Format(domain.DateLayout))
	assert.Equal(t, "2024-01-12", after[1].EndDate.Format(domain.DateLayout))
	assert.Equal(t, "2024-01-13", after[2].StartDate.Format(domain.DateLayout))
	assert.Equal(t, "2024-01-13", after[2].EndDate.Format(domain.DateLayout))
}

func TestTaskService_SetEndDate_GrowsTaskAndCascades(t *testing.T) {
	projects, tasks := newProjectService(t)
	ctx := context.Background()
	projID, chain := seedLaunchProject(t, projects, tasks)

	newEnd := domain.Date(time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC))
	_, err := tasks.SetDate(ctx, chain[1].ID, domain.FieldEndDate, &newEnd)
	require.NoError(t, err)

	after, err := tasks.ListByProject(ctx, projID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-03", after[1].StartDate.Format(domain.DateLayout))
	assert.Equal(t, "2024-01-07", after[1].EndDate.Format(domain.DateLayout))
	assert.Equal(t, "2024-01-08", after[2].StartDate.Format(domain.DateLayout))
}

func TestTaskService_Shift_MovesEarlier(t *testing.T) {
	projects, tasks := newProjectService(t)
	ctx := context.Background()
	projID, chain := seedLaunchProject(t, projects, tasks)

	result, err := tasks.Shift(ctx, chain[1].ID, -2)
	require.NoError(t, err)
	assert.Len(t, result.Changed, 2)

	after, err := tasks.ListByProject(ctx, projID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", after[1].StartDate.Format(domain.DateLayout))
	assert.Equal(t, "2024-01-03", after[1].EndDate.Format(domain.DateLayout))
	assert.Equal(t, "2024-01-04", after[2].StartDate.Format(domain.DateLayout))
}

func TestTaskService_Shift_ZeroIsNoOp(t *testing.T) {
	projects, tasks := newProjectService(t)
	ctx := context.Background()
	_, chain := seedLaunchProject(t, projects, tasks)

	result, err := tasks.Shift(ctx, chain[1].ID, 0)
	require.NoError(t, err)
	assert.Empty(t, result.Changed)
}

func TestTaskService_SetCompletionDays_CascadesGrowth(t *testing.T) {
	projects, tasks := newProjectService(t)
	ctx := context.Background()
	projID, chain := seedLaunchProject(t, projects, tasks)

	_, err := tasks.SetCompletionDays(ctx, chain[0].ID, 4)
	require.NoError(t, err)

	after, err := tasks.ListByProject(ctx, projID)
	require.NoError(t, err)
	assert.Equal(t, 4, after[0].CompletionDays)
	assert.Equal(t, "2024-01-04", after[0].EndDate.Format(domain.DateLayout))
	assert.Equal(t, "2024-01-05", after[1].StartDate.Format(domain.DateLayout))
	assert.Equal(t, "2024-01-08", after[2].StartDate.Format(domain.DateLayout))
}

func TestTaskService_SetCompletionDays_RejectsNonPositive(t *testing.T) {
	projects, tasks := newProjectService(t)
	ctx := context.Background()
	_, chain := seedLaunchProject(t, projects, tasks)

	_, err := tasks.SetCompletionDays(ctx, chain[0].ID, 0)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestTaskService_ClearDate_NoCascade(t *testing.T) {
	projects, tasks := newProjectService(t)
	ctx := context.Background()
	projID, chain := seedLaunchProject(t, projects, tasks)

	result, err := tasks.SetDate(ctx, chain[0].ID, domain.FieldStartDate, nil)
	require.NoError(t, err)
	assert.Len(t, result.Changed, 1)

	after, err := tasks.ListByProject(ctx, projID)
	require.NoError(t, err)
	assert.Nil(t, after[0].StartDate)
	assert.Equal(t, "2024-01-03", after[1].StartDate.Format(domain.DateLayout))
}

func TestTaskService_UpdateField(t *testing.T) {
	projects, tasks := newProjectService(t)
	ctx := context.Background()
	_, chain := seedLaunchProject(t, projects, tasks)

	name := "Design v2"
	updated, err := tasks.UpdateField(ctx, chain[0].ID, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, "Design v2", updated.Name)

	fetched, err := tasks.GetByID(ctx, chain[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Design v2", fetched.Name)
	assert.Equal(t, chain[0].Description, fetched.Description)
}

func TestTaskService_SetStatus_Invalid(t *testing.T) {
	projects, tasks := newProjectService(t)
	ctx := context.Background()
	_, chain := seedLaunchProject(t, projects, tasks)

	_, err := tasks.SetStatus(ctx, chain[0].ID, "finished")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestTaskService_Delete_CompactsOrdersWithoutReshift(t *testing.T) {
	projects, tasks := newProjectService(t)
	ctx := context.Background()
	projID, chain := seedLaunchProject(t, projects, tasks)

	require.NoError(t, tasks.Delete(ctx, chain[1].ID))

	after, err := tasks.ListByProject(ctx, projID)
	require.NoError(t, err)
	require.Len(t, after, 2)

	// Orders close ranks; dates keep the gap the deleted task left.
	assert.Equal(t, "Design", after[0].Name)
	assert.Equal(t, 1, after[0].Order)
	assert.Equal(t, "Test", after[1].Name)
	assert.Equal(t, 2, after[1].Order)
	assert.Equal(t, "2024-01-06", after[1].StartDate.Format(domain.DateLayout))
}

func TestTaskService_NotFound(t *testing.T) {
	projects, tasks := newProjectService(t)
	ctx := context.Background()
	seedLaunchProject(t, projects, tasks)

	_, err := tasks.Shift(ctx, "nonexistent", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
