package scheduler

import (
	"errors"
	"testing"

	"github.com/taskchainhq/taskchain/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioChain builds the Design(2d)/Build(3d)/Test(1d) chain from
// 2024-01-01 with stable IDs.
func scenarioChain(t *testing.T) []*domain.Task {
	t.Helper()
	tasks, err := BuildChain("p-1", date(2024, 1, 1), []TaskSpec{
		{Name: "Design", CompletionDays: intPtr(2)},
		{Name: "Build", CompletionDays: intPtr(3)},
		{Name: "Test", CompletionDays: intPtr(1)},
	})
	require.NoError(t, err)
	ids := []string{"design", "build", "test"}
	for i, task := range tasks {
		task.ID = ids[i]
	}
	return tasks
}

func TestSetStartDate_CascadesDelta(t *testing.T) {
	chain := scenarioChain(t)

	// Move Build's start from 2024-01-03 to 2024-01-10 (+7 days).
	newStart := date(2024, 1, 10)
	changed, err := SetStartDate(chain, "build", &newStart)
	require.NoError(t, err)
	require.Len(t, changed, 2, "build plus test")

	build, test, design := chain[1], chain[2], chain[0]

	// Duration preserved: 3 days.
	assert.Equal(t, date(2024, 1, 10), *build.StartDate)
	assert.Equal(t, date(2024, 1, 12), *build.EndDate)

	// Test shifts by the same +7 days.
	assert.Equal(t, date(2024, 1, 13), *test.StartDate)
	assert.Equal(t, date(2024, 1, 13), *test.EndDate)

	// Design is untouched.
	assert.Equal(t, date(2024, 1, 1), *design.StartDate)
	assert.Equal(t, date(2024, 1, 2), *design.EndDate)
}

func TestSetStartDate_NegativeDelta(t *testing.T) {
	chain := scenarioChain(t)

	newStart := date(2024, 1, 2) // one day earlier
	changed, err := SetStartDate(chain, "build", &newStart)
	require.NoError(t, err)
	require.Len(t, changed, 2)

	assert.Equal(t, date(2024, 1, 4), *chain[1].EndDate)
	assert.Equal(t, date(2024, 1, 5), *chain[2].StartDate)
}

func TestSetStartDate_SameDateIsNoop(t *testing.T) {
	chain := scenarioChain(t)

	same := date(2024, 1, 3)
	changed, err := SetStartDate(chain, "build", &same)
	require.NoError(t, err)
	assert.Empty(t, changed)
}

func TestSetStartDate_UndatedTargetJustSets(t *testing.T) {
	chain := []*domain.Task{
		{ID: "a", Name: "A", Order: 1, Status: domain.TaskPending, CompletionDays: 2},
		{ID: "b", Name: "B", Order: 2, Status: domain.TaskPending, CompletionDays: 1},
	}

	start := date(2024, 3, 1)
	changed, err := SetStartDate(chain, "a", &start)
	require.NoError(t, err)
	require.Len(t, changed, 1)

	// End derived from completion_days; downstream untouched (no delta
	// exists relative to an unset anchor).
	assert.Equal(t, date(2024, 3, 1), *chain[0].StartDate)
	assert.Equal(t, date(2024, 3, 2), *chain[0].EndDate)
	assert.Nil(t, chain[1].StartDate)
}

func TestSetStartDate_ClearDoesNotCascade(t *testing.T) {
	chain := scenarioChain(t)

	changed, err := SetStartDate(chain, "build", nil)
	require.NoError(t, err)
	require.Len(t, changed, 1)

	assert.Nil(t, chain[1].StartDate)
	// Downstream keeps its dates; no delta is well-defined on a clear.
	assert.Equal(t, date(2024, 1, 6), *chain[2].StartDate)
}

func TestSetEndDate_OwnStartFixed(t *testing.T) {
	chain := scenarioChain(t)

	// Build slips two days: end 2024-01-05 → 2024-01-07.
	newEnd := date(2024, 1, 7)
	changed, err := SetEndDate(chain, "build", &newEnd)
	require.NoError(t, err)
	require.Len(t, changed, 2)

	build, test := chain[1], chain[2]

	// Start stays put; duration grows from 3 to 5 days.
	assert.Equal(t, date(2024, 1, 3), *build.StartDate)
	assert.Equal(t, date(2024, 1, 7), *build.EndDate)

	// Test shifts +2 to stay contiguous from the new end.
	assert.Equal(t, date(2024, 1, 8), *test.StartDate)
	assert.Equal(t, date(2024, 1, 8), *test.EndDate)
}

func TestSetEndDate_BeforeStartRejected(t *testing.T) {
	chain := scenarioChain(t)

	bad := date(2024, 1, 2) // Build starts 2024-01-03
	_, err := SetEndDate(chain, "build", &bad)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestShiftTask_ByDays(t *testing.T) {
	chain := scenarioChain(t)

	changed, err := ShiftTask(chain, "build", 7)
	require.NoError(t, err)
	require.Len(t, changed, 2)

	assert.Equal(t, date(2024, 1, 10), *chain[1].StartDate)
	assert.Equal(t, date(2024, 1, 12), *chain[1].EndDate)
	assert.Equal(t, date(2024, 1, 13), *chain[2].StartDate)
	assert.Equal(t, date(2024, 1, 1), *chain[0].StartDate)
}

func TestShiftTask_ZeroIsIdempotent(t *testing.T) {
	chain := scenarioChain(t)

	changed, err := ShiftTask(chain, "design", 0)
	require.NoError(t, err)
	assert.Empty(t, changed)
}

func TestShiftTask_Negative(t *testing.T) {
	chain := scenarioChain(t)

	changed, err := ShiftTask(chain, "design", -1)
	require.NoError(t, err)
	require.Len(t, changed, 3)

	assert.Equal(t, date(2023, 12, 31), *chain[0].StartDate)
	assert.Equal(t, date(2024, 1, 2), *chain[1].StartDate)
	assert.Equal(t, date(2024, 1, 5), *chain[2].StartDate)
}

func TestShiftTask_UndatedDownstreamSkipped(t *testing.T) {
	chain := scenarioChain(t)
	chain[2].StartDate = nil
	chain[2].EndDate = nil

	changed, err := ShiftTask(chain, "build", 3)
	require.NoError(t, err)
	require.Len(t, changed, 1)
	assert.Nil(t, chain[2].StartDate)
}

func TestShiftTask_UndatedTargetStillCascades(t *testing.T) {
	chain := scenarioChain(t)
	chain[0].StartDate = nil
	chain[0].EndDate = nil

	// The target has no dates to move, but later dated tasks still take
	// the delta.
	changed, err := ShiftTask(chain, "design", 3)
	require.NoError(t, err)
	require.Len(t, changed, 2)

	assert.Nil(t, chain[0].StartDate)
	assert.Equal(t, date(2024, 1, 6), *chain[1].StartDate)
	assert.Equal(t, date(2024, 1, 8), *chain[1].EndDate)
	assert.Equal(t, date(2024, 1, 9), *chain[2].StartDate)
}

func TestSetCompletionDays_CascadesDelta(t *testing.T) {
	chain := scenarioChain(t)

	// Build grows from 3 to 5 days; end moves 01-05 → 01-07; Test shifts +2.
	changed, err := SetCompletionDays(chain, "build", 5)
	require.NoError(t, err)
	require.Len(t, changed, 2)

	assert.Equal(t, 5, chain[1].CompletionDays)
	assert.Equal(t, date(2024, 1, 3), *chain[1].StartDate)
	assert.Equal(t, date(2024, 1, 7), *chain[1].EndDate)
	assert.Equal(t, date(2024, 1, 10), *chain[2].StartDate)
}

func TestSetCompletionDays_ShrinkPullsChainEarlier(t *testing.T) {
	chain := scenarioChain(t)

	changed, err := SetCompletionDays(chain, "build", 1)
	require.NoError(t, err)
	require.Len(t, changed, 2)

	assert.Equal(t, date(2024, 1, 3), *chain[1].EndDate)
	assert.Equal(t, date(2024, 1, 4), *chain[2].StartDate)
}

func TestSetCompletionDays_UndatedTask(t *testing.T) {
	chain := []*domain.Task{
		{ID: "a", Name: "A", Order: 1, Status: domain.TaskPending, CompletionDays: 1},
	}

	changed, err := SetCompletionDays(chain, "a", 4)
	require.NoError(t, err)
	require.Len(t, changed, 1)
	assert.Equal(t, 4, chain[0].CompletionDays)
	assert.Nil(t, chain[0].EndDate)
}

func TestSetCompletionDays_NonPositiveRejected(t *testing.T) {
	chain := scenarioChain(t)

	_, err := SetCompletionDays(chain, "build", 0)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestShift_UnknownTask(t *testing.T) {
	chain := scenarioChain(t)

	_, err := ShiftTask(chain, "nope", 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
