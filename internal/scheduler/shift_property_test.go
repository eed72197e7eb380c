package scheduler

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/taskchainhq/taskchain/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestShiftTask_Invariants property-tests the cascade invariant: shifting
// task k by D days leaves tasks before k unchanged, moves k and everything
// after by exactly D days, and never changes any task's own duration.
func TestShiftTask_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(8) + 1
		specs := make([]TaskSpec, n)
		for i := range specs {
			days := rng.Intn(10) + 1
			specs[i] = TaskSpec{Name: fmt.Sprintf("Task %d", i+1), CompletionDays: &days}
		}
		start := date(2024, 1, 1).AddDate(0, 0, rng.Intn(365))

		chain, err := BuildChain("p-1", start, specs)
		require.NoError(t, err)
		for i, task := range chain {
			task.ID = fmt.Sprintf("t-%d", i+1)
		}

		before := make([]*domain.Task, n)
		for i, task := range chain {
			before[i] = task.Clone()
		}

		k := rng.Intn(n)
		delta := rng.Intn(21) - 10 // −10..+10 days

		_, err = ShiftTask(chain, chain[k].ID, delta)
		require.NoError(t, err, "trial %d", trial)

		for i, task := range chain {
			wantDelta := 0
			if i >= k {
				wantDelta = delta
			}
			assert.Equal(t, domain.AddDays(*before[i].StartDate, wantDelta), *task.StartDate,
				"trial %d task %d: start must move by %d days", trial, i, wantDelta)
			assert.Equal(t, domain.AddDays(*before[i].EndDate, wantDelta), *task.EndDate,
				"trial %d task %d: end must move by %d days", trial, i, wantDelta)
			assert.Equal(t, before[i].DurationDays(), task.DurationDays(),
				"trial %d task %d: duration must never change on a shift", trial, i)
		}

		// Contiguity survives any shift of any task.
		for i := 1; i < n; i++ {
			assert.Equal(t, domain.AddDays(*chain[i-1].EndDate, 1), *chain[i].StartDate,
				"trial %d: chain must stay contiguous at position %d", trial, i)
		}
	}
}

// TestSetStartDate_DurationAlwaysPreserved property-tests that a start date
// move never alters the target's duration.
func TestSetStartDate_DurationAlwaysPreserved(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(6) + 2
		specs := make([]TaskSpec, n)
		for i := range specs {
			days := rng.Intn(7) + 1
			specs[i] = TaskSpec{Name: fmt.Sprintf("Task %d", i+1), CompletionDays: &days}
		}

		chain, err := BuildChain("p-1", date(2024, 3, 1), specs)
		require.NoError(t, err)
		for i, task := range chain {
			task.ID = fmt.Sprintf("t-%d", i+1)
		}

		k := rng.Intn(n)
		wantDuration := chain[k].DurationDays()
		newStart := date(2024, 3, 1).AddDate(0, 0, rng.Intn(60)-30)

		_, err = SetStartDate(chain, chain[k].ID, &newStart)
		require.NoError(t, err, "trial %d", trial)

		assert.Equal(t, newStart, *chain[k].StartDate, "trial %d", trial)
		assert.Equal(t, wantDuration, chain[k].DurationDays(),
			"trial %d: duration must be preserved on a start move", trial)
	}
}
