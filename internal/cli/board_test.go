package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskchainhq/taskchain/internal/domain"
	"github.com/taskchainhq/taskchain/internal/teatest"
)

func newBoardDriver(t *testing.T, app *App) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newBoardModel(app))
	d.DrainInit()
	return d
}

func TestBoard_ListsProjects(t *testing.T) {
	app := newTestApp(t)
	seedTestProject(t, app, "Launch")
	seedTestProject(t, app, "Migration")

	d := newBoardDriver(t, app)

	view := d.View()
	assert.Contains(t, view, "PROJECTS")
	assert.Contains(t, view, "Launch")
	assert.Contains(t, view, "Migration")
}

func TestBoard_OpenProjectShowsChain(t *testing.T) {
	app := newTestApp(t)
	seedTestProject(t, app, "Launch")

	d := newBoardDriver(t, app)
	d.PressEnter()

	view := d.View()
	assert.Contains(t, view, "Design")
	assert.Contains(t, view, "Build")
	assert.Contains(t, view, "2024-01-01")
}

func TestBoard_ShiftCascadesThroughChain(t *testing.T) {
	app := newTestApp(t)
	p := seedTestProject(t, app, "Launch")

	d := newBoardDriver(t, app)
	d.PressEnter()

	// Design occupies 01-01..01-02, Build 01-03. Nudge Design right one day.
	d.PressKey('L')

	chain, err := app.Tasks.ListByProject(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, "2024-01-02", chain[0].StartDate.Format(domain.DateLayout))
	assert.Equal(t, "2024-01-04", chain[1].StartDate.Format(domain.DateLayout))
	assert.Contains(t, d.View(), "2024-01-02")
}

func TestBoard_ShiftSecondTaskLeavesFirstAlone(t *testing.T) {
	app := newTestApp(t)
	p := seedTestProject(t, app, "Launch")

	d := newBoardDriver(t, app)
	d.PressEnter()
	d.PressKey('j')
	d.PressKey('H')

	chain, err := app.Tasks.ListByProject(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", chain[0].StartDate.Format(domain.DateLayout))
	assert.Equal(t, "2024-01-02", chain[1].StartDate.Format(domain.DateLayout))
}

func TestBoard_SpaceTogglesDone(t *testing.T) {
	app := newTestApp(t)
	p := seedTestProject(t, app, "Launch")

	d := newBoardDriver(t, app)
	d.PressEnter()
	d.PressSpace()

	chain, err := app.Tasks.ListByProject(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskDone, chain[0].Status)

	d.PressSpace()
	chain, err = app.Tasks.ListByProject(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskPending, chain[0].Status)
}

func TestBoard_EscReturnsToProjects(t *testing.T) {
	app := newTestApp(t)
	seedTestProject(t, app, "Launch")

	d := newBoardDriver(t, app)
	d.PressEnter()
	d.PressEsc()

	assert.Contains(t, d.View(), "PROJECTS")
	assert.False(t, d.Quitting)

	d.PressEsc()
	assert.True(t, d.Quitting)
}

func TestBoard_QuitKey(t *testing.T) {
	app := newTestApp(t)

	d := newBoardDriver(t, app)
	assert.Contains(t, d.View(), "No projects yet.")

	d.PressKey('q')
	assert.True(t, d.Quitting)
}
