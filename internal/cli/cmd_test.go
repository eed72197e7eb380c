package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskchainhq/taskchain/internal/domain"
	"github.com/taskchainhq/taskchain/internal/repository"
	"github.com/taskchainhq/taskchain/internal/scheduler"
	"github.com/taskchainhq/taskchain/internal/service"
	"github.com/taskchainhq/taskchain/internal/testutil"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	projRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	empRepo := repository.NewSQLiteEmployeeRepo(database)
	uow := testutil.NewTestUoW(database)
	locks := service.NewChainLocks()

	return &App{
		Projects:  service.NewProjectService(projRepo, taskRepo, uow, locks),
		Tasks:     service.NewTaskService(taskRepo, uow, locks),
		Employees: service.NewEmployeeService(empRepo),
		Timeline:  service.NewTimelineService(projRepo, taskRepo),
	}
}

func seedTestProject(t *testing.T, app *App, title string) *domain.Project {
	t.Helper()
	days := 2
	p := &domain.Project{
		Title:     title,
		StartDate: domain.DatePtr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	require.NoError(t, app.Projects.Create(context.Background(), p, []scheduler.TaskSpec{
		{Name: "Design", CompletionDays: &days},
		{Name: "Build"},
	}))
	return p
}

func TestParseTaskSpec(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		wantDays int // 0 means unset
		wantErr  bool
	}{
		{"bare name", "Design", "Design", 0, false},
		{"name with days", "Build:3", "Build", 3, false},
		{"name with colon in it", "Phase 1: QA:2", "Phase 1: QA", 2, false},
		{"zero days", "Build:0", "", 0, true},
		{"garbage days", "Build:xyz", "", 0, true},
		{"empty name", ":3", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := parseTaskSpec(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, spec.Name)
			if tt.wantDays == 0 {
				assert.Nil(t, spec.CompletionDays)
			} else {
				require.NotNil(t, spec.CompletionDays)
				assert.Equal(t, tt.wantDays, *spec.CompletionDays)
			}
		})
	}
}

func TestParseWizardTasks_SkipsBlankLines(t *testing.T) {
	specs, err := parseWizardTasks("Design:2\n\n  Build:3  \nTest\n")
	require.NoError(t, err)
	require.Len(t, specs, 3)
	assert.Equal(t, "Design", specs[0].Name)
	assert.Equal(t, "Build", specs[1].Name)
	assert.Equal(t, "Test", specs[2].Name)
	assert.Nil(t, specs[2].CompletionDays)
}

func TestParseDateFlag(t *testing.T) {
	d, err := parseDateFlag("2024-03-01")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "2024-03-01", d.Format(domain.DateLayout))

	cleared, err := parseDateFlag("none")
	require.NoError(t, err)
	assert.Nil(t, cleared)

	_, err = parseDateFlag("01/03/2024")
	assert.Error(t, err)
}

func TestResolveProjectID(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	p := seedTestProject(t, app, "Launch")

	byID, err := resolveProjectID(ctx, app, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, byID)

	byPrefix, err := resolveProjectID(ctx, app, p.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, p.ID, byPrefix)

	byTitle, err := resolveProjectID(ctx, app, "launch")
	require.NoError(t, err)
	assert.Equal(t, p.ID, byTitle)

	_, err = resolveProjectID(ctx, app, "no-such-project")
	assert.Error(t, err)
}

func TestResolveTaskID_ScopedToProject(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	p := seedTestProject(t, app, "Launch")
	seedTestProject(t, app, "Other")

	chain, err := app.Tasks.ListByProject(ctx, p.ID)
	require.NoError(t, err)

	// Unscoped, a bare name-less prefix could hit tasks in both projects;
	// scoping to the project disambiguates.
	id, err := resolveTaskID(ctx, app, "Launch", chain[0].ID[:8])
	require.NoError(t, err)
	assert.Equal(t, chain[0].ID, id)

	_, err = resolveTaskID(ctx, app, "Launch", "ffffffff")
	assert.Error(t, err)
}

func TestResolveEmployeeID_ByEmailAndName(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	emp := &domain.Employee{Name: "Dana", Email: "dana@example.com", Department: domain.DeptDesign}
	require.NoError(t, app.Employees.Create(ctx, emp))

	byEmail, err := resolveEmployeeID(ctx, app, "dana@example.com")
	require.NoError(t, err)
	assert.Equal(t, emp.ID, byEmail)

	byName, err := resolveEmployeeID(ctx, app, "dana")
	require.NoError(t, err)
	assert.Equal(t, emp.ID, byName)
}

func TestRootCmd_HasExpectedSubcommands(t *testing.T) {
	app := newTestApp(t)
	root := NewRootCmd(app)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "project")
	assert.Contains(t, names, "task")
	assert.Contains(t, names, "employee")
	assert.Contains(t, names, "timeline")
	assert.Contains(t, names, "board")
}
