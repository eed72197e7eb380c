package cli

import (
	"github.com/spf13/cobra"
	"github.com/taskchainhq/taskchain/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects  service.ProjectService
	Tasks     service.TaskService
	Employees service.EmployeeService
	Timeline  service.TimelineService

	// IsInteractive reports whether stdin is a terminal; the wizard and the
	// board refuse to start without one.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "taskchain" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskchain",
		Short: "Cascading project task scheduler",
	}

	root.AddCommand(
		newProjectCmd(app),
		newTaskCmd(app),
		newEmployeeCmd(app),
		newTimelineCmd(app),
		newBoardCmd(app),
	)

	return root
}
