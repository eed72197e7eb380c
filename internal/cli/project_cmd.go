package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taskchainhq/taskchain/internal/cli/formatter"
	"github.com/taskchainhq/taskchain/internal/domain"
	"github.com/taskchainhq/taskchain/internal/scheduler"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects and their task chains",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectUpdateCmd(app),
		newProjectAutoscheduleCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

// parseTaskSpec parses a --task flag value of the form NAME or NAME:DAYS.
func parseTaskSpec(value string) (scheduler.TaskSpec, error) {
	name := value
	var days *int
	if idx := strings.LastIndex(value, ":"); idx >= 0 {
		name = value[:idx]
		n, err := strconv.Atoi(value[idx+1:])
		if err != nil || n < 1 {
			return scheduler.TaskSpec{}, fmt.Errorf("invalid task spec %q (want NAME or NAME:DAYS)", value)
		}
		days = &n
	}
	if strings.TrimSpace(name) == "" {
		return scheduler.TaskSpec{}, fmt.Errorf("invalid task spec %q: empty name", value)
	}
	return scheduler.TaskSpec{Name: strings.TrimSpace(name), CompletionDays: days}, nil
}

func newProjectAddCmd(app *App) *cobra.Command {
	var title, description, start, end, assignee string
	var taskFlags []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project with an optional task chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			// No flags on a terminal: walk through the wizard instead.
			if title == "" && !cmd.Flags().Changed("title") && app.interactive() {
				return runProjectWizard(ctx, app)
			}

			p := &domain.Project{Title: title, Description: description}
			if start != "" {
				d, err := parseDateFlag(start)
				if err != nil {
					return err
				}
				p.StartDate = d
			}
			if end != "" {
				d, err := parseDateFlag(end)
				if err != nil {
					return err
				}
				p.EndDate = d
			}
			if assignee != "" {
				id, err := resolveEmployeeID(ctx, app, assignee)
				if err != nil {
					return err
				}
				p.AssignedEmployee = &id
			}

			specs := make([]scheduler.TaskSpec, 0, len(taskFlags))
			for _, tf := range taskFlags {
				spec, err := parseTaskSpec(tf)
				if err != nil {
					return err
				}
				specs = append(specs, spec)
			}

			if err := app.Projects.Create(ctx, p, specs); err != nil {
				return err
			}

			fmt.Printf("Created project %s [%s] with %d tasks\n", p.Title, p.DisplayID(), len(specs))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Project title")
	cmd.Flags().StringVar(&description, "desc", "", "Project description")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD); tasks are laid out from it")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assigned employee (ID, name or email)")
	cmd.Flags().StringArrayVar(&taskFlags, "task", nil, "Task spec NAME or NAME:DAYS (repeatable, in chain order)")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}
			fmt.Println(formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <project>",
		Short: "Show a project with its chain and progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			detail, err := app.Projects.Inspect(ctx, id)
			if err != nil {
				return err
			}

			data := formatter.ProjectInspectData{
				Project:  detail.Project,
				Tasks:    detail.Tasks,
				Progress: detail.Progress,
			}
			if detail.Project.AssignedEmployee != nil {
				if emp, err := app.Employees.GetByID(ctx, *detail.Project.AssignedEmployee); err == nil {
					data.Assignee = emp
				}
			}
			fmt.Println(formatter.FormatProjectInspect(data))
			return nil
		},
	}
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var title, description, start, end, assignee string

	cmd := &cobra.Command{
		Use:   "update <project>",
		Short: "Update project fields; dates accept \"none\" to clear",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			// Date changes go through SetDate so validation sees the
			// final pair.
			if cmd.Flags().Changed("start") {
				d, err := parseDateFlag(start)
				if err != nil {
					return err
				}
				if err := app.Projects.SetDate(ctx, id, domain.FieldStartDate, d); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("end") {
				d, err := parseDateFlag(end)
				if err != nil {
					return err
				}
				if err := app.Projects.SetDate(ctx, id, domain.FieldEndDate, d); err != nil {
					return err
				}
			}

			if anyChanged(cmd.Flags(), "title", "desc", "assignee") {
				p, err := app.Projects.GetByID(ctx, id)
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("title") {
					p.Title = title
				}
				if cmd.Flags().Changed("desc") {
					p.Description = description
				}
				if cmd.Flags().Changed("assignee") {
					if assignee == "none" {
						p.AssignedEmployee = nil
					} else {
						empID, err := resolveEmployeeID(ctx, app, assignee)
						if err != nil {
							return err
						}
						p.AssignedEmployee = &empID
					}
				}
				if err := app.Projects.Update(ctx, p); err != nil {
					return err
				}
			}

			fmt.Println("Project updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "desc", "", "New description")
	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD or \"none\")")
	cmd.Flags().StringVar(&end, "end", "", "New end date (YYYY-MM-DD or \"none\")")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assigned employee (ID, name, email or \"none\")")

	return cmd
}

func newProjectAutoscheduleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "autoschedule <project>",
		Short: "Re-date the whole chain contiguously from the project start",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			chain, err := app.Projects.AutoSchedule(ctx, id)
			if err != nil {
				return err
			}
			fmt.Printf("Rescheduled %d tasks.\n", len(chain))
			fmt.Println(formatter.FormatTaskTable(chain))
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <project>",
		Short: "Delete a project and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Println("Project removed.")
			return nil
		},
	}
}
