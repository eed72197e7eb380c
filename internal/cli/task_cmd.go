package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskchainhq/taskchain/internal/cli/formatter"
	"github.com/taskchainhq/taskchain/internal/domain"
	"github.com/taskchainhq/taskchain/internal/service"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks within a project chain",
	}

	cmd.AddCommand(
		newTaskListCmd(app),
		newTaskUpdateCmd(app),
		newTaskShiftCmd(app),
		newTaskDurationCmd(app),
		newTaskDoneCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func printCascade(result *service.CascadeResult) {
	fmt.Println(formatter.FormatCascade(result.Task, result.Downstream()))
}

func newTaskListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <project>",
		Short: "List a project's task chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, id)
			if err != nil {
				return err
			}
			tasks, err := app.Tasks.ListByProject(ctx, id)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("No tasks in this project.")
				return nil
			}
			fmt.Println(formatter.FormatTaskList(p.Title, tasks))
			return nil
		},
	}
	return cmd
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var name, description, start, end, project string

	cmd := &cobra.Command{
		Use:   "update <task>",
		Short: "Update task fields; date moves cascade downstream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, project, args[0])
			if err != nil {
				return err
			}

			if anyChanged(cmd.Flags(), "name", "desc") {
				var namePtr, descPtr *string
				if cmd.Flags().Changed("name") {
					namePtr = &name
				}
				if cmd.Flags().Changed("desc") {
					descPtr = &description
				}
				if _, err := app.Tasks.UpdateField(ctx, id, namePtr, descPtr); err != nil {
					return err
				}
			}

			if cmd.Flags().Changed("start") {
				d, err := parseDateFlag(start)
				if err != nil {
					return err
				}
				result, err := app.Tasks.SetDate(ctx, id, domain.FieldStartDate, d)
				if err != nil {
					return err
				}
				printCascade(result)
			}
			if cmd.Flags().Changed("end") {
				d, err := parseDateFlag(end)
				if err != nil {
					return err
				}
				result, err := app.Tasks.SetDate(ctx, id, domain.FieldEndDate, d)
				if err != nil {
					return err
				}
				printCascade(result)
			}

			if !anyChanged(cmd.Flags(), "start", "end") {
				fmt.Println("Task updated.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "desc", "", "New description")
	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD or \"none\")")
	cmd.Flags().StringVar(&end, "end", "", "New end date (YYYY-MM-DD or \"none\")")
	cmd.Flags().StringVar(&project, "project", "", "Limit task lookup to one project")

	return cmd
}

func newTaskShiftCmd(app *App) *cobra.Command {
	var days int
	var project string

	cmd := &cobra.Command{
		Use:   "shift <task>",
		Short: "Move a task and everything after it by N days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, project, args[0])
			if err != nil {
				return err
			}
			result, err := app.Tasks.Shift(ctx, id, days)
			if err != nil {
				return err
			}
			if len(result.Changed) == 0 {
				fmt.Println("Nothing to move.")
				return nil
			}
			printCascade(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Days to move (negative moves earlier)")
	cmd.Flags().StringVar(&project, "project", "", "Limit task lookup to one project")
	_ = cmd.MarkFlagRequired("days")

	return cmd
}

func newTaskDurationCmd(app *App) *cobra.Command {
	var days int
	var project string

	cmd := &cobra.Command{
		Use:   "duration <task>",
		Short: "Set a task's completion days; the chain follows the new end",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, project, args[0])
			if err != nil {
				return err
			}
			result, err := app.Tasks.SetCompletionDays(ctx, id, days)
			if err != nil {
				return err
			}
			printCascade(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Completion days (must be positive)")
	cmd.Flags().StringVar(&project, "project", "", "Limit task lookup to one project")
	_ = cmd.MarkFlagRequired("days")

	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	var status, project string

	cmd := &cobra.Command{
		Use:   "done <task>",
		Short: "Mark a task done (or set another status with --status)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, project, args[0])
			if err != nil {
				return err
			}
			target := domain.TaskDone
			if status != "" {
				target = domain.TaskStatus(status)
			}
			t, err := app.Tasks.SetStatus(ctx, id, target)
			if err != nil {
				return err
			}
			fmt.Printf("%s is now %s\n", t.Name, formatter.StatusPill(t.Status))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Status to set (pending, in_progress, done, blocked)")
	cmd.Flags().StringVar(&project, "project", "", "Limit task lookup to one project")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "remove <task>",
		Short: "Delete a task; later tasks close the order gap, dates stay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, project, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Println("Task removed.")
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Limit task lookup to one project")

	return cmd
}
