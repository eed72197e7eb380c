package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskchainhq/taskchain/internal/cli/formatter"
	"github.com/taskchainhq/taskchain/internal/domain"
)

func newEmployeeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage the employee directory",
	}

	cmd.AddCommand(
		newEmployeeAddCmd(app),
		newEmployeeListCmd(app),
		newEmployeeRemoveCmd(app),
	)

	return cmd
}

func newEmployeeAddCmd(app *App) *cobra.Command {
	var name, email, department string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := &domain.Employee{
				Name:       name,
				Email:      email,
				Department: domain.Department(department),
			}
			if err := app.Employees.Create(context.Background(), e); err != nil {
				return err
			}
			fmt.Printf("Added %s <%s>\n", e.Name, e.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Employee name")
	cmd.Flags().StringVar(&email, "email", "", "Email address (unique)")
	cmd.Flags().StringVar(&department, "department", "", "Department (engineering, design, marketing, sales, hr, finance, operations, other)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newEmployeeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := app.Employees.List(context.Background())
			if err != nil {
				return err
			}
			if len(employees) == 0 {
				fmt.Println("No employees found.")
				return nil
			}
			fmt.Println(formatter.FormatEmployeeList(employees))
			return nil
		},
	}
}

func newEmployeeRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <employee>",
		Short: "Remove an employee; their projects become unassigned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveEmployeeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Employees.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Println("Employee removed.")
			return nil
		},
	}
}
