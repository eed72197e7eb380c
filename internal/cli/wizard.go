package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/taskchainhq/taskchain/internal/cli/formatter"
	"github.com/taskchainhq/taskchain/internal/domain"
	"github.com/taskchainhq/taskchain/internal/scheduler"
)

// taskchainHuhTheme returns a custom huh theme using the existing palette.
func taskchainHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// parseWizardTasks turns the wizard's multiline task text into specs,
// one NAME or NAME:DAYS per line. Blank lines are skipped.
func parseWizardTasks(text string) ([]scheduler.TaskSpec, error) {
	var specs []scheduler.TaskSpec
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		spec, err := parseTaskSpec(line)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// runProjectWizard walks through project creation interactively.
func runProjectWizard(ctx context.Context, app *App) error {
	var title, description, start, tasksText, assignee string

	employeeOptions := []huh.Option[string]{huh.NewOption("(unassigned)", "")}
	if employees, err := app.Employees.List(ctx); err == nil {
		for _, e := range employees {
			label := fmt.Sprintf("%s <%s>", e.Name, e.Email)
			employeeOptions = append(employeeOptions, huh.NewOption(label, e.ID))
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project title").
				Value(&title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&description),
			huh.NewInput().
				Title("Start date").
				Description("YYYY-MM-DD; leave empty to plan without dates").
				Value(&start).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := domain.ParseDate(strings.TrimSpace(s))
					return err
				}),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Tasks").
				Description("One per line, NAME or NAME:DAYS, in chain order").
				Value(&tasksText),
			huh.NewSelect[string]().
				Title("Assign to").
				Options(employeeOptions...).
				Value(&assignee),
		),
	).WithTheme(taskchainHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return err
	}

	specs, err := parseWizardTasks(tasksText)
	if err != nil {
		return err
	}

	p := &domain.Project{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
	}
	if s := strings.TrimSpace(start); s != "" {
		d, err := domain.ParseDate(s)
		if err != nil {
			return err
		}
		p.StartDate = &d
	}
	if assignee != "" {
		p.AssignedEmployee = &assignee
	}

	if err := app.Projects.Create(ctx, p, specs); err != nil {
		return err
	}

	fmt.Printf("Created project %s [%s] with %d tasks\n", p.Title, p.DisplayID(), len(specs))
	return nil
}
