package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/taskchainhq/taskchain/internal/domain"
)

// anyChanged reports whether the user set at least one of the named flags.
func anyChanged(fs *pflag.FlagSet, names ...string) bool {
	for _, name := range names {
		if fs.Changed(name) {
			return true
		}
	}
	return false
}

// resolveProjectID accepts a full UUID, a UUID prefix, or an exact title
// (case-insensitive) and returns the matching project's ID.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}
	for _, p := range projects {
		if strings.EqualFold(p.Title, input) {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveTaskID accepts a full or prefixed task UUID, searched across the
// given project (or all projects when projectRef is empty).
func resolveTaskID(ctx context.Context, app *App, projectRef, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("task ID is required")
	}

	var projectIDs []string
	if projectRef != "" {
		id, err := resolveProjectID(ctx, app, projectRef)
		if err != nil {
			return "", err
		}
		projectIDs = []string{id}
	} else {
		projects, err := app.Projects.List(ctx)
		if err != nil {
			return "", err
		}
		for _, p := range projects {
			projectIDs = append(projectIDs, p.ID)
		}
	}

	var matches []string
	for _, pid := range projectIDs {
		tasks, err := app.Tasks.ListByProject(ctx, pid)
		if err != nil {
			return "", err
		}
		for _, t := range tasks {
			if t.ID == input {
				return t.ID, nil
			}
			if strings.HasPrefix(t.ID, input) {
				matches = append(matches, t.ID)
			}
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveEmployeeID accepts a full or prefixed employee UUID, an exact name
// or an email address.
func resolveEmployeeID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("employee ID is required")
	}

	employees, err := app.Employees.List(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, e := range employees {
		if e.ID == input || strings.EqualFold(e.Email, input) || strings.EqualFold(e.Name, input) {
			return e.ID, nil
		}
		if strings.HasPrefix(e.ID, input) {
			matches = append(matches, e.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("employee not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("employee ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// parseDateFlag parses a YYYY-MM-DD flag value. The literal "none" means
// clear: a nil pointer with no error.
func parseDateFlag(value string) (*time.Time, error) {
	if value == "none" {
		return nil, nil
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD or \"none\"): %w", value, err)
	}
	return &d, nil
}
