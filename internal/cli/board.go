package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/taskchainhq/taskchain/internal/cli/formatter"
	"github.com/taskchainhq/taskchain/internal/domain"
)

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Browse projects and nudge chains interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("board requires an interactive terminal")
			}
			program := tea.NewProgram(newBoardModel(app))
			_, err := program.Run()
			return err
		},
	}
}

type boardPane int

const (
	paneProjects boardPane = iota
	paneChain
)

type boardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Back   key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

func defaultBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j", "down")),
		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Left:   key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "shift -1d")),
		Right:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "shift +1d")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle done")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type boardProjectsMsg struct {
	projects []*domain.Project
	err      error
}

type boardChainMsg struct {
	tasks []*domain.Task
	err   error
}

// boardModel is a two-pane browser: project list, then the selected
// project's chain. Chain edits go through the task service so every shift
// cascades exactly like the CLI commands.
type boardModel struct {
	app  *App
	keys boardKeyMap

	pane     boardPane
	projects []*domain.Project
	tasks    []*domain.Task
	cursor   int
	selected *domain.Project
	err      error
}

func newBoardModel(app *App) *boardModel {
	return &boardModel{app: app, keys: defaultBoardKeyMap()}
}

func (m *boardModel) Init() tea.Cmd {
	return m.loadProjects()
}

func (m *boardModel) loadProjects() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		projects, err := app.Projects.List(context.Background())
		return boardProjectsMsg{projects: projects, err: err}
	}
}

func (m *boardModel) loadChain() tea.Cmd {
	app := m.app
	projectID := m.selected.ID
	return func() tea.Msg {
		tasks, err := app.Tasks.ListByProject(context.Background(), projectID)
		return boardChainMsg{tasks: tasks, err: err}
	}
}

func (m *boardModel) shiftSelected(days int) tea.Cmd {
	if m.cursor >= len(m.tasks) {
		return nil
	}
	app := m.app
	taskID := m.tasks[m.cursor].ID
	projectID := m.selected.ID
	return func() tea.Msg {
		_, err := app.Tasks.Shift(context.Background(), taskID, days)
		if err != nil {
			return boardChainMsg{err: err}
		}
		tasks, err := app.Tasks.ListByProject(context.Background(), projectID)
		return boardChainMsg{tasks: tasks, err: err}
	}
}

func (m *boardModel) toggleSelected() tea.Cmd {
	if m.cursor >= len(m.tasks) {
		return nil
	}
	app := m.app
	task := m.tasks[m.cursor]
	projectID := m.selected.ID
	next := domain.TaskDone
	if task.Status == domain.TaskDone {
		next = domain.TaskPending
	}
	return func() tea.Msg {
		if _, err := app.Tasks.SetStatus(context.Background(), task.ID, next); err != nil {
			return boardChainMsg{err: err}
		}
		tasks, err := app.Tasks.ListByProject(context.Background(), projectID)
		return boardChainMsg{tasks: tasks, err: err}
	}
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardProjectsMsg:
		m.err = msg.err
		m.projects = msg.projects
		if m.cursor >= len(m.projects) {
			m.cursor = 0
		}
		return m, nil

	case boardChainMsg:
		m.err = msg.err
		if msg.tasks != nil {
			m.tasks = msg.tasks
			if m.cursor >= len(m.tasks) {
				m.cursor = max(0, len(m.tasks)-1)
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		limit := len(m.projects)
		if m.pane == paneChain {
			limit = len(m.tasks)
		}
		if m.cursor < limit-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Open):
		if m.pane == paneProjects && m.cursor < len(m.projects) {
			m.selected = m.projects[m.cursor]
			m.pane = paneChain
			m.cursor = 0
			return m, m.loadChain()
		}

	case key.Matches(msg, m.keys.Back):
		if m.pane == paneChain {
			m.pane = paneProjects
			m.selected = nil
			m.tasks = nil
			m.cursor = 0
			m.err = nil
			return m, m.loadProjects()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Left):
		if m.pane == paneChain {
			return m, m.shiftSelected(-1)
		}

	case key.Matches(msg, m.keys.Right):
		if m.pane == paneChain {
			return m, m.shiftSelected(1)
		}

	case key.Matches(msg, m.keys.Toggle):
		if m.pane == paneChain {
			return m, m.toggleSelected()
		}
	}
	return m, nil
}

func (m *boardModel) View() string {
	var b strings.Builder

	if m.pane == paneProjects {
		b.WriteString(formatter.Header("Projects") + "\n\n")
		if len(m.projects) == 0 {
			b.WriteString(formatter.Dim("No projects yet.") + "\n")
		}
		for i, p := range m.projects {
			line := p.Title
			if p.StartDate != nil {
				line += formatter.Dim("  " + p.StartDate.Format(domain.DateLayout))
			}
			b.WriteString(m.cursorLine(i, line))
		}
		b.WriteString("\n" + m.helpLine(m.keys.Up, m.keys.Down, m.keys.Open, m.keys.Quit))
	} else {
		b.WriteString(formatter.Header(m.selected.Title) + "\n\n")
		if len(m.tasks) == 0 {
			b.WriteString(formatter.Dim("No tasks in this project.") + "\n")
		}
		for i, t := range m.tasks {
			dates := formatter.Dim("unscheduled")
			if t.Scheduled() {
				dates = formatter.Dim(fmt.Sprintf("%s → %s",
					t.StartDate.Format(domain.DateLayout),
					t.EndDate.Format(domain.DateLayout)))
			}
			line := fmt.Sprintf("%s  %s  %s", t.Name, dates, formatter.StatusPill(t.Status))
			b.WriteString(m.cursorLine(i, line))
		}
		b.WriteString("\n" + m.helpLine(m.keys.Left, m.keys.Right, m.keys.Toggle, m.keys.Back))
	}

	if m.err != nil {
		b.WriteString("\n" + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	}
	return b.String()
}

func (m *boardModel) cursorLine(i int, line string) string {
	if i == m.cursor {
		return formatter.StyleHeader.Render("> ") + formatter.Bold(line) + "\n"
	}
	return "  " + line + "\n"
}

func (m *boardModel) helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, fmt.Sprintf("%s %s", formatter.Bold(h.Key), formatter.Dim(h.Desc)))
	}
	return strings.Join(parts, formatter.Dim("  ·  "))
}
