package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/taskchainhq/taskchain/internal/cli"
	"github.com/taskchainhq/taskchain/internal/db"
	"github.com/taskchainhq/taskchain/internal/repository"
	"github.com/taskchainhq/taskchain/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.taskchain/taskchain.db
	dbPath := os.Getenv("TASKCHAIN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".taskchain", "taskchain.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	employeeRepo := repository.NewSQLiteEmployeeRepo(database)

	// Wire unit of work for transactional cascades
	uow := db.NewSQLiteUnitOfWork(database)

	// Chain mutations in one project must serialize; the project and task
	// services share one lock set.
	locks := service.NewChainLocks()

	var observers []service.UseCaseObserver
	if os.Getenv("TASKCHAIN_LOG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Projects:  service.NewProjectService(projectRepo, taskRepo, uow, locks, observers...),
		Tasks:     service.NewTaskService(taskRepo, uow, locks, observers...),
		Employees: service.NewEmployeeService(employeeRepo),
		Timeline:  service.NewTimelineService(projectRepo, taskRepo),
	}

	// Detect interactive terminal for the wizard and the board.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
