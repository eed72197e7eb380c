package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateCompactTaskOrders(db); err != nil {
		return fmt.Errorf("compacting task orders: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL UNIQUE,
		department TEXT NOT NULL DEFAULT 'other'
		           CHECK(department IN ('engineering','design','marketing','sales','hr','finance','operations','other')),
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id                TEXT PRIMARY KEY,
		title             TEXT NOT NULL,
		description       TEXT NOT NULL DEFAULT '',
		start_date        TEXT,
		end_date          TEXT,
		assigned_employee TEXT REFERENCES employees(id) ON DELETE SET NULL,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_assigned ON projects(assigned_employee)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id              TEXT PRIMARY KEY,
		project_id      TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name            TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		"order"         INTEGER NOT NULL CHECK("order" > 0),
		start_date      TEXT,
		end_date        TEXT,
		status          TEXT NOT NULL DEFAULT 'pending'
		                CHECK(status IN ('pending','in_progress','done','blocked')),
		completion_days INTEGER NOT NULL DEFAULT 1 CHECK(completion_days > 0),
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL,
		UNIQUE(project_id, "order")
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,
}

// migrateCompactTaskOrders renumbers any project whose task orders are not a
// contiguous 1..N sequence (possible in databases written before order
// compaction on delete existed). Idempotent: projects already contiguous are
// left untouched.
func migrateCompactTaskOrders(db *sql.DB) error {
	ctx := context.Background()

	rows, err := db.QueryContext(ctx,
		`SELECT project_id FROM tasks GROUP BY project_id HAVING MAX("order") != COUNT(*)`)
	if err != nil {
		return fmt.Errorf("finding gapped projects: %w", err)
	}
	var projectIDs []string
	for rows.Next() {
		var pid string
		if err := rows.Scan(&pid); err != nil {
			rows.Close()
			return fmt.Errorf("scanning project id: %w", err)
		}
		projectIDs = append(projectIDs, pid)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating gapped projects: %w", err)
	}

	for _, pid := range projectIDs {
		if err := compactProjectOrders(ctx, db, pid); err != nil {
			return fmt.Errorf("compacting orders for project %s: %w", pid, err)
		}
	}
	return nil
}

func compactProjectOrders(ctx context.Context, db *sql.DB, projectID string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting compaction transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM tasks WHERE project_id = ? ORDER BY "order", created_at`, projectID)
	if err != nil {
		return fmt.Errorf("listing tasks: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scanning task id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()

	// Two passes: move everything out of the way first so the
	// UNIQUE(project_id, "order") constraint can't trip mid-renumber.
	const stagingOffset = 1 << 20
	for i, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`UPDATE tasks SET "order" = ? WHERE id = ?`, stagingOffset+i+1, id); err != nil {
			return fmt.Errorf("staging order for task %s: %w", id, err)
		}
	}
	for i, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`UPDATE tasks SET "order" = ? WHERE id = ?`, i+1, id); err != nil {
			return fmt.Errorf("renumbering task %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing compaction: %w", err)
	}
	committed = true
	return nil
}
