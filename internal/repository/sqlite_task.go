package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/taskchainhq/taskchain/internal/db"
	"github.com/taskchainhq/taskchain/internal/domain"
)

const taskColumns = `id, project_id, name, description, "order", start_date, end_date, status, completion_days, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo. It accepts either a
// *sql.DB or a transaction, so services can run it inside a UnitOfWork.
func NewSQLiteTaskRepo(db db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		t.Name,
		t.Description,
		t.Order,
		nullableTimeToString(t.StartDate, domain.DateLayout),
		nullableTimeToString(t.EndDate, domain.DateLayout),
		string(t.Status),
		t.CompletionDays,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isOrderCollision(err) {
			return domain.NewValidationError("order", "position %d is already taken in project %s", t.Order, t.ProjectID)
		}
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	return t, err
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = ? ORDER BY "order"`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	res, err := r.db.ExecContext(ctx, taskUpdateQuery, taskUpdateArgs(t)...)
	if err != nil {
		if isOrderCollision(err) {
			return domain.NewValidationError("order", "position %d is already taken in project %s", t.Order, t.ProjectID)
		}
		return fmt.Errorf("updating task: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("task %s: %w", t.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *SQLiteTaskRepo) UpdateGuarded(ctx context.Context, t *domain.Task, expectedUpdatedAt time.Time) error {
	query := taskUpdateQuery + ` AND updated_at = ?`
	args := append(taskUpdateArgs(t), expectedUpdatedAt.Format(time.RFC3339))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isOrderCollision(err) {
			return domain.NewValidationError("order", "position %d is already taken in project %s", t.Order, t.ProjectID)
		}
		return fmt.Errorf("updating task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking guarded update: %w", err)
	}
	if n == 0 {
		// Either the row vanished or someone rescheduled the chain under us.
		if _, getErr := r.GetByID(ctx, t.ID); getErr != nil {
			return getErr
		}
		return fmt.Errorf("task %s: %w", t.ID, domain.ErrConflict)
	}
	return nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

const taskUpdateQuery = `UPDATE tasks SET name = ?, description = ?, "order" = ?, start_date = ?, end_date = ?, status = ?, completion_days = ?, updated_at = ?
	WHERE id = ?`

func taskUpdateArgs(t *domain.Task) []any {
	return []any{
		t.Name,
		t.Description,
		t.Order,
		nullableTimeToString(t.StartDate, domain.DateLayout),
		nullableTimeToString(t.EndDate, domain.DateLayout),
		string(t.Status),
		t.CompletionDays,
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	}
}

func isOrderCollision(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: tasks.project_id")
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var statusStr, createdAtStr, updatedAtStr string
	var startDateStr, endDateStr sql.NullString

	err := row.Scan(
		&t.ID, &t.ProjectID, &t.Name, &t.Description, &t.Order,
		&startDateStr, &endDateStr,
		&statusStr, &t.CompletionDays,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Status = domain.TaskStatus(statusStr)
	t.StartDate = parseNullableTime(startDateStr, domain.DateLayout)
	t.EndDate = parseNullableTime(endDateStr, domain.DateLayout)

	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return &t, nil
}
