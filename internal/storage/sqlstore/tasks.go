package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskservice/internal/models"
)

const taskColumns = `id, title, description, status, due_date, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// Save inserts the task when it has no identifier yet and updates it otherwise.
// Inserts assign the id and both timestamps; updates refresh updated_at.
func (s *Store) Save(ctx context.Context, t models.Task) (models.Task, error) {
	if t.ID == 0 {
		return s.insert(ctx, t)
	}
	return s.update(ctx, t)
}

func (s *Store) insert(ctx context.Context, t models.Task) (models.Task, error) {
	if strings.TrimSpace(t.Title) == "" {
		return models.Task{}, fmt.Errorf("task title must not be empty")
	}
	if t.Status == "" {
		t.Status = models.StatusPending
	}

	now := s.timestamp()
	t.CreatedAt = now
	t.UpdatedAt = now
	t.DueDate = normalizeTime(t.DueDate)

	query := s.dialect.rebind(`INSERT INTO tasks(title, description, status, due_date, created_at, updated_at)
        VALUES(?, ?, ?, ?, ?, ?) RETURNING id`)
	err := s.db.QueryRowContext(ctx, query,
		t.Title, nullString(t.Description), string(t.Status), nullTime(t.DueDate), t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

func (s *Store) update(ctx context.Context, t models.Task) (models.Task, error) {
	t.UpdatedAt = s.timestamp()
	t.DueDate = normalizeTime(t.DueDate)

	query := s.dialect.rebind(`UPDATE tasks SET title = ?, description = ?, status = ?, due_date = ?, updated_at = ? WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query,
		t.Title, nullString(t.Description), string(t.Status), nullTime(t.DueDate), t.UpdatedAt, t.ID,
	)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Task{}, err
	}
	if affected == 0 {
		return models.Task{}, models.ErrNotFound
	}
	return s.FindByID(ctx, t.ID)
}

// FindByID retrieves a task by id.
func (s *Store) FindByID(ctx context.Context, id int64) (models.Task, error) {
	row := s.db.QueryRowContext(ctx, s.dialect.rebind(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`), id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, models.ErrNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// FindAll returns every task ordered by id.
func (s *Store) FindAll(ctx context.Context) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Delete removes a task by id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.dialect.rebind(`DELETE FROM tasks WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func scanTask(r rowScanner) (models.Task, error) {
	var (
		t           models.Task
		status      string
		description sql.NullString
		dueDate     sql.NullTime
	)
	if err := r.Scan(&t.ID, &t.Title, &description, &status, &dueDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return models.Task{}, err
	}
	t.Status = models.Status(status)
	if description.Valid {
		t.Description = &description.String
	}
	if dueDate.Valid {
		d := dueDate.Time.UTC()
		t.DueDate = &d
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}

func normalizeTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	n := v.UTC().Truncate(time.Microsecond)
	return &n
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}
