package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore persists tasks in a MySQL table with auto-increment ids.
type MySQLStore struct {
	db *sql.DB
}

func NewMySQL(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	s := &MySQLStore{db: db}
	if err := s.migrate(context.Background()); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *MySQLStore) Close() error { return s.db.Close() }

func (s *MySQLStore) migrate(ctx context.Context) error {
	createTasks := `CREATE TABLE IF NOT EXISTS tasks (
    id BIGINT PRIMARY KEY AUTO_INCREMENT,
    user_id BIGINT NOT NULL,
    description TEXT NOT NULL,
    start_date DATETIME NOT NULL,
    end_date DATETIME NOT NULL
)`
	if _, err := s.db.ExecContext(ctx, createTasks); err != nil {
		return err
	}
	// MySQL lacks IF NOT EXISTS for CREATE INDEX in some versions; ignore duplicates
	_ = s.execIgnoreDupIndex(ctx, `CREATE INDEX idx_user ON tasks(user_id)`)
	return nil
}

func (s *MySQLStore) execIgnoreDupIndex(ctx context.Context, ddl string) error {
	_, err := s.db.ExecContext(ctx, ddl)
	if err != nil && strings.Contains(err.Error(), "Duplicate key name") {
		return nil
	}
	return err
}

func (s *MySQLStore) Create(ctx context.Context, userID int64, description string, start, end time.Time) (Task, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (user_id, description, start_date, end_date) VALUES(?,?,?,?)`,
		userID, description, start, end)
	if err != nil {
		return Task{}, fmt.Errorf("insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Task{}, fmt.Errorf("insert task: %w", err)
	}
	return Task{ID: id, UserID: userID, Description: description, StartDate: start, EndDate: end}, nil
}

func (s *MySQLStore) ListByUser(ctx context.Context, userID int64) ([]Task, error) {
	return s.queryTasks(ctx,
		`SELECT id, user_id, description, start_date, end_date
         FROM tasks WHERE user_id=? ORDER BY id`, userID)
}

func (s *MySQLStore) ListOverdue(ctx context.Context, userID int64, now time.Time) ([]Task, error) {
	return s.queryTasks(ctx,
		`SELECT id, user_id, description, start_date, end_date
         FROM tasks WHERE user_id=? AND end_date < ? ORDER BY id`, userID, now)
}

func (s *MySQLStore) ListInRange(ctx context.Context, userID int64, rangeStart, rangeEnd time.Time) ([]Task, error) {
	return s.queryTasks(ctx,
		`SELECT id, user_id, description, start_date, end_date
         FROM tasks WHERE user_id=? AND start_date <= ? AND end_date >= ? ORDER BY id`,
		userID, rangeStart, rangeEnd)
}

// DeleteNth resolves the position and removes the row inside one transaction,
// so the list the index was computed from is the list the delete applies to.
func (s *MySQLStore) DeleteNth(ctx context.Context, userID int64, n int) (Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Task{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx,
		`SELECT id, user_id, description, start_date, end_date
         FROM tasks WHERE user_id=? ORDER BY id`, userID)
	if err != nil {
		return Task{}, fmt.Errorf("list tasks: %w", err)
	}
	tasks, err := scanTasks(rows)
	if err != nil {
		return Task{}, err
	}
	if n <= 0 || n > len(tasks) {
		return Task{}, ErrOutOfRange
	}
	t := tasks[n-1]
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id=?`, t.ID); err != nil {
		return Task{}, fmt.Errorf("delete task: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Task{}, fmt.Errorf("commit: %w", err)
	}
	return t, nil
}

// ---- helpers ----

func (s *MySQLStore) queryTasks(ctx context.Context, query string, args ...any) ([]Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	return scanTasks(rows)
}

func scanTasks(rows *sql.Rows) ([]Task, error) {
	defer rows.Close()
	var out []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Description, &t.StartDate, &t.EndDate); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan tasks: %w", err)
	}
	return out, nil
}
