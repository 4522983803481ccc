package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/storage"
	"github.com/workly/workly/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.BoardRepository.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

var _ storage.BoardRepository = &Repository{}

// NewRepository creates a new SQLite repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	version, err := migrator.Up(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s (schema v%d)", cfg.DBPath, version)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// DB returns the database connection so other repositories can share it.
func (r *Repository) DB() *sql.DB { return r.db }

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// SaveBoard replaces the cached board of the project. The slice order is stored as the
// position of columns, tasks and subtasks.
func (r *Repository) SaveBoard(ctx context.Context, b model.Board) error {
	if err := b.Validate(); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := deleteBoard(ctx, tx, b.ProjectID); err != nil {
		return err
	}

	syncedAt := b.SyncedAt
	if syncedAt.IsZero() {
		syncedAt = time.Now().UTC()
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO boards (project_id, title, synced_at) VALUES (?, ?, ?)`,
		b.ProjectID, b.Title, syncedAt.Unix())
	if err != nil {
		return fmt.Errorf("could not insert board: %w", err)
	}

	colStmt, err := tx.PrepareContext(ctx, `INSERT INTO board_columns (project_id, id, title, position) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("could not prepare statement: %w", err)
	}
	defer colStmt.Close()

	taskStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (
			project_id, id, column_id,
			title, description, due_date, completed,
			assignee_id, assignee_email,
			position
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("could not prepare statement: %w", err)
	}
	defer taskStmt.Close()

	subStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO subtasks (project_id, id, task_id, title, completed, position)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("could not prepare statement: %w", err)
	}
	defer subStmt.Close()

	for ci, c := range b.Columns {
		if _, err := colStmt.ExecContext(ctx, b.ProjectID, c.ID, c.Title, ci); err != nil {
			return fmt.Errorf("could not insert column %d: %w", c.ID, err)
		}

		for ti, t := range c.Tasks {
			var dueDate, assigneeID *int64
			assigneeEmail := ""
			if t.DueDate != nil {
				u := t.DueDate.Unix()
				dueDate = &u
			}
			if t.Assignee != nil {
				assigneeID = &t.Assignee.ID
				assigneeEmail = t.Assignee.Email
			}

			_, err := taskStmt.ExecContext(ctx,
				b.ProjectID, t.ID, c.ID,
				t.Title, t.Description, dueDate, t.Completed,
				assigneeID, assigneeEmail,
				ti,
			)
			if err != nil {
				return fmt.Errorf("could not insert task %d: %w", t.ID, err)
			}

			for si, s := range t.Subtasks {
				if _, err := subStmt.ExecContext(ctx, b.ProjectID, s.ID, t.ID, s.Title, s.Completed, si); err != nil {
					return fmt.Errorf("could not insert subtask %d: %w", s.ID, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	r.logger.Debugf("Saved board of project %d in repository", b.ProjectID)
	return nil
}

// GetBoard retrieves the cached board of a project.
func (r *Repository) GetBoard(ctx context.Context, projectID int64) (*model.Board, error) {
	b := model.Board{ProjectID: projectID}
	var syncedAt int64
	err := r.db.QueryRowContext(ctx, `SELECT title, synced_at FROM boards WHERE project_id = ?`, projectID).Scan(&b.Title, &syncedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("board of project %d: %w", projectID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query board: %w", err)
	}
	b.SyncedAt = timeFromUnix(syncedAt)

	cols, err := r.getColumns(ctx, projectID)
	if err != nil {
		return nil, err
	}
	tasks, err := r.getTasks(ctx, projectID)
	if err != nil {
		return nil, err
	}
	subtasks, err := r.getSubtasks(ctx, projectID)
	if err != nil {
		return nil, err
	}

	for i := range cols {
		for _, t := range tasks[cols[i].ID] {
			t.Subtasks = subtasks[t.ID]
			cols[i].Tasks = append(cols[i].Tasks, t)
		}
	}
	b.Columns = cols

	return &b, nil
}

// DeleteBoard removes the cached board of a project.
func (r *Repository) DeleteBoard(ctx context.Context, projectID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM boards WHERE project_id = ?`, projectID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("could not query board: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("board of project %d: %w", projectID, model.ErrNotFound)
	}

	if err := deleteBoard(ctx, tx, projectID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	r.logger.Debugf("Deleted board of project %d from repository", projectID)
	return nil
}

// deleteBoard removes the children explicitly so it works without foreign keys enabled.
func deleteBoard(ctx context.Context, tx *sql.Tx, projectID int64) error {
	for _, table := range []string{"subtasks", "tasks", "board_columns", "boards"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE project_id = ?`, projectID); err != nil {
			return fmt.Errorf("could not delete %s: %w", table, err)
		}
	}
	return nil
}

func (r *Repository) getColumns(ctx context.Context, projectID int64) ([]model.Column, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, position
		FROM board_columns
		WHERE project_id = ?
		ORDER BY position ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("could not query columns: %w", err)
	}
	defer rows.Close()

	cols := []model.Column{}
	for rows.Next() {
		var c model.Column
		if err := rows.Scan(&c.ID, &c.Title, &c.Position); err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return cols, nil
}

// getTasks returns the tasks of a project indexed by column.
func (r *Repository) getTasks(ctx context.Context, projectID int64) (map[int64][]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, column_id,
			title, description, due_date, completed,
			assignee_id, assignee_email,
			position
		FROM tasks
		WHERE project_id = ?
		ORDER BY column_id ASC, position ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}
	defer rows.Close()

	tasks := map[int64][]model.Task{}
	for rows.Next() {
		var t model.Task
		var columnID int64
		var dueDate, assigneeID sql.NullInt64
		var assigneeEmail string

		err := rows.Scan(
			&t.ID, &columnID,
			&t.Title, &t.Description, &dueDate, &t.Completed,
			&assigneeID, &assigneeEmail,
			&t.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}

		if dueDate.Valid {
			d := timeFromUnix(dueDate.Int64)
			t.DueDate = &d
		}
		if assigneeID.Valid {
			t.Assignee = &model.Assignee{ID: assigneeID.Int64, Email: assigneeEmail}
		}

		tasks[columnID] = append(tasks[columnID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tasks, nil
}

// getSubtasks returns the subtasks of a project indexed by task.
func (r *Repository) getSubtasks(ctx context.Context, projectID int64) (map[int64][]model.Subtask, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, title, completed
		FROM subtasks
		WHERE project_id = ?
		ORDER BY task_id ASC, position ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("could not query subtasks: %w", err)
	}
	defer rows.Close()

	subtasks := map[int64][]model.Subtask{}
	for rows.Next() {
		var s model.Subtask
		var taskID int64
		if err := rows.Scan(&s.ID, &taskID, &s.Title, &s.Completed); err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		subtasks[taskID] = append(subtasks[taskID], s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return subtasks, nil
}

func timeFromUnix(unix int64) time.Time { return time.Unix(unix, 0).UTC() }
