package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/storage"
)

// JournalRepositoryConfig is the configuration for the SQLite journal repository.
type JournalRepositoryConfig struct {
	DB     *sql.DB
	Logger log.Logger
}

func (c *JournalRepositoryConfig) defaults() error {
	if c.DB == nil {
		return fmt.Errorf("db is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.JournalRepository"})
	return nil
}

// JournalRepository is a SQLite implementation of storage.JournalRepository.
type JournalRepository struct {
	db     *sql.DB
	logger log.Logger
}

var _ storage.JournalRepository = &JournalRepository{}

// NewJournalRepository creates a new SQLite journal repository.
func NewJournalRepository(cfg JournalRepositoryConfig) (*JournalRepository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &JournalRepository{
		db:     cfg.DB,
		logger: cfg.Logger,
	}, nil
}

// AddCalls adds the calls of an operation in order.
func (r *JournalRepository) AddCalls(ctx context.Context, projectID int64, operationID string, calls []model.Call) error {
	if len(calls) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var maxSeq int
	query := `SELECT COALESCE(MAX(sequence), 0) FROM journal_calls WHERE operation_id = ?`
	if err := tx.QueryRowContext(ctx, query, operationID).Scan(&maxSeq); err != nil {
		return fmt.Errorf("could not get max sequence: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO journal_calls (id, project_id, operation_id, sequence, kind, target_id, value, status, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, '', ?)
	`)
	if err != nil {
		return fmt.Errorf("could not prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i, c := range calls {
		_, err := stmt.ExecContext(ctx,
			ulid.Make().String(), projectID, operationID, maxSeq+i+1,
			c.Kind, c.TargetID, c.Value,
			model.CallStatusPending, now.UnixNano(),
		)
		if err != nil {
			return fmt.Errorf("could not insert call: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	r.logger.Debugf("Added %d calls for project %d operation %s", len(calls), projectID, operationID)
	return nil
}

const selectCalls = `
	SELECT id, project_id, operation_id, sequence, kind, target_id, value, status, error, created_at
	FROM journal_calls
`

// NextCall returns the next pending call of an operation, or nil if all done.
func (r *JournalRepository) NextCall(ctx context.Context, operationID string) (*model.JournalCall, error) {
	query := selectCalls + `
		WHERE operation_id = ? AND status = ?
		ORDER BY sequence ASC
		LIMIT 1
	`

	c, err := scanCall(r.db.QueryRowContext(ctx, query, operationID, model.CallStatusPending))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not query next call: %w", err)
	}

	return &c, nil
}

// CompleteCall marks a call as done.
func (r *JournalRepository) CompleteCall(ctx context.Context, callID string) error {
	if err := r.setStatus(ctx, callID, model.CallStatusDone, ""); err != nil {
		return err
	}

	r.logger.Debugf("Completed call: %s", callID)
	return nil
}

// FailCall marks a call as failed with an error message.
func (r *JournalRepository) FailCall(ctx context.Context, callID string, callErr error) error {
	errMsg := ""
	if callErr != nil {
		errMsg = callErr.Error()
	}

	if err := r.setStatus(ctx, callID, model.CallStatusFailed, errMsg); err != nil {
		return err
	}

	r.logger.Debugf("Failed call: %s (error: %s)", callID, errMsg)
	return nil
}

func (r *JournalRepository) setStatus(ctx context.Context, callID string, status model.CallStatus, errMsg string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE journal_calls SET status = ?, error = ? WHERE id = ?`, status, errMsg, callID)
	if err != nil {
		return fmt.Errorf("could not update call: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("call %s: %w", callID, model.ErrNotFound)
	}

	return nil
}

// Progress returns the completion progress of an operation.
func (r *JournalRepository) Progress(ctx context.Context, operationID string) (*model.CallProgress, error) {
	query := `
		SELECT
			COUNT(*) as total,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) as done,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) as failed
		FROM journal_calls
		WHERE operation_id = ?
	`

	var p model.CallProgress
	err := r.db.QueryRowContext(ctx, query, model.CallStatusDone, model.CallStatusFailed, operationID).Scan(&p.Total, &p.Done, &p.Failed)
	if err != nil {
		return nil, fmt.Errorf("could not query progress: %w", err)
	}

	return &p, nil
}

// ListCalls returns the journaled calls ordered by creation and sequence.
func (r *JournalRepository) ListCalls(ctx context.Context, opts storage.ListCallsOpts) ([]model.JournalCall, error) {
	var where []string
	var args []any
	if opts.ProjectID != 0 {
		where = append(where, "project_id = ?")
		args = append(args, opts.ProjectID)
	}
	if opts.OperationID != "" {
		where = append(where, "operation_id = ?")
		args = append(args, opts.OperationID)
	}
	if opts.Status != "" {
		where = append(where, "status = ?")
		args = append(args, opts.Status)
	}

	query := selectCalls
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at ASC, operation_id ASC, sequence ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query calls: %w", err)
	}
	defer rows.Close()

	calls := []model.JournalCall{}
	for rows.Next() {
		c, err := scanCall(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		calls = append(calls, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return calls, nil
}

// ClearOperation removes all the calls of an operation.
func (r *JournalRepository) ClearOperation(ctx context.Context, operationID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM journal_calls WHERE operation_id = ?`, operationID)
	if err != nil {
		return fmt.Errorf("could not delete calls: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}

	r.logger.Debugf("Cleared %d calls for operation %s", rows, operationID)
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCall(s scanner) (model.JournalCall, error) {
	var c model.JournalCall
	var createdAt int64
	err := s.Scan(
		&c.ID,
		&c.ProjectID,
		&c.OperationID,
		&c.Sequence,
		&c.Call.Kind,
		&c.Call.TargetID,
		&c.Call.Value,
		&c.Status,
		&c.Error,
		&createdAt,
	)
	if err != nil {
		return model.JournalCall{}, err
	}

	c.CreatedAt = time.Unix(0, createdAt).UTC()
	return c, nil
}
