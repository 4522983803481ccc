package columnmove

import (
	"context"
	"fmt"

	"github.com/workly/workly/internal/board"
	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/remote"
	"github.com/workly/workly/internal/session"
	"github.com/workly/workly/internal/storage"
)

// RemoteAPI is the remote API used to load and reorder boards.
type RemoteAPI interface {
	remote.BoardReader
	remote.PositionWriter
}

// ServiceConfig is the configuration for the column move service.
type ServiceConfig struct {
	Remote  RemoteAPI
	Session session.Provider
	Cache   storage.BoardRepository
	Journal storage.JournalRepository
	Logger  log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Remote == nil {
		return fmt.Errorf("remote is required")
	}

	if c.Session == nil {
		return fmt.Errorf("session is required")
	}

	if c.Cache == nil {
		return fmt.Errorf("cache is required")
	}

	if c.Journal == nil {
		return fmt.Errorf("journal is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service moves a column to another position of its board.
type Service struct {
	remote  RemoteAPI
	session session.Provider
	cache   storage.BoardRepository
	journal storage.JournalRepository
	logger  log.Logger
}

// NewService creates a new column move service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		remote:  cfg.Remote,
		session: cfg.Session,
		cache:   cfg.Cache,
		journal: cfg.Journal,
		logger:  cfg.Logger,
	}, nil
}

// Request represents the column move request parameters.
type Request struct {
	ProjectID int64
	ColumnID  int64
	// Position is the zero based destination index of the column.
	Position int
}

// Result is the result of a column move.
type Result struct {
	Outcome board.Outcome
	Reason  string
	Board   model.Board
	Calls   []model.Call
	Report  board.Report
}

// Run moves the column the same way a drag and drop over the column that is on the
// destination position would do it.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	b, err := s.remote.GetBoard(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("could not get board: %w", err)
	}

	if b.ColumnIndex(req.ColumnID) < 0 {
		return nil, fmt.Errorf("column %d in project %d: %w", req.ColumnID, req.ProjectID, model.ErrNotFound)
	}
	if req.Position < 0 || req.Position >= len(b.Columns) {
		return nil, fmt.Errorf("position %d out of range [0, %d]: %w", req.Position, len(b.Columns)-1, model.ErrNotValid)
	}

	r, err := board.NewReconciler(board.ReconcilerConfig{
		Board:   *b,
		Remote:  s.remote,
		Session: s.session,
		Journal: s.journal,
		Logger:  s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create reconciler: %w", err)
	}

	res, err := r.OnDragComplete(ctx, board.DragEvent{
		Kind:              board.ItemColumn,
		ItemID:            req.ColumnID,
		SourceContainerID: req.ProjectID,
		Over:              &board.DropTarget{Kind: board.TargetColumn, ID: b.Columns[req.Position].ID, Index: board.NoIndex},
		Input:             board.InputKeyboard,
	})
	if err != nil {
		return nil, fmt.Errorf("could not move column: %w", err)
	}
	report := res.Wait()

	if res.Outcome == board.OutcomeApplied {
		if err := s.cache.SaveBoard(ctx, res.Board); err != nil {
			s.logger.Warningf("Could not cache board of project %d: %s", req.ProjectID, err)
		}
	}

	return &Result{
		Outcome: res.Outcome,
		Reason:  res.Reason,
		Board:   res.Board,
		Calls:   res.Calls,
		Report:  report,
	}, nil
}
