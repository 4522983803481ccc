package taskmove

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

// ServiceConfig is the configuration for the task move service.
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

// Service moves a task inside its column or to another column.
type Service struct {
	remote  RemoteAPI
	session session.Provider
	cache   storage.BoardRepository
	journal storage.JournalRepository
	logger  log.Logger
}

// NewService creates a new task move service.
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

// Request represents the task move request parameters.
type Request struct {
	ProjectID int64
	TaskID    int64
	// ColumnID is the destination column, zero keeps the task in its column.
	ColumnID int64
	// Index is the destination index in the column, nil appends the task.
	Index *int
	// ReindexSource also persists the positions of the column the task leaves.
	ReindexSource bool
}

// Result is the result of a task move.
type Result struct {
	Outcome board.Outcome
	Reason  string
	Board   model.Board
	Calls   []model.Call
	Report  board.Report
}

// Run moves the task the same way a drag and drop on the destination column would do it.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	b, err := s.remote.GetBoard(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("could not get board: %w", err)
	}

	ci, _, ok := b.FindTask(req.TaskID)
	if !ok {
		return nil, fmt.Errorf("task %d in project %d: %w", req.TaskID, req.ProjectID, model.ErrNotFound)
	}
	source := b.Columns[ci].ID

	dest := req.ColumnID
	if dest == 0 {
		dest = source
	}
	if b.ColumnIndex(dest) < 0 {
		return nil, fmt.Errorf("column %d in project %d: %w", dest, req.ProjectID, model.ErrNotFound)
	}

	insertion := board.InsertAppend
	index := board.NoIndex
	if req.Index != nil {
		if *req.Index < 0 {
			return nil, fmt.Errorf("index can't be negative: %w", model.ErrNotValid)
		}
		insertion = board.InsertAtIndex
		index = *req.Index
	}

	r, err := board.NewReconciler(board.ReconcilerConfig{
		Board:         *b,
		Remote:        s.remote,
		Session:       s.session,
		Journal:       s.journal,
		Insertion:     insertion,
		ReindexSource: req.ReindexSource,
		Logger:        s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create reconciler: %w", err)
	}

	res, err := r.OnDragComplete(ctx, board.DragEvent{
		Kind:              board.ItemTask,
		ItemID:            req.TaskID,
		SourceContainerID: source,
		Over:              &board.DropTarget{Kind: board.TargetColumn, ID: dest, Index: index},
		Input:             board.InputKeyboard,
	})
	if err != nil {
		return nil, fmt.Errorf("could not move task: %w", err)
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
