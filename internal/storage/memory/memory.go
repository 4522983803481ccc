package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/storage"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.BoardRepository and
// storage.JournalRepository.
type Repository struct {
	boards map[int64]model.Board
	calls  []*model.JournalCall
	mu     sync.RWMutex
	logger log.Logger
}

var (
	_ storage.BoardRepository   = &Repository{}
	_ storage.JournalRepository = &Repository{}
)

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		boards: make(map[int64]model.Board),
		logger: cfg.Logger,
	}, nil
}

// SaveBoard replaces the cached board of the project.
func (r *Repository) SaveBoard(ctx context.Context, b model.Board) error {
	if err := b.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.boards[b.ProjectID] = b.Copy()
	r.logger.Debugf("Saved board of project %d in repository", b.ProjectID)

	return nil
}

// GetBoard retrieves the cached board of a project.
func (r *Repository) GetBoard(ctx context.Context, projectID int64) (*model.Board, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.boards[projectID]
	if !ok {
		return nil, fmt.Errorf("board of project %d: %w", projectID, model.ErrNotFound)
	}

	// Return a copy
	cp := b.Copy()
	return &cp, nil
}

// DeleteBoard removes the cached board of a project.
func (r *Repository) DeleteBoard(ctx context.Context, projectID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.boards[projectID]; !ok {
		return fmt.Errorf("board of project %d: %w", projectID, model.ErrNotFound)
	}
	delete(r.boards, projectID)

	return nil
}

// AddCalls adds the calls of an operation in order.
func (r *Repository) AddCalls(ctx context.Context, projectID int64, operationID string, calls []model.Call) error {
	if len(calls) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	maxSeq := 0
	for _, c := range r.calls {
		if c.OperationID == operationID && c.Sequence > maxSeq {
			maxSeq = c.Sequence
		}
	}

	now := time.Now().UTC()
	for i, call := range calls {
		r.calls = append(r.calls, &model.JournalCall{
			ID:          ulid.Make().String(),
			ProjectID:   projectID,
			OperationID: operationID,
			Sequence:    maxSeq + i + 1,
			Call:        call,
			Status:      model.CallStatusPending,
			CreatedAt:   now,
		})
	}

	r.logger.Debugf("Added %d calls for operation %s", len(calls), operationID)
	return nil
}

// NextCall returns the next pending call of an operation, or nil if all done.
func (r *Repository) NextCall(ctx context.Context, operationID string) (*model.JournalCall, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var next *model.JournalCall
	for _, c := range r.calls {
		if c.OperationID != operationID || c.Status != model.CallStatusPending {
			continue
		}
		if next == nil || c.Sequence < next.Sequence {
			next = c
		}
	}
	if next == nil {
		return nil, nil
	}

	cp := *next
	return &cp, nil
}

// CompleteCall marks a call as done.
func (r *Repository) CompleteCall(ctx context.Context, callID string) error {
	return r.setStatus(callID, model.CallStatusDone, "")
}

// FailCall marks a call as failed with an error message.
func (r *Repository) FailCall(ctx context.Context, callID string, callErr error) error {
	errMsg := ""
	if callErr != nil {
		errMsg = callErr.Error()
	}
	return r.setStatus(callID, model.CallStatusFailed, errMsg)
}

func (r *Repository) setStatus(callID string, status model.CallStatus, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.calls {
		if c.ID == callID {
			c.Status = status
			c.Error = errMsg
			return nil
		}
	}

	return fmt.Errorf("call %s: %w", callID, model.ErrNotFound)
}

// Progress returns the completion progress of an operation.
func (r *Repository) Progress(ctx context.Context, operationID string) (*model.CallProgress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p := &model.CallProgress{}
	for _, c := range r.calls {
		if c.OperationID != operationID {
			continue
		}
		p.Total++
		switch c.Status {
		case model.CallStatusDone:
			p.Done++
		case model.CallStatusFailed:
			p.Failed++
		}
	}

	return p, nil
}

// ListCalls returns the journaled calls ordered by creation and sequence.
func (r *Repository) ListCalls(ctx context.Context, opts storage.ListCallsOpts) ([]model.JournalCall, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	calls := []model.JournalCall{}
	for _, c := range r.calls {
		if opts.ProjectID != 0 && c.ProjectID != opts.ProjectID {
			continue
		}
		if opts.OperationID != "" && c.OperationID != opts.OperationID {
			continue
		}
		if opts.Status != "" && c.Status != opts.Status {
			continue
		}
		calls = append(calls, *c)
	}

	// Insertion order already follows creation and sequence.
	return calls, nil
}

// ClearOperation removes all the calls of an operation.
func (r *Repository) ClearOperation(ctx context.Context, operationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]*model.JournalCall, 0, len(r.calls))
	for _, c := range r.calls {
		if c.OperationID != operationID {
			kept = append(kept, c)
		}
	}
	removed := len(r.calls) - len(kept)
	r.calls = kept

	r.logger.Debugf("Cleared %d calls for operation %s", removed, operationID)
	return nil
}
