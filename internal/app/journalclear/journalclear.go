package journalclear

import (
	"context"
	"fmt"
	"strings"

	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/storage"
)

// ServiceConfig is the configuration for the journal clear service.
type ServiceConfig struct {
	Journal storage.JournalRepository
	Logger  log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Journal == nil {
		return fmt.Errorf("journal is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service removes the journaled calls of an operation.
type Service struct {
	journal storage.JournalRepository
	logger  log.Logger
}

// NewService creates a new journal clear service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		journal: cfg.Journal,
		logger:  cfg.Logger,
	}, nil
}

// Request represents the journal clear request parameters.
type Request struct {
	OperationID string
	// Force clears operations that still have pending calls.
	Force bool
}

// Run clears the operation and returns the progress it had.
func (s *Service) Run(ctx context.Context, req Request) (*model.CallProgress, error) {
	opID := strings.TrimSpace(req.OperationID)
	if opID == "" {
		return nil, fmt.Errorf("operation id is required: %w", model.ErrNotValid)
	}

	p, err := s.journal.Progress(ctx, opID)
	if err != nil {
		return nil, fmt.Errorf("could not get operation progress: %w", err)
	}

	if p.Total == 0 {
		return nil, fmt.Errorf("operation %s: %w", opID, model.ErrNotFound)
	}

	// Pending calls are still being dispatched or belong to an interrupted process.
	if pending := p.Total - p.Done - p.Failed; pending > 0 && !req.Force {
		return nil, fmt.Errorf("operation %s has %d pending calls, use force to clear it: %w", opID, pending, model.ErrNotValid)
	}

	if err := s.journal.ClearOperation(ctx, opID); err != nil {
		return nil, fmt.Errorf("could not clear operation: %w", err)
	}

	s.logger.Infof("Cleared %d calls of operation %s (%d failed)", p.Total, opID, p.Failed)
	return p, nil
}
