package journallist

import (
	"context"
	"fmt"

	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/storage"
)

// ServiceConfig is the configuration for the journal list service.
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

// Service lists the remote calls dispatched by reorders.
type Service struct {
	journal storage.JournalRepository
	logger  log.Logger
}

// NewService creates a new journal list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		journal: cfg.Journal,
		logger:  cfg.Logger,
	}, nil
}

// Request represents the journal list request parameters.
type Request struct {
	ProjectID   int64
	OperationID string
	// FailedOnly returns only the calls where the server ordering diverged from the local one.
	FailedOnly bool
}

// Run lists the journaled calls.
func (s *Service) Run(ctx context.Context, req Request) ([]model.JournalCall, error) {
	opts := storage.ListCallsOpts{
		ProjectID:   req.ProjectID,
		OperationID: req.OperationID,
	}
	if req.FailedOnly {
		opts.Status = model.CallStatusFailed
	}

	calls, err := s.journal.ListCalls(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("could not list calls: %w", err)
	}

	s.logger.Debugf("found %d journaled calls", len(calls))
	return calls, nil
}
