package taskremove

import (
	"context"
	"errors"
	"fmt"

	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/remote"
	"github.com/workly/workly/internal/storage"
)

// ServiceConfig is the configuration for the task remove service.
type ServiceConfig struct {
	Remote remote.TaskWriter
	Cache  storage.BoardRepository
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Remote == nil {
		return fmt.Errorf("remote is required")
	}

	if c.Cache == nil {
		return fmt.Errorf("cache is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service removes tasks.
type Service struct {
	remote remote.TaskWriter
	cache  storage.BoardRepository
	logger log.Logger
}

// NewService creates a new task remove service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		remote: cfg.Remote,
		cache:  cfg.Cache,
		logger: cfg.Logger,
	}, nil
}

// Request represents the task remove request parameters.
type Request struct {
	// ProjectID is only used to invalidate the cached board, zero skips it.
	ProjectID int64
	TaskID    int64
}

// Run removes the task.
func (s *Service) Run(ctx context.Context, req Request) error {
	if req.TaskID <= 0 {
		return fmt.Errorf("task id is required: %w", model.ErrNotValid)
	}

	if err := s.remote.DeleteTask(ctx, req.TaskID); err != nil {
		return fmt.Errorf("could not delete task: %w", err)
	}

	s.logger.Infof("Task %d removed", req.TaskID)

	if req.ProjectID > 0 {
		if err := s.cache.DeleteBoard(ctx, req.ProjectID); err != nil && !errors.Is(err, model.ErrNotFound) {
			s.logger.Warningf("Could not invalidate cached board of project %d: %s", req.ProjectID, err)
		}
	}

	return nil
}
