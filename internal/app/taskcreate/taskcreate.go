package taskcreate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/remote"
	"github.com/workly/workly/internal/storage"
)

// ServiceConfig is the configuration for the task create service.
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

// Service creates pending tasks at the end of a column.
type Service struct {
	remote remote.TaskWriter
	cache  storage.BoardRepository
	logger log.Logger
}

// NewService creates a new task create service.
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

// Request represents the task create request parameters.
type Request struct {
	// ProjectID is only used to invalidate the cached board, zero skips it.
	ProjectID int64
	ColumnID  int64
	Title     string
}

// Run creates the task.
func (s *Service) Run(ctx context.Context, req Request) (*model.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("task title is required: %w", model.ErrNotValid)
	}
	if req.ColumnID <= 0 {
		return nil, fmt.Errorf("column id is required: %w", model.ErrNotValid)
	}

	t, err := s.remote.CreateTask(ctx, req.ColumnID, title)
	if err != nil {
		return nil, fmt.Errorf("could not create task: %w", err)
	}

	s.logger.Infof("Task %d created on column %d", t.ID, req.ColumnID)

	if req.ProjectID > 0 {
		if err := s.cache.DeleteBoard(ctx, req.ProjectID); err != nil && !errors.Is(err, model.ErrNotFound) {
			s.logger.Warningf("Could not invalidate cached board of project %d: %s", req.ProjectID, err)
		}
	}

	return t, nil
}
