package columncreate

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

// ServiceConfig is the configuration for the column create service.
type ServiceConfig struct {
	Remote remote.ColumnWriter
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

// Service creates columns at the end of a board.
type Service struct {
	remote remote.ColumnWriter
	cache  storage.BoardRepository
	logger log.Logger
}

// NewService creates a new column create service.
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

// Request represents the column create request parameters.
type Request struct {
	ProjectID int64
	Title     string
}

// Run creates the column and drops the cached board so the next read gets the server state.
func (s *Service) Run(ctx context.Context, req Request) (*model.Column, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("column title is required: %w", model.ErrNotValid)
	}
	if req.ProjectID <= 0 {
		return nil, fmt.Errorf("project id is required: %w", model.ErrNotValid)
	}

	c, err := s.remote.CreateColumn(ctx, req.ProjectID, title)
	if err != nil {
		return nil, fmt.Errorf("could not create column: %w", err)
	}

	s.logger.Infof("Column %d created on project %d", c.ID, req.ProjectID)

	if err := s.cache.DeleteBoard(ctx, req.ProjectID); err != nil && !errors.Is(err, model.ErrNotFound) {
		s.logger.Warningf("Could not invalidate cached board of project %d: %s", req.ProjectID, err)
	}

	return c, nil
}
