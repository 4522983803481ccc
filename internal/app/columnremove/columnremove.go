package columnremove

import (
	"context"
	"errors"
	"fmt"

	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/remote"
	"github.com/workly/workly/internal/storage"
)

// ServiceConfig is the configuration for the column remove service.
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

// Service removes columns and their tasks.
type Service struct {
	remote remote.ColumnWriter
	cache  storage.BoardRepository
	logger log.Logger
}

// NewService creates a new column remove service.
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

// Request represents the column remove request parameters.
type Request struct {
	ProjectID int64
	ColumnID  int64
}

// Run removes the column. The server removes its tasks too.
func (s *Service) Run(ctx context.Context, req Request) error {
	if req.ColumnID <= 0 {
		return fmt.Errorf("column id is required: %w", model.ErrNotValid)
	}

	if err := s.remote.DeleteColumn(ctx, req.ColumnID); err != nil {
		return fmt.Errorf("could not delete column: %w", err)
	}

	s.logger.Infof("Column %d removed", req.ColumnID)

	if req.ProjectID > 0 {
		if err := s.cache.DeleteBoard(ctx, req.ProjectID); err != nil && !errors.Is(err, model.ErrNotFound) {
			s.logger.Warningf("Could not invalidate cached board of project %d: %s", req.ProjectID, err)
		}
	}

	return nil
}
