package boardshow

import (
	"context"
	"errors"
	"fmt"

	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/remote"
	"github.com/workly/workly/internal/storage"
)

// ServiceConfig is the configuration for the board show service.
type ServiceConfig struct {
	Remote remote.BoardReader
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

// Service loads the board of a project.
type Service struct {
	remote remote.BoardReader
	cache  storage.BoardRepository
	logger log.Logger
}

// NewService creates a new board show service.
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

// Request represents the board show request parameters.
type Request struct {
	ProjectID int64
	// Offline only reads the local cache.
	Offline bool
}

// Run returns the board of a project from the server and refreshes the local cache.
// When the server can't be reached the cached board is returned instead.
func (s *Service) Run(ctx context.Context, req Request) (*model.Board, error) {
	if req.ProjectID <= 0 {
		return nil, fmt.Errorf("project id is required: %w", model.ErrNotValid)
	}

	if req.Offline {
		b, err := s.cache.GetBoard(ctx, req.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("could not get cached board: %w", err)
		}
		return b, nil
	}

	b, err := s.remote.GetBoard(ctx, req.ProjectID)
	if err != nil {
		// Only unreachable or failing servers fall back, missing boards and credentials don't.
		if !errors.Is(err, model.ErrRemote) || errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("could not get board: %w", err)
		}

		cached, cerr := s.cache.GetBoard(ctx, req.ProjectID)
		if cerr != nil {
			return nil, fmt.Errorf("could not get board: %w", err)
		}
		s.logger.Warningf("Server unavailable (%s), showing board cached at %s", err, cached.SyncedAt)
		return cached, nil
	}

	if err := s.cache.SaveBoard(ctx, *b); err != nil {
		s.logger.Warningf("Could not cache board of project %d: %s", req.ProjectID, err)
	}

	s.logger.Debugf("loaded board of project %d with %d columns", req.ProjectID, len(b.Columns))
	return b, nil
}
