package projectlist

import (
	"context"
	"fmt"
	"sort"

	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/remote"
)

// ServiceConfig is the configuration for the project list service.
type ServiceConfig struct {
	Remote remote.BoardReader
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Remote == nil {
		return fmt.Errorf("remote is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service lists the projects of the session user.
type Service struct {
	remote remote.BoardReader
	logger log.Logger
}

// NewService creates a new project list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		remote: cfg.Remote,
		logger: cfg.Logger,
	}, nil
}

// Request represents the project list request parameters.
type Request struct {
	FavoritesOnly bool
}

// Run lists the projects, favorites first and then by ID.
func (s *Service) Run(ctx context.Context, req Request) ([]model.Project, error) {
	projects, err := s.remote.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list projects: %w", err)
	}

	if req.FavoritesOnly {
		filtered := make([]model.Project, 0, len(projects))
		for _, p := range projects {
			if p.Favorite {
				filtered = append(filtered, p)
			}
		}
		projects = filtered
	}

	sort.SliceStable(projects, func(i, j int) bool {
		if projects[i].Favorite != projects[j].Favorite {
			return projects[i].Favorite
		}
		return projects[i].ID < projects[j].ID
	})

	s.logger.Debugf("found %d projects", len(projects))
	return projects, nil
}
