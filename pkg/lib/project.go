package lib

import (
	"context"
	"fmt"

	"github.com/workly/workly/internal/app/projectlist"
)

// ListProjectsOpts configures the project listing.
type ListProjectsOpts struct {
	// FavoritesOnly only returns the favorite projects.
	FavoritesOnly bool
}

// ListProjects returns the projects of the logged user, favorites first.
// Pass nil opts for defaults.
func (c *Client) ListProjects(ctx context.Context, opts *ListProjectsOpts) ([]Project, error) {
	if opts == nil {
		opts = &ListProjectsOpts{}
	}

	svc, err := projectlist.NewService(projectlist.ServiceConfig{
		Remote: c.remote,
		Logger: c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	ps, err := svc.Run(ctx, projectlist.Request{FavoritesOnly: opts.FavoritesOnly})
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalProjectList(ps), nil
}
