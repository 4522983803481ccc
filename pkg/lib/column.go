package lib

import (
	"context"
	"fmt"

	"github.com/workly/workly/internal/app/columncreate"
	"github.com/workly/workly/internal/app/columnremove"
	"github.com/workly/workly/internal/app/columnrename"
)

// CreateColumn creates a column at the end of the project board.
func (c *Client) CreateColumn(ctx context.Context, projectID int64, title string) (*Column, error) {
	svc, err := columncreate.NewService(columncreate.ServiceConfig{
		Remote: c.remote,
		Cache:  c.cache,
		Logger: c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	col, err := svc.Run(ctx, columncreate.Request{ProjectID: projectID, Title: title})
	if err != nil {
		return nil, mapError(err)
	}

	result := fromInternalColumn(*col)
	return &result, nil
}

// RenameColumn changes the title of a column.
func (c *Client) RenameColumn(ctx context.Context, projectID, columnID int64, title string) (*Column, error) {
	svc, err := columnrename.NewService(columnrename.ServiceConfig{
		Remote: c.remote,
		Cache:  c.cache,
		Logger: c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	col, err := svc.Run(ctx, columnrename.Request{ProjectID: projectID, ColumnID: columnID, Title: title})
	if err != nil {
		return nil, mapError(err)
	}

	result := fromInternalColumn(*col)
	return &result, nil
}

// RemoveColumn deletes a column and its tasks.
func (c *Client) RemoveColumn(ctx context.Context, projectID, columnID int64) error {
	svc, err := columnremove.NewService(columnremove.ServiceConfig{
		Remote: c.remote,
		Cache:  c.cache,
		Logger: c.logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	return mapError(svc.Run(ctx, columnremove.Request{ProjectID: projectID, ColumnID: columnID}))
}
