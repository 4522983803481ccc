package lib

import (
	"context"
	"fmt"

	"github.com/workly/workly/internal/app/taskcreate"
	"github.com/workly/workly/internal/app/taskremove"
)

// CreateTask creates a task at the end of a column.
func (c *Client) CreateTask(ctx context.Context, projectID, columnID int64, title string) (*Task, error) {
	svc, err := taskcreate.NewService(taskcreate.ServiceConfig{
		Remote: c.remote,
		Cache:  c.cache,
		Logger: c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	t, err := svc.Run(ctx, taskcreate.Request{ProjectID: projectID, ColumnID: columnID, Title: title})
	if err != nil {
		return nil, mapError(err)
	}

	result := fromInternalTask(*t)
	return &result, nil
}

// RemoveTask deletes a task.
func (c *Client) RemoveTask(ctx context.Context, projectID, taskID int64) error {
	svc, err := taskremove.NewService(taskremove.ServiceConfig{
		Remote: c.remote,
		Cache:  c.cache,
		Logger: c.logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	return mapError(svc.Run(ctx, taskremove.Request{ProjectID: projectID, TaskID: taskID}))
}
