package lib

import (
	"context"
	"fmt"

	"github.com/workly/workly/internal/app/boardshow"
	"github.com/workly/workly/internal/app/columnmove"
	"github.com/workly/workly/internal/app/taskmove"
)

// GetBoardOpts configures how a board is loaded.
type GetBoardOpts struct {
	// Offline reads the board from the local cache without calling the API.
	Offline bool
}

// GetBoard returns the board of a project.
// Pass nil opts for defaults.
func (c *Client) GetBoard(ctx context.Context, projectID int64, opts *GetBoardOpts) (*Board, error) {
	if opts == nil {
		opts = &GetBoardOpts{}
	}

	svc, err := boardshow.NewService(boardshow.ServiceConfig{
		Remote: c.remote,
		Cache:  c.cache,
		Logger: c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	b, err := svc.Run(ctx, boardshow.Request{ProjectID: projectID, Offline: opts.Offline})
	if err != nil {
		return nil, mapError(err)
	}

	result := fromInternalBoard(*b)
	return &result, nil
}

// MoveColumn moves a column to a zero based position of its board.
//
// The board is loaded from the API, reordered locally and every column position
// is persisted. Calls the API rejects are returned in [MoveResult].Failed, they
// are not an error.
func (c *Client) MoveColumn(ctx context.Context, projectID, columnID int64, position int) (*MoveResult, error) {
	svc, err := columnmove.NewService(columnmove.ServiceConfig{
		Remote:  c.remote,
		Session: c.session,
		Cache:   c.cache,
		Journal: c.journal,
		Logger:  c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx, columnmove.Request{ProjectID: projectID, ColumnID: columnID, Position: position})
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalMove(res.Outcome, res.Reason, res.Board, res.Calls, res.Report), nil
}

// MoveTaskOpts configures a task move.
type MoveTaskOpts struct {
	// ColumnID is the destination column, zero keeps the task in its column.
	ColumnID int64
	// Index is the destination index in the column, nil appends the task.
	Index *int
	// ReindexSource also persists the task positions of the column the task leaves.
	ReindexSource bool
}

// MoveTask moves a task inside its column or to another column.
func (c *Client) MoveTask(ctx context.Context, projectID, taskID int64, opts MoveTaskOpts) (*MoveResult, error) {
	svc, err := taskmove.NewService(taskmove.ServiceConfig{
		Remote:  c.remote,
		Session: c.session,
		Cache:   c.cache,
		Journal: c.journal,
		Logger:  c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx, taskmove.Request{
		ProjectID:     projectID,
		TaskID:        taskID,
		ColumnID:      opts.ColumnID,
		Index:         opts.Index,
		ReindexSource: opts.ReindexSource,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalMove(res.Outcome, res.Reason, res.Board, res.Calls, res.Report), nil
}
