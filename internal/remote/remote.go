package remote

import (
	"context"

	"github.com/workly/workly/internal/model"
)

// BoardReader reads the server state of projects and boards.
type BoardReader interface {
	GetBoard(ctx context.Context, projectID int64) (*model.Board, error)
	GetProject(ctx context.Context, projectID int64) (*model.Project, error)
	ListProjects(ctx context.Context) ([]model.Project, error)
	GetTask(ctx context.Context, taskID int64) (*model.Task, error)
}

// PositionWriter persists the ordering of columns and tasks.
type PositionWriter interface {
	SetColumnPosition(ctx context.Context, columnID int64, position int) error
	SetTaskPosition(ctx context.Context, taskID int64, position int) error
	MoveTask(ctx context.Context, taskID, columnID int64) error
}

// ColumnWriter creates, renames and removes columns.
type ColumnWriter interface {
	CreateColumn(ctx context.Context, projectID int64, title string) (*model.Column, error)
	RenameColumn(ctx context.Context, projectID, columnID int64, title string) (*model.Column, error)
	DeleteColumn(ctx context.Context, columnID int64) error
}

// TaskWriter creates and removes tasks.
type TaskWriter interface {
	CreateTask(ctx context.Context, columnID int64, title string) (*model.Task, error)
	DeleteTask(ctx context.Context, taskID int64) error
}

// API is the full remote persistence API of Workly.
type API interface {
	BoardReader
	PositionWriter
	ColumnWriter
	TaskWriter
}
