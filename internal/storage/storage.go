package storage

import (
	"context"

	"github.com/workly/workly/internal/model"
)

// BoardRepository is the interface for the local board cache.
// The cache is a copy of the last known board, never the source of truth.
type BoardRepository interface {
	SaveBoard(ctx context.Context, b model.Board) error
	GetBoard(ctx context.Context, projectID int64) (*model.Board, error)
	DeleteBoard(ctx context.Context, projectID int64) error
}

// ListCallsOpts filters the journal listing, zero values don't filter.
type ListCallsOpts struct {
	ProjectID   int64
	OperationID string
	Status      model.CallStatus
}

// JournalRepository tracks the ordered remote calls dispatched by each operation.
type JournalRepository interface {
	// AddCalls adds the calls of an operation in order.
	AddCalls(ctx context.Context, projectID int64, operationID string, calls []model.Call) error

	// NextCall returns the next pending call of an operation, or nil if all done.
	NextCall(ctx context.Context, operationID string) (*model.JournalCall, error)

	// CompleteCall marks a call as done.
	CompleteCall(ctx context.Context, callID string) error

	// FailCall marks a call as failed with an error message.
	FailCall(ctx context.Context, callID string, err error) error

	// Progress returns the completion progress of an operation.
	Progress(ctx context.Context, operationID string) (*model.CallProgress, error)

	// ListCalls returns the journaled calls ordered by creation and sequence.
	ListCalls(ctx context.Context, opts ListCallsOpts) ([]model.JournalCall, error)

	// ClearOperation removes all the calls of an operation.
	ClearOperation(ctx context.Context, operationID string) error
}
