package model

import (
	"fmt"
	"time"
)

// CallKind is the kind of remote call used to persist an ordering.
type CallKind string

const (
	// CallColumnPosition sets the position of a column in its board.
	CallColumnPosition CallKind = "column_position"
	// CallTaskPosition sets the position of a task in its column.
	CallTaskPosition CallKind = "task_position"
	// CallMoveTask reassigns a task to another column.
	CallMoveTask CallKind = "move_task"
)

// Call is a single remote write planned by a reorder.
type Call struct {
	Kind CallKind
	// TargetID is the column or task the call acts on.
	TargetID int64
	// Value is the position for position calls and the destination column for moves.
	Value int64
}

// String returns the call in its HTTP form, handy for logs and output.
func (c Call) String() string {
	switch c.Kind {
	case CallColumnPosition:
		return fmt.Sprintf("PATCH /columns/%d/position?position=%d", c.TargetID, c.Value)
	case CallTaskPosition:
		return fmt.Sprintf("PATCH /tasks/%d/position?position=%d", c.TargetID, c.Value)
	case CallMoveTask:
		return fmt.Sprintf("POST /tasks/%d/move/%d", c.TargetID, c.Value)
	}
	return fmt.Sprintf("%s %d %d", c.Kind, c.TargetID, c.Value)
}

// CallStatus represents the state of a journaled call.
type CallStatus string

const (
	CallStatusPending CallStatus = "pending"
	CallStatusDone    CallStatus = "done"
	CallStatusFailed  CallStatus = "failed"
)

// JournalCall is a remote call recorded in the journal as part of an operation
// (one drag gesture). Failed calls are where local and server ordering diverge.
type JournalCall struct {
	ID          string
	ProjectID   int64
	OperationID string
	Sequence    int
	Call        Call
	Status      CallStatus
	Error       string
	CreatedAt   time.Time
}

// CallProgress represents the completion state of an operation.
type CallProgress struct {
	Done   int
	Failed int
	Total  int
}
