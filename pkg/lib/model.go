package lib

import (
	"time"

	"github.com/workly/workly/internal/board"
	"github.com/workly/workly/internal/model"
)

// Project is a Workly project, each project has a single board.
type Project struct {
	ID       int64
	Title    string
	Favorite bool
	// Owner is true when the logged user owns the project.
	Owner bool
}

// Board is the ordered set of columns of a project.
//
// Columns and tasks are in display order, positions are always zero based and
// contiguous.
type Board struct {
	ProjectID int64
	Title     string
	Columns   []Column
	// SyncedAt is when the board was loaded from the API.
	SyncedAt time.Time
}

// Column is a named and ordered container of tasks.
type Column struct {
	ID       int64
	Title    string
	Position int
	Tasks    []Task
}

// Task is a unit of work that lives in exactly one column.
type Task struct {
	ID          int64
	Title       string
	Description string
	// DueDate is nil when the task has no due date.
	DueDate   *time.Time
	Completed bool
	// Assignee is nil when the task is not assigned.
	Assignee *Assignee
	Position int
	Subtasks []Subtask
}

// Assignee is the user a task is assigned to.
type Assignee struct {
	ID    int64
	Email string
}

// Subtask is a checklist item of a task.
type Subtask struct {
	ID        int64
	Title     string
	Completed bool
}

// CallKind is the kind of remote call used to persist an ordering.
type CallKind string

const (
	// CallColumnPosition sets the position of a column.
	CallColumnPosition CallKind = "column_position"
	// CallTaskPosition sets the position of a task in its column.
	CallTaskPosition CallKind = "task_position"
	// CallMoveTask reassigns a task to another column.
	CallMoveTask CallKind = "move_task"
)

// Call is a single remote write issued by a move.
type Call struct {
	Kind     CallKind
	TargetID int64
	// Value is the position for position calls and the destination column for task moves.
	Value int64
}

// String returns the call in its HTTP form.
func (c Call) String() string { return toInternalCall(c).String() }

// CallStatus is the state of a journaled call.
type CallStatus string

const (
	CallStatusPending CallStatus = "pending"
	CallStatusDone    CallStatus = "done"
	CallStatusFailed  CallStatus = "failed"
)

// JournalCall is a call recorded in the local journal.
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

// Outcome is what a move did with the local board.
type Outcome string

const (
	// OutcomeApplied means the local board was reordered and the calls were issued.
	OutcomeApplied Outcome = "applied"
	// OutcomeIgnored means the drag did not change the order, nothing was called.
	OutcomeIgnored Outcome = "ignored"
	// OutcomeAborted means there was no session token, nothing was reordered nor called.
	OutcomeAborted Outcome = "aborted"
)

// CallFailure is a call the server rejected. The local order is kept, so the
// server order diverges from the board until the next reload.
type CallFailure struct {
	Call Call
	Err  error
}

// MoveResult is the result of a move.
type MoveResult struct {
	Outcome Outcome
	// Reason explains ignored and aborted moves.
	Reason string
	// OperationID identifies the calls of the move in the journal.
	OperationID string
	// Board is the board after the move.
	Board Board
	// Calls are the remote calls in issue order.
	Calls     []Call
	Succeeded []Call
	Failed    []CallFailure
}

// OK returns true when every remote call succeeded.
func (r MoveResult) OK() bool { return len(r.Failed) == 0 }

// InsertionPolicy selects where a task dropped on another task is placed.
type InsertionPolicy string

const (
	// InsertAppend always appends the task at the end of the destination column.
	InsertAppend InsertionPolicy = "append"
	// InsertAtIndex places the task at the index of the task it was dropped on.
	InsertAtIndex InsertionPolicy = "index"
)

// --- Conversion helpers ---

func fromInternalProject(p model.Project) Project {
	return Project{ID: p.ID, Title: p.Title, Favorite: p.Favorite, Owner: p.Owner}
}

func fromInternalProjectList(ps []model.Project) []Project {
	result := make([]Project, 0, len(ps))
	for _, p := range ps {
		result = append(result, fromInternalProject(p))
	}
	return result
}

func fromInternalBoard(b model.Board) Board {
	b = b.Copy()
	cols := make([]Column, 0, len(b.Columns))
	for _, c := range b.Columns {
		cols = append(cols, fromInternalColumn(c))
	}
	return Board{ProjectID: b.ProjectID, Title: b.Title, Columns: cols, SyncedAt: b.SyncedAt}
}

func fromInternalColumn(c model.Column) Column {
	tasks := make([]Task, 0, len(c.Tasks))
	for _, t := range c.Tasks {
		tasks = append(tasks, fromInternalTask(t))
	}
	return Column{ID: c.ID, Title: c.Title, Position: c.Position, Tasks: tasks}
}

func fromInternalTask(t model.Task) Task {
	task := Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Completed:   t.Completed,
		Position:    t.Position,
	}
	if t.Assignee != nil {
		task.Assignee = &Assignee{ID: t.Assignee.ID, Email: t.Assignee.Email}
	}
	for _, s := range t.Subtasks {
		task.Subtasks = append(task.Subtasks, Subtask{ID: s.ID, Title: s.Title, Completed: s.Completed})
	}
	return task
}

func fromInternalCall(c model.Call) Call {
	return Call{Kind: CallKind(c.Kind), TargetID: c.TargetID, Value: c.Value}
}

func toInternalCall(c Call) model.Call {
	return model.Call{Kind: model.CallKind(c.Kind), TargetID: c.TargetID, Value: c.Value}
}

func fromInternalCalls(cs []model.Call) []Call {
	result := make([]Call, 0, len(cs))
	for _, c := range cs {
		result = append(result, fromInternalCall(c))
	}
	return result
}

func fromInternalJournalCall(c model.JournalCall) JournalCall {
	return JournalCall{
		ID:          c.ID,
		ProjectID:   c.ProjectID,
		OperationID: c.OperationID,
		Sequence:    c.Sequence,
		Call:        fromInternalCall(c.Call),
		Status:      CallStatus(c.Status),
		Error:       c.Error,
		CreatedAt:   c.CreatedAt,
	}
}

func fromInternalMove(outcome board.Outcome, reason string, b model.Board, calls []model.Call, report board.Report) *MoveResult {
	res := &MoveResult{
		Outcome:     Outcome(outcome),
		Reason:      reason,
		OperationID: report.OperationID,
		Board:       fromInternalBoard(b),
		Calls:       fromInternalCalls(calls),
		Succeeded:   fromInternalCalls(report.Succeeded),
	}
	for _, f := range report.Failed {
		res.Failed = append(res.Failed, CallFailure{Call: fromInternalCall(f.Call), Err: mapError(f.Err)})
	}
	return res
}
