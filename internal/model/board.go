package model

import (
	"fmt"
	"time"
)

// Board is the ordered set of columns of a project.
//
// The order of the columns is the slice order, positions are derived from it and
// are always zero-based and contiguous after a reorder.
type Board struct {
	ProjectID int64
	Title     string
	Columns   []Column
	SyncedAt  time.Time
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
	DueDate     *time.Time
	Completed   bool
	Assignee    *Assignee
	Position    int
	Subtasks    []Subtask
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

// Copy returns a deep copy of the board so callers can't mutate shared state.
func (b Board) Copy() Board {
	cp := b
	cp.Columns = make([]Column, len(b.Columns))
	for i, c := range b.Columns {
		cp.Columns[i] = c.Copy()
	}
	return cp
}

// Copy returns a deep copy of the column.
func (c Column) Copy() Column {
	cp := c
	cp.Tasks = make([]Task, len(c.Tasks))
	for i, t := range c.Tasks {
		cp.Tasks[i] = t.Copy()
	}
	return cp
}

// Copy returns a deep copy of the task.
func (t Task) Copy() Task {
	cp := t
	if t.DueDate != nil {
		d := *t.DueDate
		cp.DueDate = &d
	}
	if t.Assignee != nil {
		a := *t.Assignee
		cp.Assignee = &a
	}
	if t.Subtasks != nil {
		cp.Subtasks = append([]Subtask(nil), t.Subtasks...)
	}
	return cp
}

// ColumnIndex returns the index of the column with the ID, or -1.
func (b Board) ColumnIndex(id int64) int {
	for i, c := range b.Columns {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// FindTask returns the column index and task index where the task lives.
func (b Board) FindTask(id int64) (colIdx, taskIdx int, ok bool) {
	for ci, c := range b.Columns {
		if ti := c.TaskIndex(id); ti >= 0 {
			return ci, ti, true
		}
	}
	return -1, -1, false
}

// TaskIndex returns the index of the task with the ID in the column, or -1.
func (c Column) TaskIndex(id int64) int {
	for i, t := range c.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Normalize sets every column and task position to its slice index.
func (b *Board) Normalize() {
	for i := range b.Columns {
		b.Columns[i].Position = i
		b.Columns[i].normalize()
	}
}

func (c *Column) normalize() {
	for i := range c.Tasks {
		c.Tasks[i].Position = i
	}
}

// Validate checks the board invariants: unique column IDs and a task living in
// a single column.
func (b Board) Validate() error {
	cols := map[int64]struct{}{}
	tasks := map[int64]int64{}
	for _, c := range b.Columns {
		if _, ok := cols[c.ID]; ok {
			return fmt.Errorf("duplicated column %d: %w", c.ID, ErrNotValid)
		}
		cols[c.ID] = struct{}{}

		for _, t := range c.Tasks {
			if other, ok := tasks[t.ID]; ok {
				return fmt.Errorf("task %d is in columns %d and %d: %w", t.ID, other, c.ID, ErrNotValid)
			}
			tasks[t.ID] = c.ID
		}
	}
	return nil
}
