package board

import (
	"github.com/workly/workly/internal/model"
)

// InsertionPolicy decides where a task lands in its destination column.
type InsertionPolicy string

const (
	// InsertAppend always appends the task at the end of the destination column,
	// ignoring the drop index hint.
	InsertAppend InsertionPolicy = "append"
	// InsertAtIndex inserts the task at the drop index hint when there is one.
	InsertAtIndex InsertionPolicy = "index"
)

// plan is the outcome of applying a drag on a board.
type plan struct {
	board  model.Board
	calls  []model.Call
	reason string
}

func ignored(reason string) plan { return plan{reason: reason} }

func (p plan) applied() bool { return p.reason == "" }

type reorderer struct {
	insertion     InsertionPolicy
	reindexSource bool
}

// apply computes the new board and the remote calls that persist it. The received board
// is never mutated.
func (r reorderer) apply(b model.Board, ev DragEvent) plan {
	if ev.Over == nil {
		return ignored("no drop target")
	}

	switch ev.Kind {
	case ItemColumn:
		return r.moveColumn(b, ev)
	case ItemTask:
		return r.moveTask(b, ev)
	}
	return ignored("unknown item kind")
}

// resolveColumn returns the index of the column the drop target belongs to.
func resolveColumn(b model.Board, over DropTarget) (int, bool) {
	switch over.Kind {
	case TargetTask:
		if ci, _, ok := b.FindTask(over.ID); ok {
			return ci, true
		}
		if ci := b.ColumnIndex(over.ContainerID); ci >= 0 {
			return ci, true
		}
		return -1, false
	default:
		// Columns and targets without data: the raw ID is a column ID.
		ci := b.ColumnIndex(over.ID)
		return ci, ci >= 0
	}
}

func (r reorderer) moveColumn(b model.Board, ev DragEvent) plan {
	if ev.SourceContainerID != 0 && ev.SourceContainerID != b.ProjectID {
		return ignored("column is not from this board")
	}

	oldIdx := b.ColumnIndex(ev.ItemID)
	if oldIdx < 0 {
		return ignored("dragged column not found")
	}
	newIdx, ok := resolveColumn(b, *ev.Over)
	if !ok {
		return ignored("no column under the drop target")
	}
	if oldIdx == newIdx {
		return ignored("column dropped on its own position")
	}

	nb := b.Copy()
	nb.Columns = arrayMove(nb.Columns, oldIdx, newIdx)
	nb.Normalize()

	calls := make([]model.Call, 0, len(nb.Columns))
	for i, c := range nb.Columns {
		calls = append(calls, model.Call{Kind: model.CallColumnPosition, TargetID: c.ID, Value: int64(i)})
	}

	return plan{board: nb, calls: calls}
}

func (r reorderer) moveTask(b model.Board, ev DragEvent) plan {
	fromCol := b.ColumnIndex(ev.SourceContainerID)
	if fromCol < 0 {
		return ignored("source column not found")
	}
	fromIdx := b.Columns[fromCol].TaskIndex(ev.ItemID)
	if fromIdx < 0 {
		return ignored("dragged task not found in its source column")
	}
	toCol, ok := resolveColumn(b, *ev.Over)
	if !ok {
		return ignored("no column under the drop target")
	}

	hint := r.insertionHint(b, *ev.Over)

	nb := b.Copy()
	if fromCol == toCol {
		col := &nb.Columns[toCol]
		newIdx := len(col.Tasks) - 1
		if hint != NoIndex {
			newIdx = clamp(hint, 0, len(col.Tasks)-1)
			if newIdx == fromIdx {
				return ignored("task dropped on its own position")
			}
		}
		col.Tasks = arrayMove(col.Tasks, fromIdx, newIdx)
		nb.Normalize()

		return plan{board: nb, calls: taskPositionCalls(*col)}
	}

	src, dst := &nb.Columns[fromCol], &nb.Columns[toCol]
	task := src.Tasks[fromIdx]
	src.Tasks = append(src.Tasks[:fromIdx:fromIdx], src.Tasks[fromIdx+1:]...)

	at := len(dst.Tasks)
	if hint != NoIndex {
		at = clamp(hint, 0, len(dst.Tasks))
	}
	dst.Tasks = insertAt(dst.Tasks, at, task)
	nb.Normalize()

	calls := []model.Call{{Kind: model.CallMoveTask, TargetID: task.ID, Value: dst.ID}}
	calls = append(calls, taskPositionCalls(*dst)...)
	if r.reindexSource {
		calls = append(calls, taskPositionCalls(*src)...)
	}

	return plan{board: nb, calls: calls}
}

// insertionHint returns the index where the task should be inserted, NoIndex means append.
func (r reorderer) insertionHint(b model.Board, over DropTarget) int {
	if r.insertion != InsertAtIndex {
		return NoIndex
	}
	if over.Index >= 0 {
		return over.Index
	}
	if over.Kind == TargetTask {
		if _, ti, ok := b.FindTask(over.ID); ok {
			return ti
		}
	}
	return NoIndex
}

func taskPositionCalls(c model.Column) []model.Call {
	calls := make([]model.Call, 0, len(c.Tasks))
	for i, t := range c.Tasks {
		calls = append(calls, model.Call{Kind: model.CallTaskPosition, TargetID: t.ID, Value: int64(i)})
	}
	return calls
}

// arrayMove removes the element at from and inserts it at to, the rest shifts to stay contiguous.
func arrayMove[T any](s []T, from, to int) []T {
	out := make([]T, 0, len(s))
	item := s[from]
	out = append(out, s[:from]...)
	out = append(out, s[from+1:]...)
	return insertAt(out, to, item)
}

func insertAt[T any](s []T, i int, v T) []T {
	s = append(s, v)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
