package board

import (
	"fmt"
	"math"

	"github.com/workly/workly/internal/model"
)

// DefaultMinDragDistance is the minimum pointer displacement for a gesture to be a drag
// and not a click.
const DefaultMinDragDistance = 5

// NoIndex is used on drop targets without an insertion hint.
const NoIndex = -1

// ItemKind is the kind of the dragged entity.
type ItemKind string

const (
	ItemColumn ItemKind = "column"
	ItemTask   ItemKind = "task"
)

// TargetKind is the kind of the element under the pointer on drop.
type TargetKind string

const (
	TargetColumn TargetKind = "column"
	TargetTask   TargetKind = "task"
	// TargetUnknown is an element without associated data, its ID is treated as a column ID.
	TargetUnknown TargetKind = ""
)

// Input is the device that raised the gesture.
type Input string

const (
	// InputPointer gestures are subject to the minimum drag distance.
	InputPointer Input = "pointer"
	// InputKeyboard gestures (also used for programmatic moves) have no displacement.
	InputKeyboard Input = "keyboard"
)

// Point is a 2D position or displacement.
type Point struct {
	X float64
	Y float64
}

// Sub returns p - o.
func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }

// DropTarget is the element the dragged item was released on.
type DropTarget struct {
	Kind TargetKind
	ID   int64
	// ContainerID is the column of a task target.
	ContainerID int64
	// Index is the insertion hint inside the destination container, NoIndex when unknown.
	Index int
}

// DragEvent is a completed drag gesture.
type DragEvent struct {
	Kind   ItemKind
	ItemID int64
	// SourceContainerID is the project for columns and the column for tasks.
	SourceContainerID int64
	// Over is the drop target, nil when the item was dropped outside any target.
	Over  *DropTarget
	Delta Point
	Input Input
}

// belowThreshold returns true when a pointer gesture moved less than the minimum distance
// on both axes.
func (e DragEvent) belowThreshold(minDistance float64) bool {
	if e.Input == InputKeyboard {
		return false
	}
	return math.Abs(e.Delta.X) < minDistance && math.Abs(e.Delta.Y) < minDistance
}

// GestureState is the state of a single drag gesture.
type GestureState int

const (
	GestureIdle GestureState = iota
	GestureDragging
	GestureDroppedValid
	GestureDroppedInvalid
)

func (s GestureState) String() string {
	switch s {
	case GestureIdle:
		return "idle"
	case GestureDragging:
		return "dragging"
	case GestureDroppedValid:
		return "dropped-valid"
	case GestureDroppedInvalid:
		return "dropped-invalid"
	}
	return "unknown"
}

// DragItem is the entity picked up at the start of a gesture.
type DragItem struct {
	Kind        ItemKind
	ID          int64
	ContainerID int64
}

// Gesture tracks a drag gesture from pick up to release: Idle -> Dragging -> Dropped -> Idle.
// It's meant to be driven by a presentation layer from its pointer or keyboard events.
type Gesture struct {
	state       GestureState
	item        DragItem
	origin      Point
	input       Input
	minDistance float64
}

// NewGesture returns an idle gesture tracker, a non positive distance uses the default.
func NewGesture(minDistance float64) *Gesture {
	if minDistance <= 0 {
		minDistance = DefaultMinDragDistance
	}
	return &Gesture{state: GestureIdle, minDistance: minDistance}
}

// State returns the current gesture state.
func (g *Gesture) State() GestureState { return g.state }

// Start picks up an item.
func (g *Gesture) Start(item DragItem, at Point, input Input) error {
	if g.state == GestureDragging {
		return fmt.Errorf("a drag is already in progress: %w", model.ErrNotValid)
	}
	if item.Kind != ItemColumn && item.Kind != ItemTask {
		return fmt.Errorf("unknown item kind %q: %w", item.Kind, model.ErrNotValid)
	}

	g.state = GestureDragging
	g.item = item
	g.origin = at
	g.input = input
	return nil
}

// Drop releases the item and returns the completed event. The event is valid when there
// is a drop target and the pointer moved at least the minimum distance.
func (g *Gesture) Drop(over *DropTarget, at Point) (DragEvent, bool) {
	if g.state != GestureDragging {
		return DragEvent{}, false
	}

	ev := DragEvent{
		Kind:              g.item.Kind,
		ItemID:            g.item.ID,
		SourceContainerID: g.item.ContainerID,
		Over:              over,
		Delta:             at.Sub(g.origin),
		Input:             g.input,
	}

	valid := over != nil && !ev.belowThreshold(g.minDistance)
	if valid {
		g.state = GestureDroppedValid
	} else {
		g.state = GestureDroppedInvalid
	}

	return ev, valid
}

// Cancel aborts the gesture without producing an event.
func (g *Gesture) Cancel() { g.Done() }

// Done returns the gesture to idle once the drop has been handled.
func (g *Gesture) Done() {
	g.state = GestureIdle
	g.item = DragItem{}
	g.origin = Point{}
	g.input = ""
}
