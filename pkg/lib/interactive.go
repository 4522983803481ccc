package lib

import (
	"context"
	"fmt"
	"sync"

	"github.com/workly/workly/internal/app/boardshow"
	"github.com/workly/workly/internal/board"
	"github.com/workly/workly/internal/model"
)

// ItemKind is the kind of entity being dragged.
type ItemKind string

const (
	ItemColumn ItemKind = "column"
	ItemTask   ItemKind = "task"
)

// TargetKind is the kind of entity under the dragged item when it is released.
type TargetKind string

const (
	TargetColumn TargetKind = "column"
	TargetTask   TargetKind = "task"
)

// NoIndex is used on drop targets without an index hint.
const NoIndex = board.NoIndex

// DragItem is the entity picked up when a drag starts.
type DragItem struct {
	Kind ItemKind
	ID   int64
	// ContainerID is the column of a task or the project of a column.
	ContainerID int64
}

// DropTarget is the entity under the dragged item when it is released.
type DropTarget struct {
	Kind TargetKind
	ID   int64
	// ContainerID is the column of a task target.
	ContainerID int64
	// Index is the insertion hint, [NoIndex] when unknown.
	Index int
}

// Point is a pointer position.
type Point struct {
	X float64
	Y float64
}

// InteractiveBoardOpts configures an interactive board.
type InteractiveBoardOpts struct {
	// Insertion is the placement of tasks dropped over tasks.
	// Default: [InsertAppend].
	Insertion InsertionPolicy
	// ReindexSource also persists the task positions of the column a task leaves.
	ReindexSource bool
	// MinDragDistance is the pointer distance a drag needs to be accepted.
	// Default: 5.
	MinDragDistance float64
	// Async dispatches the remote calls in background, Drop returns before they end.
	Async bool
}

// InteractiveBoard keeps a board in memory and reorders it from drag gestures,
// persisting the new order with the API. It's meant to back a UI.
//
// The local order is updated before any remote call and is never rolled back.
type InteractiveBoard struct {
	client    *Client
	projectID int64
	rec       *board.Reconciler

	mu      sync.Mutex
	gesture *board.Gesture
}

// OpenBoard loads the board of a project and returns an interactive board over it.
// Pass nil opts for defaults.
func (c *Client) OpenBoard(ctx context.Context, projectID int64, opts *InteractiveBoardOpts) (*InteractiveBoard, error) {
	if opts == nil {
		opts = &InteractiveBoardOpts{}
	}

	b, err := c.loadBoard(ctx, projectID)
	if err != nil {
		return nil, mapError(err)
	}

	rec, err := board.NewReconciler(board.ReconcilerConfig{
		Board:           *b,
		Remote:          c.remote,
		Session:         c.session,
		Journal:         c.journal,
		MinDragDistance: opts.MinDragDistance,
		Insertion:       board.InsertionPolicy(opts.Insertion),
		ReindexSource:   opts.ReindexSource,
		Async:           opts.Async,
		Logger:          c.logger,
	})
	if err != nil {
		return nil, mapError(fmt.Errorf("could not create reconciler: %w", err))
	}

	return &InteractiveBoard{
		client:    c,
		projectID: projectID,
		rec:       rec,
		gesture:   board.NewGesture(opts.MinDragDistance),
	}, nil
}

// Board returns the current local board.
func (i *InteractiveBoard) Board() Board {
	return fromInternalBoard(i.rec.Board())
}

// Refresh reloads the board from the API, discarding any local divergence.
func (i *InteractiveBoard) Refresh(ctx context.Context) error {
	b, err := i.client.loadBoard(ctx, i.projectID)
	if err != nil {
		return mapError(err)
	}
	return mapError(i.rec.SetBoard(*b))
}

// StartDrag picks up an item at a pointer position.
func (i *InteractiveBoard) StartDrag(item DragItem, at Point) error {
	return i.start(item, at, board.InputPointer)
}

// StartKeyboardDrag picks up an item with the keyboard, these drags have no
// minimum distance.
func (i *InteractiveBoard) StartKeyboardDrag(item DragItem) error {
	return i.start(item, Point{}, board.InputKeyboard)
}

func (i *InteractiveBoard) start(item DragItem, at Point, input board.Input) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	err := i.gesture.Start(board.DragItem{
		Kind:        board.ItemKind(item.Kind),
		ID:          item.ID,
		ContainerID: item.ContainerID,
	}, board.Point{X: at.X, Y: at.Y}, input)
	return mapError(err)
}

// CancelDrag aborts the current drag, the board is not changed.
func (i *InteractiveBoard) CancelDrag() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.gesture.Cancel()
}

// Drop releases the dragged item over a target, a nil target is a drop outside
// any droppable. The board is reordered and the remote calls issued.
//
// On async boards the result only has the calls, use [InteractiveBoard.Wait] to
// wait for them.
func (i *InteractiveBoard) Drop(ctx context.Context, over *DropTarget, at Point) (*MoveResult, error) {
	i.mu.Lock()
	var target *board.DropTarget
	if over != nil {
		target = &board.DropTarget{
			Kind:        board.TargetKind(over.Kind),
			ID:          over.ID,
			ContainerID: over.ContainerID,
			Index:       over.Index,
		}
	}
	ev, _ := i.gesture.Drop(target, board.Point{X: at.X, Y: at.Y})
	i.gesture.Done()
	i.mu.Unlock()

	if ev.Kind == "" {
		return nil, fmt.Errorf("there is no drag in progress: %w", ErrNotValid)
	}

	res, err := i.rec.OnDragComplete(ctx, ev)
	if err != nil {
		return nil, mapError(err)
	}

	var report board.Report
	if res.Dispatch != nil {
		select {
		case <-res.Dispatch.Done():
			report = res.Wait()
		default:
			report.OperationID = res.Dispatch.OperationID
		}
	}

	return fromInternalMove(res.Outcome, res.Reason, res.Board, res.Calls, report), nil
}

// Wait blocks until the background remote calls of async boards end.
func (i *InteractiveBoard) Wait() {
	i.rec.Wait()
}

func (c *Client) loadBoard(ctx context.Context, projectID int64) (*model.Board, error) {
	svc, err := boardshow.NewService(boardshow.ServiceConfig{
		Remote: c.remote,
		Cache:  c.cache,
		Logger: c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	return svc.Run(ctx, boardshow.Request{ProjectID: projectID})
}
