package board

import (
	"context"
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/remote"
	"github.com/workly/workly/internal/session"
	"github.com/workly/workly/internal/storage"
	"github.com/workly/workly/internal/storage/memory"
)

// ReconcilerConfig is the configuration for the board reconciler.
type ReconcilerConfig struct {
	// Board is the initial board state.
	Board model.Board
	// Remote persists the new ordering on the server.
	Remote remote.PositionWriter
	// Session is checked before applying any drag, without credential drags are aborted.
	Session session.Provider
	// Journal records the dispatched calls, defaults to an in-memory journal.
	Journal storage.JournalRepository
	// MinDragDistance is the pointer displacement under which a gesture is a click.
	MinDragDistance float64
	// Insertion decides where a moved task lands.
	Insertion InsertionPolicy
	// ReindexSource also persists the source column positions on cross column moves.
	ReindexSource bool
	// Async dispatches the remote calls in background.
	Async  bool
	Logger log.Logger
}

func (c *ReconcilerConfig) defaults() error {
	if c.Remote == nil {
		return fmt.Errorf("remote is required")
	}

	if c.Session == nil {
		return fmt.Errorf("session is required")
	}

	if err := c.Board.Validate(); err != nil {
		return fmt.Errorf("invalid board: %w", err)
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "board.Reconciler"})

	if c.Journal == nil {
		repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: c.Logger})
		if err != nil {
			return fmt.Errorf("could not create journal: %w", err)
		}
		c.Journal = repo
	}

	if c.MinDragDistance <= 0 {
		c.MinDragDistance = DefaultMinDragDistance
	}

	switch c.Insertion {
	case "":
		c.Insertion = InsertAppend
	case InsertAppend, InsertAtIndex:
	default:
		return fmt.Errorf("unknown insertion policy %q", c.Insertion)
	}

	return nil
}

// Outcome is the result kind of a completed drag.
type Outcome string

const (
	// OutcomeApplied means the board changed and the remote calls were dispatched.
	OutcomeApplied Outcome = "applied"
	// OutcomeIgnored means the drag didn't change anything.
	OutcomeIgnored Outcome = "ignored"
	// OutcomeAborted means the drag was dropped because there is no credential.
	OutcomeAborted Outcome = "aborted"
)

// Result is the result of handling a completed drag.
type Result struct {
	Outcome Outcome
	// Reason explains ignored and aborted outcomes.
	Reason string
	// Board is a copy of the board after handling the drag.
	Board model.Board
	// Calls are the remote calls planned for the drag, in dispatch order.
	Calls []model.Call
	// Dispatch is set on applied outcomes.
	Dispatch *Dispatch
}

// Wait blocks until the remote calls of the drag end, if any.
func (r Result) Wait() Report {
	if r.Dispatch == nil {
		return Report{}
	}
	return r.Dispatch.Wait()
}

// CallFailure is a remote call that failed.
type CallFailure struct {
	Call model.Call
	Err  error
}

// Report summarizes the dispatch of an operation.
type Report struct {
	OperationID string
	Succeeded   []model.Call
	Failed      []CallFailure
}

// OK returns true when all the calls succeeded.
func (r Report) OK() bool { return len(r.Failed) == 0 }

// Dispatch tracks the remote calls of one applied drag.
type Dispatch struct {
	OperationID string
	done        chan struct{}
	report      Report
}

// Done is closed when all the calls have been executed.
func (d *Dispatch) Done() <-chan struct{} { return d.done }

// Wait blocks until all the calls have been executed and returns the report.
func (d *Dispatch) Wait() Report {
	<-d.done
	return d.report
}

// Reconciler keeps a board in sync with the drags of a user: it applies the new ordering
// locally and persists it on the remote API.
//
// Local state is optimistic, it's never rolled back when a remote call fails. Safe for
// concurrent use.
type Reconciler struct {
	board     model.Board
	reorderer reorderer
	remote    remote.PositionWriter
	session   session.Provider
	journal   storage.JournalRepository
	minDist   float64
	async     bool
	logger    log.Logger

	mu       sync.Mutex
	inFlight sync.WaitGroup
}

// NewReconciler returns a new board reconciler.
func NewReconciler(cfg ReconcilerConfig) (*Reconciler, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	b := cfg.Board.Copy()
	b.Normalize()

	return &Reconciler{
		board:     b,
		reorderer: reorderer{insertion: cfg.Insertion, reindexSource: cfg.ReindexSource},
		remote:    cfg.Remote,
		session:   cfg.Session,
		journal:   cfg.Journal,
		minDist:   cfg.MinDragDistance,
		async:     cfg.Async,
		logger:    cfg.Logger,
	}, nil
}

// Board returns a copy of the current board.
func (r *Reconciler) Board() model.Board {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.board.Copy()
}

// SetBoard replaces the current board, used after refreshing from the server.
func (r *Reconciler) SetBoard(b model.Board) error {
	if err := b.Validate(); err != nil {
		return err
	}

	b = b.Copy()
	b.Normalize()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.board = b
	return nil
}

// OnDragComplete handles a completed drag gesture. When the drag is valid the board is
// updated before any remote call and the calls are dispatched sequentially, a failed
// call doesn't stop the next ones.
func (r *Reconciler) OnDragComplete(ctx context.Context, ev DragEvent) (*Result, error) {
	if ev.Kind != ItemColumn && ev.Kind != ItemTask {
		return nil, fmt.Errorf("unknown item kind %q: %w", ev.Kind, model.ErrNotValid)
	}

	if ev.Over == nil {
		return r.ignored("no drop target"), nil
	}

	if ev.belowThreshold(r.minDist) {
		return r.ignored("below minimum drag distance"), nil
	}

	r.mu.Lock()
	p := r.reorderer.apply(r.board, ev)
	if !p.applied() {
		r.mu.Unlock()
		r.logger.Debugf("Drag of %s %d ignored: %s", ev.Kind, ev.ItemID, p.reason)
		return r.ignored(p.reason), nil
	}

	// Without credential nothing is applied.
	if _, err := r.session.Token(ctx); err != nil {
		r.mu.Unlock()
		r.logger.Warningf("Drag of %s %d aborted: %s", ev.Kind, ev.ItemID, err)
		return &Result{Outcome: OutcomeAborted, Reason: err.Error(), Board: r.Board()}, nil
	}

	r.board = p.board
	projectID := r.board.ProjectID
	r.mu.Unlock()

	opID := ulid.Make().String()
	ctx = r.logger.SetValuesOnCtx(ctx, log.Kv{"operation": opID})
	logger := r.logger.WithCtxValues(ctx)
	logger.Infof("Moved %s %d, dispatching %d remote calls", ev.Kind, ev.ItemID, len(p.calls))

	d := &Dispatch{OperationID: opID, done: make(chan struct{})}
	if r.async {
		r.inFlight.Add(1)
		go func() {
			defer r.inFlight.Done()
			// Detached so later UI changes can't cancel an in flight sequence.
			d.report = r.dispatch(context.WithoutCancel(ctx), logger, projectID, opID, p.calls)
			close(d.done)
		}()
	} else {
		d.report = r.dispatch(ctx, logger, projectID, opID, p.calls)
		close(d.done)
	}

	return &Result{
		Outcome:  OutcomeApplied,
		Board:    p.board.Copy(),
		Calls:    p.calls,
		Dispatch: d,
	}, nil
}

// Wait blocks until all the background dispatches end.
func (r *Reconciler) Wait() {
	r.inFlight.Wait()
}

func (r *Reconciler) ignored(reason string) *Result {
	return &Result{Outcome: OutcomeIgnored, Reason: reason, Board: r.Board()}
}

func (r *Reconciler) dispatch(ctx context.Context, logger log.Logger, projectID int64, opID string, calls []model.Call) Report {
	report := Report{OperationID: opID}

	journaled := true
	if err := r.journal.AddCalls(ctx, projectID, opID, calls); err != nil {
		logger.Errorf("Could not journal calls: %s", err)
		journaled = false
	}

	for i, call := range calls {
		var jc *model.JournalCall
		if journaled {
			next, err := r.journal.NextCall(ctx, opID)
			switch {
			case err != nil:
				logger.Errorf("Could not get next journaled call: %s", err)
				journaled = false
			case next == nil || next.Call != call:
				logger.Warningf("Journal out of sync with dispatched calls, stop journaling")
				journaled = false
			default:
				jc = next
			}
		}

		logger.Debugf("[%d/%d] %s", i+1, len(calls), call)
		err := r.execute(ctx, call)
		if err != nil {
			logger.Errorf("Remote call %q failed: %s", call, err)
			report.Failed = append(report.Failed, CallFailure{Call: call, Err: err})
			if jc != nil {
				if ferr := r.journal.FailCall(ctx, jc.ID, err); ferr != nil {
					logger.Errorf("Failed to mark call as failed: %s", ferr)
				}
			}
			continue
		}

		report.Succeeded = append(report.Succeeded, call)
		if jc != nil {
			if cerr := r.journal.CompleteCall(ctx, jc.ID); cerr != nil {
				logger.Errorf("Failed to mark call as completed: %s", cerr)
			}
		}
	}

	if len(report.Failed) > 0 {
		logger.Warningf("%d of %d remote calls failed, server ordering may differ from the local one", len(report.Failed), len(calls))
	}

	return report
}

func (r *Reconciler) execute(ctx context.Context, c model.Call) error {
	switch c.Kind {
	case model.CallColumnPosition:
		return r.remote.SetColumnPosition(ctx, c.TargetID, int(c.Value))
	case model.CallTaskPosition:
		return r.remote.SetTaskPosition(ctx, c.TargetID, int(c.Value))
	case model.CallMoveTask:
		return r.remote.MoveTask(ctx, c.TargetID, c.Value)
	}
	return fmt.Errorf("unknown call kind %q: %w", c.Kind, model.ErrNotValid)
}
