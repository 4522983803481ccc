package fake

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/model"
)

// Operation names recorded by the fake for every write.
const (
	OpColumnPosition = "column_position"
	OpTaskPosition   = "task_position"
	OpMoveTask       = "move_task"
	OpCreateColumn   = "create_column"
	OpRenameColumn   = "rename_column"
	OpDeleteColumn   = "delete_column"
	OpCreateTask     = "create_task"
	OpDeleteTask     = "delete_task"
)

// Request is a write received by the fake.
type Request struct {
	Op  string
	ID  int64
	Arg int64
}

// FailFunc decides if a write should fail, returning nil lets it through.
type FailFunc func(op string, id int64) error

// APIConfig is the configuration for the fake API.
type APIConfig struct {
	Logger log.Logger
}

func (c *APIConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "remote.Fake"})
	return nil
}

type column struct {
	id        int64
	projectID int64
	title     string
	position  int
}

type task struct {
	model.Task
	columnID int64
}

// API is an in-memory implementation of remote.API.
// It simulates the Workly backend, IDs are generated by the server.
type API struct {
	projects map[int64]model.Project
	columns  map[int64]*column
	tasks    map[int64]*task
	nextID   int64
	requests []Request
	fail     FailFunc
	mu       sync.Mutex
	logger   log.Logger
}

// NewAPI creates a new fake API.
func NewAPI(cfg APIConfig) (*API, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &API{
		projects: map[int64]model.Project{},
		columns:  map[int64]*column{},
		tasks:    map[int64]*task{},
		nextID:   1,
		logger:   cfg.Logger,
	}, nil
}

// Seed loads a board as the server state. The board order is stored as positions.
func (a *API) Seed(b model.Board) error {
	if err := b.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.projects[b.ProjectID] = model.Project{ID: b.ProjectID, Title: b.Title, Owner: true}
	a.bumpID(b.ProjectID)
	for ci, c := range b.Columns {
		a.columns[c.ID] = &column{id: c.ID, projectID: b.ProjectID, title: c.Title, position: ci}
		a.bumpID(c.ID)
		for ti, t := range c.Tasks {
			st := &task{Task: t.Copy(), columnID: c.ID}
			st.Position = ti
			a.tasks[t.ID] = st
			a.bumpID(t.ID)
		}
	}
	return nil
}

// SetFavorite marks a project as favorite of the session user.
func (a *API) SetFavorite(projectID int64, favorite bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	p, ok := a.projects[projectID]
	if !ok {
		return fmt.Errorf("project %d: %w", projectID, model.ErrNotFound)
	}
	p.Favorite = favorite
	a.projects[projectID] = p
	return nil
}

// SetFailFunc sets the failure injection function for writes.
func (a *API) SetFailFunc(f FailFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fail = f
}

// Requests returns the writes received so far in order.
func (a *API) Requests() []Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Request(nil), a.requests...)
}

func (a *API) bumpID(id int64) {
	if id >= a.nextID {
		a.nextID = id + 1
	}
}

func (a *API) newID() int64 {
	id := a.nextID
	a.nextID++
	return id
}

// record stores the write and runs the failure injection, must be called with the lock held.
func (a *API) record(op string, id, arg int64) error {
	a.requests = append(a.requests, Request{Op: op, ID: id, Arg: arg})
	if a.fail != nil {
		if err := a.fail(op, id); err != nil {
			a.logger.Warningf("Injected failure on %s %d: %s", op, id, err)
			return err
		}
	}
	return nil
}

// GetBoard satisfies remote.BoardReader.
func (a *API) GetBoard(ctx context.Context, projectID int64) (*model.Board, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p, ok := a.projects[projectID]
	if !ok {
		return nil, fmt.Errorf("project %d: %w", projectID, model.ErrNotFound)
	}

	var cols []*column
	for _, c := range a.columns {
		if c.projectID == projectID {
			cols = append(cols, c)
		}
	}
	sort.SliceStable(cols, func(i, j int) bool {
		if cols[i].position == cols[j].position {
			return cols[i].id < cols[j].id
		}
		return cols[i].position < cols[j].position
	})

	b := &model.Board{ProjectID: projectID, Title: p.Title, Columns: make([]model.Column, 0, len(cols))}
	for _, c := range cols {
		b.Columns = append(b.Columns, model.Column{
			ID:       c.id,
			Title:    c.title,
			Position: c.position,
			Tasks:    a.columnTasks(c.id),
		})
	}

	return b, nil
}

func (a *API) columnTasks(columnID int64) []model.Task {
	var ts []*task
	for _, t := range a.tasks {
		if t.columnID == columnID {
			ts = append(ts, t)
		}
	}
	sort.SliceStable(ts, func(i, j int) bool {
		if ts[i].Position == ts[j].Position {
			return ts[i].ID < ts[j].ID
		}
		return ts[i].Position < ts[j].Position
	})

	tasks := make([]model.Task, 0, len(ts))
	for _, t := range ts {
		tasks = append(tasks, t.Task.Copy())
	}
	return tasks
}

// GetProject satisfies remote.BoardReader.
func (a *API) GetProject(ctx context.Context, projectID int64) (*model.Project, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p, ok := a.projects[projectID]
	if !ok {
		return nil, fmt.Errorf("project %d: %w", projectID, model.ErrNotFound)
	}
	return &p, nil
}

// ListProjects satisfies remote.BoardReader.
func (a *API) ListProjects(ctx context.Context) ([]model.Project, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ps := make([]model.Project, 0, len(a.projects))
	for _, p := range a.projects {
		ps = append(ps, p)
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })
	return ps, nil
}

// GetTask satisfies remote.BoardReader.
func (a *API) GetTask(ctx context.Context, taskID int64) (*model.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	t, ok := a.tasks[taskID]
	if !ok {
		return nil, fmt.Errorf("task %d: %w", taskID, model.ErrNotFound)
	}
	cp := t.Task.Copy()
	return &cp, nil
}

// SetColumnPosition satisfies remote.PositionWriter.
func (a *API) SetColumnPosition(ctx context.Context, columnID int64, position int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.record(OpColumnPosition, columnID, int64(position)); err != nil {
		return err
	}
	c, ok := a.columns[columnID]
	if !ok {
		return fmt.Errorf("column %d: %w", columnID, model.ErrNotFound)
	}
	c.position = position
	return nil
}

// SetTaskPosition satisfies remote.PositionWriter.
func (a *API) SetTaskPosition(ctx context.Context, taskID int64, position int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.record(OpTaskPosition, taskID, int64(position)); err != nil {
		return err
	}
	t, ok := a.tasks[taskID]
	if !ok {
		return fmt.Errorf("task %d: %w", taskID, model.ErrNotFound)
	}
	t.Position = position
	return nil
}

// MoveTask satisfies remote.PositionWriter.
func (a *API) MoveTask(ctx context.Context, taskID, columnID int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.record(OpMoveTask, taskID, columnID); err != nil {
		return err
	}
	t, ok := a.tasks[taskID]
	if !ok {
		return fmt.Errorf("task %d: %w", taskID, model.ErrNotFound)
	}
	if _, ok := a.columns[columnID]; !ok {
		return fmt.Errorf("column %d: %w", columnID, model.ErrNotFound)
	}
	t.Position = len(a.columnTasks(columnID))
	t.columnID = columnID
	return nil
}

// CreateColumn satisfies remote.ColumnWriter.
func (a *API) CreateColumn(ctx context.Context, projectID int64, title string) (*model.Column, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.record(OpCreateColumn, projectID, 0); err != nil {
		return nil, err
	}
	if _, ok := a.projects[projectID]; !ok {
		return nil, fmt.Errorf("project %d: %w", projectID, model.ErrNotFound)
	}
	if title == "" {
		return nil, fmt.Errorf("column title is required: %w", model.ErrNotValid)
	}

	pos := 0
	for _, c := range a.columns {
		if c.projectID == projectID {
			pos++
		}
	}
	c := &column{id: a.newID(), projectID: projectID, title: title, position: pos}
	a.columns[c.id] = c
	a.logger.Debugf("Created column %d on project %d", c.id, projectID)

	return &model.Column{ID: c.id, Title: c.title, Position: c.position, Tasks: []model.Task{}}, nil
}

// RenameColumn satisfies remote.ColumnWriter.
func (a *API) RenameColumn(ctx context.Context, projectID, columnID int64, title string) (*model.Column, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.record(OpRenameColumn, columnID, projectID); err != nil {
		return nil, err
	}
	c, ok := a.columns[columnID]
	if !ok || c.projectID != projectID {
		return nil, fmt.Errorf("column %d: %w", columnID, model.ErrNotFound)
	}
	if title == "" {
		return nil, fmt.Errorf("column title is required: %w", model.ErrNotValid)
	}
	c.title = title

	return &model.Column{ID: c.id, Title: c.title, Position: c.position, Tasks: a.columnTasks(c.id)}, nil
}

// DeleteColumn satisfies remote.ColumnWriter.
func (a *API) DeleteColumn(ctx context.Context, columnID int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.record(OpDeleteColumn, columnID, 0); err != nil {
		return err
	}
	if _, ok := a.columns[columnID]; !ok {
		return fmt.Errorf("column %d: %w", columnID, model.ErrNotFound)
	}
	delete(a.columns, columnID)
	for id, t := range a.tasks {
		if t.columnID == columnID {
			delete(a.tasks, id)
		}
	}
	return nil
}

// CreateTask satisfies remote.TaskWriter.
func (a *API) CreateTask(ctx context.Context, columnID int64, title string) (*model.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.record(OpCreateTask, columnID, 0); err != nil {
		return nil, err
	}
	if _, ok := a.columns[columnID]; !ok {
		return nil, fmt.Errorf("column %d: %w", columnID, model.ErrNotFound)
	}
	if title == "" {
		return nil, fmt.Errorf("task title is required: %w", model.ErrNotValid)
	}

	t := &task{
		Task: model.Task{
			ID:       a.newID(),
			Title:    title,
			Position: len(a.columnTasks(columnID)),
		},
		columnID: columnID,
	}
	a.tasks[t.ID] = t
	a.logger.Debugf("Created task %d on column %d", t.ID, columnID)

	cp := t.Task.Copy()
	return &cp, nil
}

// DeleteTask satisfies remote.TaskWriter.
func (a *API) DeleteTask(ctx context.Context, taskID int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.record(OpDeleteTask, taskID, 0); err != nil {
		return err
	}
	if _, ok := a.tasks[taskID]; !ok {
		return fmt.Errorf("task %d: %w", taskID, model.ErrNotFound)
	}
	delete(a.tasks, taskID)
	return nil
}
