package lib_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workly/workly/pkg/lib"
)

// newTestClient creates a client over the fake backend with a temp SQLite DB for test isolation.
func newTestClient(t *testing.T, token string) *lib.Client {
	t.Helper()

	dir := t.TempDir()
	client, err := lib.New(context.Background(), lib.Config{
		Backend:     lib.BackendFake,
		DBPath:      filepath.Join(dir, "test.db"),
		SessionFile: filepath.Join(dir, "session.yaml"),
		Token:       token,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

func columnIDs(b lib.Board) []int64 {
	ids := []int64{}
	for _, c := range b.Columns {
		ids = append(ids, c.ID)
	}
	return ids
}

func taskIDs(b lib.Board, columnID int64) []int64 {
	ids := []int64{}
	for _, c := range b.Columns {
		if c.ID != columnID {
			continue
		}
		for _, t := range c.Tasks {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

func TestNew(t *testing.T) {
	tests := map[string]struct {
		cfg   lib.Config
		expIs error
	}{
		"A fake backend with memory storage should work.": {
			cfg: lib.Config{Backend: lib.BackendFake, Storage: lib.StorageMemory},
		},

		"An unsupported backend should fail.": {
			cfg:   lib.Config{Backend: "grpc", Storage: lib.StorageMemory},
			expIs: lib.ErrNotValid,
		},

		"An unsupported storage should fail.": {
			cfg:   lib.Config{Backend: lib.BackendFake, Storage: "redis"},
			expIs: lib.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			test.cfg.SessionFile = filepath.Join(t.TempDir(), "session.yaml")

			client, err := lib.New(context.Background(), test.cfg)
			if test.expIs != nil {
				assert.ErrorIs(t, err, test.expIs)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, client.Close())
		})
	}
}

func TestListProjects(t *testing.T) {
	tests := map[string]struct {
		opts   *lib.ListProjectsOpts
		expIDs []int64
	}{
		"Listing all projects should return favorites first.": {
			expIDs: []int64{1, 2},
		},

		"Listing favorites should only return favorite projects.": {
			opts:   &lib.ListProjectsOpts{FavoritesOnly: true},
			expIDs: []int64{1},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, "token")

			ps, err := client.ListProjects(context.Background(), test.opts)
			require.NoError(t, err)

			ids := []int64{}
			for _, p := range ps {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, test.expIDs, ids)
		})
	}
}

func TestGetBoard(t *testing.T) {
	tests := map[string]struct {
		projectID  int64
		warm       bool
		opts       *lib.GetBoardOpts
		expColumns []int64
		expIs      error
	}{
		"Getting a board should return its columns in order.": {
			projectID:  1,
			expColumns: []int64{10, 20, 30},
		},

		"Getting a board offline after loading it should use the cache.": {
			projectID:  1,
			warm:       true,
			opts:       &lib.GetBoardOpts{Offline: true},
			expColumns: []int64{10, 20, 30},
		},

		"Getting a board offline without cache should fail.": {
			projectID: 1,
			opts:      &lib.GetBoardOpts{Offline: true},
			expIs:     lib.ErrNotFound,
		},

		"Getting a missing board should fail.": {
			projectID: 42,
			expIs:     lib.ErrNotFound,
		},

		"Getting a board without project should fail.": {
			projectID: 0,
			expIs:     lib.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			client := newTestClient(t, "token")

			if test.warm {
				_, err := client.GetBoard(ctx, test.projectID, nil)
				require.NoError(t, err)
			}

			b, err := client.GetBoard(ctx, test.projectID, test.opts)
			if test.expIs != nil {
				assert.ErrorIs(t, err, test.expIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expColumns, columnIDs(*b))
		})
	}
}

func TestMoveColumn(t *testing.T) {
	tests := map[string]struct {
		token      string
		columnID   int64
		position   int
		expOutcome lib.Outcome
		expColumns []int64
		expCalls   int
		expIs      error
	}{
		"Moving the last column to the start should reorder every column.": {
			token:      "token",
			columnID:   30,
			position:   0,
			expOutcome: lib.OutcomeApplied,
			expColumns: []int64{30, 10, 20},
			expCalls:   3,
		},

		"Moving a column to its own position should be ignored.": {
			token:      "token",
			columnID:   20,
			position:   1,
			expOutcome: lib.OutcomeIgnored,
			expColumns: []int64{10, 20, 30},
		},

		"Moving a column without session should be aborted.": {
			columnID:   30,
			position:   0,
			expOutcome: lib.OutcomeAborted,
			expColumns: []int64{10, 20, 30},
		},

		"Moving a missing column should fail.": {
			token:    "token",
			columnID: 99,
			expIs:    lib.ErrNotFound,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			client := newTestClient(t, test.token)

			res, err := client.MoveColumn(ctx, 1, test.columnID, test.position)
			if test.expIs != nil {
				assert.ErrorIs(t, err, test.expIs)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, test.expOutcome, res.Outcome)
			assert.Equal(t, test.expColumns, columnIDs(res.Board))
			assert.Len(t, res.Calls, test.expCalls)
			assert.True(t, res.OK())

			// The server has the same order.
			b, err := client.GetBoard(ctx, 1, nil)
			require.NoError(t, err)
			assert.Equal(t, test.expColumns, columnIDs(*b))
		})
	}
}

func TestMoveTask(t *testing.T) {
	zero := 0

	tests := map[string]struct {
		taskID   int64
		opts     lib.MoveTaskOpts
		expTodo  []int64
		expDoing []int64
		expIs    error
	}{
		"Moving a task to another column should append it.": {
			taskID:   100,
			opts:     lib.MoveTaskOpts{ColumnID: 20},
			expTodo:  []int64{101},
			expDoing: []int64{200, 100},
		},

		"Moving a task to an index of another column should insert it.": {
			taskID:   100,
			opts:     lib.MoveTaskOpts{ColumnID: 20, Index: &zero},
			expTodo:  []int64{101},
			expDoing: []int64{100, 200},
		},

		"Moving a task inside its column should reorder it.": {
			taskID:   101,
			opts:     lib.MoveTaskOpts{Index: &zero},
			expTodo:  []int64{101, 100},
			expDoing: []int64{200},
		},

		"Moving a missing task should fail.": {
			taskID: 999,
			opts:   lib.MoveTaskOpts{ColumnID: 20},
			expIs:  lib.ErrNotFound,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			client := newTestClient(t, "token")

			res, err := client.MoveTask(ctx, 1, test.taskID, test.opts)
			if test.expIs != nil {
				assert.ErrorIs(t, err, test.expIs)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, lib.OutcomeApplied, res.Outcome)
			assert.Equal(t, test.expTodo, taskIDs(res.Board, 10))
			assert.Equal(t, test.expDoing, taskIDs(res.Board, 20))
			assert.NotEmpty(t, res.OperationID)
		})
	}
}

func TestColumnAndTaskLifecycle(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	ctx := context.Background()
	client := newTestClient(t, "token")

	// Load the board so the cache is warm.
	_, err := client.GetBoard(ctx, 2, nil)
	require.NoError(err)

	col, err := client.CreateColumn(ctx, 2, "  Later ")
	require.NoError(err)
	assert.Equal("Later", col.Title)

	col, err = client.RenameColumn(ctx, 2, col.ID, "Someday")
	require.NoError(err)
	assert.Equal("Someday", col.Title)

	task, err := client.CreateTask(ctx, 2, col.ID, "Learn Go")
	require.NoError(err)

	b, err := client.GetBoard(ctx, 2, nil)
	require.NoError(err)
	assert.Equal([]int64{40, col.ID}, columnIDs(*b))
	assert.Equal([]int64{task.ID}, taskIDs(*b, col.ID))

	_, err = client.CreateColumn(ctx, 2, " ")
	assert.ErrorIs(err, lib.ErrNotValid)

	require.NoError(client.RemoveTask(ctx, 2, task.ID))
	require.NoError(client.RemoveColumn(ctx, 2, col.ID))
	assert.ErrorIs(client.RemoveColumn(ctx, 2, col.ID), lib.ErrNotFound)

	b, err = client.GetBoard(ctx, 2, nil)
	require.NoError(err)
	assert.Equal([]int64{40}, columnIDs(*b))
}

func TestListJournal(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	ctx := context.Background()
	client := newTestClient(t, "token")

	res, err := client.MoveColumn(ctx, 1, 30, 0)
	require.NoError(err)

	calls, err := client.ListJournal(ctx, &lib.ListJournalOpts{OperationID: res.OperationID})
	require.NoError(err)
	require.Len(calls, 3)
	for i, c := range calls {
		assert.Equal(res.Calls[i], c.Call)
		assert.Equal(lib.CallStatusDone, c.Status)
		assert.Equal(int64(1), c.ProjectID)
	}

	failed, err := client.ListJournal(ctx, &lib.ListJournalOpts{FailedOnly: true})
	require.NoError(err)
	assert.Empty(failed)

	done, nFailed, err := client.ClearJournalOperation(ctx, res.OperationID, nil)
	require.NoError(err)
	assert.Equal(3, done)
	assert.Equal(0, nFailed)

	calls, err = client.ListJournal(ctx, nil)
	require.NoError(err)
	assert.Empty(calls)

	_, _, err = client.ClearJournalOperation(ctx, res.OperationID, nil)
	assert.ErrorIs(err, lib.ErrNotFound)
}

func TestInteractiveBoard(t *testing.T) {
	tests := map[string]struct {
		async      bool
		start      *lib.DragItem
		over       *lib.DropTarget
		at         lib.Point
		expOutcome lib.Outcome
		expDoing   []int64
		expIs      error
	}{
		"Dropping a task over another column should move it.": {
			start:      &lib.DragItem{Kind: lib.ItemTask, ID: 100, ContainerID: 10},
			over:       &lib.DropTarget{Kind: lib.TargetColumn, ID: 20, Index: lib.NoIndex},
			at:         lib.Point{X: 100},
			expOutcome: lib.OutcomeApplied,
			expDoing:   []int64{200, 100},
		},

		"Dropping a task on an async board should move it.": {
			async:      true,
			start:      &lib.DragItem{Kind: lib.ItemTask, ID: 100, ContainerID: 10},
			over:       &lib.DropTarget{Kind: lib.TargetColumn, ID: 20, Index: lib.NoIndex},
			at:         lib.Point{X: 100},
			expOutcome: lib.OutcomeApplied,
			expDoing:   []int64{200, 100},
		},

		"A short drag should be ignored.": {
			start:      &lib.DragItem{Kind: lib.ItemTask, ID: 100, ContainerID: 10},
			over:       &lib.DropTarget{Kind: lib.TargetColumn, ID: 20, Index: lib.NoIndex},
			at:         lib.Point{X: 1},
			expOutcome: lib.OutcomeIgnored,
			expDoing:   []int64{200},
		},

		"A drop outside any target should be ignored.": {
			start:      &lib.DragItem{Kind: lib.ItemTask, ID: 100, ContainerID: 10},
			at:         lib.Point{X: 100},
			expOutcome: lib.OutcomeIgnored,
			expDoing:   []int64{200},
		},

		"A drop without drag should fail.": {
			over:  &lib.DropTarget{Kind: lib.TargetColumn, ID: 20, Index: lib.NoIndex},
			expIs: lib.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			client := newTestClient(t, "token")

			ib, err := client.OpenBoard(ctx, 1, &lib.InteractiveBoardOpts{Async: test.async})
			require.NoError(t, err)

			if test.start != nil {
				require.NoError(t, ib.StartDrag(*test.start, lib.Point{}))
			}

			res, err := ib.Drop(ctx, test.over, test.at)
			if test.expIs != nil {
				assert.ErrorIs(t, err, test.expIs)
				return
			}
			require.NoError(t, err)
			ib.Wait()

			assert.Equal(t, test.expOutcome, res.Outcome)
			assert.Equal(t, test.expDoing, taskIDs(ib.Board(), 20))

			// The server agrees with the local board once the calls end.
			require.NoError(t, ib.Refresh(ctx))
			assert.Equal(t, test.expDoing, taskIDs(ib.Board(), 20))
		})
	}
}
