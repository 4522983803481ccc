package taskmove_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workly/workly/internal/app/taskmove"
	"github.com/workly/workly/internal/board"
	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/remote/fake"
	"github.com/workly/workly/internal/remote/remotemock"
	"github.com/workly/workly/internal/session"
	"github.com/workly/workly/internal/storage"
	"github.com/workly/workly/internal/storage/memory"
	"github.com/workly/workly/internal/storage/storagemock"
)

func seed() model.Board {
	return model.Board{ProjectID: 1, Title: "P", Columns: []model.Column{
		{ID: 10, Title: "A", Tasks: []model.Task{{ID: 100, Title: "t1"}, {ID: 101, Title: "t2"}, {ID: 102, Title: "t3"}}},
		{ID: 20, Title: "B", Tasks: []model.Task{{ID: 200, Title: "t4"}}},
	}}
}

func intPtr(i int) *int { return &i }

func taskOrder(b model.Board) map[int64][]int64 {
	out := map[int64][]int64{}
	for _, c := range b.Columns {
		out[c.ID] = []int64{}
		for _, t := range c.Tasks {
			out[c.ID] = append(out[c.ID], t.ID)
		}
	}
	return out
}

func TestNewService(t *testing.T) {
	_, err := taskmove.NewService(taskmove.ServiceConfig{})
	assert.Error(t, err)

	svc, err := taskmove.NewService(taskmove.ServiceConfig{
		Remote:  &remotemock.MockAPI{},
		Session: session.Static("t"),
		Cache:   &storagemock.MockBoardRepository{},
		Journal: &storagemock.MockJournalRepository{},
	})
	assert.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		req        taskmove.Request
		failOn     int64
		expOutcome board.Outcome
		expOrder   map[int64][]int64
		expFailed  int
		expErr     error
	}{
		"moving a task to another column should append it": {
			req:        taskmove.Request{ProjectID: 1, TaskID: 100, ColumnID: 20},
			expOutcome: board.OutcomeApplied,
			expOrder:   map[int64][]int64{10: {101, 102}, 20: {200, 100}},
		},
		"moving a task to another column at an index should insert it there": {
			req:        taskmove.Request{ProjectID: 1, TaskID: 102, ColumnID: 20, Index: intPtr(0)},
			expOutcome: board.OutcomeApplied,
			expOrder:   map[int64][]int64{10: {100, 101}, 20: {102, 200}},
		},
		"moving a task inside its column should append it": {
			req:        taskmove.Request{ProjectID: 1, TaskID: 100},
			expOutcome: board.OutcomeApplied,
			expOrder:   map[int64][]int64{10: {101, 102, 100}, 20: {200}},
		},
		"moving a task inside its column at an index should reorder it": {
			req:        taskmove.Request{ProjectID: 1, TaskID: 102, ColumnID: 10, Index: intPtr(0)},
			expOutcome: board.OutcomeApplied,
			expOrder:   map[int64][]int64{10: {102, 100, 101}, 20: {200}},
		},
		"moving a task to its own index should be ignored": {
			req:        taskmove.Request{ProjectID: 1, TaskID: 101, Index: intPtr(1)},
			expOutcome: board.OutcomeIgnored,
			expOrder:   map[int64][]int64{10: {100, 101, 102}, 20: {200}},
		},
		"a failed call should be reported without stopping the move": {
			req:        taskmove.Request{ProjectID: 1, TaskID: 100, ColumnID: 20},
			failOn:     200,
			expOutcome: board.OutcomeApplied,
			expFailed:  1,
			expOrder:   map[int64][]int64{10: {101, 102}, 20: {200, 100}},
		},
		"a missing task should fail": {
			req:    taskmove.Request{ProjectID: 1, TaskID: 999, ColumnID: 20},
			expErr: model.ErrNotFound,
		},
		"a missing destination column should fail": {
			req:    taskmove.Request{ProjectID: 1, TaskID: 100, ColumnID: 99},
			expErr: model.ErrNotFound,
		},
		"a negative index should fail": {
			req:    taskmove.Request{ProjectID: 1, TaskID: 100, Index: intPtr(-1)},
			expErr: model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)
			ctx := context.Background()

			api, err := fake.NewAPI(fake.APIConfig{})
			require.NoError(err)
			require.NoError(api.Seed(seed()))
			if test.failOn != 0 {
				api.SetFailFunc(func(op string, id int64) error {
					if id == test.failOn {
						return fmt.Errorf("injected")
					}
					return nil
				})
			}
			repo, err := memory.NewRepository(memory.RepositoryConfig{})
			require.NoError(err)

			svc, err := taskmove.NewService(taskmove.ServiceConfig{
				Remote:  api,
				Session: session.Static("token"),
				Cache:   repo,
				Journal: repo,
				Logger:  log.Noop,
			})
			require.NoError(err)

			res, err := svc.Run(ctx, test.req)
			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
				return
			}
			require.NoError(err)

			assert.Equal(test.expOutcome, res.Outcome)
			assert.Len(res.Report.Failed, test.expFailed)

			got, err := api.GetBoard(ctx, 1)
			require.NoError(err)
			assert.Equal(test.expOrder, taskOrder(*got))

			failed, err := repo.ListCalls(ctx, storage.ListCallsOpts{Status: model.CallStatusFailed})
			require.NoError(err)
			assert.Len(failed, test.expFailed)
		})
	}
}
