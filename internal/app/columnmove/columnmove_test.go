package columnmove_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workly/workly/internal/app/columnmove"
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
		{ID: 10, Title: "A"}, {ID: 20, Title: "B"}, {ID: 30, Title: "C"},
	}}
}

func TestNewService(t *testing.T) {
	tests := map[string]struct {
		config columnmove.ServiceConfig
		expErr bool
	}{
		"valid config should create service": {
			config: columnmove.ServiceConfig{
				Remote:  &remotemock.MockAPI{},
				Session: session.Static("t"),
				Cache:   &storagemock.MockBoardRepository{},
				Journal: &storagemock.MockJournalRepository{},
			},
		},
		"missing remote should fail": {
			config: columnmove.ServiceConfig{
				Session: session.Static("t"),
				Cache:   &storagemock.MockBoardRepository{},
				Journal: &storagemock.MockJournalRepository{},
			},
			expErr: true,
		},
		"missing session should fail": {
			config: columnmove.ServiceConfig{
				Remote:  &remotemock.MockAPI{},
				Cache:   &storagemock.MockBoardRepository{},
				Journal: &storagemock.MockJournalRepository{},
			},
			expErr: true,
		},
		"missing journal should fail": {
			config: columnmove.ServiceConfig{
				Remote:  &remotemock.MockAPI{},
				Session: session.Static("t"),
				Cache:   &storagemock.MockBoardRepository{},
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			svc, err := columnmove.NewService(test.config)
			if test.expErr {
				require.Error(t, err)
				require.Nil(t, svc)
			} else {
				require.NoError(t, err)
				require.NotNil(t, svc)
			}
		})
	}
}

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		req        columnmove.Request
		expOutcome board.Outcome
		expOrder   []int64
		expCalls   int
		expErr     error
	}{
		"moving the last column first should reorder the board": {
			req:        columnmove.Request{ProjectID: 1, ColumnID: 30, Position: 0},
			expOutcome: board.OutcomeApplied,
			expOrder:   []int64{30, 10, 20},
			expCalls:   3,
		},
		"moving the first column last should reorder the board": {
			req:        columnmove.Request{ProjectID: 1, ColumnID: 10, Position: 2},
			expOutcome: board.OutcomeApplied,
			expOrder:   []int64{20, 30, 10},
			expCalls:   3,
		},
		"moving a column to its position should be ignored": {
			req:        columnmove.Request{ProjectID: 1, ColumnID: 20, Position: 1},
			expOutcome: board.OutcomeIgnored,
			expOrder:   []int64{10, 20, 30},
		},
		"a missing column should fail": {
			req:    columnmove.Request{ProjectID: 1, ColumnID: 99, Position: 0},
			expErr: model.ErrNotFound,
		},
		"a position out of range should fail": {
			req:    columnmove.Request{ProjectID: 1, ColumnID: 10, Position: 3},
			expErr: model.ErrNotValid,
		},
		"a missing project should fail": {
			req:    columnmove.Request{ProjectID: 2, ColumnID: 10, Position: 0},
			expErr: model.ErrNotFound,
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
			repo, err := memory.NewRepository(memory.RepositoryConfig{})
			require.NoError(err)

			svc, err := columnmove.NewService(columnmove.ServiceConfig{
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
			assert.True(res.Report.OK())
			assert.Len(res.Calls, test.expCalls)

			got, err := api.GetBoard(ctx, 1)
			require.NoError(err)
			order := []int64{}
			for _, c := range got.Columns {
				order = append(order, c.ID)
			}
			assert.Equal(test.expOrder, order)

			calls, err := repo.ListCalls(ctx, storage.ListCallsOpts{ProjectID: 1, Status: model.CallStatusDone})
			require.NoError(err)
			assert.Len(calls, test.expCalls)

			_, err = repo.GetBoard(ctx, 1)
			if test.expOutcome == board.OutcomeApplied {
				assert.NoError(err)
			} else {
				assert.ErrorIs(err, model.ErrNotFound)
			}
		})
	}
}
