package journalclear_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/workly/workly/internal/app/journalclear"
	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/storage"
	"github.com/workly/workly/internal/storage/memory"
	"github.com/workly/workly/internal/storage/storagemock"
)

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		req         journalclear.Request
		expProgress *model.CallProgress
		expLeft     int
		expErr      error
	}{
		"clearing a finished operation should remove its calls": {
			req:         journalclear.Request{OperationID: "op1"},
			expProgress: &model.CallProgress{Total: 2, Done: 1, Failed: 1},
			expLeft:     1,
		},
		"clearing an operation with pending calls should fail": {
			req:     journalclear.Request{OperationID: "op2"},
			expLeft: 3,
			expErr:  model.ErrNotValid,
		},
		"forcing the clear of an operation with pending calls should remove its calls": {
			req:         journalclear.Request{OperationID: "op2", Force: true},
			expProgress: &model.CallProgress{Total: 1},
			expLeft:     2,
		},
		"clearing a missing operation should fail": {
			req:     journalclear.Request{OperationID: "op3"},
			expLeft: 3,
			expErr:  model.ErrNotFound,
		},
		"clearing without operation should fail": {
			req:     journalclear.Request{OperationID: " "},
			expLeft: 3,
			expErr:  model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)
			ctx := context.Background()

			repo, err := memory.NewRepository(memory.RepositoryConfig{})
			require.NoError(err)
			require.NoError(repo.AddCalls(ctx, 1, "op1", []model.Call{
				{Kind: model.CallColumnPosition, TargetID: 10, Value: 0},
				{Kind: model.CallColumnPosition, TargetID: 20, Value: 1},
			}))
			c, err := repo.NextCall(ctx, "op1")
			require.NoError(err)
			require.NoError(repo.CompleteCall(ctx, c.ID))
			c, err = repo.NextCall(ctx, "op1")
			require.NoError(err)
			require.NoError(repo.FailCall(ctx, c.ID, errors.New("boom")))
			require.NoError(repo.AddCalls(ctx, 1, "op2", []model.Call{
				{Kind: model.CallMoveTask, TargetID: 100, Value: 20},
			}))

			svc, err := journalclear.NewService(journalclear.ServiceConfig{Journal: repo, Logger: log.Noop})
			require.NoError(err)

			p, err := svc.Run(ctx, test.req)
			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
			} else if assert.NoError(err) {
				assert.Equal(test.expProgress, p)
			}

			left, err := repo.ListCalls(ctx, storage.ListCallsOpts{})
			require.NoError(err)
			assert.Len(left, test.expLeft)
		})
	}
}

func TestServiceRunJournalError(t *testing.T) {
	journal := &storagemock.MockJournalRepository{}
	journal.On("Progress", mock.Anything, "op1").Once().Return(&model.CallProgress{Total: 1, Done: 1}, nil)
	journal.On("ClearOperation", mock.Anything, "op1").Once().Return(errors.New("disk full"))

	svc, err := journalclear.NewService(journalclear.ServiceConfig{Journal: journal})
	require.NoError(t, err)

	_, err = svc.Run(context.Background(), journalclear.Request{OperationID: "op1"})
	assert.Error(t, err)
	journal.AssertExpectations(t)
}
