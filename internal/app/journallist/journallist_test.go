package journallist_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workly/workly/internal/app/journallist"
	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/storage"
	"github.com/workly/workly/internal/storage/memory"
	"github.com/workly/workly/internal/storage/storagemock"
)

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		req         journallist.Request
		expTargets  []int64
		expStatuses []model.CallStatus
	}{
		"listing everything should return all the calls in order": {
			req:         journallist.Request{},
			expTargets:  []int64{10, 20, 100},
			expStatuses: []model.CallStatus{model.CallStatusDone, model.CallStatusFailed, model.CallStatusPending},
		},
		"listing by project should filter other projects": {
			req:         journallist.Request{ProjectID: 2},
			expTargets:  []int64{100},
			expStatuses: []model.CallStatus{model.CallStatusPending},
		},
		"listing by operation should filter other operations": {
			req:         journallist.Request{OperationID: "op1"},
			expTargets:  []int64{10, 20},
			expStatuses: []model.CallStatus{model.CallStatusDone, model.CallStatusFailed},
		},
		"listing only failed calls should return the divergences": {
			req:         journallist.Request{FailedOnly: true},
			expTargets:  []int64{20},
			expStatuses: []model.CallStatus{model.CallStatusFailed},
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
			require.NoError(repo.AddCalls(ctx, 2, "op2", []model.Call{
				{Kind: model.CallMoveTask, TargetID: 100, Value: 30},
			}))

			svc, err := journallist.NewService(journallist.ServiceConfig{Journal: repo, Logger: log.Noop})
			require.NoError(err)

			calls, err := svc.Run(ctx, test.req)
			require.NoError(err)

			var targets []int64
			var statuses []model.CallStatus
			for _, c := range calls {
				targets = append(targets, c.Call.TargetID)
				statuses = append(statuses, c.Status)
			}
			assert.Equal(test.expTargets, targets)
			assert.Equal(test.expStatuses, statuses)
		})
	}
}

func TestServiceRunError(t *testing.T) {
	m := &storagemock.MockJournalRepository{}
	m.On("ListCalls", context.Background(), storage.ListCallsOpts{Status: model.CallStatusFailed}).Once().Return(nil, errors.New("boom"))

	svc, err := journallist.NewService(journallist.ServiceConfig{Journal: m})
	require.NoError(t, err)

	_, err = svc.Run(context.Background(), journallist.Request{FailedOnly: true})
	assert.Error(t, err)
	m.AssertExpectations(t)
}
