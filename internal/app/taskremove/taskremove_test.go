package taskremove_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/workly/workly/internal/app/taskremove"
	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/remote/remotemock"
	"github.com/workly/workly/internal/storage/storagemock"
)

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		mock   func(r *remotemock.MockAPI, c *storagemock.MockBoardRepository)
		req    taskremove.Request
		expErr error
	}{
		"removing a task should invalidate the cached board": {
			mock: func(r *remotemock.MockAPI, c *storagemock.MockBoardRepository) {
				r.On("DeleteTask", mock.Anything, int64(100)).Once().Return(nil)
				c.On("DeleteBoard", mock.Anything, int64(1)).Once().Return(fmt.Errorf("x: %w", model.ErrNotFound))
			},
			req: taskremove.Request{ProjectID: 1, TaskID: 100},
		},
		"a missing task id should fail": {
			mock:   func(r *remotemock.MockAPI, c *storagemock.MockBoardRepository) {},
			req:    taskremove.Request{ProjectID: 1},
			expErr: model.ErrNotValid,
		},
		"a missing task should fail": {
			mock: func(r *remotemock.MockAPI, c *storagemock.MockBoardRepository) {
				r.On("DeleteTask", mock.Anything, int64(100)).Once().Return(fmt.Errorf("x: %w", model.ErrNotFound))
			},
			req:    taskremove.Request{ProjectID: 1, TaskID: 100},
			expErr: model.ErrNotFound,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			r := &remotemock.MockAPI{}
			c := &storagemock.MockBoardRepository{}
			test.mock(r, c)

			svc, err := taskremove.NewService(taskremove.ServiceConfig{Remote: r, Cache: c, Logger: log.Noop})
			require.NoError(err)

			err = svc.Run(context.Background(), test.req)
			if test.expErr != nil {
				assert.ErrorIs(t, err, test.expErr)
			} else {
				assert.NoError(t, err)
			}

			r.AssertExpectations(t)
			c.AssertExpectations(t)
		})
	}
}
