package columnrename_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/workly/workly/internal/app/columnrename"
	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/remote/remotemock"
	"github.com/workly/workly/internal/storage/storagemock"
)

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		mock      func(r *remotemock.MockAPI, c *storagemock.MockBoardRepository)
		req       columnrename.Request
		expColumn *model.Column
		expErr    error
	}{
		"renaming a column should invalidate the cached board": {
			mock: func(r *remotemock.MockAPI, c *storagemock.MockBoardRepository) {
				r.On("RenameColumn", mock.Anything, int64(1), int64(10), "Doing").Once().Return(&model.Column{ID: 10, Title: "Doing"}, nil)
				c.On("DeleteBoard", mock.Anything, int64(1)).Once().Return(fmt.Errorf("x: %w", model.ErrNotFound))
			},
			req:       columnrename.Request{ProjectID: 1, ColumnID: 10, Title: "Doing"},
			expColumn: &model.Column{ID: 10, Title: "Doing"},
		},
		"a blank title should fail": {
			mock:   func(r *remotemock.MockAPI, c *storagemock.MockBoardRepository) {},
			req:    columnrename.Request{ProjectID: 1, ColumnID: 10},
			expErr: model.ErrNotValid,
		},
		"a missing column should fail": {
			mock: func(r *remotemock.MockAPI, c *storagemock.MockBoardRepository) {
				r.On("RenameColumn", mock.Anything, int64(1), int64(99), "Doing").Once().Return(nil, fmt.Errorf("x: %w", model.ErrNotFound))
			},
			req:    columnrename.Request{ProjectID: 1, ColumnID: 99, Title: "Doing"},
			expErr: model.ErrNotFound,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			r := &remotemock.MockAPI{}
			c := &storagemock.MockBoardRepository{}
			test.mock(r, c)

			svc, err := columnrename.NewService(columnrename.ServiceConfig{Remote: r, Cache: c, Logger: log.Noop})
			require.NoError(err)

			col, err := svc.Run(context.Background(), test.req)
			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
			} else if assert.NoError(err) {
				assert.Equal(test.expColumn, col)
			}

			r.AssertExpectations(t)
			c.AssertExpectations(t)
		})
	}
}
