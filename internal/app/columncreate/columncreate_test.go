package columncreate_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/workly/workly/internal/app/columncreate"
	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/remote/remotemock"
	"github.com/workly/workly/internal/storage/storagemock"
)

func TestNewService(t *testing.T) {
	tests := map[string]struct {
		config columncreate.ServiceConfig
		expErr bool
	}{
		"valid config should create service": {
			config: columncreate.ServiceConfig{
				Remote: &remotemock.MockAPI{},
				Cache:  &storagemock.MockBoardRepository{},
			},
		},
		"missing remote should fail": {
			config: columncreate.ServiceConfig{Cache: &storagemock.MockBoardRepository{}},
			expErr: true,
		},
		"missing cache should fail": {
			config: columncreate.ServiceConfig{Remote: &remotemock.MockAPI{}},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			svc, err := columncreate.NewService(test.config)
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
		mock      func(r *remotemock.MockAPI, c *storagemock.MockBoardRepository)
		req       columncreate.Request
		expColumn *model.Column
		expErr    error
	}{
		"creating a column should invalidate the cached board": {
			mock: func(r *remotemock.MockAPI, c *storagemock.MockBoardRepository) {
				r.On("CreateColumn", mock.Anything, int64(1), "Review").Once().Return(&model.Column{ID: 40, Title: "Review", Position: 3}, nil)
				c.On("DeleteBoard", mock.Anything, int64(1)).Once().Return(nil)
			},
			req:       columncreate.Request{ProjectID: 1, Title: "  Review "},
			expColumn: &model.Column{ID: 40, Title: "Review", Position: 3},
		},
		"a missing cached board should not fail": {
			mock: func(r *remotemock.MockAPI, c *storagemock.MockBoardRepository) {
				r.On("CreateColumn", mock.Anything, int64(1), "Review").Once().Return(&model.Column{ID: 40, Title: "Review"}, nil)
				c.On("DeleteBoard", mock.Anything, int64(1)).Once().Return(fmt.Errorf("nope: %w", model.ErrNotFound))
			},
			req:       columncreate.Request{ProjectID: 1, Title: "Review"},
			expColumn: &model.Column{ID: 40, Title: "Review"},
		},
		"a cache error should not fail": {
			mock: func(r *remotemock.MockAPI, c *storagemock.MockBoardRepository) {
				r.On("CreateColumn", mock.Anything, int64(1), "Review").Once().Return(&model.Column{ID: 40, Title: "Review"}, nil)
				c.On("DeleteBoard", mock.Anything, int64(1)).Once().Return(fmt.Errorf("disk full"))
			},
			req:       columncreate.Request{ProjectID: 1, Title: "Review"},
			expColumn: &model.Column{ID: 40, Title: "Review"},
		},
		"a blank title should fail": {
			mock:   func(r *remotemock.MockAPI, c *storagemock.MockBoardRepository) {},
			req:    columncreate.Request{ProjectID: 1, Title: "   "},
			expErr: model.ErrNotValid,
		},
		"a missing project should fail": {
			mock:   func(r *remotemock.MockAPI, c *storagemock.MockBoardRepository) {},
			req:    columncreate.Request{Title: "Review"},
			expErr: model.ErrNotValid,
		},
		"a remote error should fail": {
			mock: func(r *remotemock.MockAPI, c *storagemock.MockBoardRepository) {
				r.On("CreateColumn", mock.Anything, int64(1), "Review").Once().Return(nil, fmt.Errorf("boom: %w", model.ErrRemote))
			},
			req:    columncreate.Request{ProjectID: 1, Title: "Review"},
			expErr: model.ErrRemote,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			r := &remotemock.MockAPI{}
			c := &storagemock.MockBoardRepository{}
			test.mock(r, c)

			svc, err := columncreate.NewService(columncreate.ServiceConfig{Remote: r, Cache: c, Logger: log.Noop})
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
