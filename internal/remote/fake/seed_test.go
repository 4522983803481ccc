package fake_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/remote/fake"
)

func TestLoadSeed(t *testing.T) {
	tests := map[string]struct {
		seed   string
		expErr bool
	}{
		"The demo seed should load.": {
			seed: fake.DemoSeed,
		},
		"An invalid YAML should fail.": {
			seed:   "projects: [",
			expErr: true,
		},
		"An invalid due date should fail.": {
			seed: `
projects:
  - id: 1
    columns:
      - id: 10
        tasks:
          - {id: 100, dueDate: "tomorrow"}
`,
			expErr: true,
		},
		"Duplicated column IDs should fail.": {
			seed: `
projects:
  - id: 1
    columns:
      - {id: 10}
      - {id: 10}
`,
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			api, err := fake.NewAPI(fake.APIConfig{})
			require.NoError(t, err)

			f, err := fake.LoadSeed([]byte(test.seed))
			if err == nil {
				err = f.Load(api)
			}
			if test.expErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDemoSeed(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	ctx := context.Background()

	api, err := fake.NewAPI(fake.APIConfig{})
	require.NoError(err)
	f, err := fake.LoadSeed([]byte(fake.DemoSeed))
	require.NoError(err)
	require.NoError(f.Load(api))

	projects, err := api.ListProjects(ctx)
	require.NoError(err)
	require.Len(projects, 2)
	assert.True(projects[0].Favorite)
	assert.False(projects[1].Favorite)

	b, err := api.GetBoard(ctx, 1)
	require.NoError(err)
	require.Len(b.Columns, 3)
	assert.Equal([]int64{10, 20, 30}, []int64{b.Columns[0].ID, b.Columns[1].ID, b.Columns[2].ID})

	t1 := b.Columns[0].Tasks[0]
	require.NotNil(t1.DueDate)
	assert.Equal(time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC), *t1.DueDate)
	assert.Equal(&model.Assignee{ID: 7, Email: "ana@workly.dev"}, t1.Assignee)
	assert.Len(b.Columns[0].Tasks[1].Subtasks, 2)

	// New IDs don't collide with the seeded ones.
	c, err := api.CreateColumn(ctx, 2, "Later")
	require.NoError(err)
	assert.Greater(c.ID, int64(200))
}
