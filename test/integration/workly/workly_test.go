package workly_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intworkly "github.com/workly/workly/test/integration/workly"
)

// boardOutput matches the JSON output of `workly board show --format json`.
type boardOutput struct {
	ProjectID int64 `json:"project_id"`
	Columns   []struct {
		ID    int64 `json:"id"`
		Tasks []struct {
			ID int64 `json:"id"`
		} `json:"tasks"`
	} `json:"columns"`
}

// moveOutput matches the JSON output of the move commands.
type moveOutput struct {
	Outcome     string `json:"outcome"`
	OperationID string `json:"operation_id"`
	Calls       []struct {
		Kind   string `json:"kind"`
		Status string `json:"status"`
	} `json:"calls"`
}

// journalItem matches the JSON output of `workly journal list --format json`.
type journalItem struct {
	OperationID string `json:"operation_id"`
	Sequence    int    `json:"sequence"`
	Call        struct {
		Status string `json:"status"`
	} `json:"call"`
}

func parseBoard(t *testing.T, data []byte) boardOutput {
	t.Helper()
	var b boardOutput
	require.NoError(t, json.Unmarshal(data, &b))
	return b
}

func parseMove(t *testing.T, data []byte) moveOutput {
	t.Helper()
	var m moveOutput
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func columnIDs(b boardOutput) []int64 {
	ids := []int64{}
	for _, c := range b.Columns {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestIntegrationColumnMove(t *testing.T) {
	tests := map[string]struct {
		token      string
		columnID   int64
		position   int
		expOutcome string
		expColumns []int64
		expCalls   int
	}{
		"Moving the last column first should reorder the server board.": {
			token:      "integration-token",
			columnID:   30,
			position:   0,
			expOutcome: "applied",
			expColumns: []int64{30, 10, 20},
			expCalls:   3,
		},

		"Moving a column to its own position should not call the server.": {
			token:      "integration-token",
			columnID:   10,
			position:   0,
			expOutcome: "ignored",
			expColumns: []int64{10, 20, 30},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			config := intworkly.NewConfig(t)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			stdout, stderr, err := intworkly.RunColumnMove(ctx, config, test.token, 1, test.columnID, test.position)
			require.NoError(t, err, "stderr: %s", stderr)

			m := parseMove(t, stdout)
			assert.Equal(t, test.expOutcome, m.Outcome)
			assert.Len(t, m.Calls, test.expCalls)
			for _, c := range m.Calls {
				assert.Equal(t, "column_position", c.Kind)
				assert.Equal(t, "done", c.Status)
			}

			stdout, stderr, err = intworkly.RunBoardShow(ctx, config, 1, false)
			require.NoError(t, err, "stderr: %s", stderr)
			assert.Equal(t, test.expColumns, columnIDs(parseBoard(t, stdout)))
		})
	}
}

func TestIntegrationMoveCallsAreJournaled(t *testing.T) {
	config := intworkly.NewConfig(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stdout, stderr, err := intworkly.RunColumnMove(ctx, config, "integration-token", 1, 30, 0)
	require.NoError(t, err, "stderr: %s", stderr)
	m := parseMove(t, stdout)
	require.NotEmpty(t, m.OperationID)

	stdout, stderr, err = intworkly.RunJournalList(ctx, config, m.OperationID)
	require.NoError(t, err, "stderr: %s", stderr)

	var items []journalItem
	require.NoError(t, json.Unmarshal(stdout, &items))
	require.Len(t, items, 3)
	for i, it := range items {
		assert.Equal(t, m.OperationID, it.OperationID)
		assert.Equal(t, i+1, it.Sequence)
		assert.Equal(t, "done", it.Call.Status)
	}
}

func TestIntegrationWrongTokenFails(t *testing.T) {
	config := intworkly.NewConfig(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// The board can't be loaded so nothing is moved.
	_, _, err := intworkly.RunColumnMove(ctx, config, "wrong-token", 1, 30, 0)
	require.Error(t, err)

	stdout, stderr, err := intworkly.RunBoardShow(ctx, config, 1, false)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Equal(t, []int64{10, 20, 30}, columnIDs(parseBoard(t, stdout)))
}

func TestIntegrationTaskMoveAndOfflineBoard(t *testing.T) {
	config := intworkly.NewConfig(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stdout, stderr, err := intworkly.RunTaskMove(ctx, config, 1, 100, 20, 0)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Equal(t, "applied", parseMove(t, stdout).Outcome)

	// The move cached the board, offline reads it without the server.
	stdout, stderr, err = intworkly.RunBoardShow(ctx, config, 1, true)
	require.NoError(t, err, "stderr: %s", stderr)

	b := parseBoard(t, stdout)
	require.Len(t, b.Columns, 3)
	doing := []int64{}
	for _, tk := range b.Columns[1].Tasks {
		doing = append(doing, tk.ID)
	}
	assert.Equal(t, []int64{100, 200}, doing)
}
