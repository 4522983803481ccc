package printer_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workly/workly/internal/board"
	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/printer"
	"github.com/workly/workly/internal/session"
)

func boardFixture() model.Board {
	due := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	return model.Board{
		ProjectID: 1,
		Title:     "Roadmap",
		Columns: []model.Column{
			{ID: 10, Title: "Todo", Tasks: []model.Task{
				{ID: 100, Title: "Write docs", DueDate: &due, Assignee: &model.Assignee{ID: 7, Email: "ana@workly.dev"},
					Subtasks: []model.Subtask{{ID: 1, Completed: true}, {ID: 2}}},
			}},
			{ID: 20, Title: "Done", Position: 1},
		},
	}
}

func moveFixture() printer.Move {
	c1 := model.Call{Kind: model.CallMoveTask, TargetID: 100, Value: 20}
	c2 := model.Call{Kind: model.CallTaskPosition, TargetID: 100, Value: 0}
	c3 := model.Call{Kind: model.CallTaskPosition, TargetID: 200, Value: 1}
	return printer.Move{
		Outcome: board.OutcomeApplied,
		Calls:   []model.Call{c1, c2, c3},
		Report: board.Report{
			OperationID: "01OP",
			Succeeded:   []model.Call{c1},
			Failed:      []board.CallFailure{{Call: c2, Err: errors.New("boom")}},
		},
	}
}

func TestTablePrinterPrintBoard(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	require.NoError(t, p.PrintBoard(boardFixture()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Project:  Roadmap (1)", lines[0])
	assert.Equal(t, "Synced:   -", lines[1])
	assert.Contains(t, lines[3], "COLUMN")
	assert.Equal(t, []string{"Todo", "10", "0", "100", "Write", "docs", "no", "2026-04-10", "ana@workly.dev", "1/2"}, strings.Fields(lines[4]))
	assert.Equal(t, []string{"Done", "20", "-", "-", "-", "-", "-", "-", "-"}, strings.Fields(lines[5]))
}

func TestTablePrinterPrintMove(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	require.NoError(t, p.PrintMove(moveFixture()))

	out := buf.String()
	assert.Contains(t, out, "Outcome:    applied")
	assert.Contains(t, out, "Operation:  01OP")
	assert.Regexp(t, `POST /tasks/100/move/20\s+done\s+-`, out)
	assert.Regexp(t, `PATCH /tasks/100/position\?position=0\s+failed\s+boom`, out)
	assert.Regexp(t, `PATCH /tasks/200/position\?position=1\s+pending\s+-`, out)
}

func TestTablePrinterPrintMoveIgnored(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	require.NoError(t, p.PrintMove(printer.Move{Outcome: board.OutcomeIgnored, Reason: "no drop target"}))
	assert.Equal(t, "Outcome:    ignored\nReason:     no drop target\n", buf.String())
}

func TestTablePrinterPrintSession(t *testing.T) {
	exp := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		token   *session.TokenInfo
		expired bool
		expOut  []string
	}{
		"An opaque token should only be marked as opaque.": {
			expOut: []string{"Token:        opaque"},
		},
		"A JWT should show its claims.": {
			token:   &session.TokenInfo{Subject: "7", ExpiresAt: &exp},
			expired: true,
			expOut:  []string{"Token:        jwt", "Subject:      7", "Expires:      2026-05-01 00:00:00 UTC", "Expired:      yes"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			p := printer.NewTablePrinter(&buf)

			s := model.Session{UserID: 7, Email: "ana@workly.dev", Token: "secret"}
			require.NoError(t, p.PrintSession(s, test.token, test.expired))

			out := buf.String()
			assert.NotContains(t, out, "secret")
			for _, exp := range test.expOut {
				assert.Contains(t, out, exp)
			}
		})
	}
}

func TestTablePrinterEmptyLists(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	require.NoError(t, p.PrintProjects(nil))
	require.NoError(t, p.PrintJournal(nil))
	assert.Empty(t, buf.String())
}

func TestJSONPrinterPrintBoard(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	require.NoError(t, p.PrintBoard(boardFixture()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	cols := got["columns"].([]any)
	require.Len(t, cols, 2)
	task := cols[0].(map[string]any)["tasks"].([]any)[0].(map[string]any)
	assert.Equal(t, "2026-04-10", task["due_date"])
	assert.Equal(t, "ana@workly.dev", task["assignee"].(map[string]any)["email"])
	assert.Empty(t, cols[1].(map[string]any)["tasks"])
	assert.NotContains(t, got, "synced_at")
}

func TestJSONPrinterPrintMove(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	require.NoError(t, p.PrintMove(moveFixture()))

	out := buf.String()
	assert.Contains(t, out, `"outcome": "applied"`)
	assert.Contains(t, out, `"operation_id": "01OP"`)
	assert.Contains(t, out, `"status": "failed"`)
	assert.Contains(t, out, `"error": "boom"`)
	assert.Contains(t, out, `"status": "pending"`)
}

func TestTablePrinterPrintMessage(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintMessage("ok")
	require.NoError(t, err)
	assert.Equal(t, "ok", strings.TrimSpace(buf.String()))
}
