package printer

import (
	"github.com/workly/workly/internal/board"
	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/session"
)

// Move is the printable result of a column or task move.
type Move struct {
	Outcome board.Outcome
	Reason  string
	Calls   []model.Call
	Report  board.Report
}

// CallStatus returns the dispatch status of each call of the move, calls not in the
// report were never sent.
func (m Move) CallStatus(c model.Call) (model.CallStatus, string) {
	for _, f := range m.Report.Failed {
		if f.Call == c {
			return model.CallStatusFailed, f.Err.Error()
		}
	}
	for _, s := range m.Report.Succeeded {
		if s == c {
			return model.CallStatusDone, ""
		}
	}
	return model.CallStatusPending, ""
}

// Printer knows how to print board information in different formats.
type Printer interface {
	PrintProjects(projects []model.Project) error
	PrintBoard(b model.Board) error
	PrintMove(m Move) error
	PrintJournal(calls []model.JournalCall) error
	PrintSession(s model.Session, token *session.TokenInfo, expired bool) error
	PrintColumn(c model.Column) error
	PrintTask(t model.Task) error
	PrintMessage(msg string) error
}
