package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/session"
)

// JSONPrinter prints board information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

var _ Printer = &JSONPrinter{}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

type projectOutput struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Favorite bool   `json:"favorite"`
	Owner    bool   `json:"owner"`
}

type boardOutput struct {
	ProjectID int64          `json:"project_id"`
	Title     string         `json:"title"`
	SyncedAt  *time.Time     `json:"synced_at,omitempty"`
	Columns   []columnOutput `json:"columns"`
}

type columnOutput struct {
	ID       int64        `json:"id"`
	Title    string       `json:"title"`
	Position int          `json:"position"`
	Tasks    []taskOutput `json:"tasks"`
}

type taskOutput struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Position    int             `json:"position"`
	Completed   bool            `json:"completed"`
	DueDate     string          `json:"due_date,omitempty"`
	Assignee    *assigneeOutput `json:"assignee,omitempty"`
	Subtasks    []subtaskOutput `json:"subtasks,omitempty"`
}

type assigneeOutput struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type subtaskOutput struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type callOutput struct {
	Kind     string `json:"kind"`
	TargetID int64  `json:"target_id"`
	Value    int64  `json:"value"`
	Status   string `json:"status,omitempty"`
	Error    string `json:"error,omitempty"`
}

type moveOutput struct {
	Outcome     string       `json:"outcome"`
	Reason      string       `json:"reason,omitempty"`
	OperationID string       `json:"operation_id,omitempty"`
	Calls       []callOutput `json:"calls"`
}

type journalOutput struct {
	ID          string     `json:"id"`
	OperationID string     `json:"operation_id"`
	Sequence    int        `json:"sequence"`
	ProjectID   int64      `json:"project_id"`
	Call        callOutput `json:"call"`
	CreatedAt   time.Time  `json:"created_at"`
}

type sessionOutput struct {
	UserID      int64      `json:"user_id"`
	Email       string     `json:"email"`
	Authorities []string   `json:"authorities,omitempty"`
	JWT         bool       `json:"jwt"`
	Subject     string     `json:"subject,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Expired     bool       `json:"expired"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func mapCall(c model.Call) callOutput {
	return callOutput{Kind: string(c.Kind), TargetID: c.TargetID, Value: c.Value}
}

func mapColumn(c model.Column) columnOutput {
	out := columnOutput{ID: c.ID, Title: c.Title, Position: c.Position, Tasks: make([]taskOutput, 0, len(c.Tasks))}
	for _, t := range c.Tasks {
		out.Tasks = append(out.Tasks, mapTask(t))
	}
	return out
}

func mapTask(t model.Task) taskOutput {
	out := taskOutput{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Position:    t.Position,
		Completed:   t.Completed,
	}
	if t.DueDate != nil {
		out.DueDate = FormatDate(t.DueDate)
	}
	if t.Assignee != nil {
		out.Assignee = &assigneeOutput{ID: t.Assignee.ID, Email: t.Assignee.Email}
	}
	for _, s := range t.Subtasks {
		out.Subtasks = append(out.Subtasks, subtaskOutput{ID: s.ID, Title: s.Title, Completed: s.Completed})
	}
	return out
}

// PrintProjects prints projects in JSON format.
func (j *JSONPrinter) PrintProjects(projects []model.Project) error {
	items := make([]projectOutput, len(projects))
	for i, p := range projects {
		items[i] = projectOutput{ID: p.ID, Title: p.Title, Favorite: p.Favorite, Owner: p.Owner}
	}
	return j.encode(items)
}

// PrintBoard prints the board in JSON format.
func (j *JSONPrinter) PrintBoard(b model.Board) error {
	out := boardOutput{ProjectID: b.ProjectID, Title: b.Title, Columns: make([]columnOutput, 0, len(b.Columns))}
	if !b.SyncedAt.IsZero() {
		s := b.SyncedAt.UTC()
		out.SyncedAt = &s
	}
	for _, c := range b.Columns {
		out.Columns = append(out.Columns, mapColumn(c))
	}
	return j.encode(out)
}

// PrintMove prints the move outcome in JSON format.
func (j *JSONPrinter) PrintMove(m Move) error {
	out := moveOutput{
		Outcome:     string(m.Outcome),
		Reason:      m.Reason,
		OperationID: m.Report.OperationID,
		Calls:       make([]callOutput, 0, len(m.Calls)),
	}
	for _, c := range m.Calls {
		co := mapCall(c)
		status, errMsg := m.CallStatus(c)
		co.Status, co.Error = string(status), errMsg
		out.Calls = append(out.Calls, co)
	}
	return j.encode(out)
}

// PrintJournal prints journaled calls in JSON format.
func (j *JSONPrinter) PrintJournal(calls []model.JournalCall) error {
	items := make([]journalOutput, len(calls))
	for i, c := range calls {
		co := mapCall(c.Call)
		co.Status, co.Error = string(c.Status), c.Error
		items[i] = journalOutput{
			ID:          c.ID,
			OperationID: c.OperationID,
			Sequence:    c.Sequence,
			ProjectID:   c.ProjectID,
			Call:        co,
			CreatedAt:   c.CreatedAt.UTC(),
		}
	}
	return j.encode(items)
}

// PrintSession prints the session without its token in JSON format.
func (j *JSONPrinter) PrintSession(s model.Session, token *session.TokenInfo, expired bool) error {
	out := sessionOutput{
		UserID:      s.UserID,
		Email:       s.Email,
		Authorities: s.Authorities,
		Expired:     expired,
	}
	if token != nil {
		out.JWT = true
		out.Subject = token.Subject
		out.ExpiresAt = token.ExpiresAt
	}
	return j.encode(out)
}

// PrintColumn prints a single column in JSON format.
func (j *JSONPrinter) PrintColumn(c model.Column) error {
	return j.encode(mapColumn(c))
}

// PrintTask prints a single task in JSON format.
func (j *JSONPrinter) PrintTask(t model.Task) error {
	return j.encode(mapTask(t))
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}
