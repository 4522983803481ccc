package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/session"
)

// TablePrinter prints board information in a table format.
type TablePrinter struct {
	writer io.Writer
}

var _ Printer = &TablePrinter{}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// PrintProjects prints projects in a table format.
func (t *TablePrinter) PrintProjects(projects []model.Project) error {
	if len(projects) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tTITLE\tFAVORITE\tOWNER")
	for _, p := range projects {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Title, yesNo(p.Favorite), yesNo(p.Owner))
	}

	return nil
}

// PrintBoard prints one row per task, grouped by column in board order.
func (t *TablePrinter) PrintBoard(b model.Board) error {
	fmt.Fprintf(t.writer, "Project:  %s (%d)\n", b.Title, b.ProjectID)
	fmt.Fprintf(t.writer, "Synced:   %s\n\n", TimeAgo(b.SyncedAt))

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "COLUMN\tCOLUMN ID\tPOS\tTASK ID\tTITLE\tDONE\tDUE\tASSIGNEE\tSUBTASKS")
	for _, c := range b.Columns {
		if len(c.Tasks) == 0 {
			fmt.Fprintf(tw, "%s\t%d\t-\t-\t-\t-\t-\t-\t-\n", c.Title, c.ID)
			continue
		}
		for _, task := range c.Tasks {
			assignee := "-"
			if task.Assignee != nil {
				assignee = task.Assignee.Email
			}
			done := 0
			for _, s := range task.Subtasks {
				if s.Completed {
					done++
				}
			}
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t%s\t%s\t%s\t%d/%d\n",
				c.Title, c.ID, task.Position, task.ID, task.Title,
				yesNo(task.Completed), FormatDate(task.DueDate), assignee,
				done, len(task.Subtasks),
			)
		}
	}

	return nil
}

// PrintMove prints the outcome of a move and the remote calls it dispatched.
func (t *TablePrinter) PrintMove(m Move) error {
	fmt.Fprintf(t.writer, "Outcome:    %s\n", m.Outcome)
	if m.Reason != "" {
		fmt.Fprintf(t.writer, "Reason:     %s\n", m.Reason)
	}
	if m.Report.OperationID != "" {
		fmt.Fprintf(t.writer, "Operation:  %s\n", m.Report.OperationID)
	}
	if len(m.Calls) == 0 {
		return nil
	}

	fmt.Fprintln(t.writer)
	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "CALL\tSTATUS\tERROR")
	for _, c := range m.Calls {
		status, errMsg := m.CallStatus(c)
		if errMsg == "" {
			errMsg = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c, status, errMsg)
	}

	return nil
}

// PrintJournal prints journaled calls in a table format.
func (t *TablePrinter) PrintJournal(calls []model.JournalCall) error {
	if len(calls) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "OPERATION\tSEQ\tPROJECT\tCALL\tSTATUS\tERROR\tCREATED")
	for _, c := range calls {
		errMsg := c.Error
		if errMsg == "" {
			errMsg = "-"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\t%s\n",
			c.OperationID, c.Sequence, c.ProjectID, c.Call, c.Status, errMsg, TimeAgo(c.CreatedAt))
	}

	return nil
}

// PrintSession prints the session without its token.
func (t *TablePrinter) PrintSession(s model.Session, token *session.TokenInfo, expired bool) error {
	fmt.Fprintf(t.writer, "User:         %d\n", s.UserID)
	fmt.Fprintf(t.writer, "Email:        %s\n", s.Email)
	if len(s.Authorities) > 0 {
		fmt.Fprintf(t.writer, "Authorities:  %v\n", s.Authorities)
	}

	if token == nil {
		fmt.Fprintln(t.writer, "Token:        opaque")
		return nil
	}

	fmt.Fprintln(t.writer, "Token:        jwt")
	if token.Subject != "" {
		fmt.Fprintf(t.writer, "Subject:      %s\n", token.Subject)
	}
	if token.ExpiresAt != nil {
		fmt.Fprintf(t.writer, "Expires:      %s\n", FormatTimestamp(*token.ExpiresAt))
	}
	fmt.Fprintf(t.writer, "Expired:      %s\n", yesNo(expired))

	return nil
}

// PrintColumn prints a single column.
func (t *TablePrinter) PrintColumn(c model.Column) error {
	fmt.Fprintf(t.writer, "ID:        %d\n", c.ID)
	fmt.Fprintf(t.writer, "Title:     %s\n", c.Title)
	fmt.Fprintf(t.writer, "Position:  %d\n", c.Position)
	return nil
}

// PrintTask prints a single task.
func (t *TablePrinter) PrintTask(task model.Task) error {
	fmt.Fprintf(t.writer, "ID:        %d\n", task.ID)
	fmt.Fprintf(t.writer, "Title:     %s\n", task.Title)
	fmt.Fprintf(t.writer, "Position:  %d\n", task.Position)
	fmt.Fprintf(t.writer, "Done:      %s\n", yesNo(task.Completed))
	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}
