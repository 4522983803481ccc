package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/workly/workly/internal/app/journallist"
)

type JournalListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID   int64
	operationID string
	failed      bool
	format      string
}

// NewJournalListCommand returns the journal list command.
func NewJournalListCommand(rootCmd *RootCommand, journalCmd *kingpin.CmdClause) *JournalListCommand {
	c := &JournalListCommand{rootCmd: rootCmd}

	c.Cmd = journalCmd.Command("list", "List the remote calls dispatched by moves.").Alias("ls")
	c.Cmd.Flag("project-id", "Only calls of this project.").Int64Var(&c.projectID)
	c.Cmd.Flag("operation", "Only calls of this operation.").StringVar(&c.operationID)
	c.Cmd.Flag("failed", "Only failed calls, where the server ordering diverged.").BoolVar(&c.failed)
	addFormatFlag(c.Cmd, &c.format)

	return c
}

func (c JournalListCommand) Name() string { return c.Cmd.FullCommand() }

func (c JournalListCommand) Run(ctx context.Context) error {
	st, err := newStorage(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer st.Close()

	svc, err := journallist.NewService(journallist.ServiceConfig{
		Journal: st.Journal,
		Logger:  c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	calls, err := svc.Run(ctx, journallist.Request{
		ProjectID:   c.projectID,
		OperationID: c.operationID,
		FailedOnly:  c.failed,
	})
	if err != nil {
		return fmt.Errorf("could not list journal: %w", err)
	}

	if err := newPrinter(c.format, c.rootCmd.Stdout).PrintJournal(calls); err != nil {
		return fmt.Errorf("could not print journal: %w", err)
	}

	return nil
}
