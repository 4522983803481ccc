package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/workly/workly/internal/app/journalclear"
)

type JournalClearCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	operationID string
	force       bool
	format      string
}

// NewJournalClearCommand returns the journal clear command.
func NewJournalClearCommand(rootCmd *RootCommand, journalCmd *kingpin.CmdClause) *JournalClearCommand {
	c := &JournalClearCommand{rootCmd: rootCmd}

	c.Cmd = journalCmd.Command("clear", "Remove the journaled calls of an operation.")
	c.Cmd.Arg("operation", "Operation ID.").Required().StringVar(&c.operationID)
	c.Cmd.Flag("force", "Clear the operation even with pending calls.").BoolVar(&c.force)
	addFormatFlag(c.Cmd, &c.format)

	return c
}

func (c JournalClearCommand) Name() string { return c.Cmd.FullCommand() }

func (c JournalClearCommand) Run(ctx context.Context) error {
	st, err := newStorage(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer st.Close()

	svc, err := journalclear.NewService(journalclear.ServiceConfig{
		Journal: st.Journal,
		Logger:  c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	p, err := svc.Run(ctx, journalclear.Request{OperationID: c.operationID, Force: c.force})
	if err != nil {
		return fmt.Errorf("could not clear operation: %w", err)
	}

	msg := fmt.Sprintf("Cleared %d calls of operation %s (%d done, %d failed)", p.Total, c.operationID, p.Done, p.Failed)
	if err := newPrinter(c.format, c.rootCmd.Stdout).PrintMessage(msg); err != nil {
		return fmt.Errorf("could not print result: %w", err)
	}

	return nil
}
