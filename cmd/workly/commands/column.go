package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/workly/workly/internal/app/columncreate"
	"github.com/workly/workly/internal/app/columnmove"
	"github.com/workly/workly/internal/app/columnremove"
	"github.com/workly/workly/internal/app/columnrename"
	"github.com/workly/workly/internal/printer"
)

type ColumnCreateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID int64
	title     string
	format    string
}

// NewColumnCreateCommand returns the column create command.
func NewColumnCreateCommand(rootCmd *RootCommand, columnCmd *kingpin.CmdClause) *ColumnCreateCommand {
	c := &ColumnCreateCommand{rootCmd: rootCmd}

	c.Cmd = columnCmd.Command("create", "Create a column at the end of a board.")
	c.Cmd.Arg("project-id", "Project ID.").Required().Int64Var(&c.projectID)
	c.Cmd.Arg("title", "Column title.").Required().StringVar(&c.title)
	addFormatFlag(c.Cmd, &c.format)

	return c
}

func (c ColumnCreateCommand) Name() string { return c.Cmd.FullCommand() }

func (c ColumnCreateCommand) Run(ctx context.Context) error {
	st, err := newStorage(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer st.Close()

	sess, err := newSessionProvider(c.rootCmd)
	if err != nil {
		return err
	}
	remote, err := newRemote(c.rootCmd, sess)
	if err != nil {
		return err
	}

	svc, err := columncreate.NewService(columncreate.ServiceConfig{
		Remote: remote,
		Cache:  st.Cache,
		Logger: c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	col, err := svc.Run(ctx, columncreate.Request{ProjectID: c.projectID, Title: c.title})
	if err != nil {
		return fmt.Errorf("could not create column: %w", err)
	}

	return newPrinter(c.format, c.rootCmd.Stdout).PrintColumn(*col)
}

type ColumnRenameCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID int64
	columnID  int64
	title     string
	format    string
}

// NewColumnRenameCommand returns the column rename command.
func NewColumnRenameCommand(rootCmd *RootCommand, columnCmd *kingpin.CmdClause) *ColumnRenameCommand {
	c := &ColumnRenameCommand{rootCmd: rootCmd}

	c.Cmd = columnCmd.Command("rename", "Rename a column.")
	c.Cmd.Arg("project-id", "Project ID.").Required().Int64Var(&c.projectID)
	c.Cmd.Arg("column-id", "Column ID.").Required().Int64Var(&c.columnID)
	c.Cmd.Arg("title", "New column title.").Required().StringVar(&c.title)
	addFormatFlag(c.Cmd, &c.format)

	return c
}

func (c ColumnRenameCommand) Name() string { return c.Cmd.FullCommand() }

func (c ColumnRenameCommand) Run(ctx context.Context) error {
	st, err := newStorage(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer st.Close()

	sess, err := newSessionProvider(c.rootCmd)
	if err != nil {
		return err
	}
	remote, err := newRemote(c.rootCmd, sess)
	if err != nil {
		return err
	}

	svc, err := columnrename.NewService(columnrename.ServiceConfig{
		Remote: remote,
		Cache:  st.Cache,
		Logger: c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	col, err := svc.Run(ctx, columnrename.Request{ProjectID: c.projectID, ColumnID: c.columnID, Title: c.title})
	if err != nil {
		return fmt.Errorf("could not rename column: %w", err)
	}

	return newPrinter(c.format, c.rootCmd.Stdout).PrintColumn(*col)
}

type ColumnRemoveCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID int64
	columnID  int64
}

// NewColumnRemoveCommand returns the column rm command.
func NewColumnRemoveCommand(rootCmd *RootCommand, columnCmd *kingpin.CmdClause) *ColumnRemoveCommand {
	c := &ColumnRemoveCommand{rootCmd: rootCmd}

	c.Cmd = columnCmd.Command("rm", "Remove a column and its tasks.")
	c.Cmd.Arg("project-id", "Project ID.").Required().Int64Var(&c.projectID)
	c.Cmd.Arg("column-id", "Column ID.").Required().Int64Var(&c.columnID)

	return c
}

func (c ColumnRemoveCommand) Name() string { return c.Cmd.FullCommand() }

func (c ColumnRemoveCommand) Run(ctx context.Context) error {
	st, err := newStorage(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer st.Close()

	sess, err := newSessionProvider(c.rootCmd)
	if err != nil {
		return err
	}
	remote, err := newRemote(c.rootCmd, sess)
	if err != nil {
		return err
	}

	svc, err := columnremove.NewService(columnremove.ServiceConfig{
		Remote: remote,
		Cache:  st.Cache,
		Logger: c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	if err := svc.Run(ctx, columnremove.Request{ProjectID: c.projectID, ColumnID: c.columnID}); err != nil {
		return fmt.Errorf("could not remove column: %w", err)
	}

	return newPrinter(formatTable, c.rootCmd.Stdout).PrintMessage(fmt.Sprintf("Column %d removed", c.columnID))
}

type ColumnMoveCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID int64
	columnID  int64
	position  int
	format    string
}

// NewColumnMoveCommand returns the column move command.
func NewColumnMoveCommand(rootCmd *RootCommand, columnCmd *kingpin.CmdClause) *ColumnMoveCommand {
	c := &ColumnMoveCommand{rootCmd: rootCmd}

	c.Cmd = columnCmd.Command("move", "Move a column to another position, the same way dragging it would.")
	c.Cmd.Arg("project-id", "Project ID.").Required().Int64Var(&c.projectID)
	c.Cmd.Arg("column-id", "Column ID.").Required().Int64Var(&c.columnID)
	c.Cmd.Arg("position", "Zero based destination position.").Required().IntVar(&c.position)
	addFormatFlag(c.Cmd, &c.format)

	return c
}

func (c ColumnMoveCommand) Name() string { return c.Cmd.FullCommand() }

func (c ColumnMoveCommand) Run(ctx context.Context) error {
	st, err := newStorage(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer st.Close()

	sess, err := newSessionProvider(c.rootCmd)
	if err != nil {
		return err
	}
	remote, err := newRemote(c.rootCmd, sess)
	if err != nil {
		return err
	}

	svc, err := columnmove.NewService(columnmove.ServiceConfig{
		Remote:  remote,
		Session: sess,
		Cache:   st.Cache,
		Journal: st.Journal,
		Logger:  c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx, columnmove.Request{ProjectID: c.projectID, ColumnID: c.columnID, Position: c.position})
	if err != nil {
		return fmt.Errorf("could not move column: %w", err)
	}

	return newPrinter(c.format, c.rootCmd.Stdout).PrintMove(printer.Move{
		Outcome: res.Outcome,
		Reason:  res.Reason,
		Calls:   res.Calls,
		Report:  res.Report,
	})
}
