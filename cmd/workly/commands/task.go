package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/workly/workly/internal/app/taskcreate"
	"github.com/workly/workly/internal/app/taskmove"
	"github.com/workly/workly/internal/app/taskremove"
	"github.com/workly/workly/internal/printer"
)

type TaskCreateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID int64
	columnID  int64
	title     string
	format    string
}

// NewTaskCreateCommand returns the task create command.
func NewTaskCreateCommand(rootCmd *RootCommand, taskCmd *kingpin.CmdClause) *TaskCreateCommand {
	c := &TaskCreateCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Command("create", "Create a pending task at the end of a column.")
	c.Cmd.Arg("column-id", "Column ID.").Required().Int64Var(&c.columnID)
	c.Cmd.Arg("title", "Task title.").Required().StringVar(&c.title)
	c.Cmd.Flag("project-id", "Project of the column, invalidates its cached board.").Int64Var(&c.projectID)
	addFormatFlag(c.Cmd, &c.format)

	return c
}

func (c TaskCreateCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskCreateCommand) Run(ctx context.Context) error {
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

	svc, err := taskcreate.NewService(taskcreate.ServiceConfig{
		Remote: remote,
		Cache:  st.Cache,
		Logger: c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	t, err := svc.Run(ctx, taskcreate.Request{ProjectID: c.projectID, ColumnID: c.columnID, Title: c.title})
	if err != nil {
		return fmt.Errorf("could not create task: %w", err)
	}

	return newPrinter(c.format, c.rootCmd.Stdout).PrintTask(*t)
}

type TaskRemoveCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID int64
	taskID    int64
}

// NewTaskRemoveCommand returns the task rm command.
func NewTaskRemoveCommand(rootCmd *RootCommand, taskCmd *kingpin.CmdClause) *TaskRemoveCommand {
	c := &TaskRemoveCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Command("rm", "Remove a task.")
	c.Cmd.Arg("task-id", "Task ID.").Required().Int64Var(&c.taskID)
	c.Cmd.Flag("project-id", "Project of the task, invalidates its cached board.").Int64Var(&c.projectID)

	return c
}

func (c TaskRemoveCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskRemoveCommand) Run(ctx context.Context) error {
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

	svc, err := taskremove.NewService(taskremove.ServiceConfig{
		Remote: remote,
		Cache:  st.Cache,
		Logger: c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	if err := svc.Run(ctx, taskremove.Request{ProjectID: c.projectID, TaskID: c.taskID}); err != nil {
		return fmt.Errorf("could not remove task: %w", err)
	}

	return newPrinter(formatTable, c.rootCmd.Stdout).PrintMessage(fmt.Sprintf("Task %d removed", c.taskID))
}

type TaskMoveCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID     int64
	taskID        int64
	columnID      int64
	index         int
	reindexSource bool
	format        string
}

// NewTaskMoveCommand returns the task move command.
func NewTaskMoveCommand(rootCmd *RootCommand, taskCmd *kingpin.CmdClause) *TaskMoveCommand {
	c := &TaskMoveCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Command("move", "Move a task to a column, the same way dragging it would.")
	c.Cmd.Arg("project-id", "Project ID.").Required().Int64Var(&c.projectID)
	c.Cmd.Arg("task-id", "Task ID.").Required().Int64Var(&c.taskID)
	c.Cmd.Flag("column", "Destination column ID, defaults to the current column of the task.").Int64Var(&c.columnID)
	c.Cmd.Flag("index", "Zero based destination index in the column, negative appends.").Default("-1").IntVar(&c.index)
	c.Cmd.Flag("reindex-source", "Also persist the positions of the tasks left in the source column.").BoolVar(&c.reindexSource)
	addFormatFlag(c.Cmd, &c.format)

	return c
}

func (c TaskMoveCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskMoveCommand) Run(ctx context.Context) error {
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

	svc, err := taskmove.NewService(taskmove.ServiceConfig{
		Remote:  remote,
		Session: sess,
		Cache:   st.Cache,
		Journal: st.Journal,
		Logger:  c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	req := taskmove.Request{
		ProjectID:     c.projectID,
		TaskID:        c.taskID,
		ColumnID:      c.columnID,
		ReindexSource: c.reindexSource,
	}
	if c.index >= 0 {
		idx := c.index
		req.Index = &idx
	}

	res, err := svc.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("could not move task: %w", err)
	}

	return newPrinter(c.format, c.rootCmd.Stdout).PrintMove(printer.Move{
		Outcome: res.Outcome,
		Reason:  res.Reason,
		Calls:   res.Calls,
		Report:  res.Report,
	})
}
