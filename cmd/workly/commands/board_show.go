package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/workly/workly/internal/app/boardshow"
)

type BoardShowCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID int64
	offline   bool
	format    string
}

// NewBoardShowCommand returns the board show command.
func NewBoardShowCommand(rootCmd *RootCommand, boardCmd *kingpin.CmdClause) *BoardShowCommand {
	c := &BoardShowCommand{rootCmd: rootCmd}

	c.Cmd = boardCmd.Command("show", "Show the columns and tasks of a project board.")
	c.Cmd.Arg("project-id", "Project ID.").Required().Int64Var(&c.projectID)
	c.Cmd.Flag("offline", "Only read the local cache.").BoolVar(&c.offline)
	addFormatFlag(c.Cmd, &c.format)

	return c
}

func (c BoardShowCommand) Name() string { return c.Cmd.FullCommand() }

func (c BoardShowCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

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

	svc, err := boardshow.NewService(boardshow.ServiceConfig{
		Remote: remote,
		Cache:  st.Cache,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	b, err := svc.Run(ctx, boardshow.Request{ProjectID: c.projectID, Offline: c.offline})
	if err != nil {
		return fmt.Errorf("could not show board: %w", err)
	}

	if err := newPrinter(c.format, c.rootCmd.Stdout).PrintBoard(*b); err != nil {
		return fmt.Errorf("could not print board: %w", err)
	}

	return nil
}
