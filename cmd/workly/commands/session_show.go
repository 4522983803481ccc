package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/workly/workly/internal/app/sessionshow"
)

type SessionShowCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewSessionShowCommand returns the session show command.
func NewSessionShowCommand(rootCmd *RootCommand, sessionCmd *kingpin.CmdClause) *SessionShowCommand {
	c := &SessionShowCommand{rootCmd: rootCmd}

	c.Cmd = sessionCmd.Command("show", "Show the current session and its token claims.")
	addFormatFlag(c.Cmd, &c.format)

	return c
}

func (c SessionShowCommand) Name() string { return c.Cmd.FullCommand() }

func (c SessionShowCommand) Run(ctx context.Context) error {
	var getter sessionshow.SessionGetter = tokenSession(strings.TrimSpace(c.rootCmd.Token))
	if strings.TrimSpace(c.rootCmd.Token) == "" {
		file, err := newSessionFile(c.rootCmd)
		if err != nil {
			return fmt.Errorf("could not create session provider: %w", err)
		}
		getter = file
	}

	svc, err := sessionshow.NewService(sessionshow.ServiceConfig{
		Session: getter,
		Logger:  c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("could not show session: %w", err)
	}

	return newPrinter(c.format, c.rootCmd.Stdout).PrintSession(res.Session, res.Token, res.Expired)
}
