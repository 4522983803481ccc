package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/workly/workly/internal/app/projectlist"
)

type ProjectListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	favorites bool
	format    string
}

// NewProjectListCommand returns the project list command.
func NewProjectListCommand(rootCmd *RootCommand, projectCmd *kingpin.CmdClause) *ProjectListCommand {
	c := &ProjectListCommand{rootCmd: rootCmd}

	c.Cmd = projectCmd.Command("list", "List the projects of the session user.").Alias("ls")
	c.Cmd.Flag("favorites", "Only show favorite projects.").BoolVar(&c.favorites)
	addFormatFlag(c.Cmd, &c.format)

	return c
}

func (c ProjectListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ProjectListCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	sess, err := newSessionProvider(c.rootCmd)
	if err != nil {
		return err
	}
	remote, err := newRemote(c.rootCmd, sess)
	if err != nil {
		return err
	}

	svc, err := projectlist.NewService(projectlist.ServiceConfig{
		Remote: remote,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	projects, err := svc.Run(ctx, projectlist.Request{FavoritesOnly: c.favorites})
	if err != nil {
		return fmt.Errorf("could not list projects: %w", err)
	}

	if err := newPrinter(c.format, c.rootCmd.Stdout).PrintProjects(projects); err != nil {
		return fmt.Errorf("could not print projects: %w", err)
	}

	return nil
}
