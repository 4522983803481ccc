package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"
	"github.com/sirupsen/logrus"

	"github.com/workly/workly/cmd/workly/commands"
	"github.com/workly/workly/internal/log"
	loglogrus "github.com/workly/workly/internal/log/logrus"
)

const (
	// Version is the application version (set via ldflags).
	Version = "dev"
)

// Run runs the main application.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	app := kingpin.New("workly", "Workly kanban board client.")
	app.DefaultEnvars()
	rootCmd := commands.NewRootCommand(app)

	projectCmd := app.Command("project", "Manage projects.")
	projectListCmd := commands.NewProjectListCommand(rootCmd, projectCmd)

	boardCmd := app.Command("board", "Manage project boards.")
	boardShowCmd := commands.NewBoardShowCommand(rootCmd, boardCmd)

	columnCmd := app.Command("column", "Manage board columns.")
	columnCreateCmd := commands.NewColumnCreateCommand(rootCmd, columnCmd)
	columnRenameCmd := commands.NewColumnRenameCommand(rootCmd, columnCmd)
	columnRemoveCmd := commands.NewColumnRemoveCommand(rootCmd, columnCmd)
	columnMoveCmd := commands.NewColumnMoveCommand(rootCmd, columnCmd)

	taskCmd := app.Command("task", "Manage tasks.")
	taskCreateCmd := commands.NewTaskCreateCommand(rootCmd, taskCmd)
	taskRemoveCmd := commands.NewTaskRemoveCommand(rootCmd, taskCmd)
	taskMoveCmd := commands.NewTaskMoveCommand(rootCmd, taskCmd)

	journalCmd := app.Command("journal", "Inspect and clean the journal of dispatched remote calls.")
	journalListCmd := commands.NewJournalListCommand(rootCmd, journalCmd)
	journalClearCmd := commands.NewJournalClearCommand(rootCmd, journalCmd)

	sessionCmd := app.Command("session", "Inspect the session.")
	sessionShowCmd := commands.NewSessionShowCommand(rootCmd, sessionCmd)

	fakeAPICmd := commands.NewFakeAPICommand(rootCmd, app)

	cmds := map[string]commands.Command{
		projectListCmd.Name():  projectListCmd,
		boardShowCmd.Name():    boardShowCmd,
		columnCreateCmd.Name(): columnCreateCmd,
		columnRenameCmd.Name(): columnRenameCmd,
		columnRemoveCmd.Name(): columnRemoveCmd,
		columnMoveCmd.Name():   columnMoveCmd,
		taskCreateCmd.Name():   taskCreateCmd,
		taskRemoveCmd.Name():   taskRemoveCmd,
		taskMoveCmd.Name():     taskMoveCmd,
		journalListCmd.Name():  journalListCmd,
		journalClearCmd.Name(): journalClearCmd,
		sessionShowCmd.Name():  sessionShowCmd,
		fakeAPICmd.Name():      fakeAPICmd,
	}

	// Parse command.
	cmdName, err := app.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	// Set standard input/output.
	rootCmd.Stdin = stdin
	rootCmd.Stdout = stdout
	rootCmd.Stderr = stderr

	// Commands that print tables or JSON don't log unless --debug is set.
	printerCommands := map[string]bool{
		"project list": true,
		"board show":   true,
		"journal list": true,
		"session show": true,
	}
	if printerCommands[cmdName] && !rootCmd.Debug {
		rootCmd.NoLog = true
	}

	// Set logger.
	rootCmd.Logger = getLogger(ctx, *rootCmd)

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				rootCmd.Logger.Debugf("Termination signal received")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// Execute command.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				err := cmds[cmdName].Run(ctx)
				if err != nil {
					return fmt.Errorf("%q command failed: %w", cmdName, err)
				}
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

// getLogger returns the application logger.
func getLogger(ctx context.Context, config commands.RootCommand) log.Logger {
	if config.NoLog {
		return log.Noop
	}

	logrusLog := logrus.New()
	logrusLog.Out = config.Stderr // Logs go to stderr so stdout only has printer output.
	logrusLogEntry := logrus.NewEntry(logrusLog)

	if config.Debug {
		logrusLogEntry.Logger.SetLevel(logrus.DebugLevel)
	}

	switch config.LoggerType {
	case commands.LoggerTypeDefault:
		logrusLogEntry.Logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:   !config.NoColor,
			DisableColors: config.NoColor,
		})
	case commands.LoggerTypeJSON:
		logrusLogEntry.Logger.SetFormatter(&logrus.JSONFormatter{})
	}

	logger := loglogrus.NewLogrus(logrusLogEntry).WithValues(log.Kv{
		"version": Version,
	})

	logger.Debugf("Debug level is enabled")

	return logger
}

func main() {
	ctx := context.Background()
	err := Run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
