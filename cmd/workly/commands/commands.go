package commands

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/workly/workly/internal/conventions"
	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/remote/httpapi"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"

	formatTable = "table"
	formatJSON  = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug       bool
	NoLog       bool
	NoColor     bool
	LoggerType  string
	DBPath      string
	APIURL      string
	Token       string
	SessionFile string
	Timeout     time.Duration

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	dataDir := filepath.Join(homedir.HomeDir(), conventions.DefaultDataDir)
	app.Flag("db-path", "Path to the SQLite database file with the board cache and the call journal.").Envar("WORKLY_DB_PATH").Default(conventions.DBPath(dataDir)).StringVar(&c.DBPath)
	app.Flag("api-url", "Workly REST API base URL.").Envar("WORKLY_API_URL").Default(httpapi.DefaultBaseURL).StringVar(&c.APIURL)
	app.Flag("token", "Bearer token, takes precedence over the session file.").Envar("WORKLY_TOKEN").StringVar(&c.Token)
	app.Flag("session-file", "Path to the YAML session file.").Envar("WORKLY_SESSION_FILE").Default(conventions.SessionPath(dataDir)).StringVar(&c.SessionFile)
	app.Flag("timeout", "Timeout of each remote API request.").Envar("WORKLY_TIMEOUT").Default("15s").DurationVar(&c.Timeout)

	return c
}

func addFormatFlag(cmd *kingpin.CmdClause, format *string) {
	cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(format, formatTable, formatJSON)
}
