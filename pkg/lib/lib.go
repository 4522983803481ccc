package lib

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/workly/workly/internal/conventions"
	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/remote"
	"github.com/workly/workly/internal/remote/fake"
	"github.com/workly/workly/internal/remote/httpapi"
	"github.com/workly/workly/internal/session"
	"github.com/workly/workly/internal/storage"
	"github.com/workly/workly/internal/storage/memory"
	"github.com/workly/workly/internal/storage/sqlite"
)

// BackendType identifies the remote API implementation.
type BackendType string

const (
	// BackendHTTP uses the Workly REST API.
	BackendHTTP BackendType = "http"

	// BackendFake uses an in-memory API seeded with demo projects.
	// Use this for unit testing without a running server.
	BackendFake BackendType = "fake"
)

// StorageType identifies where the board cache and the call journal are kept.
type StorageType string

const (
	// StorageSQLite keeps the cache and the journal in a SQLite file.
	StorageSQLite StorageType = "sqlite"
	// StorageMemory keeps the cache and the journal in memory, they are lost on Close.
	StorageMemory StorageType = "memory"
)

// Config configures the SDK client.
//
// All fields are optional and have sensible defaults. At minimum, an empty
// Config{} will talk to the API at the default URL, use ~/.workly/workly.db for
// storage and read the token from ~/.workly/session.yaml.
type Config struct {
	// Backend selects the remote API implementation.
	// Default: [BackendHTTP].
	Backend BackendType

	// APIURL is the Workly REST API base URL.
	// Default: http://localhost:8080/api/v1.
	APIURL string

	// Timeout is the timeout of each remote request.
	// Default: 15s.
	Timeout time.Duration

	// Token is the bearer token. It takes precedence over TokenFunc and the session file.
	Token string

	// TokenFunc returns the bearer token on every remote call, useful when the
	// application refreshes tokens.
	TokenFunc func(ctx context.Context) (string, error)

	// SessionFile is the YAML session file used when there is no token.
	// Default: ~/.workly/session.yaml.
	SessionFile string

	// Storage selects where the cache and journal are kept.
	// Default: [StorageSQLite].
	Storage StorageType

	// DBPath is the SQLite database path.
	// Default: ~/.workly/workly.db.
	DBPath string

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.Backend == "" {
		c.Backend = BackendHTTP
	}

	if c.APIURL == "" {
		c.APIURL = httpapi.DefaultBaseURL
	}

	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}

	if c.Storage == "" {
		c.Storage = StorageSQLite
	}

	if c.DBPath == "" || c.SessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("could not get user home dir: %w", err)
		}
		dataDir := filepath.Join(home, conventions.DefaultDataDir)
		if c.DBPath == "" {
			c.DBPath = conventions.DBPath(dataDir)
		}
		if c.SessionFile == "" {
			c.SessionFile = conventions.SessionPath(dataDir)
		}
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Client is the main SDK entry point for managing Workly boards programmatically.
//
// Create a Client with [New] and release its resources with [Client.Close].
// A Client is safe for concurrent use.
type Client struct {
	remote  remote.API
	session session.Provider
	cache   storage.BoardRepository
	journal storage.JournalRepository
	logger  log.Logger
	closeFn func() error
}

// New creates a new SDK client.
//
// The caller must call [Client.Close] when done to release the database
// connection. Typically used with defer:
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	sess, err := newSession(cfg)
	if err != nil {
		return nil, err
	}

	c := &Client{session: sess, logger: cfg.Logger}

	switch cfg.Backend {
	case BackendHTTP:
		c.remote, err = httpapi.NewClient(httpapi.ClientConfig{
			BaseURL:    cfg.APIURL,
			HTTPClient: &http.Client{Timeout: cfg.Timeout},
			Session:    sess,
			Logger:     cfg.Logger,
		})
	case BackendFake:
		c.remote, err = newFakeAPI(cfg.Logger)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s: %w", cfg.Backend, ErrNotValid)
	}
	if err != nil {
		return nil, fmt.Errorf("could not create remote API: %w", err)
	}

	switch cfg.Storage {
	case StorageSQLite:
		repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
			DBPath: cfg.DBPath,
			Logger: cfg.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create repository: %w", err)
		}
		journal, err := sqlite.NewJournalRepository(sqlite.JournalRepositoryConfig{
			DB:     repo.DB(),
			Logger: cfg.Logger,
		})
		if err != nil {
			_ = repo.Close()
			return nil, fmt.Errorf("could not create journal repository: %w", err)
		}
		c.cache, c.journal, c.closeFn = repo, journal, repo.Close
	case StorageMemory:
		repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: cfg.Logger})
		if err != nil {
			return nil, fmt.Errorf("could not create repository: %w", err)
		}
		c.cache, c.journal = repo, repo
	default:
		return nil, fmt.Errorf("unsupported storage type: %s: %w", cfg.Storage, ErrNotValid)
	}

	return c, nil
}

// Close releases resources held by the client, including the database connection.
// After Close returns, the client must not be used.
func (c *Client) Close() error {
	if c.closeFn != nil {
		return c.closeFn()
	}
	return nil
}

func newSession(cfg Config) (session.Provider, error) {
	providers := []session.Provider{session.Static(cfg.Token)}
	if cfg.TokenFunc != nil {
		providers = append(providers, session.ProviderFunc(cfg.TokenFunc))
	}

	file, err := session.NewFileProvider(session.FileProviderConfig{
		FS:     os.DirFS(filepath.Dir(cfg.SessionFile)),
		Path:   filepath.Base(cfg.SessionFile),
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create session provider: %w", err)
	}
	providers = append(providers, file)

	return session.Chain(providers...), nil
}

func newFakeAPI(logger log.Logger) (*fake.API, error) {
	api, err := fake.NewAPI(fake.APIConfig{Logger: logger})
	if err != nil {
		return nil, err
	}
	seed, err := fake.LoadSeed([]byte(fake.DemoSeed))
	if err != nil {
		return nil, err
	}
	if err := seed.Load(api); err != nil {
		return nil, err
	}
	return api, nil
}
