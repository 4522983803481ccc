package commands

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/printer"
	"github.com/workly/workly/internal/remote/httpapi"
	"github.com/workly/workly/internal/session"
	"github.com/workly/workly/internal/storage/sqlite"
)

// storageSet is the local storage shared by the commands, both repositories use the same DB.
type storageSet struct {
	Cache   *sqlite.Repository
	Journal *sqlite.JournalRepository
}

func (s storageSet) Close() error { return s.Cache.Close() }

func newStorage(ctx context.Context, root *RootCommand) (*storageSet, error) {
	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: root.DBPath,
		Logger: root.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}

	journal, err := sqlite.NewJournalRepository(sqlite.JournalRepositoryConfig{
		DB:     repo.DB(),
		Logger: root.Logger,
	})
	if err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("could not create journal repository: %w", err)
	}

	return &storageSet{Cache: repo, Journal: journal}, nil
}

func newSessionFile(root *RootCommand) (*session.FileProvider, error) {
	return session.NewFileProvider(session.FileProviderConfig{
		FS:     os.DirFS(filepath.Dir(root.SessionFile)),
		Path:   filepath.Base(root.SessionFile),
		Logger: root.Logger,
	})
}

// newSessionProvider returns the token flag first and the session file after it.
func newSessionProvider(root *RootCommand) (session.Provider, error) {
	file, err := newSessionFile(root)
	if err != nil {
		return nil, fmt.Errorf("could not create session provider: %w", err)
	}

	return session.Chain(session.Static(root.Token), file), nil
}

func newRemote(root *RootCommand, sess session.Provider) (*httpapi.Client, error) {
	c, err := httpapi.NewClient(httpapi.ClientConfig{
		BaseURL:    root.APIURL,
		HTTPClient: &http.Client{Timeout: root.Timeout},
		Session:    sess,
		Logger:     root.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create remote client: %w", err)
	}
	return c, nil
}

func newPrinter(format string, w io.Writer) printer.Printer {
	switch format {
	case formatJSON:
		return printer.NewJSONPrinter(w)
	default:
		return printer.NewTablePrinter(w)
	}
}

// tokenSession is the session of a token given by flag or env, it has no user data.
type tokenSession string

func (t tokenSession) Session(ctx context.Context) (*model.Session, error) {
	return &model.Session{Token: string(t)}, nil
}
