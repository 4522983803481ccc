package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/model"
)

// Provider knows how to get the bearer token used on the remote API calls.
type Provider interface {
	Token(ctx context.Context) (string, error)
}

// ProviderFunc is a helper to create providers from functions.
type ProviderFunc func(ctx context.Context) (string, error)

// Token satisfies Provider interface.
func (p ProviderFunc) Token(ctx context.Context) (string, error) { return p(ctx) }

// Static returns a provider that always returns the same token.
// An empty token means there is no credential.
func Static(token string) Provider {
	return ProviderFunc(func(ctx context.Context) (string, error) {
		token := strings.TrimSpace(token)
		if token == "" {
			return "", fmt.Errorf("no static token: %w", model.ErrMissingCredential)
		}
		return token, nil
	})
}

// Chain returns a provider that returns the token of the first provider that has one.
func Chain(providers ...Provider) Provider {
	return ProviderFunc(func(ctx context.Context) (string, error) {
		for _, p := range providers {
			token, err := p.Token(ctx)
			if err == nil {
				return token, nil
			}
			if !errors.Is(err, model.ErrMissingCredential) {
				return "", err
			}
		}
		return "", fmt.Errorf("no session available: %w", model.ErrMissingCredential)
	})
}

// FileProviderConfig is the configuration for the session file provider.
type FileProviderConfig struct {
	// FS is the filesystem where the session file lives.
	FS fs.FS
	// Path is the session file path inside FS.
	Path   string
	Logger log.Logger
}

func (c *FileProviderConfig) defaults() error {
	if c.FS == nil {
		return fmt.Errorf("fs is required")
	}
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "session.File"})
	return nil
}

// FileProvider loads the session stored by a previous login from a YAML file.
type FileProvider struct {
	fs     fs.FS
	path   string
	logger log.Logger
}

// NewFileProvider returns a new session file provider.
func NewFileProvider(cfg FileProviderConfig) (*FileProvider, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &FileProvider{
		fs:     cfg.FS,
		path:   cfg.Path,
		logger: cfg.Logger,
	}, nil
}

// Token satisfies Provider interface.
func (p *FileProvider) Token(ctx context.Context) (string, error) {
	s, err := p.Session(ctx)
	if err != nil {
		return "", err
	}
	return s.Token, nil
}

// Session loads the session from the file.
func (p *FileProvider) Session(ctx context.Context) (*model.Session, error) {
	data, err := fs.ReadFile(p.fs, p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			p.logger.Debugf("Session file %q missing", p.path)
			return nil, fmt.Errorf("session file %q missing: %w", p.path, model.ErrMissingCredential)
		}
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if strings.TrimSpace(f.Token) == "" {
		return nil, fmt.Errorf("session file without token: %w", model.ErrMissingCredential)
	}

	return f.toModel(), nil
}

// File represents the YAML structure of the session file.
type File struct {
	ID          int64    `yaml:"id"`
	Email       string   `yaml:"email"`
	Token       string   `yaml:"token"`
	Authorities []string `yaml:"authorities"`
}

func (f File) toModel() *model.Session {
	return &model.Session{
		UserID:      f.ID,
		Email:       f.Email,
		Token:       strings.TrimSpace(f.Token),
		Authorities: f.Authorities,
	}
}
