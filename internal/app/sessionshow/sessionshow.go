package sessionshow

import (
	"context"
	"fmt"
	"time"

	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/session"
)

// SessionGetter returns the current session.
type SessionGetter interface {
	Session(ctx context.Context) (*model.Session, error)
}

// ServiceConfig is the configuration for the session show service.
type ServiceConfig struct {
	Session SessionGetter
	Logger  log.Logger
	Now     func() time.Time
}

func (c *ServiceConfig) defaults() error {
	if c.Session == nil {
		return fmt.Errorf("session is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	if c.Now == nil {
		c.Now = time.Now
	}

	return nil
}

// Service shows the current session.
type Service struct {
	session SessionGetter
	logger  log.Logger
	now     func() time.Time
}

// NewService creates a new session show service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		session: cfg.Session,
		logger:  cfg.Logger,
		now:     cfg.Now,
	}, nil
}

// Result is the session with its decoded token.
type Result struct {
	Session model.Session
	// Token is nil when the token is not a JWT.
	Token   *session.TokenInfo
	Expired bool
}

// Run loads the session and decodes its token. Expired tokens are not an error, the
// server decides if they are still accepted.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	sess, err := s.session.Session(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load session: %w", err)
	}

	res := &Result{Session: *sess}

	info, err := session.Inspect(sess.Token)
	if err != nil {
		s.logger.Debugf("Token is not a JWT: %s", err)
		return res, nil
	}
	res.Token = info

	if info.Expired(s.now()) {
		res.Expired = true
		s.logger.Warningf("Session token expired at %s", info.ExpiresAt.Format(time.RFC3339))
	}

	return res, nil
}
