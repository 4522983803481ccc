package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"

	"github.com/workly/workly/internal/conventions"
	"github.com/workly/workly/internal/remote/fake"
)

// FakeAPICommand serves an in-memory Workly REST API, handy for demos and tests.
type FakeAPICommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	listenAddr  string
	seedFile    string
	acceptToken string
}

// NewFakeAPICommand returns the fake-api command.
func NewFakeAPICommand(rootCmd *RootCommand, app *kingpin.Application) *FakeAPICommand {
	c := &FakeAPICommand{rootCmd: rootCmd}

	c.Cmd = app.Command("fake-api", "Serve an in-memory Workly REST API.")
	c.Cmd.Flag("listen", "Listen address.").Default(conventions.DefaultFakeAPIAddress).StringVar(&c.listenAddr)
	c.Cmd.Flag("seed-file", "YAML file with the projects to serve, a demo seed is used when missing.").StringVar(&c.seedFile)
	c.Cmd.Flag("accept-token", "Only accept this bearer token, any token is accepted when empty.").StringVar(&c.acceptToken)

	return c
}

func (c FakeAPICommand) Name() string { return c.Cmd.FullCommand() }

func (c FakeAPICommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	seedData := []byte(fake.DemoSeed)
	if c.seedFile != "" {
		data, err := os.ReadFile(c.seedFile)
		if err != nil {
			return fmt.Errorf("could not read seed file: %w", err)
		}
		seedData = data
	}
	seed, err := fake.LoadSeed(seedData)
	if err != nil {
		return fmt.Errorf("invalid seed: %w", err)
	}

	api, err := fake.NewAPI(fake.APIConfig{Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create fake API: %w", err)
	}
	if err := seed.Load(api); err != nil {
		return fmt.Errorf("could not seed fake API: %w", err)
	}

	handler, err := fake.NewHandler(fake.HandlerConfig{
		API:        api,
		PathPrefix: conventions.APIPathPrefix,
		Token:      c.acceptToken,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create handler: %w", err)
	}

	server := &http.Server{
		Addr:              c.listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var g run.Group

	// HTTP server.
	{
		g.Add(
			func() error {
				logger.Infof("Fake API listening on http://%s%s", c.listenAddr, conventions.APIPathPrefix)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			},
			func(_ error) {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = server.Shutdown(ctx)
			},
		)
	}

	// Context cancellation (from parent signal handling).
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				<-ctx.Done()
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}
