package workly

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/workly/workly/test/integration/testutils"
)

const testToken = "integration-token"

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	Binary string
	// APIURL is the fake API base URL started for the test.
	APIURL string
	DBPath string
}

func (c *Config) defaults() error {
	if c.Binary == "" {
		c.Binary = "workly"
	}

	// go test changes the CWD to the test package directory.
	if !filepath.IsAbs(c.Binary) {
		return fmt.Errorf("WORKLY_INTEGRATION_BINARY must be an absolute path, got %q", c.Binary)
	}
	if _, err := os.Stat(c.Binary); err != nil {
		return fmt.Errorf("workly binary not found at %q: %w", c.Binary, err)
	}

	return nil
}

// NewConfig loads integration test configuration from environment variables and starts
// a fake API for the test. If the activation env var is not set, the test is skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation = "WORKLY_INTEGRATION"
		envBinary     = "WORKLY_INTEGRATION_BINARY"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	c := Config{Binary: os.Getenv(envBinary)}
	if err := c.defaults(); err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	c.APIURL = testutils.StartFakeAPI(t, c.Binary, testToken)
	c.DBPath = filepath.Join(t.TempDir(), "test-workly.db")

	return c
}

// RunWorklyCmd runs a workly command against the test fake API and database.
func RunWorklyCmd(ctx context.Context, config Config, token string, args ...string) (stdout, stderr []byte, err error) {
	base := []string{
		"--no-log",
		"--db-path", config.DBPath,
		"--api-url", config.APIURL,
		"--session-file", filepath.Join(filepath.Dir(config.DBPath), "session.yaml"),
		"--token", token,
	}
	return testutils.RunWorklyArgs(ctx, nil, config.Binary, append(base, args...), true)
}

// RunBoardShow shows a board in JSON format.
func RunBoardShow(ctx context.Context, config Config, projectID int64, offline bool) (stdout, stderr []byte, err error) {
	args := []string{"board", "show", fmt.Sprint(projectID), "--format", "json"}
	if offline {
		args = append(args, "--offline")
	}
	return RunWorklyCmd(ctx, config, testToken, args...)
}

// RunColumnMove moves a column and prints the result in JSON format.
func RunColumnMove(ctx context.Context, config Config, token string, projectID, columnID int64, position int) (stdout, stderr []byte, err error) {
	return RunWorklyCmd(ctx, config, token, "column", "move", fmt.Sprint(projectID), fmt.Sprint(columnID), fmt.Sprint(position), "--format", "json")
}

// RunTaskMove moves a task and prints the result in JSON format.
func RunTaskMove(ctx context.Context, config Config, projectID, taskID, columnID int64, index int) (stdout, stderr []byte, err error) {
	return RunWorklyCmd(ctx, config, testToken, "task", "move", fmt.Sprint(projectID), fmt.Sprint(taskID),
		"--column", fmt.Sprint(columnID), "--index", fmt.Sprint(index), "--format", "json")
}

// RunJournalList lists the journal of an operation in JSON format.
func RunJournalList(ctx context.Context, config Config, operationID string) (stdout, stderr []byte, err error) {
	return RunWorklyCmd(ctx, config, testToken, "journal", "list", "--operation", operationID, "--format", "json")
}
