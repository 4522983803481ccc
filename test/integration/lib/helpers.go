package lib

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	sdklib "github.com/workly/workly/pkg/lib"
	"github.com/workly/workly/test/integration/testutils"
)

// Token is the only token accepted by the test fake API.
const Token = "sdk-integration-token"

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	Binary string
	APIURL string
}

func (c *Config) defaults() error {
	if !filepath.IsAbs(c.Binary) {
		return fmt.Errorf("WORKLY_INTEGRATION_BINARY must be an absolute path, got %q", c.Binary)
	}
	if _, err := os.Stat(c.Binary); err != nil {
		return fmt.Errorf("workly binary not found at %q: %w", c.Binary, err)
	}
	return nil
}

// NewConfig loads integration test configuration from environment variables and
// starts the fake API. If the activation env var is not set, the test is skipped.
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

	c.APIURL = testutils.StartFakeAPI(t, c.Binary, Token)
	return c
}

// NewTestClient creates an SDK client over the HTTP backend with a temp SQLite DB.
func NewTestClient(t *testing.T, config Config, token string) *sdklib.Client {
	t.Helper()

	dir := t.TempDir()
	client, err := sdklib.New(context.Background(), sdklib.Config{
		Backend:     sdklib.BackendHTTP,
		APIURL:      config.APIURL,
		Token:       token,
		DBPath:      filepath.Join(dir, "test.db"),
		SessionFile: filepath.Join(dir, "session.yaml"),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}
