package testutils

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"
)

var multiSpaceRegex = regexp.MustCompile(" +")

// RunWorkly executes a workly command with the given arguments string (split by spaces).
// Use RunWorklyArgs when arguments contain spaces that should be preserved.
func RunWorkly(ctx context.Context, env []string, binary, cmdArgs string, nolog bool) (stdout, stderr []byte, err error) {
	// Sanitize command.
	cmdArgs = strings.TrimSpace(cmdArgs)
	cmdArgs = multiSpaceRegex.ReplaceAllString(cmdArgs, " ")

	// Split into args.
	var args []string
	if cmdArgs != "" {
		args = strings.Split(cmdArgs, " ")
	}

	return RunWorklyArgs(ctx, env, binary, args, nolog)
}

// RunWorklyArgs executes a workly command with pre-split arguments.
// This preserves arguments that contain spaces (e.g., titles like "In review").
func RunWorklyArgs(ctx context.Context, env []string, binary string, args []string, nolog bool) (stdout, stderr []byte, err error) {
	var outData, errData bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = &outData
	cmd.Stderr = &errData

	// Set env: os.Environ() first, then custom env overrides on top.
	// In Go's exec.Cmd, when duplicate keys exist, the last one wins.
	newEnv := append([]string{}, os.Environ()...)
	newEnv = append(newEnv, env...)
	if nolog {
		newEnv = append(newEnv, "WORKLY_NO_LOG=true")
	}
	cmd.Env = newEnv

	err = cmd.Run()

	return outData.Bytes(), errData.Bytes(), err
}

// StartFakeAPI runs `workly fake-api` on a free local port until the test ends and
// returns the API base URL. Only the token is accepted by the server.
func StartFakeAPI(t *testing.T, binary, token string) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("could not get a free port: %s", err)
	}
	addr := l.Addr().String()
	_ = l.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, binary, "--no-log", "fake-api", "--listen", addr, "--accept-token", token)
	if err := cmd.Start(); err != nil {
		cancel()
		t.Fatalf("could not start fake API: %s", err)
	}
	t.Cleanup(func() {
		cancel()
		_ = cmd.Wait()
	})

	// Wait until the server accepts connections.
	deadline := time.Now().Add(10 * time.Second)
	for {
		conn, err := net.DialTimeout("tcp", addr, 200*time.Millisecond)
		if err == nil {
			_ = conn.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("fake API not ready at %s: %s", addr, err)
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Sprintf("http://%s/api/v1", addr)
}
