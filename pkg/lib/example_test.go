package lib_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/workly/workly/pkg/lib"
)

// This example shows how to create a client using the fake backend for testing.
func Example_testing() {
	ctx := context.Background()

	// Use a temp directory and the fake backend for testing.
	dir, err := os.MkdirTemp("", "workly-example-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	client, err := lib.New(ctx, lib.Config{
		Backend:     lib.BackendFake,
		DBPath:      filepath.Join(dir, "workly.db"),
		SessionFile: filepath.Join(dir, "session.yaml"),
		Token:       "test-token",
	})
	if err != nil {
		panic(err)
	}
	defer client.Close()

	projects, err := client.ListProjects(ctx, nil)
	if err != nil {
		panic(err)
	}

	for _, p := range projects {
		fmt.Printf("%d: %s (favorite: %t)\n", p.ID, p.Title, p.Favorite)
	}

	// Output:
	// 1: Roadmap (favorite: true)
	// 2: Personal (favorite: false)
}

// This example shows how to reorder a board.
func Example_move() {
	ctx := context.Background()

	client, err := lib.New(ctx, lib.Config{
		Backend:     lib.BackendFake,
		Storage:     lib.StorageMemory,
		SessionFile: filepath.Join(os.TempDir(), "workly-example-no-session.yaml"),
		Token:       "test-token",
	})
	if err != nil {
		panic(err)
	}
	defer client.Close()

	res, err := client.MoveColumn(ctx, 1, 30, 0)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Outcome: %s\n", res.Outcome)
	for _, c := range res.Board.Columns {
		fmt.Printf("%d %s\n", c.Position, c.Title)
	}

	// Output:
	// Outcome: applied
	// 0 Done
	// 1 Todo
	// 2 Doing
}

// This example shows how to check errors.
func Example_errors() {
	ctx := context.Background()

	client, err := lib.New(ctx, lib.Config{
		Backend:     lib.BackendFake,
		Storage:     lib.StorageMemory,
		SessionFile: filepath.Join(os.TempDir(), "workly-example-no-session.yaml"),
		Token:       "test-token",
	})
	if err != nil {
		panic(err)
	}
	defer client.Close()

	_, err = client.GetBoard(ctx, 42, nil)
	if errors.Is(err, lib.ErrNotFound) {
		fmt.Println("board not found")
	}

	// Output:
	// board not found
}
