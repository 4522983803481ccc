// Package lib provides a Go SDK for managing Workly boards programmatically.
//
// This package allows applications to list projects, read boards and reorder
// columns and tasks without shelling out to the workly CLI binary. It is useful
// for scripting, automation and building board UIs on top of Workly.
//
// # Quick Start
//
// Create a client, load a board and move things around:
//
//	client, err := lib.New(ctx, lib.Config{Token: os.Getenv("WORKLY_TOKEN")})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	b, err := client.GetBoard(ctx, 1, nil)
//
//	// Move the last column to the first position.
//	res, err := client.MoveColumn(ctx, 1, b.Columns[len(b.Columns)-1].ID, 0)
//
//	// Move a task to the first position of another column.
//	idx := 0
//	res, err = client.MoveTask(ctx, 1, 100, lib.MoveTaskOpts{ColumnID: 20, Index: &idx})
//
// # Moves and remote calls
//
// A move reorders the local board first and then persists the new order with
// one remote call per changed position, in order. A rejected call doesn't stop
// the next ones and the local order is not rolled back, rejected calls are in
// [MoveResult].Failed and in the local journal (see [Client.ListJournal]).
//
// A move without session token is aborted before changing anything, see
// [OutcomeAborted].
//
// # Interactive boards
//
// [Client.OpenBoard] returns an [InteractiveBoard] that tracks drag gestures,
// meant to back a UI:
//
//	ib, _ := client.OpenBoard(ctx, 1, &lib.InteractiveBoardOpts{Async: true})
//	_ = ib.StartDrag(lib.DragItem{Kind: lib.ItemTask, ID: 100, ContainerID: 10}, lib.Point{})
//	res, _ := ib.Drop(ctx, &lib.DropTarget{Kind: lib.TargetColumn, ID: 20, Index: lib.NoIndex}, lib.Point{X: 40})
//	ib.Wait()
//
// Drags shorter than the minimum distance and drops outside any target are ignored.
//
// # Backends
//
//   - [BackendHTTP]: The Workly REST API.
//   - [BackendFake]: In-memory API seeded with demo projects, for unit testing.
//     No server needed. Set [Config].Backend to [BackendFake] to use it.
//
// # Error Handling
//
// All methods return errors that can be checked with [errors.Is] against the
// sentinel errors: [ErrNotFound], [ErrAlreadyExists], [ErrNotValid],
// [ErrMissingCredential] and [ErrRemote].
package lib
