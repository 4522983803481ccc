package lib

import (
	"context"
	"fmt"

	"github.com/workly/workly/internal/app/journalclear"
	"github.com/workly/workly/internal/app/journallist"
)

// ListJournalOpts filters the journal listing. Zero values don't filter.
type ListJournalOpts struct {
	ProjectID   int64
	OperationID string
	// FailedOnly returns only the calls the API rejected.
	FailedOnly bool
}

// ListJournal returns the remote calls issued by moves, oldest first.
// Pass nil opts for defaults.
func (c *Client) ListJournal(ctx context.Context, opts *ListJournalOpts) ([]JournalCall, error) {
	if opts == nil {
		opts = &ListJournalOpts{}
	}

	svc, err := journallist.NewService(journallist.ServiceConfig{
		Journal: c.journal,
		Logger:  c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	calls, err := svc.Run(ctx, journallist.Request{
		ProjectID:   opts.ProjectID,
		OperationID: opts.OperationID,
		FailedOnly:  opts.FailedOnly,
	})
	if err != nil {
		return nil, mapError(err)
	}

	result := make([]JournalCall, 0, len(calls))
	for _, c := range calls {
		result = append(result, fromInternalJournalCall(c))
	}
	return result, nil
}

// ClearJournalOpts configures the journal clear.
type ClearJournalOpts struct {
	// Force clears operations that still have pending calls.
	Force bool
}

// ClearJournalOperation removes the journaled calls of an operation and returns
// how many were done and failed.
// Pass nil opts for defaults.
func (c *Client) ClearJournalOperation(ctx context.Context, operationID string, opts *ClearJournalOpts) (done, failed int, err error) {
	if opts == nil {
		opts = &ClearJournalOpts{}
	}

	svc, err := journalclear.NewService(journalclear.ServiceConfig{
		Journal: c.journal,
		Logger:  c.logger,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("could not create service: %w", err)
	}

	p, err := svc.Run(ctx, journalclear.Request{OperationID: operationID, Force: opts.Force})
	if err != nil {
		return 0, 0, mapError(err)
	}

	return p.Done, p.Failed, nil
}
