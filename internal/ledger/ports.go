package ledger

import (
	"context"

	"nexcrm/internal/core"
)

// Entry is one row of the exported payment ledger. The meeting fields are
// denormalized so the sheet is readable on its own.
type Entry struct {
	Payment      core.Payment
	MeetingTitle string
	MeetingCity  string
}

// Writer appends ledger entries to an external sink.
type Writer interface {
	Append(ctx context.Context, e Entry) (rowRef string, err error)
}
