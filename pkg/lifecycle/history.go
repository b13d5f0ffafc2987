package lifecycle

import (
	"context"

	"github.com/gnames/stageload/pkg/report"
)

// HistoryFilter narrows down History.List results.
type HistoryFilter struct {
	// Limit is the maximum number of runs, newest first.
	Limit int

	// SourceID restricts runs to one source file if not empty.
	SourceID string
}

// History stores reports of load runs.
type History interface {
	// Save stores a report.
	Save(ctx context.Context, rep *report.Report) error

	// List returns stored reports, newest first.
	List(ctx context.Context, filter HistoryFilter) ([]*report.Report, error)

	// Close releases the storage.
	Close() error
}
