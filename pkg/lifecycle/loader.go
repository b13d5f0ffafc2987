package lifecycle

import (
	"context"

	"github.com/gnames/stageload/pkg/report"
	"github.com/gnames/stageload/pkg/schema"
)

// Loader runs the whole staging load: connect, recreate the staging
// table, bulk-load the source, commit, release resources.
type Loader interface {
	// Load imports the CSV file at source into the staging table.
	// The returned report is never nil, it describes failed runs too.
	// Every returned error wraps errcode.ErrLoadFailed.
	Load(ctx context.Context, source string) (*report.Report, error)
}

// Auditor scans a source file on the client side.
type Auditor interface {
	// Audit counts lines and problems of the CSV file at path.
	Audit(ctx context.Context, path string) (*report.Audit, error)
}

// Previewer reads the staging table back.
type Previewer interface {
	// Preview returns the number of rows in the staging table and the
	// first limit rows.
	Preview(ctx context.Context, limit int) (int64, []schema.StagingRow, error)
}
