// Package lifecycle defines the contracts of the staging load steps.
// Implementations live in internal/io* packages.
package lifecycle

import (
	"context"
)

// SchemaManager defines the interface for staging table management.
// Recreate is destructive and idempotent: repeated calls always end with
// an empty table.
type SchemaManager interface {
	// Recreate drops the staging table if it exists and creates it again.
	Recreate(ctx context.Context) error

	// Create creates the staging table if it does not exist.
	Create(ctx context.Context) error

	// Drop removes the staging table if it exists.
	Drop(ctx context.Context) error
}
