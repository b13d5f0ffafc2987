// Package stageload recreates a MySQL staging table and fills it from a
// CSV file with a single LOAD DATA LOCAL INFILE statement.
package stageload

var (
	// Version of stageload, set by build flags.
	Version = "v0.1.0"
	// Build timestamp, set by build flags.
	Build = "n/a"
)
