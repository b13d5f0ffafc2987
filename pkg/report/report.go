// Package report describes the outcome of a staging load run.
package report

import (
	"time"

	"github.com/google/uuid"
)

// Status is the final state of a run.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Report is the result of one load run. It is returned to the caller,
// printed by the CLI and stored in the run history.
type Report struct {
	// RunID is a random identifier of the run.
	RunID string `json:"runId" yaml:"run_id"`

	// SourceID is a UUID v5 generated from the normalized source path,
	// the same file always gets the same ID.
	SourceID string `json:"sourceId" yaml:"source_id"`

	// SourcePath is the normalized path used in the LOAD DATA statement.
	SourcePath string `json:"sourcePath" yaml:"source_path"`

	// SourceSize is the size of the source file in bytes.
	SourceSize int64 `json:"sourceSize" yaml:"source_size"`

	Table string `json:"table" yaml:"table"`

	StartedAt  time.Time `json:"startedAt" yaml:"started_at"`
	FinishedAt time.Time `json:"finishedAt" yaml:"finished_at"`

	Status Status `json:"status" yaml:"status"`

	// Loaded is the number of rows the server inserted.
	Loaded int64 `json:"loaded" yaml:"loaded"`

	// Skipped is the number of data lines the server did not insert.
	// It is known only when the source was audited.
	Skipped int64 `json:"skipped" yaml:"skipped"`

	// WarningCount is the number of warnings the server raised during
	// the load.
	WarningCount int64 `json:"warningCount" yaml:"warning_count"`

	// Warnings keeps the first warnings raised by the server.
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Audit is the client-side scan of the source, nil if the scan was
	// disabled or failed.
	Audit *Audit `json:"audit,omitempty" yaml:"audit,omitempty"`

	// Error is the message of the error that aborted the run.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Warning is one row of SHOW WARNINGS.
type Warning struct {
	Level   string `json:"level" yaml:"level"`
	Code    int    `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Audit summarizes the source file as the server is going to see it:
// lines split on '\n', fields split on ',' with no quoting.
type Audit struct {
	// Lines is the total number of lines including the header.
	Lines int64 `json:"lines" yaml:"lines"`

	// DataLines is the number of lines after the header.
	DataLines int64 `json:"dataLines" yaml:"data_lines"`

	// BlankLines are empty data lines.
	BlankLines int64 `json:"blankLines" yaml:"blank_lines"`

	// FieldMismatch counts non-blank data lines whose number of fields
	// differs from the number of table columns.
	FieldMismatch int64 `json:"fieldMismatch" yaml:"field_mismatch"`

	// InvalidUTF8 counts data lines that are not valid UTF-8.
	InvalidUTF8 int64 `json:"invalidUtf8" yaml:"invalid_utf8"`

	// CRLF counts lines terminated by "\r\n". The '\r' ends up in the
	// last column.
	CRLF int64 `json:"crlf" yaml:"crlf"`

	// Header is the first line split into fields.
	Header []string `json:"header" yaml:"header"`

	// HeaderMatches is true when the header names equal the table
	// columns in the same order.
	HeaderMatches bool `json:"headerMatches" yaml:"header_matches"`
}

// New starts a report for a run.
func New(table string) *Report {
	return &Report{
		RunID:     uuid.New().String(),
		Table:     table,
		StartedAt: time.Now(),
	}
}

// Finish closes the report with the result of the run.
func (r *Report) Finish(err error) {
	r.FinishedAt = time.Now()
	if err != nil {
		r.Status = StatusFailed
		r.Error = err.Error()
		return
	}
	r.Status = StatusSuccess
	r.computeSkipped()
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Audited is true if the source was scanned on the client.
func (r *Report) Audited() bool {
	return r.Audit != nil
}

func (r *Report) computeSkipped() {
	if r.Audit == nil {
		return
	}
	r.Skipped = max(r.Audit.DataLines-r.Loaded, 0)
}
