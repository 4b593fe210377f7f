package recorder

import "BandSentinel/internal/model"

// RunRecord couples one run's deterministic report with its run identity.
// The report itself carries no id or timestamp so that identical inputs
// produce identical bytes; identity lives here, at the persistence boundary.
type RunRecord struct {
	RunID  string
	Report *model.Report
}

// Recorder persists run history for later audit and dashboarding.
type Recorder interface {
	RecordRun(run *RunRecord) error
	Close() error
}

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ *RunRecord) error { return nil }
func (n *NoopRecorder) Close() error                 { return nil }
