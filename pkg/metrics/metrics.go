// Package metrics records service measurements.
package metrics

import "time"

// Generation outcome labels.
const (
	OutcomeGenerated        = "generated"
	OutcomeConflict         = "conflict"
	OutcomeInsufficientData = "insufficient_data"
	OutcomeValidation       = "validation"
	OutcomeNotFound         = "not_found"
	OutcomeError            = "error"
)

// Recorder receives service measurements.
type Recorder interface {
	// RecordGeneration records one generation attempt for a group.
	//
	// Parameters:
	//   - outcome: one of the Outcome* labels
	//   - pairs: number of assignments produced (0 unless generated)
	//   - elapsed: wall time spent in the attempt
	RecordGeneration(outcome string, pairs int, elapsed time.Duration)

	// RecordRequest records one finished HTTP request.
	RecordRequest(method, route string, status int, elapsed time.Duration)
}

// Nop discards every measurement.
type Nop struct{}

// NewNop returns a Recorder that does nothing.
func NewNop() *Nop { return &Nop{} }

func (*Nop) RecordGeneration(string, int, time.Duration) {}
func (*Nop) RecordRequest(string, string, int, time.Duration) {}

var _ Recorder = (*Nop)(nil)
