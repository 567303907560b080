// Package metrics records search and job statistics.
package metrics

import "time"

// Collector receives observations from the search loop and the HTTP service.
//
// Implementations must be safe for concurrent use: trials report from
// worker goroutines.
type Collector interface {
	// RecordTrial records one finished trial and its score.
	RecordTrial(score float64, duration time.Duration)

	// RecordImprovement records a new best score within a run.
	RecordImprovement(score float64)

	// RecordRun records a finished (or cancelled) search run.
	RecordRun(duration time.Duration, trials int, cancelled bool)

	// RecordJob records a job state change in the HTTP service
	// ("in progress", "success", "failed").
	RecordJob(status string)
}

// NopMetrics discards everything.
type NopMetrics struct{}

var _ Collector = (*NopMetrics)(nil)

func NewNop() *NopMetrics {
	return &NopMetrics{}
}

func (n *NopMetrics) RecordTrial(float64, time.Duration) {}
func (n *NopMetrics) RecordImprovement(float64) {}
func (n *NopMetrics) RecordRun(time.Duration, int, bool) {}
func (n *NopMetrics) RecordJob(string) {}
