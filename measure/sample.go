package measure

import "time"

// Sample is the outcome of one timed execution of a unit of work.
type Sample struct {
	// Result is whatever the work returned. It is kept for display only.
	Result any
	// Elapsed is wall-clock time taken from the monotonic clock.
	Elapsed time.Duration
	// MemoryDelta is end memory minus start memory. It is negative when a
	// collection during the run reclaimed more than the work allocated.
	MemoryDelta int64
	// PeakMemory is the process-wide high-water mark when sampling ended,
	// not the peak of this run alone.
	PeakMemory uint64
	Name       string
}

// TimeNs returns the elapsed time in nanoseconds.
func (s Sample) TimeNs() int64 { return s.Elapsed.Nanoseconds() }

// TimeMs returns the elapsed time in fractional milliseconds.
func (s Sample) TimeMs() float64 { return float64(s.Elapsed.Nanoseconds()) / 1e6 }

// Stats is the reduction of an ordered, non-empty sequence of samples.
type Stats struct {
	AverageTimeNs float64
	MinTimeNs     int64
	MaxTimeNs     int64

	AverageMemoryBytes float64
	MinMemoryBytes     int64
	MaxMemoryBytes     int64

	Iterations int
	// Samples holds every sample in call order when retention was
	// requested, and is nil otherwise.
	Samples []Sample
}
