// Package measure times units of work and samples the memory they use.
//
// A Meter runs work synchronously on the calling goroutine. It keeps no
// state between calls, but the memory figures it reads are process-wide:
// running several measurements concurrently in one process gives memory
// deltas and peaks that cannot be attributed to a single run.
package measure

import (
	"fmt"
	"time"

	"github.com/ArrisFramework/measure/probe"
	"go.uber.org/zap"
)

// MemoryProbe is the memory capability a Meter samples through.
type MemoryProbe interface {
	CurrentMemory() uint64
	PeakMemory() uint64
	ResetTransientState()
}

// Clock supplies timestamps. The default reads time.Now, whose readings
// carry the monotonic clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Meter measures units of work.
type Meter struct {
	probe MemoryProbe
	clock Clock
	log   *zap.Logger
}

// Option configures a Meter.
type Option func(*Meter)

// WithProbe replaces the default memory probe.
func WithProbe(p MemoryProbe) Option {
	return func(m *Meter) { m.probe = p }
}

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(m *Meter) { m.clock = c }
}

// WithLogger sets the logger samples are reported to at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(m *Meter) {
		if l != nil {
			m.log = l
		}
	}
}

// NewMeter returns a Meter. Without WithProbe it builds a probe.Probe using
// the most precise memory source the host offers.
func NewMeter(opts ...Option) *Meter {
	m := &Meter{
		clock: systemClock{},
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.probe == nil {
		m.probe = probe.New(probe.WithLogger(m.log))
	}
	return m
}

// Measure runs work once and returns its sample. If work fails, its error is
// returned as is and no sample is produced.
//
// Transient memory is reclaimed before the clock starts, which may pause the
// caller briefly.
func (m *Meter) Measure(work Work, name string) (Sample, error) {
	if work == nil {
		return Sample{}, invalidArgument("work must not be nil")
	}

	m.probe.ResetTransientState()

	start := m.clock.Now()
	startMem := m.probe.CurrentMemory()

	result, err := work()

	end := m.clock.Now()
	endMem := m.probe.CurrentMemory()

	if err != nil {
		return Sample{}, err
	}

	elapsed := end.Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}
	s := Sample{
		Result:      result,
		Elapsed:     elapsed,
		MemoryDelta: int64(endMem) - int64(startMem),
		PeakMemory:  m.probe.PeakMemory(),
		Name:        name,
	}
	m.log.Debug("measured",
		zap.String("name", name),
		zap.Duration("elapsed", s.Elapsed),
		zap.Int64("memory_delta", s.MemoryDelta),
		zap.Uint64("peak_memory", s.PeakMemory))
	return s, nil
}

// MeasureMultiple runs work iterations times, one after another, and reduces
// the samples. The first failing run aborts the whole aggregation and its
// error is returned unchanged. When retain is false the per-run samples are
// dropped after reduction.
func (m *Meter) MeasureMultiple(work Work, iterations int, retain bool) (Stats, error) {
	if iterations < 1 {
		return Stats{}, invalidArgument("iterations must be >= 1, got %d", iterations)
	}
	if work == nil {
		return Stats{}, invalidArgument("work must not be nil")
	}

	samples := make([]Sample, 0, iterations)
	for i := 0; i < iterations; i++ {
		s, err := m.Measure(work, fmt.Sprintf("Iteration %d", i))
		if err != nil {
			return Stats{}, err
		}
		samples = append(samples, s)
	}

	st, err := Reduce(samples)
	if err != nil {
		return Stats{}, err
	}
	if retain {
		st.Samples = samples
	}
	return st, nil
}
