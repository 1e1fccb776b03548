// Package probe reads the memory footprint of the running process.
//
// A Probe prefers an OS-reported resident set size and degrades to the Go
// runtime's heap figure when no precise source is available. Degradation is
// never an error.
package probe

import (
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Probe answers current and peak memory questions for the process.
//
// PeakMemory is process-wide: when several measurements run concurrently in
// one process the peak cannot be attributed to any one of them.
type Probe struct {
	source   Source
	fallback Source
	log      *zap.Logger

	peak     atomic.Uint64
	degraded sync.Once
}

// Option configures a Probe.
type Option func(*Probe)

// WithSources overrides source detection. The first source is used; an empty
// list leaves only the runtime fallback.
func WithSources(sources ...Source) Option {
	return func(p *Probe) {
		p.source = nil
		if len(sources) > 0 {
			p.source = sources[0]
		}
	}
}

// WithLogger sets the logger used for source selection and fallback events.
func WithLogger(l *zap.Logger) Option {
	return func(p *Probe) {
		if l != nil {
			p.log = l
		}
	}
}

// New returns a Probe using the most precise detected source.
func New(opts ...Option) *Probe {
	p := &Probe{
		fallback: Runtime{},
		log:      zap.NewNop(),
	}
	if detected := Detect(); len(detected) > 0 {
		p.source = detected[0]
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log.Debug("memory probe ready", zap.String("source", p.Source()))
	return p
}

// Source names the source CurrentMemory reads from.
func (p *Probe) Source() string {
	if p.source == nil {
		return p.fallback.Name()
	}
	return p.source.Name()
}

// CurrentMemory returns the resident memory of the process in bytes.
func (p *Probe) CurrentMemory() uint64 {
	if p.source != nil {
		n, err := p.source.Resident()
		if err == nil {
			return n
		}
		p.degraded.Do(func() {
			p.log.Debug("memory source unavailable, using runtime figure",
				zap.String("source", p.source.Name()), zap.Error(err))
		})
	}
	n, _ := p.fallback.Resident()
	return n
}

// PeakMemory returns the largest amount of memory the runtime has obtained
// from the OS so far. It never decreases for the lifetime of the process.
func (p *Probe) PeakMemory() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	for {
		old := p.peak.Load()
		if m.Sys <= old {
			return old
		}
		if p.peak.CompareAndSwap(old, m.Sys) {
			return m.Sys
		}
	}
}

// ResetTransientState runs a full collection and returns freed memory to the
// OS so that garbage left by earlier work does not skew the next reading.
// This may pause the caller for a time proportional to outstanding garbage.
func (p *Probe) ResetTransientState() {
	debug.FreeOSMemory()
}
