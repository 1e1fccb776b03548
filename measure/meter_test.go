package measure

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProbe struct {
	readings []uint64
	next     int
	peak     uint64
	resets   int
}

func (p *fakeProbe) CurrentMemory() uint64 {
	if len(p.readings) == 0 {
		return 0
	}
	v := p.readings[p.next%len(p.readings)]
	p.next++
	return v
}

func (p *fakeProbe) PeakMemory() uint64  { return p.peak }
func (p *fakeProbe) ResetTransientState() { p.resets++ }

// stepClock advances by the next duration in steps on every second call, so
// each Measure sees exactly one step as its elapsed time.
type stepClock struct {
	now   time.Time
	steps []time.Duration
	calls int
}

func (c *stepClock) Now() time.Time {
	if c.calls%2 == 1 {
		c.now = c.now.Add(c.steps[(c.calls/2)%len(c.steps)])
	}
	c.calls++
	return c.now
}

func newTestMeter(p *fakeProbe, steps ...time.Duration) *Meter {
	if len(steps) == 0 {
		steps = []time.Duration{time.Millisecond}
	}
	return NewMeter(WithProbe(p), WithClock(&stepClock{now: time.Unix(0, 0), steps: steps}))
}

func TestMeasure(t *testing.T) {
	p := &fakeProbe{readings: []uint64{1000, 5096}, peak: 1 << 20}
	m := newTestMeter(p, 1500*time.Microsecond)

	s, err := m.Measure(Value(func() int { return 42 }), "answer")
	require.NoError(t, err)

	assert.Equal(t, 42, s.Result)
	assert.Equal(t, int64(1_500_000), s.TimeNs())
	assert.InDelta(t, 1.5, s.TimeMs(), 1e-9)
	assert.Equal(t, int64(4096), s.MemoryDelta)
	assert.Equal(t, uint64(1<<20), s.PeakMemory)
	assert.Equal(t, "answer", s.Name)
	assert.Equal(t, 1, p.resets, "transient state is reset before each run")
}

func TestMeasureNegativeDelta(t *testing.T) {
	p := &fakeProbe{readings: []uint64{8192, 4096}}
	m := newTestMeter(p)

	s, err := m.Measure(Func(func() {}), "")
	require.NoError(t, err)
	assert.Equal(t, int64(-4096), s.MemoryDelta)
	assert.Nil(t, s.Result)
}

func TestMeasureRunsWorkOnce(t *testing.T) {
	calls := 0
	m := newTestMeter(&fakeProbe{})
	_, err := m.Measure(Func(func() { calls++ }), "once")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestMeasurePropagatesWorkError(t *testing.T) {
	boom := errors.New("boom")
	m := newTestMeter(&fakeProbe{})

	s, err := m.Measure(func() (any, error) { return "partial", boom }, "fails")
	assert.Same(t, boom, err, "the workload error is returned untouched")
	assert.Equal(t, Sample{}, s)
}

func TestMeasureNilWork(t *testing.T) {
	m := newTestMeter(&fakeProbe{})
	_, err := m.Measure(nil, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBind(t *testing.T) {
	m := newTestMeter(&fakeProbe{})
	square := func(n int) (int, error) { return n * n, nil }

	s, err := m.Measure(Bind(square, 12), "square")
	require.NoError(t, err)
	assert.Equal(t, 144, s.Result)
}

func TestMeasureWithRealProbe(t *testing.T) {
	m := NewMeter()
	s, err := m.Measure(Value(func() []byte { return make([]byte, 1<<20) }), "alloc")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, s.TimeNs(), int64(0))
	assert.Greater(t, s.PeakMemory, uint64(0))
}

func TestMeasureMultipleRetain(t *testing.T) {
	steps := []time.Duration{3 * time.Millisecond, 1 * time.Millisecond, 5 * time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond}
	p := &fakeProbe{readings: []uint64{0, 100, 0, 300, 0, 200, 0, 500, 0, 400}}
	m := newTestMeter(p, steps...)

	n := 0
	st, err := m.MeasureMultiple(Value(func() int { n++; return n }), 5, true)
	require.NoError(t, err)

	require.Len(t, st.Samples, 5)
	for i, s := range st.Samples {
		assert.Equal(t, i+1, s.Result, "samples are kept in call order")
		assert.Equal(t, "Iteration "+string(rune('0'+i)), s.Name)
	}
	assert.Equal(t, 5, st.Iterations)
	assert.Equal(t, int64(time.Millisecond), st.MinTimeNs)
	assert.Equal(t, int64(5*time.Millisecond), st.MaxTimeNs)
	assert.InDelta(t, float64(3*time.Millisecond), st.AverageTimeNs, 1e-6)
	assert.Equal(t, int64(100), st.MinMemoryBytes)
	assert.Equal(t, int64(500), st.MaxMemoryBytes)
	assert.InDelta(t, 300.0, st.AverageMemoryBytes, 1e-9)
}

func TestMeasureMultipleWithoutRetainMatches(t *testing.T) {
	steps := []time.Duration{3 * time.Millisecond, 1 * time.Millisecond, 5 * time.Millisecond}
	readings := []uint64{0, 10, 0, 30, 0, 20}
	work := Value(func() string { return "x" })

	kept, err := newTestMeter(&fakeProbe{readings: readings}, steps...).MeasureMultiple(work, 3, true)
	require.NoError(t, err)
	dropped, err := newTestMeter(&fakeProbe{readings: readings}, steps...).MeasureMultiple(work, 3, false)
	require.NoError(t, err)

	assert.Nil(t, dropped.Samples)
	kept.Samples = nil
	assert.Equal(t, kept, dropped)
}

func TestMeasureMultipleInvalidIterations(t *testing.T) {
	for _, n := range []int{0, -1} {
		calls := 0
		m := newTestMeter(&fakeProbe{})
		_, err := m.MeasureMultiple(Func(func() { calls++ }), n, true)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Contains(t, err.Error(), "iterations")
		assert.Zero(t, calls, "work must not run")
	}
}

func TestMeasureMultipleFailsFast(t *testing.T) {
	boom := errors.New("second run failed")
	calls := 0
	work := func() (any, error) {
		calls++
		if calls == 2 {
			return nil, boom
		}
		return calls, nil
	}

	m := newTestMeter(&fakeProbe{})
	st, err := m.MeasureMultiple(work, 5, true)
	assert.Same(t, boom, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, Stats{}, st)
}
