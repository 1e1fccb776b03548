package measure

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Reduce computes min, max and mean elapsed time and memory delta over
// samples. The returned Stats does not hold on to samples.
func Reduce(samples []Sample) (Stats, error) {
	if len(samples) == 0 {
		return Stats{}, invalidArgument("cannot reduce an empty sample set")
	}

	times := make([]float64, len(samples))
	mems := make([]float64, len(samples))
	st := Stats{
		MinTimeNs:      samples[0].TimeNs(),
		MaxTimeNs:      samples[0].TimeNs(),
		MinMemoryBytes: samples[0].MemoryDelta,
		MaxMemoryBytes: samples[0].MemoryDelta,
		Iterations:     len(samples),
	}
	for i, s := range samples {
		t := s.TimeNs()
		st.MinTimeNs = min(st.MinTimeNs, t)
		st.MaxTimeNs = max(st.MaxTimeNs, t)
		st.MinMemoryBytes = min(st.MinMemoryBytes, s.MemoryDelta)
		st.MaxMemoryBytes = max(st.MaxMemoryBytes, s.MemoryDelta)
		times[i] = float64(t)
		mems[i] = float64(s.MemoryDelta)
	}

	// Float summation can land a hair outside [min, max] for large values.
	st.AverageTimeNs = clamp(stat.Mean(times, nil), float64(st.MinTimeNs), float64(st.MaxTimeNs))
	st.AverageMemoryBytes = clamp(stat.Mean(mems, nil), float64(st.MinMemoryBytes), float64(st.MaxMemoryBytes))
	return st, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
