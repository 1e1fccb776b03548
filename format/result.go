package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/ArrisFramework/measure/measure"
)

const ruleWidth = 50

// Result renders one sample as a block of lines ending in a rule. The lines
// are always joined by a newline; separator is appended once after the rule
// and is what sits between blocks when a caller concatenates several.
func (f Formatter) Result(s measure.Sample, separator string, showResult bool) string {
	lines := make([]string, 0, 6)
	if s.Name != "" {
		lines = append(lines, fmt.Sprintf("%s: %s", f.t("test"), s.Name))
	}
	if showResult {
		lines = append(lines, fmt.Sprintf(" - %s: %s", f.t("result"), describe(s.Result)))
	}
	lines = append(lines,
		fmt.Sprintf(" - %s: %s", f.t("time"), f.Time(s.TimeMs())),
		fmt.Sprintf(" - %s: %s", f.t("memory_used"), f.Memory(s.MemoryDelta)),
		fmt.Sprintf(" - %s: %s", f.t("peak_memory"), f.memory(float64(s.PeakMemory), f.MemoryPrecision)),
		strings.Repeat("-", ruleWidth),
	)
	return strings.Join(lines, "\n") + separator
}

// Stats renders aggregate statistics in the same block layout as Result.
func (f Formatter) Stats(st measure.Stats) string {
	lines := []string{
		fmt.Sprintf("%s: %d", f.t("iterations"), st.Iterations),
		fmt.Sprintf(" - %s: %s", f.t("average_time"), f.Time(st.AverageTimeNs/1e6)),
		fmt.Sprintf(" - %s: %s", f.t("min_time"), f.Time(float64(st.MinTimeNs)/1e6)),
		fmt.Sprintf(" - %s: %s", f.t("max_time_stat"), f.Time(float64(st.MaxTimeNs)/1e6)),
		fmt.Sprintf(" - %s: %s", f.t("average_memory"), f.memory(math.Round(st.AverageMemoryBytes), f.MemoryPrecision)),
		fmt.Sprintf(" - %s: %s", f.t("min_memory"), f.Memory(st.MinMemoryBytes)),
		fmt.Sprintf(" - %s: %s", f.t("max_memory"), f.Memory(st.MaxMemoryBytes)),
		strings.Repeat("-", ruleWidth),
	}
	return strings.Join(lines, "\n") + "\n"
}

// Benchmark measures work once and renders the sample.
func (f Formatter) Benchmark(m *measure.Meter, work measure.Work, name, separator string) (string, error) {
	s, err := m.Measure(work, name)
	if err != nil {
		return "", err
	}
	return f.Result(s, separator, false), nil
}
