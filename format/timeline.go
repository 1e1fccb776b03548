package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/ArrisFramework/measure/measure"
)

const (
	barWidth  = 50
	nameWidth = 15
	barFill   = "█"
)

// Entry is one named row of a timeline.
type Entry struct {
	Name   string
	Sample measure.Sample
}

// TimelineOf builds entries from samples, using each sample's name.
func TimelineOf(samples []measure.Sample) []Entry {
	out := make([]Entry, len(samples))
	for i, s := range samples {
		out[i] = Entry{Name: s.Name, Sample: s}
	}
	return out
}

// Timeline draws one bar per entry, in order, scaled against the slowest
// entry. Any entry that took time gets at least one filled cell.
func (f Formatter) Timeline(entries []Entry) string {
	if len(entries) == 0 {
		return f.t("no_measurements")
	}

	var maxNs int64
	for _, e := range entries {
		maxNs = max(maxNs, e.Sample.TimeNs())
	}

	ms := f.u("ms")
	rule := strings.Repeat("-", barWidth+20) + "\n"

	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", f.t("timeline"))
	b.WriteString(rule)
	for _, e := range entries {
		n := barLength(e.Sample.TimeNs(), maxNs)
		fmt.Fprintf(&b, "%-*s %5.2f %s |%s%s|\n",
			nameWidth, truncate(e.Name, nameWidth),
			e.Sample.TimeMs(), ms,
			strings.Repeat(barFill, n), strings.Repeat(" ", barWidth-n))
	}
	b.WriteString(rule)
	fmt.Fprintf(&b, "%s: %.2f %s\n", f.t("max_time"), float64(maxNs)/1e6, ms)
	return b.String()
}

func barLength(ns, maxNs int64) int {
	if ns <= 0 || maxNs <= 0 {
		return 0
	}
	n := int(math.Round(float64(ns) / float64(maxNs) * barWidth))
	return min(max(n, 1), barWidth)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
