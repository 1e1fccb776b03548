// Package export writes samples in machine-readable forms: CSV rows for
// spreadsheets and a bar chart image for reports.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/ArrisFramework/measure/measure"
	"github.com/cockroachdb/errors"
)

// Header is the first CSV row written by WriteCSV.
var Header = []string{"Name", "TimeNs", "MemoryDeltaBytes", "PeakMemoryBytes"}

// WriteCSV writes a header row and one row per sample.
func WriteCSV(w io.Writer, samples []measure.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return errors.Wrap(err, "csv: header")
	}
	for _, s := range samples {
		if err := cw.Write(Record(s)); err != nil {
			return errors.Wrapf(err, "csv: row %q", s.Name)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "csv: flush")
}

// Record converts one sample into CSV columns.
func Record(s measure.Sample) []string {
	return []string{
		s.Name,
		strconv.FormatInt(s.TimeNs(), 10),
		strconv.FormatInt(s.MemoryDelta, 10),
		strconv.FormatUint(s.PeakMemory, 10),
	}
}
