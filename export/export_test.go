package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/ArrisFramework/measure/format"
	"github.com/ArrisFramework/measure/measure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samples = []measure.Sample{
	{Name: "load", Elapsed: 12 * time.Millisecond, MemoryDelta: 4096, PeakMemory: 1 << 20},
	{Name: "scan, wide", Elapsed: 3 * time.Millisecond, MemoryDelta: -512, PeakMemory: 1 << 21},
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, samples))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{"load", "12000000", "4096", "1048576"}, rows[1])
	assert.Equal(t, []string{"scan, wide", "3000000", "-512", "2097152"}, rows[2])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "Name,TimeNs,MemoryDeltaBytes,PeakMemoryBytes\n", buf.String())
}

func TestWriteChartPNG(t *testing.T) {
	var buf bytes.Buffer
	err := WriteChart(&buf, format.TimelineOf(samples), ChartOptions{Language: "ru"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), "png signature")
}

func TestWriteChartSVG(t *testing.T) {
	var buf bytes.Buffer
	err := WriteChart(&buf, format.TimelineOf(samples), ChartOptions{Format: "svg"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<svg")
}

func TestWriteChartEmpty(t *testing.T) {
	err := WriteChart(&bytes.Buffer{}, nil, ChartOptions{})
	assert.ErrorIs(t, err, ErrNoData)
}
