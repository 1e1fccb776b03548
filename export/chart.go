package export

import (
	"io"

	"github.com/ArrisFramework/measure/format"
	"github.com/ArrisFramework/measure/locale"
	"github.com/cockroachdb/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("no samples to chart")

// ChartOptions controls the rendered image.
type ChartOptions struct {
	Language string
	Width    vg.Length
	Height   vg.Length
	// Format is an image format understood by gonum/plot: png, svg, pdf...
	Format string
}

func (o ChartOptions) withDefaults() ChartOptions {
	if o.Width <= 0 {
		o.Width = 6 * vg.Inch
	}
	if o.Height <= 0 {
		o.Height = 4 * vg.Inch
	}
	if o.Format == "" {
		o.Format = "png"
	}
	o.Language = locale.Resolve(o.Language)
	return o
}

// WriteChart draws the timeline entries as a bar chart of elapsed
// milliseconds and writes the image to w.
func WriteChart(w io.Writer, entries []format.Entry, opts ChartOptions) error {
	if len(entries) == 0 {
		return ErrNoData
	}
	opts = opts.withDefaults()

	values := make(plotter.Values, len(entries))
	names := make([]string, len(entries))
	for i, e := range entries {
		values[i] = e.Sample.TimeMs()
		names[i] = e.Name
	}

	p := plot.New()
	p.Title.Text = locale.Translate(opts.Language, "timeline")
	p.Y.Label.Text = locale.Translate(opts.Language, "time") + ", " + locale.TranslateUnit(opts.Language, "ms")

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return errors.Wrap(err, "chart: bars")
	}
	p.Add(bars)
	p.NominalX(names...)

	wt, err := p.WriterTo(opts.Width, opts.Height, opts.Format)
	if err != nil {
		return errors.Wrap(err, "chart: render")
	}
	_, err = wt.WriteTo(w)
	return errors.Wrap(err, "chart: write")
}
