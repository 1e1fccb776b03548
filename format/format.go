// Package format renders measurements as human-readable text.
//
// A Formatter is an immutable value carrying the language and precision it
// renders with, so it can be shared between goroutines and passed around
// instead of consulting process-wide settings on every call.
package format

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/ArrisFramework/measure/locale"
	"github.com/dustin/go-humanize"
)

const (
	DefaultTimePrecision   = 3
	DefaultMemoryPrecision = 2

	// maxPrecision is the number of decimals humanize keeps before it
	// truncates.
	maxPrecision = 6
)

// Binary size multiples.
const (
	KiB = 1 << 10
	MiB = 1 << 20
	GiB = 1 << 30
)

// Formatter renders times, sizes and samples in one language.
type Formatter struct {
	Language        string
	TimePrecision   int
	MemoryPrecision int
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithLanguage selects the output language. Unsupported tags fall back to
// locale.Default.
func WithLanguage(tag string) Option {
	return func(f *Formatter) { f.Language = locale.Resolve(tag) }
}

// WithTimePrecision sets the decimals kept by Time.
func WithTimePrecision(p int) Option {
	return func(f *Formatter) { f.TimePrecision = clampPrecision(p) }
}

// WithMemoryPrecision sets the decimals kept by Memory.
func WithMemoryPrecision(p int) Option {
	return func(f *Formatter) { f.MemoryPrecision = clampPrecision(p) }
}

// New returns a Formatter in the process-wide language (see
// locale.SetLanguage) with default precisions, adjusted by opts.
func New(opts ...Option) Formatter {
	f := Formatter{
		Language:        locale.Current(),
		TimePrecision:   DefaultTimePrecision,
		MemoryPrecision: DefaultMemoryPrecision,
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// Default is New with no options.
func Default() Formatter { return New() }

func (f Formatter) t(key string) string { return locale.Translate(f.Language, key) }
func (f Formatter) u(unit string) string { return locale.TranslateUnit(f.Language, unit) }

// Time renders a duration given in milliseconds. Values below 1 ms are shown
// in microseconds, values below 1000 ms in milliseconds, the rest in seconds.
func (f Formatter) Time(ms float64) string {
	switch {
	case ms < 1:
		return number(ms*1000, f.TimePrecision) + " " + f.u("μs")
	case ms < 1000:
		return number(ms, f.TimePrecision) + " " + f.u("ms")
	default:
		return number(ms/1000, f.TimePrecision) + " " + f.u("sec")
	}
}

// Memory renders a byte count with the Formatter's memory precision.
func (f Formatter) Memory(bytes int64) string {
	return f.MemoryWithPrecision(bytes, f.MemoryPrecision)
}

// MemoryWithPrecision renders a byte count using binary multiples. Counts
// under 1 KiB are printed as a plain integer. Negative counts keep their sign.
func (f Formatter) MemoryWithPrecision(bytes int64, precision int) string {
	return f.memory(float64(bytes), clampPrecision(precision))
}

func (f Formatter) memory(v float64, precision int) string {
	switch mag := math.Abs(v); {
	case mag >= GiB:
		return number(v/GiB, precision) + " " + f.u("gb")
	case mag >= MiB:
		return number(v/MiB, precision) + " " + f.u("mb")
	case mag >= KiB:
		return number(v/KiB, precision) + " " + f.u("kb")
	case v == math.Trunc(v):
		return strconv.FormatInt(int64(v), 10) + " " + f.u("bytes")
	default:
		return number(v, precision) + " " + f.u("bytes")
	}
}

// number rounds half away from zero and drops trailing zeros.
func number(v float64, precision int) string {
	pow := math.Pow(10, float64(precision))
	r := math.Round(v*pow) / pow
	if r == 0 {
		r = 0 // no "-0"
	}
	return humanize.FtoaWithDigits(r, precision)
}

func clampPrecision(p int) int {
	return min(max(p, 0), maxPrecision)
}

// describe shows scalar values as themselves and anything else by type name.
func describe(v any) string {
	if v == nil {
		return "nil"
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return fmt.Sprint(v)
	default:
		return reflect.TypeOf(v).String()
	}
}
