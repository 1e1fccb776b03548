package main

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/ArrisFramework/measure/export"
	"github.com/ArrisFramework/measure/format"
	"github.com/ArrisFramework/measure/measure"
	"github.com/ArrisFramework/measure/probe"
	"github.com/ArrisFramework/measure/workload"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [workload...]",
		Short: "Measure workloads against a store",
		Long: fmt.Sprintf(`Load the store, then measure each workload for the configured number of
iterations. Workloads: %s. Stores: %s.`, kindNames(), strings.Join(workload.Stores(), ", ")),
		RunE: a.run,
	}

	f := cmd.Flags()
	f.IntP("iterations", "n", 5, "iterations per workload")
	f.Bool("retain", true, "keep per-iteration samples")
	f.Bool("show-result", false, "print the value each workload returned")
	f.String("store", workload.StoreMemory, "store to measure")
	f.String("dir", "", "pebble data directory (in memory when empty)")
	f.Int("ops", 100000, "operations per iteration")
	f.Uint64("seed", 1, "key generator seed")
	f.String("csv", "", "write samples as CSV to this file")
	f.String("chart", "", "write a timeline chart to this file (png, svg, pdf)")
	bindFlags(a.v, f, map[string]string{
		"iterations":  "iterations",
		"retain":      "retain",
		"show_result": "show-result",
		"store":       "store",
		"dir":         "dir",
		"ops":         "ops",
		"seed":        "seed",
		"csv":         "csv",
		"chart":       "chart",
	})
	return cmd
}

func kindNames() string {
	names := make([]string, 0, len(workload.Kinds()))
	for _, k := range workload.Kinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	cfg := a.cfg
	if len(args) > 0 {
		cfg.Workloads = args
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	store, err := workload.Open(cfg.Store, cfg.Dir)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			a.log.Warn("close store", zap.Error(err))
		}
	}()

	p := probe.New(probe.WithLogger(a.log))
	meter := measure.NewMeter(measure.WithProbe(p), measure.WithLogger(a.log))
	f := a.formatter()
	out := cmd.OutOrStdout()

	a.log.Debug("starting run",
		zap.String("store", cfg.Store),
		zap.String("probe", p.Source()),
		zap.Int("ops", cfg.Ops),
		zap.Int("iterations", cfg.Iterations))

	// Read and scan mixes need a populated key space.
	if _, err := workload.Mix(store, workload.Load, cfg.Ops, cfg.Seed)(); err != nil {
		return errors.Wrap(err, "preload store")
	}

	var (
		timeline []format.Entry
		samples  []measure.Sample
	)
	for _, kind := range cfg.Kinds() {
		st, err := meter.MeasureMultiple(workload.Mix(store, kind, cfg.Ops, cfg.Seed), cfg.Iterations, cfg.Retain)
		if err != nil {
			return errors.Wrapf(err, "workload %s", kind)
		}

		if len(st.Samples) > 0 {
			fastest := slices.MinFunc(st.Samples, func(x, y measure.Sample) int {
				return cmp.Compare(x.Elapsed, y.Elapsed)
			})
			fastest.Name = kind.Label()
			fmt.Fprint(out, f.Result(fastest, cfg.Separator, cfg.ShowResult))
			for _, s := range st.Samples {
				s.Name = string(kind) + "/" + s.Name
				samples = append(samples, s)
			}
		}
		fmt.Fprint(out, f.Stats(st))
		fmt.Fprintln(out)

		avg := averageSample(kind, st)
		timeline = append(timeline, format.Entry{Name: avg.Name, Sample: avg})
		if len(st.Samples) == 0 {
			samples = append(samples, avg)
		}
	}

	fmt.Fprintln(out, f.Timeline(timeline))

	if cfg.CSVPath != "" {
		if err := writeFile(cfg.CSVPath, func(w io.Writer) error { return export.WriteCSV(w, samples) }); err != nil {
			return err
		}
		a.log.Info("csv written", zap.String("path", cfg.CSVPath), zap.Int("rows", len(samples)))
	}
	if cfg.ChartPath != "" {
		opts := export.ChartOptions{
			Language: cfg.Language,
			Format:   strings.TrimPrefix(filepath.Ext(cfg.ChartPath), "."),
		}
		if err := writeFile(cfg.ChartPath, func(w io.Writer) error { return export.WriteChart(w, timeline, opts) }); err != nil {
			return err
		}
		a.log.Info("chart written", zap.String("path", cfg.ChartPath))
	}
	return nil
}

// averageSample folds stats into a single sample for the timeline.
func averageSample(kind workload.Kind, st measure.Stats) measure.Sample {
	return measure.Sample{
		Name:        kind.Label(),
		Elapsed:     time.Duration(st.AverageTimeNs),
		MemoryDelta: int64(st.AverageMemoryBytes),
	}
}

func writeFile(path string, write func(io.Writer) error) error {
	fh, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := write(fh); err != nil {
		_ = fh.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(fh.Close(), "close %s", path)
}
