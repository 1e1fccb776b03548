package main

import (
	"fmt"
	"os"

	"github.com/ArrisFramework/measure/config"
	"github.com/ArrisFramework/measure/format"
	"github.com/ArrisFramework/measure/locale"
	"github.com/ArrisFramework/measure/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var exit = os.Exit

// app is the state shared by the subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New(), log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "measure",
		Short: "Measure execution time and memory of key/value workloads",
		Long: `measure runs operation mixes against an embedded key/value store and
reports elapsed time, memory delta and peak memory per iteration, with
aggregate statistics and a timeline across mixes.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.log.Sync() },
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ./measure.yaml when present)")
	pf.BoolP("verbose", "v", false, "enable debug logging")
	pf.String("lang", locale.Default, "output language (en, ru)")
	pf.Int("time-precision", format.DefaultTimePrecision, "decimal places for times")
	pf.Int("memory-precision", format.DefaultMemoryPrecision, "decimal places for memory sizes")
	bindFlags(a.v, pf, map[string]string{
		"verbose":          "verbose",
		"language":         "lang",
		"time_precision":   "time-precision",
		"memory_precision": "memory-precision",
	})

	root.AddCommand(newRunCmd(a), newSysinfoCmd(a))
	return root
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Verbose)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	locale.SetLanguage(cfg.Language)
	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debug("config loaded", zap.String("file", used))
	}
	return nil
}

func (a *app) formatter() format.Formatter {
	return format.New(
		format.WithLanguage(a.cfg.Language),
		format.WithTimePrecision(a.cfg.TimePrecision),
		format.WithMemoryPrecision(a.cfg.MemoryPrecision),
	)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}
