// Package config loads CLI settings from defaults, an optional YAML file and
// MEASURE_* environment variables.
package config

import (
	"os"
	"slices"
	"strings"

	"github.com/ArrisFramework/measure/format"
	"github.com/ArrisFramework/measure/locale"
	"github.com/ArrisFramework/measure/workload"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// ErrInvalid marks a configuration that failed validation.
var ErrInvalid = errors.New("invalid configuration")

const envPrefix = "MEASURE"

// Config holds every setting the CLI uses.
type Config struct {
	Language        string   `mapstructure:"language"`
	TimePrecision   int      `mapstructure:"time_precision"`
	MemoryPrecision int      `mapstructure:"memory_precision"`
	Iterations      int      `mapstructure:"iterations"`
	Retain          bool     `mapstructure:"retain"`
	ShowResult      bool     `mapstructure:"show_result"`
	Separator       string   `mapstructure:"separator"`
	Store           string   `mapstructure:"store"`
	Dir             string   `mapstructure:"dir"`
	Ops             int      `mapstructure:"ops"`
	Seed            uint64   `mapstructure:"seed"`
	Workloads       []string `mapstructure:"workloads"`
	CSVPath         string   `mapstructure:"csv"`
	ChartPath       string   `mapstructure:"chart"`
	Verbose         bool     `mapstructure:"verbose"`
}

// New returns a viper instance with defaults and environment binding in
// place. Flags may be bound to it before Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("language", locale.Default)
	v.SetDefault("time_precision", format.DefaultTimePrecision)
	v.SetDefault("memory_precision", format.DefaultMemoryPrecision)
	v.SetDefault("iterations", 5)
	v.SetDefault("retain", true)
	v.SetDefault("show_result", false)
	v.SetDefault("separator", "\n")
	v.SetDefault("store", workload.StoreMemory)
	v.SetDefault("dir", "")
	v.SetDefault("ops", 100000)
	v.SetDefault("seed", 1)
	v.SetDefault("workloads", []string{"load", "oltp", "olap", "reporting"})
	v.SetDefault("csv", "")
	v.SetDefault("chart", "")
	v.SetDefault("verbose", false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path (when set) or ./measure.yaml (when present) into v and
// returns the validated result.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
	} else if _, err := os.Stat("measure.yaml"); err == nil {
		v.SetConfigFile("measure.yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrap(err, "read config measure.yaml")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	cfg.Language = locale.Resolve(cfg.Language)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	if c.Iterations < 1 {
		return errors.Wrapf(ErrInvalid, "iterations must be >= 1, got %d", c.Iterations)
	}
	if c.Ops < 1 {
		return errors.Wrapf(ErrInvalid, "ops must be >= 1, got %d", c.Ops)
	}
	if c.TimePrecision < 0 || c.MemoryPrecision < 0 {
		return errors.Wrapf(ErrInvalid, "precision must not be negative")
	}
	if !slices.Contains(workload.Stores(), c.Store) {
		return errors.Wrapf(ErrInvalid, "store %q (want one of %s)", c.Store, strings.Join(workload.Stores(), ", "))
	}
	if len(c.Workloads) == 0 {
		return errors.Wrap(ErrInvalid, "no workloads selected")
	}
	for _, w := range c.Workloads {
		if _, err := workload.ParseKind(w); err != nil {
			return errors.Wrapf(ErrInvalid, "workload %q", w)
		}
	}
	return nil
}

// Kinds returns the parsed workload kinds. Call after Validate.
func (c Config) Kinds() []workload.Kind {
	out := make([]workload.Kind, 0, len(c.Workloads))
	for _, w := range c.Workloads {
		if k, err := workload.ParseKind(w); err == nil {
			out = append(out, k)
		}
	}
	return out
}
