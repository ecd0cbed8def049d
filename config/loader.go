// File: loader.go
// Role: YAML and environment sources layered over Default.

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvStrategy         = "FCG_STRATEGY"
	EnvExpectedGraphs   = "FCG_EXPECTED_GRAPHS"
	EnvSeparator        = "FCG_SEPARATOR"
	EnvRecoveryMinLines = "FCG_RECOVERY_MIN_LINES"
	EnvEstimators       = "FCG_ESTIMATORS"
	EnvSeed             = "FCG_SEED"
	EnvWorkers          = "FCG_WORKERS"
	EnvLogLevel         = "FCG_LOG_LEVEL"
	EnvLogFormat        = "FCG_LOG_FORMAT"
	EnvMetricsTextfile  = "FCG_METRICS_TEXTFILE"
)

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the process environment, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: open %s: %w", path, err)
		}
		defer f.Close()
		if err := DecodeYAML(f, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// DecodeYAML overlays the YAML document in r onto cfg. Keys absent from the
// document keep their current values; unknown keys are rejected. An empty
// document is not an error.
func DecodeYAML(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode yaml: %w", err)
	}

	return nil
}

// ApplyEnv overlays FCG_* variables found by lookup. Malformed numbers are
// collected and returned together; well-formed values are still applied.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var err error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, set func(int64)) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return
		}
		n, perr := strconv.ParseInt(v, 10, 64)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, key, v))
			return
		}
		set(n)
	}

	str(EnvStrategy, &c.Ingest.Strategy)
	num(EnvExpectedGraphs, func(n int64) { c.Ingest.ExpectedGraphs = int(n) })
	str(EnvSeparator, &c.Ingest.Separator)
	num(EnvRecoveryMinLines, func(n int64) { c.Ingest.RecoveryMinLines = int(n) })
	num(EnvEstimators, func(n int64) { c.Classifier.Estimators = int(n) })
	num(EnvSeed, func(n int64) { c.Classifier.Seed = n })
	num(EnvWorkers, func(n int64) { c.Classifier.Workers = int(n) })
	str(EnvLogLevel, &c.Log.Level)
	str(EnvLogFormat, &c.Log.Format)
	str(EnvMetricsTextfile, &c.Metrics.Textfile)

	return err
}
