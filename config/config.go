// Package config loads run configuration for the classifier pipeline.
//
// Sources, lowest priority first:
//  1. defaults in code (Default)
//  2. an optional YAML file
//  3. FCG_* environment variables
//
// The merged result is checked with validator/v10 struct tags and then with
// cross-field rules; all violations are reported together.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"

	"github.com/katalvlaran/fcgraph/classifier"
	"github.com/katalvlaran/fcgraph/ingest"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the complete run configuration.
type Config struct {
	Ingest     Ingest            `yaml:"ingest"`
	Classifier classifier.Config `yaml:"classifier"`
	Log        Log               `yaml:"log"`
	Metrics    Metrics           `yaml:"metrics"`
}

// Ingest configures corpus segmentation.
type Ingest struct {
	Strategy         string `yaml:"strategy" validate:"oneof=auto boundary blank-line separator fixed-chunk"`
	ExpectedGraphs   int    `yaml:"expected_graphs" validate:"gte=0"`
	Separator        string `yaml:"separator" validate:"required"`
	RecoveryMinLines int    `yaml:"recovery_min_lines" validate:"gte=0"`
}

// Log configures the zap logger.
type Log struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"oneof=console json"`
}

// Metrics configures the Prometheus textfile export.
type Metrics struct {
	// Textfile, when set, receives the run's metrics in text exposition format.
	Textfile string `yaml:"textfile"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Ingest: Ingest{
			Strategy:         string(ingest.StrategyAuto),
			Separator:        "---",
			RecoveryMinLines: 100,
		},
		Classifier: classifier.DefaultConfig(),
		Log:        Log{Level: "info", Format: "console"},
	}
}

var validate = validator.New()

// Validate checks struct tags and cross-field rules and returns every
// violation, each wrapping ErrInvalid.
func (c Config) Validate() error {
	var err error
	if verr := validate.Struct(c); verr != nil {
		var fields validator.ValidationErrors
		if errors.As(verr, &fields) {
			for _, f := range fields {
				err = multierr.Append(err, fmt.Errorf("%w: %s fails %q (value %v)",
					ErrInvalid, f.Namespace(), f.Tag(), f.Value()))
			}
		} else {
			err = multierr.Append(err, fmt.Errorf("%w: %w", ErrInvalid, verr))
		}
	}
	if c.Ingest.Strategy == string(ingest.StrategyFixedChunk) && c.Ingest.ExpectedGraphs == 0 {
		err = multierr.Append(err, fmt.Errorf("%w: ingest.expected_graphs must be > 0 for fixed-chunk", ErrInvalid))
	}
	if cerr := c.Classifier.Validate(); cerr != nil {
		err = multierr.Append(err, fmt.Errorf("%w: %w", ErrInvalid, cerr))
	}

	return err
}

// IngestOptions translates the ingest section into ingest options.
func (c Config) IngestOptions() []ingest.Option {
	return []ingest.Option{
		ingest.WithStrategy(ingest.Strategy(c.Ingest.Strategy)),
		ingest.WithExpectedGraphs(c.Ingest.ExpectedGraphs),
		ingest.WithSeparator(c.Ingest.Separator),
		ingest.WithRecoveryMinLines(c.Ingest.RecoveryMinLines),
	}
}
