// Command fcgclassify trains the call-graph ensemble on a labelled corpus and
// writes one predicted family per graph of a test corpus.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/katalvlaran/fcgraph/config"
	"github.com/katalvlaran/fcgraph/logging"
	"github.com/katalvlaran/fcgraph/pipeline"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `fcgclassify - function-call-graph family classifier

Usage:
  fcgclassify -train <corpus> -labels <labels> -test <corpus> [-out <file>] [-config <yaml>]

Settings come from the optional YAML file, then FCG_* environment variables.

Flags:
`)
		flag.PrintDefaults()
	}

	train := flag.String("train", "", "Training corpus (required)")
	lbls := flag.String("labels", "", "Training labels, one per line (required)")
	test := flag.String("test", "", "Test corpus (required)")
	out := flag.String("out", "predictions.txt", "Predictions output file")
	cfgPath := flag.String("config", "", "YAML configuration file")
	flag.Parse()

	if *train == "" || *lbls == "" || *test == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*cfgPath, pipeline.Paths{
		TrainData:   *train,
		TrainLabels: *lbls,
		TestData:    *test,
		Output:      *out,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "fcgclassify: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath string, paths pipeline.Paths) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := pipeline.New(cfg, pipeline.WithLogger(log)).Run(ctx, paths)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("interrupted")
		}
		return err
	}

	fmt.Fprintf(os.Stderr, "trained on %d graphs (%d features), predicted %d graphs -> %s\n",
		rep.TrainGraphs, rep.Features, rep.Predictions, rep.Output)
	if rep.Mismatch != nil {
		log.Warn("training used a truncated corpus",
			zap.Int("graphs", rep.Mismatch.Graphs), zap.Int("labels", rep.Mismatch.Labels))
	}

	return nil
}
