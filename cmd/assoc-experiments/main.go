// assoc-experiments runs the slot array map experiments and prints their traces.
//
// Usage:
//
//	assoc-experiments [flags]
//
// Flags:
//
//	-c, --config       JSONC config file
//	-o, --out          Write the trace to this file instead of stdout
//	-e, --experiment   Experiment to run, repeatable (default: all)
//	    --capacity     Initial capacity of every map
//	    --log-level    debug, info, warn or error
//	-h, --help         Show this help
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/on-the-ground/assocarray/internal/config"
	"github.com/on-the-ground/assocarray/internal/experiments"
	"github.com/on-the-ground/assocarray/shared/log"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	flagSet := flag.NewFlagSet("assoc-experiments", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	configPath := flagSet.StringP("config", "c", "", "JSONC config file")
	outPath := flagSet.StringP("out", "o", "", "write the trace to this file instead of stdout")
	names := flagSet.StringArrayP("experiment", "e", nil, "experiment to run, repeatable")
	capacity := flagSet.Int("capacity", 0, "initial capacity of every map")
	logLevel := flagSet.String("log-level", "", "debug, info, warn or error")
	help := flagSet.BoolP("help", "h", false, "show this help")

	if err := flagSet.Parse(args); err != nil {
		fmt.Fprintln(errOut, "error:", err)
		printUsage(errOut, flagSet)
		return 1
	}
	if *help {
		printUsage(out, flagSet)
		return 0
	}

	cfg, err := config.Load(*configPath, config.Overrides{
		InitialCapacity: *capacity,
		LogLevel:        log.LogLevel(*logLevel),
		Experiments:     *names,
		Output:          *outPath,
	})
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}

	logger, err := log.NewLogger(cfg.LogLevel, cfg.LogEncoding, errOut)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	defer log.Sync(logger)

	if err := runExperiments(cfg, logger, out); err != nil {
		logger.Error("experiments failed", zap.Error(err))
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	return 0
}

func runExperiments(cfg config.Config, logger *zap.Logger, out io.Writer) error {
	var buf bytes.Buffer
	target := out
	if cfg.Output != "" {
		target = &buf
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := log.NewSink(ctx, cfg.SinkBufferSize, target)
	logger = logger.With(zap.String("sink", sink.ID))

	runErr := experiments.Run(experiments.Env{
		Out:      sink,
		Logger:   logger,
		Capacity: cfg.InitialCapacity,
	}, cfg.Experiments)
	if err := errors.Join(runErr, sink.Close()); err != nil {
		return err
	}

	if cfg.Output == "" {
		return nil
	}
	if err := atomic.WriteFile(cfg.Output, &buf); err != nil {
		return fmt.Errorf("cannot write %s: %w", cfg.Output, err)
	}
	logger.Info("trace written", zap.String("path", cfg.Output), zap.Int("bytes", buf.Len()))
	return nil
}

func printUsage(w io.Writer, flagSet *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: assoc-experiments [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, flagSet.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Experiments:", strings.Join(experiments.Names(), ", "))
}
