package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/svmgo"
	"github.com/hupe1980/svmgo/dataset"
	"github.com/hupe1980/svmgo/kernel"
	"github.com/hupe1980/svmgo/progress"
)

const (
	pollInterval = 50 * time.Millisecond
	barWidth     = 40
)

func run(ctx context.Context, cfg config, stdout, stderr io.Writer) error {
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	d, err := loadData(cfg)
	if err != nil {
		return err
	}

	k, err := kernel.FromSpec(kernel.Spec{Name: cfg.kernel, Gamma: cfg.gamma, Coef0: cfg.coef0, Degree: cfg.degree})
	if err != nil {
		return err
	}
	solver, err := svmgo.ParseSolver(cfg.solver)
	if err != nil {
		return err
	}
	strategy, err := svmgo.ParseStrategy(cfg.strategy)
	if err != nil {
		return err
	}

	m, err := svmgo.New(d.train, k)
	if err != nil {
		return err
	}

	tracker := progress.NewTracker(cfg.epochs)
	metrics := &svmgo.BasicMetricsCollector{}
	trainer := svmgo.NewTrainer(
		svmgo.WithTolerance(cfg.c),
		svmgo.WithEpochLimit(cfg.epochs),
		svmgo.WithModifyLimit(cfg.modify),
		svmgo.WithSeed(cfg.seed),
		svmgo.WithSolver(solver),
		svmgo.WithStrategy(strategy),
		svmgo.WithMemoryBudget(cfg.memoryBudget),
		svmgo.WithProgress(tracker),
		svmgo.WithMetricsCollector(metrics),
		svmgo.WithLogger(logger),
	)

	var report *svmgo.Report

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		report, err = trainer.Fit(gctx, m)
		return err
	})
	if !cfg.quiet {
		g.Go(func() error {
			err := progress.Poll(gctx, tracker, pollInterval, func(s progress.Snapshot) {
				fmt.Fprintf(stderr, "\rTraining %s", progress.Bar(s, barWidth))
			})
			fmt.Fprintln(stderr)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printReport(stdout, m, d, report, metrics.GetStats())

	written, err := writeArtifacts(ctx, cfg, m)
	if err != nil {
		return err
	}
	for _, name := range written {
		fmt.Fprintf(stdout, "Wrote %s\n", name)
	}

	return upload(ctx, cfg, written)
}

func newLogger(cfg config) (*svmgo.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.logLevel)); err != nil {
		return nil, usageError("invalid -log-level %q", cfg.logLevel)
	}
	if cfg.logJSON {
		return svmgo.NewJSONLogger(level), nil
	}
	return svmgo.NewTextLogger(level), nil
}

func printReport(w io.Writer, m *svmgo.Model, d *data, r *svmgo.Report, stats svmgo.BasicMetricsStats) {
	fmt.Fprintf(w, "Solver: %s/%s, cache %s (%d bytes)\n", r.Solver, r.Strategy, r.CacheMode, r.CacheBytes)
	fmt.Fprintf(w, "Epochs: %d, final modify %.3e, converged %t, %s\n", r.Epochs, r.FinalModify, r.Converged, r.Duration.Round(time.Millisecond))
	if r.SkippedPairs > 0 {
		fmt.Fprintf(w, "Skipped pairs: %d\n", r.SkippedPairs)
	}
	fmt.Fprintf(w, "Support vectors: %d of %d\n", r.SupportVectors, m.Len())
	fmt.Fprintf(w, "Recorded epochs: %d\n", stats.EpochCount)

	if !math.IsNaN(d.generatorAccuracy) {
		fmt.Fprintf(w, "Generator accuracy: %6.2f%%\n", d.generatorAccuracy*100)
	}
	fmt.Fprintf(w, "Classify accuracy: %6.2f%%\n", dataset.Accuracy(dataset.Slice(d.train), m.Classify)*100)
	if len(d.test) > 0 {
		fmt.Fprintf(w, "Test accuracy: %6.2f%%\n", dataset.Accuracy(dataset.Slice(d.test), m.Classify)*100)
	}

	if plane, err := m.Plane(); err == nil {
		terms := make([]string, 0, plane.Weight.Dim())
		for i, c := range plane.Weight.Components() {
			terms = append(terms, fmt.Sprintf("%+.4f·x%d", c, i))
		}
		fmt.Fprintf(w, "Plane: %s %+.4f\n", strings.Join(terms, " "), plane.Bias)
	}
}
