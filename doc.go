// Package svmgo trains binary support vector machines with Sequential Minimal
// Optimization (SMO).
//
// A Model owns a fixed set of labeled samples and a kernel. A Trainer solves
// the dual soft-margin problem for it, after which the Model classifies new
// points as negative, positive or boundary (within ClassificationEps of the
// decision surface).
//
// # Quick Start
//
//	samples := []model.Sample{
//	    model.NewSample(model.Positive, 2, 0),
//	    model.NewSample(model.Negative, 0, 2),
//	    // ...
//	}
//	m, _ := svmgo.New(samples, kernel.Linear{})
//
//	trainer := svmgo.NewTrainer(
//	    svmgo.WithTolerance(10),
//	    svmgo.WithEpochLimit(500),
//	    svmgo.WithModifyLimit(1e-6),
//	)
//	report, err := trainer.Fit(ctx, m)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(report.Epochs, m.Classify(vector.Of(1, -1)))
//
// # Solvers
//
// SolverGeneralized works with any symmetric kernel. It keeps an error
// vector that is updated in O(n) per pair and reads kernel values from a
// triangular cache when N(N+1)/2 float64 values fit WithMemoryBudget
// (1 GiB by default). Cached and on-demand evaluation give bit-identical
// results.
//
// SolverLinear applies to kernel.Linear only. It keeps the weight vector
// w = Σ λ_i·y_i·x_i instead, costing O(d) per pair and no cache, and yields a
// SegmentPlane. SolverAuto (default) picks it whenever the kernel is linear.
//
// # Pair Selection
//
// StrategySweep (default) visits every ordered pair of opposite-label samples
// per epoch. StrategyMaxViolation pairs each sample with the partner whose
// error differs most, which does far fewer updates per epoch on large sets.
//
// # Progress
//
// Training is synchronous and cannot be interrupted. To observe it from
// another goroutine, pass a progress.Tracker via WithProgress, or register
// WithEpochCallback and WithModifyCallback.
//
// # Artifacts
//
// Trained models can be written as CSV (package export), serialized as
// compressed snapshots (package persistence) and uploaded to blob storage
// (package blobstore).
package svmgo
