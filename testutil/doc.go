// Package testutil provides testing utilities for svmgo.
//
// This package is intended for use in tests and benchmarks only.
// It provides deterministic sample generators and accuracy helpers.
//
// # Random Samples
//
//	rng := testutil.NewRNG(seed)
//	v := rng.UniformVector(2, -1, 1)
//	train := rng.SeparableSamples(200, 0.4)
//
// # Accuracy
//
//	acc := testutil.Accuracy(train, m.Classify)
package testutil
