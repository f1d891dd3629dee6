// Package smo implements Sequential Minimal Optimization for the dual soft-margin
// SVM problem.
//
// Each step picks two multipliers with opposite labels, solves the two-variable
// subproblem in closed form, clips the result to the box [0, C] and recovers the
// partner from the equality constraint Σ y_i·λ_i = 0. Two solvers share the
// same update rule:
//
//   - Solve works with any kernel. It keeps an error vector E[i] = f(x_i) - y_i
//     up to date after every step (O(n) per pair) and reads kernel values from
//     an optional precomputed cache.
//   - SolveLinear is specialized for the dot product. It keeps the weighted
//     feature sum w = Σ λ_i·y_i·x_i instead of E, so each pair costs O(d).
//
// Pairs are chosen by a Strategy: StrategySweep visits every ordered pair with
// opposite labels per epoch, StrategyMaxViolation pairs every index with the
// partner whose error differs the most.
//
// The solvers are single-threaded and synchronous. They borrow the caller's
// multiplier slice for the duration of the call and mutate it in place.
package smo
