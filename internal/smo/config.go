package smo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/svmgo/internal/bitmap"
	"github.com/hupe1980/svmgo/internal/cache"
	"github.com/hupe1980/svmgo/kernel"
	"github.com/hupe1980/svmgo/resource"
	"github.com/hupe1980/svmgo/vector"
)

var (
	// ErrInvalidProblem is returned when the problem arrays disagree in length
	// or a required field is missing.
	ErrInvalidProblem = errors.New("invalid problem")

	// ErrNoSupportVectors is returned when one class has no support vector at
	// bias resolution time.
	ErrNoSupportVectors = errors.New("no support vectors")
)

// ClassError reports the class that ended up without support vectors.
type ClassError struct {
	Label int8
}

func (e *ClassError) Error() string {
	return fmt.Sprintf("%v for class %+d", ErrNoSupportVectors, e.Label)
}

func (e *ClassError) Unwrap() error { return ErrNoSupportVectors }

// Strategy selects how pairs are chosen within an epoch.
type Strategy uint8

const (
	// StrategySweep visits every ordered pair (i, j) with opposite labels.
	StrategySweep Strategy = iota
	// StrategyMaxViolation pairs each i with the opposite-label j that
	// maximizes |E[i] - E[j]|.
	StrategyMaxViolation
)

func (s Strategy) String() string {
	switch s {
	case StrategySweep:
		return "sweep"
	case StrategyMaxViolation:
		return "max-violation"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// Config controls a solve.
type Config struct {
	// Tolerance is the soft-margin bound C of the box constraint 0 <= λ <= C.
	Tolerance float64
	// EpochLimit caps the number of epochs.
	EpochLimit uint64
	// ModifyLimit stops the solve once an epoch changes the multipliers by less
	// than this total amount.
	ModifyLimit float64
	// Seed drives the random initial multipliers.
	Seed uint64
	// Strategy selects pairs.
	Strategy Strategy
	// MemoryBudget caps the kernel cache size in bytes (generalized solver).
	MemoryBudget int64
	// Resources is charged for the kernel cache. May be nil.
	Resources *resource.Controller

	// OnEpoch is called once per epoch with the zero-based epoch index.
	OnEpoch func(epoch uint64)
	// OnModify is called once per epoch with the total absolute change.
	OnModify func(modify float64)

	// afterUpdate observes every committed pair update.
	afterUpdate func(i, j int)
}

// Problem is the training data plus the multipliers being optimized.
type Problem struct {
	// Labels holds +1 or -1 per sample.
	Labels []float64
	// Features holds the sample vectors.
	Features []vector.Vector
	// Kernel is required by Solve and ignored by SolveLinear.
	Kernel kernel.Kernel
	// Multipliers is borrowed for the duration of the solve and updated in place.
	Multipliers []float64
}

func (p *Problem) validate(needKernel bool) error {
	n := len(p.Labels)
	if n == 0 {
		return fmt.Errorf("%w: no samples", ErrInvalidProblem)
	}
	if len(p.Features) != n || len(p.Multipliers) != n {
		return fmt.Errorf("%w: %d labels, %d features, %d multipliers",
			ErrInvalidProblem, n, len(p.Features), len(p.Multipliers))
	}
	if needKernel && p.Kernel == nil {
		return fmt.Errorf("%w: nil kernel", ErrInvalidProblem)
	}
	return nil
}

// Result summarizes a finished solve.
type Result struct {
	// Bias is the resolved decision function offset.
	Bias float64
	// Weight is Σ λ_i·y_i·x_i. Only set by SolveLinear.
	Weight vector.Vector
	// Epochs is the number of epochs run.
	Epochs uint64
	// FinalModify is the total change of the last epoch.
	FinalModify float64
	// Converged is true when the solve stopped below ModifyLimit.
	Converged bool
	// SkippedPairs counts pairs skipped as degenerate or infeasible.
	SkippedPairs uint64
	// CacheMode reports how kernel values were served.
	CacheMode cache.Mode
	// CacheBytes is the size of the kernel cache.
	CacheBytes int64
	// Support holds the indices with a nonzero multiplier.
	Support *bitmap.Set
}
