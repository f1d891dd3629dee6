package svmgo

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/svmgo/internal/cache"
	"github.com/hupe1980/svmgo/internal/smo"
	"github.com/hupe1980/svmgo/kernel"
)

// Solver selects the optimization routine.
type Solver uint8

const (
	// SolverAuto picks SolverLinear for kernel.Linear and SolverGeneralized
	// otherwise.
	SolverAuto Solver = iota
	// SolverGeneralized works with any kernel and maintains an error vector.
	SolverGeneralized
	// SolverLinear maintains the weight vector directly. It requires
	// kernel.Linear.
	SolverLinear
)

func (s Solver) String() string {
	switch s {
	case SolverAuto:
		return "auto"
	case SolverGeneralized:
		return "generalized"
	case SolverLinear:
		return "linear"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// ParseSolver returns the Solver whose String is name.
func ParseSolver(name string) (Solver, error) {
	for _, s := range []Solver{SolverAuto, SolverGeneralized, SolverLinear} {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown solver %q", ErrInvalidOption, name)
}

// Strategy selects how candidate pairs are visited within an epoch.
type Strategy uint8

const (
	// StrategySweep visits every ordered pair of samples with opposite labels.
	StrategySweep Strategy = iota
	// StrategyMaxViolation pairs every sample with the opposite-label sample
	// whose prediction error differs the most.
	StrategyMaxViolation
)

func (s Strategy) String() string {
	return s.internal().String()
}

// ParseStrategy returns the Strategy whose String is name.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range []Strategy{StrategySweep, StrategyMaxViolation} {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown strategy %q", ErrInvalidOption, name)
}

func (s Strategy) internal() smo.Strategy {
	switch s {
	case StrategyMaxViolation:
		return smo.StrategyMaxViolation
	case StrategySweep:
		return smo.StrategySweep
	default:
		return smo.Strategy(s)
	}
}

// CacheMode reports how kernel values were served during training.
type CacheMode uint8

const (
	// CacheOnDemand evaluates the kernel for every lookup.
	CacheOnDemand CacheMode = iota
	// CacheFull precomputes every pairwise kernel value.
	CacheFull
)

func (c CacheMode) String() string {
	switch c {
	case CacheOnDemand:
		return cache.ModeOnDemand.String()
	case CacheFull:
		return cache.ModeCached.String()
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

// Report summarizes a training run.
type Report struct {
	Solver         Solver
	Strategy       Strategy
	CacheMode      CacheMode
	CacheBytes     int64
	Epochs         uint64
	FinalModify    float64
	Converged      bool
	SkippedPairs   uint64
	SupportVectors int
	Duration       time.Duration
}

// Trainer fits Models with SMO.
//
// A Trainer is immutable and may be shared between goroutines; each Fit call
// trains exactly one Model.
type Trainer struct {
	opts options
}

// NewTrainer creates a Trainer. Options are validated by Fit.
func NewTrainer(optFns ...Option) *Trainer {
	return &Trainer{opts: applyOptions(optFns)}
}

// Fit trains m in place.
//
// The multipliers are reinitialized from the configured seed, so repeated
// calls with the same options give the same result. Fit does not observe ctx
// once the solver has started; cancellation is only checked up front.
//
// On error the model is left untrained. A configured progress tracker is
// finished with the returned error.
func (t *Trainer) Fit(ctx context.Context, m *Model) (report *Report, err error) {
	o := t.opts

	if o.tracker != nil {
		defer func() { o.tracker.Finish(err) }()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: nil model", ErrInvalidOption)
	}

	if !m.training.CompareAndSwap(false, true) {
		return nil, ErrTrainingInProgress
	}
	defer m.training.Store(false)

	if !m.hasBothClasses() {
		return nil, ErrSingleClass
	}

	solver, err := resolveSolver(o.solver, m.kernel)
	if err != nil {
		return nil, err
	}

	logger := o.logger.WithSolver(solver).WithCount(m.Len())
	logger.LogFitStart(ctx, m.Len(), m.dim, o.strategy, o.memoryBudget)

	m.reset()

	problem := &smo.Problem{
		Labels:      m.labels,
		Features:    m.features,
		Kernel:      m.kernel,
		Multipliers: m.multipliers,
	}

	var epochModify float64
	cfg := smo.Config{
		Tolerance:    o.tolerance,
		EpochLimit:   o.epochLimit,
		ModifyLimit:  o.modifyLimit,
		Seed:         o.seed,
		Strategy:     o.strategy.internal(),
		MemoryBudget: o.memoryBudget,
		Resources:    o.resources,
		OnModify: func(modify float64) {
			epochModify = modify
			o.metricsCollector.RecordEpoch(modify)
			if o.tracker != nil {
				o.tracker.ObserveModify(modify)
			}
			if o.onModify != nil {
				o.onModify(modify)
			}
		},
		OnEpoch: func(epoch uint64) {
			logger.LogEpoch(ctx, epoch, epochModify)
			if o.tracker != nil {
				o.tracker.ObserveEpoch(epoch)
			}
			if o.onEpoch != nil {
				o.onEpoch(epoch)
			}
		},
	}

	start := time.Now()

	var res *smo.Result
	if solver == SolverLinear {
		res, err = smo.SolveLinear(problem, cfg)
	} else {
		res, err = smo.Solve(problem, cfg)
	}

	elapsed := time.Since(start)

	var epochs uint64
	if res != nil {
		epochs = res.Epochs
	}
	o.metricsCollector.RecordFit(epochs, elapsed, err)

	if err != nil {
		m.reset()
		err = translateError(err)
		logger.LogFit(ctx, nil, err)
		return nil, err
	}

	m.bias = res.Bias
	if solver == SolverLinear {
		m.finalize(&res.Weight)
	} else {
		m.finalize(nil)
	}

	report = &Report{
		Solver:         solver,
		Strategy:       o.strategy,
		CacheMode:      cacheModeOf(res.CacheMode),
		CacheBytes:     res.CacheBytes,
		Epochs:         res.Epochs,
		FinalModify:    res.FinalModify,
		Converged:      res.Converged,
		SkippedPairs:   res.SkippedPairs,
		SupportVectors: m.support.Len(),
		Duration:       elapsed,
	}
	logger.LogFit(ctx, report, nil)

	return report, nil
}

func resolveSolver(s Solver, k kernel.Kernel) (Solver, error) {
	switch s {
	case SolverAuto:
		if kernel.IsLinear(k) {
			return SolverLinear, nil
		}
		return SolverGeneralized, nil
	case SolverLinear:
		if !kernel.IsLinear(k) {
			return 0, fmt.Errorf("%w: linear solver requires kernel.Linear", ErrNotLinear)
		}
	}
	return s, nil
}

func cacheModeOf(m cache.Mode) CacheMode {
	if m == cache.ModeCached {
		return CacheFull
	}
	return CacheOnDemand
}
