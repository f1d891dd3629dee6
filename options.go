package svmgo

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/hupe1980/svmgo/internal/cache"
	"github.com/hupe1980/svmgo/progress"
	"github.com/hupe1980/svmgo/resource"
)

const (
	// DefaultTolerance is the default soft-margin bound C.
	DefaultTolerance = 1.0
	// DefaultEpochLimit is the default maximum number of epochs.
	DefaultEpochLimit uint64 = 100
	// DefaultModifyLimit is the default convergence threshold.
	DefaultModifyLimit = 1e-3
	// DefaultMemoryBudget is the default kernel cache budget in bytes.
	DefaultMemoryBudget = cache.DefaultMemoryBudget
)

type options struct {
	tolerance        float64
	epochLimit       uint64
	modifyLimit      float64
	seed             uint64
	solver           Solver
	strategy         Strategy
	memoryBudget     int64
	resources        *resource.Controller
	onEpoch          func(epoch uint64)
	onModify         func(modify float64)
	tracker          *progress.Tracker
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Trainer.
type Option func(*options)

// WithTolerance sets the soft-margin bound C of the box constraint
// 0 <= λ <= C. Larger values approach a hard margin.
//
// It is a regularization parameter, not a numerical epsilon.
func WithTolerance(c float64) Option {
	return func(o *options) {
		o.tolerance = c
	}
}

// WithEpochLimit sets the maximum number of epochs.
func WithEpochLimit(n uint64) Option {
	return func(o *options) {
		o.epochLimit = n
	}
}

// WithModifyLimit sets the convergence threshold: training stops after the
// first epoch whose total multiplier change is below limit.
// A limit of zero always runs the full epoch limit.
func WithModifyLimit(limit float64) Option {
	return func(o *options) {
		o.modifyLimit = limit
	}
}

// WithSeed sets the seed of the random initial multipliers.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithSolver selects the solver. SolverAuto (default) uses the linear solver
// for kernel.Linear and the generalized solver otherwise.
func WithSolver(s Solver) Option {
	return func(o *options) {
		o.solver = s
	}
}

// WithStrategy selects how pairs are chosen within an epoch.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithMemoryBudget caps the kernel cache of the generalized solver.
// The full N(N+1)/2 triangle is cached only if it fits; otherwise kernel
// values are evaluated on demand. A budget <= 0 disables caching.
func WithMemoryBudget(bytes int64) Option {
	return func(o *options) {
		o.memoryBudget = bytes
	}
}

// WithResourceController charges the kernel cache against rc. If rc denies
// the memory, training falls back to on-demand evaluation.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

// WithEpochCallback registers a function called after every epoch with the
// zero-based epoch index.
func WithEpochCallback(fn func(epoch uint64)) Option {
	return func(o *options) {
		o.onEpoch = fn
	}
}

// WithModifyCallback registers a function called after every epoch with the
// total absolute multiplier change of that epoch.
func WithModifyCallback(fn func(modify float64)) Option {
	return func(o *options) {
		o.onModify = fn
	}
}

// WithProgress reports epochs and modifications to t and finishes it when
// Fit returns.
//
// Example:
//
//	tr := progress.NewTracker(epochs)
//	go trainer.Fit(ctx, m)
//	progress.Poll(ctx, tr, 50*time.Millisecond, render)
func WithProgress(t *progress.Tracker) Option {
	return func(o *options) {
		o.tracker = t
	}
}

// WithMetricsCollector configures a metrics collector for monitoring training.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &svmgo.BasicMetricsCollector{}
//	trainer := svmgo.NewTrainer(svmgo.WithMetricsCollector(metrics))
//	// ... fit ...
//	stats := metrics.GetStats()
//	fmt.Printf("Epochs: %d, Avg fit: %dns\n", stats.EpochCount, stats.FitAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for training.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := svmgo.NewJSONLogger(slog.LevelInfo)
//	trainer := svmgo.NewTrainer(svmgo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		tolerance:        DefaultTolerance,
		epochLimit:       DefaultEpochLimit,
		modifyLimit:      DefaultModifyLimit,
		memoryBudget:     DefaultMemoryBudget,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}

func (o *options) validate() error {
	switch {
	case !(o.tolerance > 0) || math.IsInf(o.tolerance, 1):
		return fmt.Errorf("%w: tolerance must be positive and finite, got %v", ErrInvalidOption, o.tolerance)
	case o.epochLimit == 0:
		return fmt.Errorf("%w: epoch limit must be positive", ErrInvalidOption)
	case !(o.modifyLimit >= 0):
		return fmt.Errorf("%w: modify limit must be non-negative, got %v", ErrInvalidOption, o.modifyLimit)
	case o.solver > SolverLinear:
		return fmt.Errorf("%w: unknown solver %d", ErrInvalidOption, o.solver)
	case o.strategy > StrategyMaxViolation:
		return fmt.Errorf("%w: unknown strategy %d", ErrInvalidOption, o.strategy)
	}
	return nil
}
