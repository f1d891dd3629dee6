package svmgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/svmgo/internal/smo"
	"github.com/hupe1980/svmgo/model"
)

var (
	// ErrEmptySampleSet is returned when a model is built from no samples.
	ErrEmptySampleSet = errors.New("empty sample set")

	// ErrInvalidLabel is returned when a sample label is neither +1 nor -1.
	ErrInvalidLabel = errors.New("label must be +1 or -1")

	// ErrNilKernel is returned when a model is built without a kernel.
	ErrNilKernel = errors.New("kernel must not be nil")

	// ErrSingleClass is returned by Fit when only one class is present.
	ErrSingleClass = errors.New("training requires both classes")

	// ErrNotLinear is returned when a linear-only operation is used with
	// another kernel.
	ErrNotLinear = errors.New("kernel is not linear")

	// ErrNotTrained is returned when a trained model is required.
	ErrNotTrained = errors.New("model is not trained")

	// ErrTrainingInProgress is returned when Fit is called on a model that is
	// already being trained.
	ErrTrainingInProgress = errors.New("training in progress")

	// ErrInvalidOption is returned when a trainer option is out of range.
	ErrInvalidOption = errors.New("invalid option")

	// ErrInvalidMultipliers is returned by Restore when the multipliers do not
	// match the samples.
	ErrInvalidMultipliers = errors.New("invalid multipliers")
)

// ErrDimensionMismatch indicates a sample or query of the wrong dimension.
//
// Index is the offending sample index, or -1 for queries.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	Index    int
}

func (e *ErrDimensionMismatch) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
	}
	return fmt.Sprintf("dimension mismatch at sample %d: expected %d, got %d", e.Index, e.Expected, e.Actual)
}

// ErrNoSupportVectors indicates that training ended without a support vector
// for one class, so no bias can be resolved.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrNoSupportVectors struct {
	Class model.Label
	cause error
}

func (e *ErrNoSupportVectors) Error() string {
	return fmt.Sprintf("no support vectors for class %s", e.Class)
}

func (e *ErrNoSupportVectors) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var ce *smo.ClassError
	if errors.As(err, &ce) {
		return &ErrNoSupportVectors{Class: model.Label(ce.Label), cause: err}
	}
	if errors.Is(err, smo.ErrInvalidProblem) {
		return fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}

	return err
}
