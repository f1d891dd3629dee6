package svmgo

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"sync/atomic"

	"github.com/hupe1980/svmgo/internal/bitmap"
	"github.com/hupe1980/svmgo/kernel"
	"github.com/hupe1980/svmgo/model"
	"github.com/hupe1980/svmgo/vector"
)

// Model is a binary SVM over a fixed sample set.
//
// A Model owns its samples and multipliers. It is mutated only by
// Trainer.Fit; once Fit has returned, all read methods are safe for
// concurrent use. Calling read methods while Fit runs on the same Model is
// not safe.
type Model struct {
	samples     []model.Sample
	labels      []float64
	features    []vector.Vector
	kernel      kernel.Kernel
	dim         int
	multipliers []float64
	bias        float64
	support     *bitmap.Set
	plane       *SegmentPlane
	trained     bool
	training    atomic.Bool
}

// New creates an untrained Model with zero multipliers and zero bias.
//
// The samples are copied. All samples must share one dimension and carry a
// label of +1 or -1.
func New(samples []model.Sample, k kernel.Kernel) (*Model, error) {
	if len(samples) == 0 {
		return nil, ErrEmptySampleSet
	}
	if k == nil {
		return nil, ErrNilKernel
	}

	dim := samples[0].Features.Dim()
	m := &Model{
		samples:     make([]model.Sample, len(samples)),
		labels:      make([]float64, len(samples)),
		features:    make([]vector.Vector, len(samples)),
		kernel:      k,
		dim:         dim,
		multipliers: make([]float64, len(samples)),
		support:     bitmap.New(),
	}

	for i, s := range samples {
		if !s.Label.Valid() {
			return nil, fmt.Errorf("%w: sample %d has %s", ErrInvalidLabel, i, s.Label)
		}
		if d := s.Features.Dim(); d != dim {
			return nil, &ErrDimensionMismatch{Expected: dim, Actual: d, Index: i}
		}
		c := s.Clone()
		m.samples[i] = c
		m.labels[i] = c.Label.Float()
		m.features[i] = c.Features
	}

	return m, nil
}

// Restore rebuilds a trained Model from its samples, multipliers and bias.
func Restore(samples []model.Sample, k kernel.Kernel, multipliers []float64, bias float64) (*Model, error) {
	m, err := New(samples, k)
	if err != nil {
		return nil, err
	}
	if len(multipliers) != len(samples) {
		return nil, fmt.Errorf("%w: %d multipliers for %d samples", ErrInvalidMultipliers, len(multipliers), len(samples))
	}
	for i, l := range multipliers {
		if math.IsNaN(l) || math.IsInf(l, 0) {
			return nil, fmt.Errorf("%w: multiplier %d is %v", ErrInvalidMultipliers, i, l)
		}
	}

	copy(m.multipliers, multipliers)
	m.bias = bias
	m.finalize(nil)

	return m, nil
}

// finalize marks the model trained. weight is the linear solver's feature
// sum, if any.
func (m *Model) finalize(weight *vector.Vector) {
	m.support = bitmap.New()
	for i, l := range m.multipliers {
		if math.Abs(l) > model.ClassificationEps {
			m.support.Add(i)
		}
	}

	m.plane = nil
	if kernel.IsLinear(m.kernel) {
		var w vector.Vector
		if weight != nil {
			w = weight.Clone()
		} else {
			acc := vector.NewAccumulator(m.dim)
			for i, l := range m.multipliers {
				acc.AddScaled(l*m.labels[i], m.features[i])
			}
			w = acc.Vector()
		}
		m.plane = &SegmentPlane{Weight: w, Bias: m.bias}
	}

	m.trained = true
}

// reset discards a previous training result.
func (m *Model) reset() {
	clear(m.multipliers)
	m.bias = 0
	m.support = bitmap.New()
	m.plane = nil
	m.trained = false
}

// Decision returns bias + Σ y_i·λ_i·k(x_i, x). Trained linear models use
// their SegmentPlane instead.
//
// It panics if x has the wrong dimension.
func (m *Model) Decision(x vector.Vector) float64 {
	m.mustMatch(x)

	if m.plane != nil {
		return m.plane.Decision(x)
	}

	sum := m.bias
	for i, l := range m.multipliers {
		if l == 0 {
			continue
		}
		sum += m.labels[i] * l * m.kernel.Eval(m.features[i], x)
	}
	return sum
}

// Classify returns the sign of Decision(x) with the ClassificationEps band.
//
// It panics if x has the wrong dimension; use ClassifyChecked for untrusted
// input.
func (m *Model) Classify(x vector.Vector) model.Classification {
	return model.Sign(m.Decision(x))
}

// ClassifyChecked is Classify with an error instead of a panic on dimension
// mismatch.
func (m *Model) ClassifyChecked(x vector.Vector) (model.Classification, error) {
	if x.Dim() != m.dim {
		return model.ClassBoundary, &ErrDimensionMismatch{Expected: m.dim, Actual: x.Dim(), Index: -1}
	}
	return m.Classify(x), nil
}

func (m *Model) mustMatch(x vector.Vector) {
	if x.Dim() != m.dim {
		panic(&ErrDimensionMismatch{Expected: m.dim, Actual: x.Dim(), Index: -1})
	}
}

// Len returns the number of samples.
func (m *Model) Len() int { return len(m.samples) }

// Dimension returns the feature dimension.
func (m *Model) Dimension() int { return m.dim }

// Kernel returns the kernel.
func (m *Model) Kernel() kernel.Kernel { return m.kernel }

// Bias returns the bias.
func (m *Model) Bias() float64 { return m.bias }

// Multipliers returns a copy of the multipliers.
func (m *Model) Multipliers() []float64 { return slices.Clone(m.multipliers) }

// Sample returns sample i.
func (m *Model) Sample(i int) model.Sample { return m.samples[i].Clone() }

// Samples returns a copy of all samples.
func (m *Model) Samples() []model.Sample {
	out := make([]model.Sample, len(m.samples))
	for i, s := range m.samples {
		out[i] = s.Clone()
	}
	return out
}

// IsTrained reports whether the last Fit succeeded or the model was restored.
func (m *Model) IsTrained() bool { return m.trained }

// SupportVectors returns the indices of samples with a nonzero multiplier.
func (m *Model) SupportVectors() SupportSet {
	return SupportSet{set: m.support.Clone()}
}

// Plane returns the decision plane of a trained linear model.
func (m *Model) Plane() (SegmentPlane, error) {
	if !kernel.IsLinear(m.kernel) {
		return SegmentPlane{}, ErrNotLinear
	}
	if !m.trained || m.plane == nil {
		return SegmentPlane{}, ErrNotTrained
	}
	return SegmentPlane{Weight: m.plane.Weight.Clone(), Bias: m.plane.Bias}, nil
}

// hasBothClasses reports whether both labels occur.
func (m *Model) hasBothClasses() bool {
	var pos, neg bool
	for _, y := range m.labels {
		if y > 0 {
			pos = true
		} else {
			neg = true
		}
		if pos && neg {
			return true
		}
	}
	return false
}

// SupportSet is an immutable set of support vector indices.
type SupportSet struct {
	set *bitmap.Set
}

// Contains reports whether sample i is a support vector.
func (s SupportSet) Contains(i int) bool { return s.set != nil && s.set.Contains(i) }

// Len returns the number of support vectors.
func (s SupportSet) Len() int {
	if s.set == nil {
		return 0
	}
	return s.set.Len()
}

// All iterates the indices in ascending order.
func (s SupportSet) All() iter.Seq[int] {
	if s.set == nil {
		return func(func(int) bool) {}
	}
	return s.set.All()
}

// ToSlice returns the indices in ascending order.
func (s SupportSet) ToSlice() []int {
	if s.set == nil {
		return nil
	}
	return s.set.ToSlice()
}
