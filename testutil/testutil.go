package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/svmgo/model"
	"github.com/hupe1980/svmgo/vector"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformVector returns a vector with components in [minVal, maxVal).
func (r *RNG) UniformVector(dim int, minVal, maxVal float64) vector.Vector {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.uniformLocked(dim, minVal, maxVal)
}

func (r *RNG) uniformLocked(dim int, minVal, maxVal float64) vector.Vector {
	xs := make([]float64, dim)
	span := maxVal - minVal
	for i := range xs {
		xs[i] = minVal + r.rand.Float64()*span
	}
	return vector.Of(xs...)
}

// SeparableSamples draws n points from [-1, 1)² labeled by sign(x - y).
// Points closer than margin to the line x = y (measured as |x - y|) are
// rejected, so the set is linearly separable with normal (1, -1).
func (r *RNG) SeparableSamples(n int, margin float64) []model.Sample {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Sample, 0, n)
	for len(out) < n {
		v := r.uniformLocked(2, -1, 1)
		d := v.At(0) - v.At(1)
		if math.Abs(d) < margin {
			continue
		}
		label := model.Positive
		if d < 0 {
			label = model.Negative
		}
		out = append(out, model.Sample{Label: label, Features: v})
	}
	return out
}

// GaussianBlobs draws n points per class from isotropic normals centered at
// +center (positive) and -center (negative).
func (r *RNG) GaussianBlobs(n int, center vector.Vector, stddev float64) []model.Sample {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Sample, 0, 2*n)
	for _, label := range []model.Label{model.Positive, model.Negative} {
		c := center.Scale(label.Float())
		for range n {
			xs := make([]float64, c.Dim())
			for d := range xs {
				xs[d] = c.At(d) + r.rand.NormFloat64()*stddev
			}
			out = append(out, model.Sample{Label: label, Features: vector.Of(xs...)})
		}
	}
	return out
}

// XOR returns the four corners of the unit square labeled by exclusive or.
func XOR() []model.Sample {
	return []model.Sample{
		model.NewSample(model.Negative, 0, 0),
		model.NewSample(model.Negative, 1, 1),
		model.NewSample(model.Positive, 0, 1),
		model.NewSample(model.Positive, 1, 0),
	}
}

// Accuracy returns the fraction of samples whose classification matches
// their label. Boundary results count as misses.
func Accuracy(samples []model.Sample, classify func(vector.Vector) model.Classification) float64 {
	if len(samples) == 0 {
		return 0
	}
	var hits int
	for _, s := range samples {
		if classify(s.Features).Matches(s.Label) {
			hits++
		}
	}
	return float64(hits) / float64(len(samples))
}

// Split returns features and float labels as parallel slices.
func Split(samples []model.Sample) ([]vector.Vector, []float64) {
	x := make([]vector.Vector, len(samples))
	y := make([]float64, len(samples))
	for i, s := range samples {
		x[i] = s.Features
		y[i] = s.Label.Float()
	}
	return x, y
}
