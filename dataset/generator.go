package dataset

import (
	"math"
	"math/rand/v2"

	"github.com/hupe1980/svmgo/model"
	"github.com/hupe1980/svmgo/vector"
)

// LinearConfig configures a LinearGenerator.
type LinearConfig struct {
	Dimension int
	Seed      uint64
	// Low and High bound the uniform distribution of features and plane
	// weights. Both zero means [-1, 1).
	Low, High float64
	// FlipProbability is the chance that a sample closer than FlipDistance
	// to the plane gets the wrong label.
	FlipProbability float64
	FlipDistance    float64
}

// LinearGenerator draws samples labeled by a random hyperplane, optionally
// flipping labels near the plane to simulate noise.
type LinearGenerator struct {
	cfg       LinearConfig
	rng       *rand.Rand
	weight    vector.Vector
	bias      float64
	generated int
	flipped   int
}

// NewLinearGenerator creates a generator and draws its hyperplane.
func NewLinearGenerator(cfg LinearConfig) *LinearGenerator {
	if cfg.Low == 0 && cfg.High == 0 {
		cfg.Low, cfg.High = -1, 1
	}
	g := &LinearGenerator{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x5851f42d4c957f2d)),
	}
	g.weight = g.uniformVector(cfg.Dimension)
	g.bias = g.uniform() / 4
	return g
}

func (g *LinearGenerator) uniform() float64 {
	return g.cfg.Low + g.rng.Float64()*(g.cfg.High-g.cfg.Low)
}

func (g *LinearGenerator) uniformVector(dim int) vector.Vector {
	xs := make([]float64, dim)
	for i := range xs {
		xs[i] = g.uniform()
	}
	return vector.Of(xs...)
}

// Next draws one sample.
func (g *LinearGenerator) Next() model.Sample {
	g.generated++

	x := g.uniformVector(g.cfg.Dimension)
	c := g.weight.Dot(x) + g.bias

	if g.rng.Float64() < g.cfg.FlipProbability && math.Abs(c) < g.cfg.FlipDistance*g.weight.Norm() {
		c = -c
		g.flipped++
	}

	label := model.Positive
	if c < 0 {
		label = model.Negative
	}
	return model.Sample{Label: label, Features: x}
}

// Generate draws n samples.
func (g *LinearGenerator) Generate(n int) Slice {
	out := make(Slice, n)
	for i := range out {
		out[i] = g.Next()
	}
	return out
}

// Plane returns the generating hyperplane w·x + b = 0.
func (g *LinearGenerator) Plane() (vector.Vector, float64) {
	return g.weight.Clone(), g.bias
}

// Accuracy returns the fraction of generated samples whose label agrees with
// the plane, i.e. the best accuracy any classifier can reach on them.
func (g *LinearGenerator) Accuracy() float64 {
	if g.generated == 0 {
		return 1
	}
	return float64(g.generated-g.flipped) / float64(g.generated)
}

// Flipped returns the number of samples generated with a flipped label.
func (g *LinearGenerator) Flipped() int { return g.flipped }

// MoonGenerator draws two interleaved parabolic half-moons in 2D that are not
// linearly separable.
type MoonGenerator struct {
	rng    *rand.Rand
	spread float64
}

// NewMoonGenerator creates a generator whose points are jittered uniformly
// by up to spread in each coordinate.
func NewMoonGenerator(seed uint64, spread float64) *MoonGenerator {
	return &MoonGenerator{
		rng:    rand.New(rand.NewPCG(seed, seed^0x14057b7ef767814f)),
		spread: spread,
	}
}

func (g *MoonGenerator) jitter() float64 {
	return (g.rng.Float64()*2 - 1) * g.spread
}

// Next draws one sample. Positive points lie on y = x²-3.5 shifted right by
// one, negative points on the mirrored parabola shifted left by one.
func (g *MoonGenerator) Next() model.Sample {
	label := model.Negative
	if g.rng.IntN(2) == 1 {
		label = model.Positive
	}
	y := label.Float()

	x0 := g.rng.Float64()*5 - 2.5
	x1 := 2 * (x0*x0*0.5 - 1.75) * y
	x0 += g.jitter() + y
	x1 += g.jitter()

	return model.Sample{Label: label, Features: vector.Of(x0, x1)}
}

// Generate draws n samples.
func (g *MoonGenerator) Generate(n int) Slice {
	out := make(Slice, n)
	for i := range out {
		out[i] = g.Next()
	}
	return out
}
