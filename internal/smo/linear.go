package smo

import (
	"math"

	"github.com/hupe1980/svmgo/internal/cache"
	"github.com/hupe1980/svmgo/vector"
)

// SolveLinear runs SMO for the dot-product kernel. p.Kernel is ignored.
//
// Instead of an error vector the solver keeps w = Σ λ_i·y_i·x_i, from which
// E[i] - E[j] = w·(x_i - x_j) - y_i + y_j follows directly.
func SolveLinear(p *Problem, cfg Config) (*Result, error) {
	if err := p.validate(false); err != nil {
		return nil, err
	}

	n := len(p.Labels)
	x := p.Features

	s := &linear{
		state: state{y: p.Labels, mult: p.Multipliers, c: cfg.Tolerance},
		x:     x,
		sum:   vector.NewAccumulator(x[0].Dim()),
		sq:    make([]float64, n),
		proj:  make([]float64, n),
	}

	initMultipliers(s.mult, s.y, cfg.Seed, cfg.Tolerance)

	for i := range n {
		s.sq[i] = x[i].Dot(x[i])
		s.sum.AddScaled(s.mult[i]*s.y[i], x[i])
	}

	res := run(s, n, cfg)
	res.CacheMode = cache.ModeOnDemand

	weight := s.sum.Vector()
	res.Weight = weight

	bias, support, err := resolveBias(s.y, s.mult, func(t int) float64 { return weight.Dot(x[t]) })
	res.Support = support
	if err != nil {
		return res, err
	}
	res.Bias = bias

	return res, nil
}

type linear struct {
	state
	x   []vector.Vector
	sum *vector.Accumulator
	sq  []float64
	// proj caches w·x_t for the max-violation partner search.
	proj []float64
}

func (s *linear) shared() *state { return &s.state }

// prepare refreshes the projections used by gap.
func (s *linear) prepare(int) {
	for t, xt := range s.x {
		s.proj[t] = s.sum.Dot(xt)
	}
}

func (s *linear) gap(i, j int) float64 {
	return s.proj[i] - s.proj[j] - s.y[i] + s.y[j]
}

func (s *linear) step(i, j int) (float64, bool) {
	yi, yj := s.y[i], s.y[j]
	li, lj := s.mult[i], s.mult[j]

	low, high := bounds(yi, yj, li, lj, s.c)
	if low > high {
		return 0, false
	}

	xi, xj := s.x[i], s.x[j]
	eta := s.sq[i] + s.sq[j] - 2*xi.Dot(xj)
	if eta <= 0 {
		return 0, false
	}

	diff := s.sum.Dot(xi) - s.sum.Dot(xj) - yi + yj
	ljNew := clamp(lj+yj*diff/eta, low, high)
	liNew := (li*yi + lj*yj - ljNew*yj) * yi

	s.sum.AddScaled((liNew-li)*yi, xi)
	s.sum.AddScaled((ljNew-lj)*yj, xj)

	s.mult[i], s.mult[j] = liNew, ljNew

	return math.Abs(liNew-li) + math.Abs(ljNew-lj), true
}
