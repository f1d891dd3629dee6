package smo

import (
	"math"
	"math/rand/v2"

	"github.com/hupe1980/svmgo/internal/bitmap"
	"github.com/hupe1980/svmgo/internal/cache"
	"github.com/hupe1980/svmgo/model"
)

// Solve runs SMO with an arbitrary kernel.
//
// The multipliers in p are reinitialized from cfg.Seed, optimized in place and
// left in their final state even when an error is returned.
func Solve(p *Problem, cfg Config) (*Result, error) {
	if err := p.validate(true); err != nil {
		return nil, err
	}

	n := len(p.Labels)
	x := p.Features
	k := p.Kernel

	kc := cache.New(n, func(i, j int) float64 { return k.Eval(x[i], x[j]) }, cfg.MemoryBudget, cfg.Resources)
	defer kc.Release()

	s := &general{
		state: state{y: p.Labels, mult: p.Multipliers, c: cfg.Tolerance},
		k:     kc,
		e:     make([]float64, n),
		diag:  make([]float64, n),
	}

	initMultipliers(s.mult, s.y, cfg.Seed, cfg.Tolerance)

	// Bias starts at zero, so E[i] = f(x_i) - y_i with f the unbiased decision.
	for i := range n {
		s.diag[i] = kc.Lookup(i, i)
		e := -s.y[i]
		for j := range n {
			e += s.mult[j] * s.y[j] * kc.Lookup(i, j)
		}
		s.e[i] = e
	}

	res := run(s, n, cfg)
	res.CacheMode = kc.Mode()
	res.CacheBytes = kc.Bytes()

	bias, support, err := resolveBias(s.y, s.mult, func(t int) float64 { return s.y[t] + s.e[t] })
	res.Support = support
	if err != nil {
		return res, err
	}
	res.Bias = bias

	return res, nil
}

// stepper is the per-solver part of an epoch.
type stepper interface {
	// step optimizes the pair (i, j). It returns the total absolute change and
	// false if the pair was skipped.
	step(i, j int) (float64, bool)
	// gap returns E[i] - E[j].
	gap(i, j int) float64
	// prepare is called before the partner of i is searched.
	prepare(i int)
	shared() *state
}

func run(s stepper, n int, cfg Config) *Result {
	res := &Result{}
	labels := s.shared().y

	for epoch := uint64(0); epoch < cfg.EpochLimit; epoch++ {
		var modify float64

		switch cfg.Strategy {
		case StrategyMaxViolation:
			for i := range n {
				s.prepare(i)
				j := partner(s, labels, i)
				if j < 0 {
					continue
				}
				modify += visit(s, res, cfg, i, j)
			}
		default:
			for i := range n {
				for j := range n {
					if labels[i] == labels[j] {
						continue
					}
					modify += visit(s, res, cfg, i, j)
				}
			}
		}

		res.Epochs = epoch + 1
		res.FinalModify = modify

		if cfg.OnModify != nil {
			cfg.OnModify(modify)
		}
		if cfg.OnEpoch != nil {
			cfg.OnEpoch(epoch)
		}

		if modify < cfg.ModifyLimit {
			res.Converged = true
			break
		}
	}

	return res
}

func visit(s stepper, res *Result, cfg Config, i, j int) float64 {
	d, ok := s.step(i, j)
	if !ok {
		res.SkippedPairs++
		return 0
	}
	if cfg.afterUpdate != nil {
		cfg.afterUpdate(i, j)
	}
	return d
}

// partner returns the opposite-label index maximizing |E[i] - E[j]| among the
// pairs that can still move, or -1.
func partner(s stepper, labels []float64, i int) int {
	pp := s.shared()
	best, bestGap := -1, -1.0
	for j := range labels {
		if labels[j] == labels[i] {
			continue
		}
		g := s.gap(i, j)
		if !pp.movable(i, j, g) {
			continue
		}
		if a := math.Abs(g); a > bestGap {
			best, bestGap = j, a
		}
	}
	return best
}

// state holds the multipliers shared by both solvers.
type state struct {
	y    []float64
	mult []float64
	c    float64
}

// movable reports whether a step on (i, j) with E[i] - E[j] = gap would
// change λ_j after clipping.
func (p *state) movable(i, j int, gap float64) bool {
	lj := p.mult[j]
	low, high := bounds(p.y[i], p.y[j], p.mult[i], lj, p.c)
	switch {
	case low > high:
		return false
	case lj < low || lj > high:
		return true
	}
	dir := p.y[j] * gap
	return (dir > 0 && lj < high) || (dir < 0 && lj > low)
}

type general struct {
	state
	k    cache.Kernel
	e    []float64
	diag []float64
}

func (s *general) prepare(int) {}

func (s *general) shared() *state { return &s.state }

func (s *general) gap(i, j int) float64 { return s.e[i] - s.e[j] }

func (s *general) step(i, j int) (float64, bool) {
	yi, yj := s.y[i], s.y[j]
	li, lj := s.mult[i], s.mult[j]

	low, high := bounds(yi, yj, li, lj, s.c)
	if low > high {
		return 0, false
	}

	kij := s.k.Lookup(i, j)
	eta := s.diag[i] + s.diag[j] - 2*kij
	if eta <= 0 {
		return 0, false
	}

	ljNew := clamp(lj+yj*(s.e[i]-s.e[j])/eta, low, high)
	liNew := (li*yi + lj*yj - ljNew*yj) * yi

	di := (liNew - li) * yi
	dj := (ljNew - lj) * yj
	for t := range s.e {
		s.e[t] += di*s.k.Lookup(i, t) + dj*s.k.Lookup(j, t)
	}

	s.mult[i], s.mult[j] = liNew, ljNew

	return math.Abs(liNew-li) + math.Abs(ljNew-lj), true
}

// bounds returns the feasible segment for the new λ_j.
func bounds(yi, yj, li, lj, c float64) (float64, float64) {
	if yi == yj {
		return math.Max(0, li+lj-c), math.Min(c, li+lj)
	}
	return math.Max(0, lj-li), math.Min(c, c+lj-li)
}

func clamp(v, low, high float64) float64 {
	return math.Min(math.Max(v, low), high)
}

// initMultipliers draws λ uniformly from [-1, 1] and clips each draw to the
// box [0, c]. The class with the larger multiplier mass is then scaled down
// to the mass of the other class, which makes Σ y_i·λ_i = 0 while every λ_i
// stays inside the box.
func initMultipliers(mult, y []float64, seed uint64, c float64) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	var pos, neg float64
	for i := range mult {
		mult[i] = clamp(rng.Float64()*2-1, 0, c)
		if y[i] > 0 {
			pos += mult[i]
		} else {
			neg += mult[i]
		}
	}

	var heavy, ratio float64
	switch {
	case pos > neg:
		heavy, ratio = 1, neg/pos
	case neg > pos:
		heavy, ratio = -1, pos/neg
	default:
		return
	}

	top := -1
	var sum float64
	for i := range mult {
		if y[i] == heavy {
			mult[i] *= ratio
			if top < 0 || mult[i] > mult[top] {
				top = i
			}
		}
		sum += mult[i] * y[i]
	}

	// Rounding residue goes to the largest multiplier of the scaled class.
	if top >= 0 {
		mult[top] = clamp(mult[top]-sum*y[top], 0, c)
	}
}

// resolveBias applies the separate-extremes rule over the support vectors.
// value(t) is the unbiased decision value of sample t.
func resolveBias(y, mult []float64, value func(t int) float64) (float64, *bitmap.Set, error) {
	support := bitmap.New()

	posMin, posMax := math.Inf(1), math.Inf(-1)
	negMin, negMax := math.Inf(1), math.Inf(-1)
	var pos, neg int

	for t := range mult {
		if math.Abs(mult[t]) <= model.ClassificationEps {
			continue
		}
		support.Add(t)

		v := value(t)
		if y[t] > 0 {
			pos++
			posMin, posMax = math.Min(posMin, v), math.Max(posMax, v)
		} else {
			neg++
			negMin, negMax = math.Min(negMin, v), math.Max(negMax, v)
		}
	}

	if pos == 0 {
		return 0, support, &ClassError{Label: int8(model.Positive)}
	}
	if neg == 0 {
		return 0, support, &ClassError{Label: int8(model.Negative)}
	}

	if math.Abs(posMax-negMin) > math.Abs(posMin-negMax) {
		return -(posMin + negMax) / 2, support, nil
	}
	return -(negMin + posMax) / 2, support, nil
}
