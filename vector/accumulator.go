package vector

import "gonum.org/v1/gonum/floats"

// Accumulator is a mutable running sum of scaled vectors.
//
// It backs the linear solver's weighted feature sum, which is updated twice per
// pair and would otherwise allocate on every step. An Accumulator is owned by a
// single goroutine.
type Accumulator struct {
	data []float64
}

// NewAccumulator returns a zero accumulator of dimension dim.
func NewAccumulator(dim int) *Accumulator {
	return &Accumulator{data: make([]float64, dim)}
}

// AddScaled adds k * v to the sum.
func (a *Accumulator) AddScaled(k float64, v Vector) {
	mustMatch(Vector{data: a.data}, v)
	floats.AddScaled(a.data, k, v.data)
}

// Dot returns the inner product of the current sum and v.
func (a *Accumulator) Dot(v Vector) float64 {
	mustMatch(Vector{data: a.data}, v)
	return floats.Dot(a.data, v.data)
}

// Vector returns a snapshot of the current sum.
func (a *Accumulator) Vector() Vector {
	return Of(a.data...)
}
