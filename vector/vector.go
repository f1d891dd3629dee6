package vector

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Vector is a fixed-dimension dense vector of float64 components.
//
// The zero value is a zero-dimensional vector.
type Vector struct {
	data []float64
}

// New returns a zero vector of dimension dim.
func New(dim int) Vector {
	if dim < 0 {
		panic(fmt.Sprintf("vector: negative dimension %d", dim))
	}
	return Vector{data: make([]float64, dim)}
}

// Of returns a vector holding a copy of xs.
func Of(xs ...float64) Vector {
	return Vector{data: slices.Clone(xs)}
}

// Dim returns the number of components.
func (v Vector) Dim() int { return len(v.data) }

// At returns component i.
func (v Vector) At(i int) float64 { return v.data[i] }

// Components returns a copy of the components.
func (v Vector) Components() []float64 { return slices.Clone(v.data) }

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector { return Vector{data: slices.Clone(v.data)} }

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	mustMatch(v, o)
	return Vector{data: floats.AddTo(make([]float64, len(v.data)), v.data, o.data)}
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	mustMatch(v, o)
	return Vector{data: floats.SubTo(make([]float64, len(v.data)), v.data, o.data)}
}

// Scale returns k * v.
func (v Vector) Scale(k float64) Vector {
	return Vector{data: floats.ScaleTo(make([]float64, len(v.data)), k, v.data)}
}

// Dot returns the inner product of v and o.
func (v Vector) Dot(o Vector) float64 {
	mustMatch(v, o)
	return floats.Dot(v.data, o.data)
}

// SquaredDistance returns |v - o|^2.
func (v Vector) SquaredDistance(o Vector) float64 {
	mustMatch(v, o)
	var sum float64
	for i, x := range v.data {
		d := x - o.data[i]
		sum += d * d
	}
	return sum
}

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	return floats.Norm(v.data, 2)
}

// Equal reports whether v and o have the same dimension and all components
// agree within tol.
func (v Vector) Equal(o Vector, tol float64) bool {
	if len(v.data) != len(o.data) {
		return false
	}
	return floats.EqualApprox(v.data, o.data, tol)
}

// IsFinite reports whether every component is neither NaN nor infinite.
func (v Vector) IsFinite() bool {
	for _, x := range v.data {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// String formats v as "(x0, x1, ...)".
func (v Vector) String() string {
	parts := make([]string, len(v.data))
	for i, x := range v.data {
		parts[i] = fmt.Sprintf("%g", x)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func mustMatch(a, b Vector) {
	if len(a.data) != len(b.data) {
		panic(fmt.Sprintf("vector: dimension mismatch %d != %d", len(a.data), len(b.data)))
	}
}
