package kernel

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/svmgo/vector"
)

var (
	// ErrNotSerializable is returned when a kernel has no Spec.
	ErrNotSerializable = errors.New("kernel is not serializable")

	// ErrUnknownKernel is returned by FromSpec for an unsupported name.
	ErrUnknownKernel = errors.New("unknown kernel")
)

// Kernel is a symmetric similarity function over feature vectors.
type Kernel interface {
	Eval(a, b vector.Vector) float64
}

// Func adapts an ordinary function to the Kernel interface.
type Func func(a, b vector.Vector) float64

// Eval calls f(a, b).
func (f Func) Eval(a, b vector.Vector) float64 { return f(a, b) }

// Describer is implemented by kernels that can be persisted.
type Describer interface {
	Spec() Spec
}

// Linear is the plain dot product kernel.
type Linear struct{}

// Eval returns a·b.
func (Linear) Eval(a, b vector.Vector) float64 { return a.Dot(b) }

// Spec implements Describer.
func (Linear) Spec() Spec { return Spec{Name: NameLinear} }

// RBF is the Gaussian kernel exp(-Gamma·|a-b|²).
type RBF struct {
	Gamma float64
}

// Eval returns exp(-Gamma·|a-b|²).
func (k RBF) Eval(a, b vector.Vector) float64 {
	return math.Exp(-k.Gamma * a.SquaredDistance(b))
}

// Spec implements Describer.
func (k RBF) Spec() Spec { return Spec{Name: NameRBF, Gamma: k.Gamma} }

// RBFWidth returns the RBF kernel exp(-|a-b|²/width), the form used when the
// bandwidth is expressed as a divisor.
func RBFWidth(width float64) RBF {
	return RBF{Gamma: 1 / width}
}

// Polynomial is (Gamma·a·b + Coef0)^Degree.
type Polynomial struct {
	Gamma  float64
	Coef0  float64
	Degree int
}

// Eval returns (Gamma·a·b + Coef0)^Degree.
func (k Polynomial) Eval(a, b vector.Vector) float64 {
	return powi(k.Gamma*a.Dot(b)+k.Coef0, k.Degree)
}

// Spec implements Describer.
func (k Polynomial) Spec() Spec {
	return Spec{Name: NamePolynomial, Gamma: k.Gamma, Coef0: k.Coef0, Degree: k.Degree}
}

// Sigmoid is tanh(Gamma·a·b + Coef0).
type Sigmoid struct {
	Gamma float64
	Coef0 float64
}

// Eval returns tanh(Gamma·a·b + Coef0).
func (k Sigmoid) Eval(a, b vector.Vector) float64 {
	return math.Tanh(k.Gamma*a.Dot(b) + k.Coef0)
}

// Spec implements Describer.
func (k Sigmoid) Spec() Spec { return Spec{Name: NameSigmoid, Gamma: k.Gamma, Coef0: k.Coef0} }

// IsLinear reports whether k is the plain dot product kernel.
func IsLinear(k Kernel) bool {
	switch k.(type) {
	case Linear, *Linear:
		return true
	default:
		return false
	}
}

// powi computes base^times by repeated squaring.
func powi(base float64, times int) float64 {
	tmp, ret := base, 1.0
	for t := times; t > 0; t /= 2 {
		if t%2 == 1 {
			ret *= tmp
		}
		tmp *= tmp
	}
	return ret
}

// Names of the built-in kernels as stored in a Spec.
const (
	NameLinear     = "linear"
	NameRBF        = "rbf"
	NamePolynomial = "polynomial"
	NameSigmoid    = "sigmoid"
)

// Spec is the serializable description of a built-in kernel.
type Spec struct {
	Name   string  `json:"name"`
	Gamma  float64 `json:"gamma,omitempty"`
	Coef0  float64 `json:"coef0,omitempty"`
	Degree int     `json:"degree,omitempty"`
}

// SpecOf returns the Spec of k, or ErrNotSerializable.
func SpecOf(k Kernel) (Spec, error) {
	d, ok := k.(Describer)
	if !ok {
		return Spec{}, fmt.Errorf("%w: %T", ErrNotSerializable, k)
	}
	return d.Spec(), nil
}

// FromSpec rebuilds a built-in kernel.
func FromSpec(s Spec) (Kernel, error) {
	switch s.Name {
	case NameLinear:
		return Linear{}, nil
	case NameRBF:
		return RBF{Gamma: s.Gamma}, nil
	case NamePolynomial:
		return Polynomial{Gamma: s.Gamma, Coef0: s.Coef0, Degree: s.Degree}, nil
	case NameSigmoid:
		return Sigmoid{Gamma: s.Gamma, Coef0: s.Coef0}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKernel, s.Name)
	}
}
