package model

import (
	"fmt"
	"math"

	"github.com/hupe1980/svmgo/vector"
)

// ClassificationEps is the half-width of the band around zero that Sign maps to
// Boundary. It is also the threshold above which a multiplier marks a support
// vector.
const ClassificationEps = 1e-6

// Label is the class of a training sample.
type Label int8

const (
	// Negative is the -1 class.
	Negative Label = -1
	// Positive is the +1 class.
	Positive Label = 1
)

// Valid reports whether l is +1 or -1.
func (l Label) Valid() bool { return l == Positive || l == Negative }

// Float returns the label as +1.0 or -1.0.
func (l Label) Float() float64 { return float64(l) }

// String returns "+1" or "-1".
func (l Label) String() string {
	switch l {
	case Positive:
		return "+1"
	case Negative:
		return "-1"
	default:
		return fmt.Sprintf("Label(%d)", int8(l))
	}
}

// Sample is a labelled feature vector. Samples are never mutated by the solver.
type Sample struct {
	Label    Label
	Features vector.Vector
}

// NewSample returns a sample with a copy of features.
func NewSample(label Label, features ...float64) Sample {
	return Sample{Label: label, Features: vector.Of(features...)}
}

// Clone returns a sample with an independent feature vector.
func (s Sample) Clone() Sample {
	return Sample{Label: s.Label, Features: s.Features.Clone()}
}

// String returns a compact representation like "+1:(0.5, 1)".
func (s Sample) String() string {
	return s.Label.String() + ":" + s.Features.String()
}

// Classification is the ternary output of a classifier.
type Classification int8

const (
	// ClassNegative is a decision value below -ClassificationEps.
	ClassNegative Classification = -1
	// ClassBoundary is a decision value within ClassificationEps of zero.
	ClassBoundary Classification = 0
	// ClassPositive is a decision value above ClassificationEps.
	ClassPositive Classification = 1
)

// Matches reports whether c agrees with label l. Boundary matches nothing.
func (c Classification) Matches(l Label) bool {
	return c != ClassBoundary && int8(c) == int8(l)
}

// String returns "negative", "boundary" or "positive".
func (c Classification) String() string {
	switch c {
	case ClassNegative:
		return "negative"
	case ClassBoundary:
		return "boundary"
	case ClassPositive:
		return "positive"
	default:
		return fmt.Sprintf("Classification(%d)", int8(c))
	}
}

// Sign classifies x with the default epsilon band.
func Sign(x float64) Classification {
	return SignEps(x, ClassificationEps)
}

// SignEps classifies x, mapping |x| <= eps to ClassBoundary.
// NaN is treated as ClassBoundary.
func SignEps(x, eps float64) Classification {
	if math.Abs(x) > eps {
		if x > 0 {
			return ClassPositive
		}
		return ClassNegative
	}
	return ClassBoundary
}
