package svmgo

import (
	"github.com/hupe1980/svmgo/model"
	"github.com/hupe1980/svmgo/vector"
)

// SegmentPlane is the decision plane w·x + b = 0 of a linear model.
type SegmentPlane struct {
	Weight vector.Vector
	Bias   float64
}

// Decision returns w·x + b.
func (p SegmentPlane) Decision(x vector.Vector) float64 {
	return p.Weight.Dot(x) + p.Bias
}

// Classify returns the sign of Decision(x) with the ClassificationEps band.
func (p SegmentPlane) Classify(x vector.Vector) model.Classification {
	return model.Sign(p.Decision(x))
}

// Distance returns the signed Euclidean distance of x to the plane.
// It returns 0 for a zero weight.
func (p SegmentPlane) Distance(x vector.Vector) float64 {
	n := p.Weight.Norm()
	if n == 0 {
		return 0
	}
	return p.Decision(x) / n
}

// Margin returns the geometric margin width 2/‖w‖, or 0 for a zero weight.
func (p SegmentPlane) Margin() float64 {
	n := p.Weight.Norm()
	if n == 0 {
		return 0
	}
	return 2 / n
}
