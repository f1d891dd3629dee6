package cache

import (
	"fmt"

	"github.com/hupe1980/svmgo/resource"
)

// DefaultMemoryBudget is the largest kernel triangle (in bytes) that is cached.
const DefaultMemoryBudget int64 = 1 << 30

const float64Size = 8

// Mode identifies how kernel values are served.
type Mode uint8

const (
	// ModeOnDemand evaluates the kernel on every lookup.
	ModeOnDemand Mode = iota
	// ModeCached serves precomputed values from a triangular buffer.
	ModeCached
)

func (m Mode) String() string {
	switch m {
	case ModeOnDemand:
		return "on-demand"
	case ModeCached:
		return "cached"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Evaluator computes the kernel value of samples i and j.
// It is always called with i >= j.
type Evaluator func(i, j int) float64

// Kernel serves symmetric kernel lookups for one solve.
type Kernel interface {
	// Lookup returns K(i, j). Lookup(i, j) == Lookup(j, i).
	Lookup(i, j int) float64
	// Mode reports how values are served.
	Mode() Mode
	// Bytes is the memory held by the cache (0 for on-demand).
	Bytes() int64
	// Release returns reserved memory to the controller. Idempotent.
	Release()
}

// TriangularBytes is the size of the lower triangle (diagonal included) of an
// n×n float64 matrix.
func TriangularBytes(n int) int64 {
	return int64(n) * int64(n+1) / 2 * float64Size
}

// New builds the kernel cache for n samples.
//
// The triangle is materialized when it fits into budget and rc grants the
// memory; otherwise an on-demand Kernel is returned. A budget <= 0 disables
// caching. rc may be nil.
func New(n int, eval Evaluator, budget int64, rc *resource.Controller) Kernel {
	size := TriangularBytes(n)
	if budget <= 0 || size > budget || !rc.TryAcquireMemory(size) {
		return onDemand{eval: eval}
	}

	data := make([]float64, n*(n+1)/2)
	for i := 0; i < n; i++ {
		row := i * (i + 1) / 2
		for j := 0; j <= i; j++ {
			data[row+j] = eval(i, j)
		}
	}

	return &cached{data: data, bytes: size, rc: rc}
}

type cached struct {
	data  []float64
	bytes int64
	rc    *resource.Controller
}

func (c *cached) Lookup(i, j int) float64 {
	if i < j {
		i, j = j, i
	}
	return c.data[i*(i+1)/2+j]
}

func (c *cached) Mode() Mode { return ModeCached }

func (c *cached) Bytes() int64 { return c.bytes }

func (c *cached) Release() {
	if c.data == nil {
		return
	}
	c.data = nil
	c.rc.ReleaseMemory(c.bytes)
}

type onDemand struct {
	eval Evaluator
}

func (o onDemand) Lookup(i, j int) float64 {
	if i < j {
		i, j = j, i
	}
	return o.eval(i, j)
}

func (onDemand) Mode() Mode { return ModeOnDemand }

func (onDemand) Bytes() int64 { return 0 }

func (onDemand) Release() {}
