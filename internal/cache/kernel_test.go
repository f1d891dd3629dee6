package cache

import (
	"testing"

	"github.com/hupe1980/svmgo/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// asymmetricEval would break symmetry if New did not canonicalize indices.
func asymmetricEval(calls *int) Evaluator {
	return func(i, j int) float64 {
		*calls++
		return float64(i*100 + j)
	}
}

func TestTriangularBytes(t *testing.T) {
	assert.Equal(t, int64(0), TriangularBytes(0))
	assert.Equal(t, int64(8), TriangularBytes(1))
	assert.Equal(t, int64(6*8), TriangularBytes(3))
	assert.Equal(t, int64(200*201/2*8), TriangularBytes(200))
}

func TestCached(t *testing.T) {
	var calls int
	kc := New(4, asymmetricEval(&calls), DefaultMemoryBudget, nil)
	defer kc.Release()

	require.Equal(t, ModeCached, kc.Mode())
	assert.Equal(t, TriangularBytes(4), kc.Bytes())
	assert.Equal(t, 10, calls)

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			hi, lo := max(i, j), min(i, j)
			assert.Equal(t, float64(hi*100+lo), kc.Lookup(i, j))
			assert.Equal(t, kc.Lookup(i, j), kc.Lookup(j, i))
		}
	}
	// Lookups never re-evaluate.
	assert.Equal(t, 10, calls)
}

func TestOnDemand(t *testing.T) {
	var calls int
	kc := New(4, asymmetricEval(&calls), TriangularBytes(4)-1, nil)
	defer kc.Release()

	require.Equal(t, ModeOnDemand, kc.Mode())
	assert.Equal(t, int64(0), kc.Bytes())
	assert.Equal(t, 0, calls)

	assert.Equal(t, 301.0, kc.Lookup(1, 3))
	assert.Equal(t, 301.0, kc.Lookup(3, 1))
	assert.Equal(t, 2, calls)
}

func TestCachedMatchesOnDemand(t *testing.T) {
	var a, b int
	cachedK := New(7, asymmetricEval(&a), DefaultMemoryBudget, nil)
	lazyK := New(7, asymmetricEval(&b), 0, nil)

	require.Equal(t, ModeCached, cachedK.Mode())
	require.Equal(t, ModeOnDemand, lazyK.Mode())
	for i := 0; i < 7; i++ {
		for j := 0; j < 7; j++ {
			assert.Equal(t, cachedK.Lookup(i, j), lazyK.Lookup(i, j))
		}
	}
}

func TestResourceController(t *testing.T) {
	var calls int
	rc := resource.NewController(resource.Config{MemoryLimitBytes: TriangularBytes(10)})

	kc := New(10, asymmetricEval(&calls), DefaultMemoryBudget, rc)
	require.Equal(t, ModeCached, kc.Mode())
	assert.False(t, rc.TryAcquireMemory(1))

	// Budget exhausted: the second cache falls back.
	other := New(10, asymmetricEval(&calls), DefaultMemoryBudget, rc)
	assert.Equal(t, ModeOnDemand, other.Mode())

	kc.Release()
	kc.Release()

	again := New(10, asymmetricEval(&calls), DefaultMemoryBudget, rc)
	assert.Equal(t, ModeCached, again.Mode())
	again.Release()
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "cached", ModeCached.String())
	assert.Equal(t, "on-demand", ModeOnDemand.String())
	assert.Equal(t, "Unknown(9)", Mode(9).String())
}
