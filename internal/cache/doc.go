// Package cache holds the per-solve kernel value cache.
//
// The solver asks for K(i, j) billions of times on larger problems. When the
// full triangle of pairwise values fits in the memory budget it is computed once
// and served from a flat buffer; otherwise every lookup evaluates the kernel.
// The choice is made once in New and is invisible to the solver.
//
//	kc := cache.New(n, eval, cache.DefaultMemoryBudget, rc)
//	defer kc.Release()
//	v := kc.Lookup(i, j) // == kc.Lookup(j, i)
package cache
