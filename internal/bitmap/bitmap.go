package bitmap

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Set is a set of sample indices backed by a 32-bit roaring bitmap.
// A Set is not safe for concurrent mutation.
type Set struct {
	rb *roaring.Bitmap
}

// New creates an empty set.
func New() *Set {
	return &Set{rb: roaring.New()}
}

// Add inserts index i.
func (s *Set) Add(i int) {
	s.rb.Add(uint32(i))
}

// Contains reports whether i is in the set.
func (s *Set) Contains(i int) bool {
	if i < 0 {
		return false
	}
	return s.rb.Contains(uint32(i))
}

// Len returns the number of indices in the set.
func (s *Set) Len() int {
	return int(s.rb.GetCardinality())
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	return &Set{rb: s.rb.Clone()}
}

// All iterates the indices in ascending order.
func (s *Set) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}

// ToSlice returns the indices in ascending order.
func (s *Set) ToSlice() []int {
	out := make([]int, 0, s.Len())
	for i := range s.All() {
		out = append(out, i)
	}
	return out
}

