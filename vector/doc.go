// Package vector provides the dense real vector used for sample features and
// for the linear solver's running weight sum.
//
// A Vector has a fixed dimension for its whole lifetime. All arithmetic returns
// a new Vector and never mutates its operands, so copies are independent:
//
//	a := vector.Of(1, 2)
//	b := vector.Of(3, 4)
//	c := a.Add(b).Scale(0.5) // a and b are unchanged
//	d := a.Dot(b)            // 11
//
// Operations on vectors of different dimension panic, the same way slice
// indexing does. Callers that accept untrusted input validate dimensions first
// (see svmgo.New and dataset.Load).
//
// Arithmetic is delegated to gonum's floats package.
package vector
