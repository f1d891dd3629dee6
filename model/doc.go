// Package model defines the value types shared by the solver, the trained
// classifier and the surrounding tooling.
//
// # Types
//
//   - Label: class of a training sample (+1 or -1)
//   - Sample: a label paired with a feature vector
//   - Classification: ternary classifier output (Negative, Boundary, Positive)
//
// Classification comes from Sign, which maps decision values within
// ClassificationEps of zero to Boundary.
package model
