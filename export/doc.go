// Package export writes training artifacts for inspection outside Go.
//
// # Artifacts
//
//   - WriteCSV / ReadCSV: the plane of a linear model followed by the
//     training samples, support vectors marked
//   - WriteGrid: the training samples followed by a row-major grid of
//     classifications over a square region, for nonlinear models
//   - Plot / WritePlot: a gonum/plot rendering of the samples and the
//     decision boundary
package export
