// Package dataset provides sample sources for training: in-memory slices,
// CSV loading with fail-fast validation, and synthetic generators.
//
// Loaders validate every record before a Model is built. A malformed record
// stops loading with an error that names the line and column.
package dataset
