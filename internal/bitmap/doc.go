// Package bitmap provides the compressed index set used to track support
// vectors.
//
// Support vectors are usually a small, clustered subset of the training set,
// which is the case roaring bitmaps compress well.
package bitmap
