package dataset

import (
	"fmt"
	"math/rand/v2"

	"github.com/hupe1980/svmgo/model"
	"github.com/hupe1980/svmgo/vector"
)

// Source is a fixed-size, randomly indexable sequence of samples.
type Source interface {
	Len() int
	At(i int) model.Sample
}

// Slice is a Source backed by a slice.
type Slice []model.Sample

// Len implements Source.
func (s Slice) Len() int { return len(s) }

// At implements Source.
func (s Slice) At(i int) model.Sample { return s[i] }

// Collect copies all samples of src into a new slice.
func Collect(src Source) []model.Sample {
	out := make([]model.Sample, src.Len())
	for i := range out {
		out[i] = src.At(i).Clone()
	}
	return out
}

// Counts returns the number of positive and negative samples in src.
func Counts(src Source) (pos, neg int) {
	for i := range src.Len() {
		if src.At(i).Label == model.Positive {
			pos++
		} else {
			neg++
		}
	}
	return pos, neg
}

// Shuffle permutes samples in place, deterministically for a given seed.
func Shuffle(samples []model.Sample, seed uint64) {
	rng := rand.New(rand.NewPCG(seed, seed))
	rng.Shuffle(len(samples), func(i, j int) {
		samples[i], samples[j] = samples[j], samples[i]
	})
}

// Split returns the first n samples as the training set and the rest as the
// test set. Both share the backing array of samples.
func Split(samples []model.Sample, n int) (train, test []model.Sample, err error) {
	if n < 0 || n > len(samples) {
		return nil, nil, fmt.Errorf("split size %d out of range [0, %d]", n, len(samples))
	}
	return samples[:n:n], samples[n:], nil
}

// Accuracy returns the fraction of samples in src whose classification
// matches their label, or 0 for an empty source. Boundary results count as
// misses.
func Accuracy(src Source, classify func(vector.Vector) model.Classification) float64 {
	if src.Len() == 0 {
		return 0
	}
	correct := 0
	for i := range src.Len() {
		s := src.At(i)
		if classify(s.Features).Matches(s.Label) {
			correct++
		}
	}
	return float64(correct) / float64(src.Len())
}
