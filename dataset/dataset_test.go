package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hupe1980/svmgo/model"
	"github.com/hupe1980/svmgo/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wisconsinSample = `1000025,5,1,1,1,2,1,3,1,1,2
1002945,5,4,4,5,7,10,3,2,1,2
1057013,8,4,5,1,2,?,7,3,1,4
`

func TestLoadCSVWisconsin(t *testing.T) {
	samples, err := LoadCSV(strings.NewReader(wisconsinSample), WisconsinOriginal)
	require.NoError(t, err)
	require.Len(t, samples, 3)

	assert.Equal(t, model.Negative, samples[0].Label)
	assert.Equal(t, model.Positive, samples[2].Label)
	assert.Equal(t, 9, samples[0].Features.Dim())
	assert.True(t, samples[1].Features.Equal(vector.Of(5, 4, 4, 5, 7, 10, 3, 2, 1), 0))
	assert.Equal(t, 0.0, samples[2].Features.At(5))
}

func TestLoadCSVConfig(t *testing.T) {
	input := "x,y,class\n1.5, -2,yes\n0,3.25,no\n"

	samples, err := LoadCSV(strings.NewReader(input), CSVConfig{
		LabelColumn:   -1,
		PositiveLabel: "yes",
		HasHeader:     true,
	})
	require.NoError(t, err)
	require.Len(t, samples, 2)

	assert.Equal(t, model.Positive, samples[0].Label)
	assert.True(t, samples[0].Features.Equal(vector.Of(1.5, -2), 0))
	assert.Equal(t, model.Negative, samples[1].Label)
}

func TestLoadCSVMalformed(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		column int
	}{
		{"bad number", "1,2,4\n3,x,2\n", 2, 1},
		{"unknown class", "1,2,4\n3,4,7\n", 2, 2},
		{"field count", "1,2,4\n3,2\n", 2, -1},
	}

	cfg := CSVConfig{LabelColumn: 2, PositiveLabel: "4", NegativeLabel: "2"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSV(strings.NewReader(tt.input), cfg)
			require.ErrorIs(t, err, ErrMalformedRecord)

			var re *RecordError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.line, re.Line)
			assert.Equal(t, tt.column, re.Column)
		})
	}

	t.Run("label column out of range", func(t *testing.T) {
		_, err := LoadCSV(strings.NewReader("1,2\n"), CSVConfig{LabelColumn: 5, PositiveLabel: "1"})
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})

	t.Run("missing positive label", func(t *testing.T) {
		_, err := LoadCSV(strings.NewReader("1,2\n"), CSVConfig{})
		assert.Error(t, err)
	})
}

func TestLoadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(wisconsinSample), 0o600))

	samples, err := LoadCSVFile(path, WisconsinOriginal)
	require.NoError(t, err)
	assert.Len(t, samples, 3)

	_, err = LoadCSVFile(filepath.Join(t.TempDir(), "missing.csv"), WisconsinOriginal)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestShuffleSplit(t *testing.T) {
	make10 := func() []model.Sample {
		out := make([]model.Sample, 10)
		for i := range out {
			out[i] = model.NewSample(model.Positive, float64(i))
		}
		return out
	}

	a, b := make10(), make10()
	Shuffle(a, 7)
	Shuffle(b, 7)
	assert.Equal(t, a, b)

	train, test, err := Split(a, 6)
	require.NoError(t, err)
	assert.Len(t, train, 6)
	assert.Len(t, test, 4)

	_, _, err = Split(a, 11)
	assert.Error(t, err)
}

func TestSource(t *testing.T) {
	src := Slice{
		model.NewSample(model.Positive, 1),
		model.NewSample(model.Negative, 2),
		model.NewSample(model.Negative, 3),
	}

	got := Collect(src)
	require.Len(t, got, 3)
	assert.Equal(t, 3.0, got[2].Features.At(0))

	pos, neg := Counts(src)
	assert.Equal(t, 1, pos)
	assert.Equal(t, 2, neg)

	// The middle sample lands on the boundary and counts as a miss.
	classify := func(v vector.Vector) model.Classification {
		switch x := v.At(0); {
		case x < 1.5:
			return model.ClassPositive
		case x < 2.5:
			return model.ClassBoundary
		default:
			return model.ClassNegative
		}
	}
	assert.InDelta(t, 2.0/3.0, Accuracy(src, classify), 1e-12)
	assert.Equal(t, 0.0, Accuracy(Slice{}, classify))
}

func TestLinearGenerator(t *testing.T) {
	g := NewLinearGenerator(LinearConfig{Dimension: 3, Seed: 1})
	samples := g.Generate(100)
	w, b := g.Plane()

	assert.Equal(t, 3, w.Dim())
	assert.Equal(t, 1.0, g.Accuracy())
	for _, s := range samples {
		assert.Equal(t, 3, s.Features.Dim())
		d := w.Dot(s.Features) + b
		assert.Equal(t, d >= 0, s.Label == model.Positive)
	}

	again := NewLinearGenerator(LinearConfig{Dimension: 3, Seed: 1}).Generate(100)
	assert.Equal(t, samples, again)
}

func TestLinearGeneratorFlips(t *testing.T) {
	g := NewLinearGenerator(LinearConfig{Dimension: 2, Seed: 3, FlipProbability: 1, FlipDistance: 1000})
	g.Generate(50)

	assert.Equal(t, 50, g.Flipped())
	assert.Equal(t, 0.0, g.Accuracy())
}

func TestMoonGenerator(t *testing.T) {
	samples := NewMoonGenerator(5, 0).Generate(200)

	pos, neg := Counts(samples)
	assert.Positive(t, pos)
	assert.Positive(t, neg)

	for _, s := range samples {
		y := s.Label.Float()
		x0 := s.Features.At(0) - y
		assert.InDelta(t, 2*(x0*x0*0.5-1.75)*y, s.Features.At(1), 1e-9)
	}
}
