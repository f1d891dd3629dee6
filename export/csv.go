package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/hupe1980/svmgo"
	"github.com/hupe1980/svmgo/model"
	"github.com/hupe1980/svmgo/vector"
)

// Markers of the last CSV column.
const (
	SupportMarker = 5
	PlainMarker   = 1
)

// ErrMalformedArtifact is returned by ReadCSV for input it cannot parse.
var ErrMalformedArtifact = errors.New("malformed artifact")

// Artifact is the content of a CSV file written by WriteCSV.
type Artifact struct {
	Plane   svmgo.SegmentPlane
	Samples []model.Sample
	Support []bool
}

// SupportCount returns the number of samples marked as support vectors.
func (a *Artifact) SupportCount() int {
	n := 0
	for _, s := range a.Support {
		if s {
			n++
		}
	}
	return n
}

// WriteCSV writes the plane of the trained linear model m on the first line
// (w_0,...,w_{D-1},bias), then one line f_0,...,f_{D-1},label,marker per
// training sample.
func WriteCSV(w io.Writer, m *svmgo.Model) error {
	plane, err := m.Plane()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)

	head := make([]string, 0, plane.Weight.Dim()+1)
	for _, c := range plane.Weight.Components() {
		head = append(head, formatFloat(c))
	}
	head = append(head, formatFloat(plane.Bias))
	if err := cw.Write(head); err != nil {
		return err
	}

	support := m.SupportVectors()
	for i, s := range m.Samples() {
		marker := PlainMarker
		if support.Contains(i) {
			marker = SupportMarker
		}
		if err := cw.Write(sampleRecord(s, marker)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a file written by WriteCSV.
func ReadCSV(r io.Reader) (*Artifact, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	head, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedArtifact)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedArtifact, err)
	}
	if len(head) < 2 {
		return nil, fmt.Errorf("%w: line 1: plane needs at least one weight and a bias", ErrMalformedArtifact)
	}

	coeffs, err := parseFloats(head, 1)
	if err != nil {
		return nil, err
	}
	dim := len(coeffs) - 1

	a := &Artifact{
		Plane: svmgo.SegmentPlane{Weight: vector.Of(coeffs[:dim]...), Bias: coeffs[dim]},
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedArtifact, err)
		}
		if len(rec) != dim+2 {
			return nil, fmt.Errorf("%w: line %d: got %d fields, want %d", ErrMalformedArtifact, line, len(rec), dim+2)
		}

		features, err := parseFloats(rec[:dim], line)
		if err != nil {
			return nil, err
		}
		label, err := strconv.Atoi(rec[dim])
		if err != nil || !model.Label(label).Valid() {
			return nil, fmt.Errorf("%w: line %d: invalid label %q", ErrMalformedArtifact, line, rec[dim])
		}
		marker, err := strconv.Atoi(rec[dim+1])
		if err != nil || (marker != SupportMarker && marker != PlainMarker) {
			return nil, fmt.Errorf("%w: line %d: invalid marker %q", ErrMalformedArtifact, line, rec[dim+1])
		}

		a.Samples = append(a.Samples, model.Sample{Label: model.Label(label), Features: vector.Of(features...)})
		a.Support = append(a.Support, marker == SupportMarker)
	}

	return a, nil
}

func sampleRecord(s model.Sample, marker int) []string {
	rec := make([]string, 0, s.Features.Dim()+2)
	for _, c := range s.Features.Components() {
		rec = append(rec, formatFloat(c))
	}
	return append(rec, strconv.Itoa(int(s.Label)), strconv.Itoa(marker))
}

func parseFloats(fields []string, line int) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d, column %d: %q is not a number", ErrMalformedArtifact, line, i, f)
		}
		out[i] = v
	}
	return out, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
