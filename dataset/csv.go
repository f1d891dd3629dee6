package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/hupe1980/svmgo/model"
	"github.com/hupe1980/svmgo/vector"
)

// ErrMalformedRecord is returned for records that cannot be turned into a
// sample.
var ErrMalformedRecord = errors.New("malformed record")

// RecordError describes a malformed record.
type RecordError struct {
	Line   int
	Column int // -1 if the whole record is affected
	Reason string
}

func (e *RecordError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("%v at line %d: %s", ErrMalformedRecord, e.Line, e.Reason)
	}
	return fmt.Sprintf("%v at line %d, column %d: %s", ErrMalformedRecord, e.Line, e.Column, e.Reason)
}

func (e *RecordError) Unwrap() error { return ErrMalformedRecord }

// CSVConfig describes the layout of a CSV sample file.
type CSVConfig struct {
	// LabelColumn is the zero-based label column. Negative values count from
	// the end (-1 is the last column).
	LabelColumn int
	// PositiveLabel is the token of the positive class. Every other token is
	// negative unless NegativeLabel is set.
	PositiveLabel string
	// NegativeLabel, if set, is the only accepted negative token.
	NegativeLabel string
	// SkipColumns are ignored, e.g. record IDs.
	SkipColumns []int
	// MissingTokens are feature values read as 0.
	MissingTokens []string
	// HasHeader skips the first record.
	HasHeader bool
}

// WisconsinOriginal is the layout of breast-cancer-wisconsin.data:
// id, nine features, class (2 benign, 4 malignant).
var WisconsinOriginal = CSVConfig{
	LabelColumn:   10,
	PositiveLabel: "4",
	NegativeLabel: "2",
	SkipColumns:   []int{0},
	MissingTokens: []string{"?"},
}

// WisconsinDiagnostic is the layout of wdbc.data: id, class (M/B), 30
// features.
var WisconsinDiagnostic = CSVConfig{
	LabelColumn:   1,
	PositiveLabel: "M",
	NegativeLabel: "B",
	SkipColumns:   []int{0},
	MissingTokens: []string{"?"},
}

// WisconsinPrognostic is the layout of wpbc.data: id, outcome (R/N), 33
// features.
var WisconsinPrognostic = CSVConfig{
	LabelColumn:   1,
	PositiveLabel: "R",
	NegativeLabel: "N",
	SkipColumns:   []int{0},
	MissingTokens: []string{"?"},
}

// LoadCSVFile reads samples from the CSV file at path.
func LoadCSVFile(path string, cfg CSVConfig) ([]model.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadCSV(f, cfg)
}

// LoadCSV reads samples from r. All records must have the same number of
// fields. Loading stops at the first malformed record.
func LoadCSV(r io.Reader, cfg CSVConfig) ([]model.Sample, error) {
	if cfg.PositiveLabel == "" {
		return nil, errors.New("dataset: positive label must be set")
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var (
		samples []model.Sample
		label   = -1
	)

	for first := true; ; first = false {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &RecordError{Line: pe.Line, Column: -1, Reason: pe.Err.Error()}
			}
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if first && cfg.HasHeader {
			continue
		}

		if label < 0 {
			label = cfg.LabelColumn
			if label < 0 {
				label += len(record)
			}
			if label < 0 || label >= len(record) {
				return nil, &RecordError{Line: line, Column: -1, Reason: fmt.Sprintf("label column %d out of range for %d fields", cfg.LabelColumn, len(record))}
			}
		}

		s, rerr := parseRecord(record, label, cfg)
		if rerr != nil {
			rerr.Line = line
			return nil, rerr
		}
		samples = append(samples, s)
	}

	return samples, nil
}

func parseRecord(record []string, label int, cfg CSVConfig) (model.Sample, *RecordError) {
	var s model.Sample

	token := strings.TrimSpace(record[label])
	switch {
	case token == cfg.PositiveLabel:
		s.Label = model.Positive
	case cfg.NegativeLabel == "" || token == cfg.NegativeLabel:
		s.Label = model.Negative
	default:
		return s, &RecordError{Column: label, Reason: fmt.Sprintf("unknown class %q", token)}
	}

	features := make([]float64, 0, len(record))
	for col, field := range record {
		if col == label || slices.Contains(cfg.SkipColumns, col) {
			continue
		}
		field = strings.TrimSpace(field)
		if slices.Contains(cfg.MissingTokens, field) {
			features = append(features, 0)
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return s, &RecordError{Column: col, Reason: fmt.Sprintf("invalid number %q", field)}
		}
		features = append(features, v)
	}
	s.Features = vector.Of(features...)

	return s, nil
}
