package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/hupe1980/svmgo"
	"github.com/hupe1980/svmgo/vector"
)

// GridSupportMarker marks support vectors in the sample rows of WriteGrid.
const GridSupportMarker = 3

// ErrNotPlanar is returned for models whose samples are not two-dimensional.
var ErrNotPlanar = errors.New("model is not two-dimensional")

// GridConfig describes the square region sampled by WriteGrid.
type GridConfig struct {
	// Slices is the number of grid steps per axis.
	Slices int
	// Low and High bound both axes.
	Low, High float64
}

// DefaultGridConfig covers [-4.5, 4.5]² with 1000 steps per axis.
func DefaultGridConfig() GridConfig {
	return GridConfig{Slices: 1000, Low: -4.5, High: 4.5}
}

func (c GridConfig) validate() error {
	if c.Slices <= 0 {
		return fmt.Errorf("grid slices must be positive, got %d", c.Slices)
	}
	if !(c.Low < c.High) {
		return fmt.Errorf("grid bounds must satisfy low < high, got [%g, %g]", c.Low, c.High)
	}
	return nil
}

// At returns the coordinate of step i on either axis.
func (c GridConfig) At(i int) float64 {
	return c.Low + (c.High-c.Low)*float64(i)/float64(c.Slices)
}

// WriteGrid writes one f_0,f_1,label,marker line per training sample of the
// trained two-dimensional model m, then Slices² lines holding the
// classification (-1, 0 or 1) at (At(i), At(j)). The outer loop runs over
// the first coordinate.
func WriteGrid(w io.Writer, m *svmgo.Model, cfg GridConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	if !m.IsTrained() {
		return svmgo.ErrNotTrained
	}
	if m.Dimension() != 2 {
		return fmt.Errorf("%w: dimension %d", ErrNotPlanar, m.Dimension())
	}

	bw := bufio.NewWriter(w)

	support := m.SupportVectors()
	for i, s := range m.Samples() {
		marker := PlainMarker
		if support.Contains(i) {
			marker = GridSupportMarker
		}
		if err := writeLine(bw, sampleRecord(s, marker)); err != nil {
			return err
		}
	}

	var buf []byte
	for i := range cfg.Slices {
		x := cfg.At(i)
		for j := range cfg.Slices {
			c := m.Classify(vector.Of(x, cfg.At(j)))
			buf = strconv.AppendInt(buf[:0], int64(c), 10)
			buf = append(buf, '\n')
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

func writeLine(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(f); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}
