package persistence

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"

	"github.com/hupe1980/svmgo"
	"github.com/hupe1980/svmgo/codec"
	"github.com/hupe1980/svmgo/kernel"
	"github.com/hupe1980/svmgo/model"
	"github.com/hupe1980/svmgo/resource"
	"github.com/hupe1980/svmgo/vector"
)

// maxPayloadSize bounds both the stored block and the decompressed payload.
const maxPayloadSize = 1 << 30

type options struct {
	codec       codec.Codec
	compression Compression
	resources   *resource.Controller
}

// Option configures Save.
type Option func(*options)

// WithCodec sets the payload codec. If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression sets the payload compression. Default is ZSTD.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithResourceController throttles snapshot writes with the IO limiter of rc.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:       codec.Default,
		compression: CompressionZSTD,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// payload is the codec-encoded body of a snapshot.
type payload struct {
	Kernel      kernel.Spec `json:"kernel"`
	Dimension   int         `json:"dimension"`
	Labels      []int8      `json:"labels"`
	Features    [][]float64 `json:"features"`
	Trained     bool        `json:"trained"`
	Multipliers []float64   `json:"multipliers,omitempty"`
	Bias        float64     `json:"bias"`
}

func newPayload(m *svmgo.Model) (*payload, error) {
	spec, err := kernel.SpecOf(m.Kernel())
	if err != nil {
		return nil, err
	}

	p := &payload{
		Kernel:    spec,
		Dimension: m.Dimension(),
		Labels:    make([]int8, m.Len()),
		Features:  make([][]float64, m.Len()),
		Trained:   m.IsTrained(),
		Bias:      m.Bias(),
	}
	for i, s := range m.Samples() {
		p.Labels[i] = int8(s.Label)
		p.Features[i] = s.Features.Components()
	}
	if p.Trained {
		p.Multipliers = m.Multipliers()
	}
	return p, nil
}

func (p *payload) model() (*svmgo.Model, error) {
	k, err := kernel.FromSpec(p.Kernel)
	if err != nil {
		return nil, err
	}
	if len(p.Labels) != len(p.Features) {
		return nil, fmt.Errorf("%w: %d labels for %d feature rows", ErrCorruptSnapshot, len(p.Labels), len(p.Features))
	}

	samples := make([]model.Sample, len(p.Labels))
	for i, l := range p.Labels {
		if len(p.Features[i]) != p.Dimension {
			return nil, fmt.Errorf("%w: sample %d has dimension %d, want %d", ErrCorruptSnapshot, i, len(p.Features[i]), p.Dimension)
		}
		samples[i] = model.Sample{Label: model.Label(l), Features: vector.Of(p.Features[i]...)}
	}

	if !p.Trained {
		return svmgo.New(samples, k)
	}
	return svmgo.Restore(samples, k, p.Multipliers, p.Bias)
}

// Marshal encodes m as a snapshot.
func Marshal(m *svmgo.Model, optFns ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Save(context.Background(), &buf, m, optFns...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a snapshot produced by Marshal or Save.
func Unmarshal(data []byte) (*svmgo.Model, error) {
	return Load(bytes.NewReader(data))
}

// Save writes m to w.
func Save(ctx context.Context, w io.Writer, m *svmgo.Model, optFns ...Option) error {
	o := applyOptions(optFns)

	if len(o.codec.Name()) > 255 {
		return fmt.Errorf("codec name %q too long", o.codec.Name())
	}

	p, err := newPayload(m)
	if err != nil {
		return err
	}
	raw, err := o.codec.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	block, err := compressBlock(raw, o.compression)
	if err != nil {
		return err
	}

	hdr := make([]byte, 0, 4+2+1+1+len(o.codec.Name())+8+4)
	hdr = append(hdr, Magic...)
	hdr = binary.LittleEndian.AppendUint16(hdr, Version)
	hdr = append(hdr, byte(o.compression), byte(len(o.codec.Name())))
	hdr = append(hdr, o.codec.Name()...)
	hdr = binary.LittleEndian.AppendUint64(hdr, uint64(len(block)))
	hdr = binary.LittleEndian.AppendUint32(hdr, crc32.ChecksumIEEE(block))

	out := resource.NewRateLimitedWriter(ctx, w, o.resources)
	if _, err := out.Write(hdr); err != nil {
		return err
	}
	_, err = out.Write(block)
	return err
}

// ReadHeader reads and validates the snapshot header from r.
func ReadHeader(r io.Reader) (*Header, error) {
	var fixed [8]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	if string(fixed[:4]) != Magic {
		return nil, ErrInvalidMagic
	}

	h := &Header{
		Version:     binary.LittleEndian.Uint16(fixed[4:]),
		Compression: Compression(fixed[6]),
	}
	if h.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}

	rest := make([]byte, int(fixed[7])+12)
	if _, err := io.ReadFull(r, rest); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	n := int(fixed[7])
	h.Codec = string(rest[:n])
	h.Size = binary.LittleEndian.Uint64(rest[n:])
	h.Checksum = binary.LittleEndian.Uint32(rest[n+8:])

	if h.Size > maxPayloadSize {
		return nil, fmt.Errorf("%w: payload size %d", ErrCorruptSnapshot, h.Size)
	}
	return h, nil
}

// Load reads a snapshot from r.
func Load(r io.Reader) (*svmgo.Model, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	c, ok := codec.ByName(h.Codec)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, h.Codec)
	}

	// The header is not covered by the checksum, so h.Size is only trusted
	// as an upper bound for the read.
	cr := NewChecksumReader(r)
	block, err := io.ReadAll(io.LimitReader(cr, int64(h.Size)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	if uint64(len(block)) != h.Size {
		return nil, fmt.Errorf("%w: payload has %d of %d bytes", ErrCorruptSnapshot, len(block), h.Size)
	}
	if err := cr.Verify(h.Checksum); err != nil {
		return nil, err
	}

	raw, err := decompressBlock(block, h.Compression)
	if err != nil {
		return nil, err
	}

	var p payload
	if err := c.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	return p.model()
}

// SaveFile atomically writes m to path.
func SaveFile(ctx context.Context, path string, m *svmgo.Model, optFns ...Option) error {
	dir := filepath.Dir(path)

	// Write to a temp file in the same directory to ensure rename is atomic.
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	_ = tmp.Chmod(0o644)

	buf := bufio.NewWriter(tmp)
	if err := Save(ctx, buf, m, optFns...); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	tmpName = ""
	return nil
}

// LoadFile reads a snapshot from path.
func LoadFile(path string) (*svmgo.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(bufio.NewReader(f))
}
