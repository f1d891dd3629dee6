package persistence

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"path/filepath"
	"testing"

	"github.com/hupe1980/svmgo"
	"github.com/hupe1980/svmgo/blobstore"
	"github.com/hupe1980/svmgo/codec"
	"github.com/hupe1980/svmgo/kernel"
	"github.com/hupe1980/svmgo/resource"
	"github.com/hupe1980/svmgo/testutil"
	"github.com/hupe1980/svmgo/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainedModel(t *testing.T) *svmgo.Model {
	t.Helper()

	m, err := svmgo.New(testutil.NewRNG(1).SeparableSamples(80, 0.3), kernel.RBF{Gamma: 0.5})
	require.NoError(t, err)
	_, err = svmgo.NewTrainer(svmgo.WithTolerance(10), svmgo.WithEpochLimit(20)).Fit(context.Background(), m)
	require.NoError(t, err)
	return m
}

func assertSameModel(t *testing.T, want, got *svmgo.Model) {
	t.Helper()

	assert.Equal(t, want.Len(), got.Len())
	assert.Equal(t, want.Dimension(), got.Dimension())
	assert.Equal(t, want.IsTrained(), got.IsTrained())
	assert.Equal(t, want.Multipliers(), got.Multipliers())
	assert.Equal(t, want.Bias(), got.Bias())
	assert.Equal(t, want.Kernel(), got.Kernel())
	for i := range want.Len() {
		assert.Equal(t, want.Sample(i), got.Sample(i))
	}
}

func TestRoundTrip(t *testing.T) {
	m := trainedModel(t)

	for _, c := range []codec.Codec{codec.JSON{}, codec.GoJSON{}} {
		for _, comp := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
			t.Run(c.Name()+"/"+comp.String(), func(t *testing.T) {
				data, err := Marshal(m, WithCodec(c), WithCompression(comp))
				require.NoError(t, err)

				h, err := ReadHeader(bytes.NewReader(data))
				require.NoError(t, err)
				assert.Equal(t, Version, h.Version)
				assert.Equal(t, comp, h.Compression)
				assert.Equal(t, c.Name(), h.Codec)

				got, err := Unmarshal(data)
				require.NoError(t, err)
				assertSameModel(t, m, got)

				q := vector.Of(0.3, -0.7)
				assert.Equal(t, m.Decision(q), got.Decision(q))
			})
		}
	}
}

func TestCompressionShrinks(t *testing.T) {
	m := trainedModel(t)

	plain, err := Marshal(m, WithCompression(CompressionNone))
	require.NoError(t, err)
	zstd, err := Marshal(m, WithCompression(CompressionZSTD))
	require.NoError(t, err)

	assert.Less(t, len(zstd), len(plain))
}

func TestRoundTripUntrained(t *testing.T) {
	m, err := svmgo.New(testutil.XOR(), kernel.Polynomial{Gamma: 1, Coef0: 1, Degree: 2})
	require.NoError(t, err)

	data, err := Marshal(m)
	require.NoError(t, err)
	got, err := Unmarshal(data)
	require.NoError(t, err)

	assert.False(t, got.IsTrained())
	assertSameModel(t, m, got)
}

func TestLoadErrors(t *testing.T) {
	m := trainedModel(t)
	valid, err := Marshal(m, WithCodec(codec.JSON{}))
	require.NoError(t, err)

	corrupt := func(fn func([]byte)) []byte {
		b := bytes.Clone(valid)
		fn(b)
		return b
	}

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"magic", corrupt(func(b []byte) { b[0] = 'X' }), ErrInvalidMagic},
		{"version", corrupt(func(b []byte) { b[4] = 9 }), ErrUnsupportedVersion},
		{"codec", corrupt(func(b []byte) { copy(b[8:12], "yaml") }), ErrUnknownCodec},
		{"payload", corrupt(func(b []byte) { b[len(b)-1] ^= 0xff }), ErrCorruptSnapshot},
		{"truncated", valid[:len(valid)-10], ErrCorruptSnapshot},
		{"empty", nil, ErrCorruptSnapshot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal(tt.data)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("checksum type", func(t *testing.T) {
		_, err := Unmarshal(corrupt(func(b []byte) { b[len(b)-1] ^= 0xff }))
		var cm *ChecksumMismatchError
		assert.True(t, errors.As(err, &cm))
	})
}

func TestSaveCustomKernel(t *testing.T) {
	m, err := svmgo.New(testutil.XOR(), kernel.Func(func(a, b vector.Vector) float64 { return a.Dot(b) }))
	require.NoError(t, err)

	_, err = Marshal(m)
	assert.ErrorIs(t, err, kernel.ErrNotSerializable)
}

func TestSaveLoadFile(t *testing.T) {
	m := trainedModel(t)
	path := filepath.Join(t.TempDir(), "model.svm")

	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})
	require.NoError(t, SaveFile(context.Background(), path, m, WithResourceController(rc)))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assertSameModel(t, m, got)

	matches, err := filepath.Glob(path + ".tmp-*")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseCompression("brotli")
	assert.Error(t, err)
}

func TestCompressBlockIncompressible(t *testing.T) {
	data := []byte{1, 2, 3}
	for _, c := range []Compression{CompressionLZ4, CompressionZSTD} {
		block, err := compressBlock(data, c)
		require.NoError(t, err)

		out, err := decompressBlock(block, c)
		require.NoError(t, err)
		assert.Equal(t, data, out)
	}
}

func snapshotHeader(size uint64) []byte {
	hdr := []byte(Magic)
	hdr = binary.LittleEndian.AppendUint16(hdr, Version)
	hdr = append(hdr, byte(CompressionNone), 4)
	hdr = append(hdr, "json"...)
	hdr = binary.LittleEndian.AppendUint64(hdr, size)
	return binary.LittleEndian.AppendUint32(hdr, 0)
}

func TestLoadOversizedHeader(t *testing.T) {
	t.Run("beyond limit", func(t *testing.T) {
		data := snapshotHeader(1 << 34)
		require.Len(t, data, 24)

		_, err := Unmarshal(data)
		assert.ErrorIs(t, err, ErrCorruptSnapshot)
	})

	t.Run("at limit without payload", func(t *testing.T) {
		_, err := Unmarshal(snapshotHeader(maxPayloadSize))
		assert.ErrorIs(t, err, ErrCorruptSnapshot)
	})

	t.Run("short payload", func(t *testing.T) {
		data := append(snapshotHeader(64), 1, 2, 3)
		_, err := Unmarshal(data)
		assert.ErrorIs(t, err, ErrCorruptSnapshot)
	})
}

func TestDecompressBlockImplausibleSize(t *testing.T) {
	block := func(uncompressed uint32) []byte {
		b := binary.LittleEndian.AppendUint32(nil, uncompressed)
		b = binary.LittleEndian.AppendUint32(b, 4)
		return append(b, 0xde, 0xad, 0xbe, 0xef)
	}

	tests := []struct {
		name         string
		uncompressed uint32
		compression  Compression
	}{
		{"lz4 beyond limit", 1 << 31, CompressionLZ4},
		{"lz4 ratio", 1 << 20, CompressionLZ4},
		{"zstd beyond limit", 1<<30 + 1, CompressionZSTD},
		{"zstd garbage", 1 << 20, CompressionZSTD},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decompressBlock(block(tt.uncompressed), tt.compression)
			assert.ErrorIs(t, err, ErrCorruptSnapshot)
		})
	}
}

func TestSaveLoadBlob(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	m := trainedModel(t)

	require.NoError(t, SaveBlob(ctx, store, "models/rbf.svm", m, WithCompression(CompressionLZ4)))

	got, err := LoadBlob(ctx, store, "models/rbf.svm")
	require.NoError(t, err)
	assertSameModel(t, m, got)

	_, err = LoadBlob(ctx, store, "models/missing.svm")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
