package persistence

import (
	"errors"
	"fmt"
)

const (
	// Magic identifies snapshot files (ASCII "SVM1").
	Magic = "SVM1"
	// Version is the current snapshot format version.
	Version uint16 = 1
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrUnsupportedVersion = errors.New("unsupported version")
	ErrUnknownCodec       = errors.New("unknown codec")
	ErrCorruptSnapshot    = errors.New("corrupt snapshot")
)

// Compression selects the payload compression.
type Compression uint8

const (
	// CompressionNone stores the payload as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD (better ratio).
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

// ParseCompression maps "none", "lz4" and "zstd" to a Compression.
func ParseCompression(s string) (Compression, error) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown compression %q", s)
}

// Header is the fixed prefix of a snapshot.
type Header struct {
	Version     uint16
	Compression Compression
	Codec       string
	Size        uint64
	Checksum    uint32
}
