// Package persistence stores Models as self-describing binary snapshots.
//
// A snapshot is a fixed header followed by one payload block:
//
//	magic    [4]byte  "SVM1"
//	version  uint16
//	compress uint8    0=none, 1=lz4, 2=zstd
//	codecLen uint8
//	codec    [codecLen]byte
//	size     uint64   payload block size
//	crc32    uint32   IEEE checksum of the payload block
//	payload  [size]byte
//
// The payload block starts with its uncompressed and compressed sizes
// (uint32 each) and holds the codec-encoded model: kernel spec, samples,
// multipliers and bias. All integers are little-endian.
//
// Only models with a built-in kernel (see kernel.Spec) can be stored.
package persistence
