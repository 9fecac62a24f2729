// Package serialization reads and writes the .lat container: a flat
// binary file holding named raw tensors plus a SHA-256 checksum.
//
// Layout, little-endian throughout:
//
//	"LATT" | u32 version | u32 count
//	count * ( u16 nameLen | name | u8 dtype | u8 rank | rank*u32 dims | data )
//	32-byte SHA-256 of everything above
package serialization

import (
	"errors"

	"github.com/lattice-ml/lattice/internal/tensor"
)

// Format constants.
const (
	Magic         = "LATT"
	FormatVersion = 1
	checksumSize  = 32
	maxNameLen    = 1 << 10
	maxRank       = 16
)

// Common errors.
var (
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrCorruptHeader      = errors.New("corrupt tensor header")
)

// On-disk dtype codes. Stable across releases; never reorder.
var dtypeCodes = map[tensor.DataType]uint8{
	tensor.Float16: 0,
	tensor.Float32: 1,
	tensor.Float64: 2,
	tensor.Int32:   3,
	tensor.Int64:   4,
	tensor.Uint8:   5,
	tensor.Bool:    6,
}

func dtypeFromCode(code uint8) (tensor.DataType, bool) {
	for dt, c := range dtypeCodes {
		if c == code {
			return dt, true
		}
	}
	return 0, false
}
