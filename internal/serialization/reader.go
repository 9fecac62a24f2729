package serialization

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"

	"github.com/lattice-ml/lattice/internal/tensor"
)

// Load reads a .lat container from path. Loaded tensors are placed on the
// CPU device regardless of where they were saved from.
func Load(path string) (map[string]*tensor.RawTensor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "serialization: read")
	}
	tensors, err := Read(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "serialization: parse %s", path)
	}
	return tensors, nil
}

// Read parses a complete container held in memory.
func Read(raw []byte) (map[string]*tensor.RawTensor, error) {
	if len(raw) < len(Magic)+8+checksumSize {
		return nil, ErrCorruptHeader
	}

	body, stored := raw[:len(raw)-checksumSize], raw[len(raw)-checksumSize:]
	sum := sha256.Sum256(body)
	if !bytes.Equal(sum[:], stored) {
		return nil, ErrChecksumMismatch
	}

	r := bytes.NewReader(body)
	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(r, magic); err != nil || string(magic) != Magic {
		return nil, ErrInvalidMagic
	}
	var version, count uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, ErrCorruptHeader
	}
	if version != FormatVersion {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "version %d", version)
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, ErrCorruptHeader
	}

	tensors := make(map[string]*tensor.RawTensor, count)
	for i := uint32(0); i < count; i++ {
		name, t, err := readTensor(r)
		if err != nil {
			return nil, errors.Wrapf(err, "tensor %d", i)
		}
		tensors[name] = t
	}
	return tensors, nil
}

func readTensor(r *bytes.Reader) (string, *tensor.RawTensor, error) {
	var nameLen uint16
	if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
		return "", nil, ErrCorruptHeader
	}
	if int(nameLen) > maxNameLen {
		return "", nil, errors.Wrapf(ErrCorruptHeader, "name length %d", nameLen)
	}
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return "", nil, ErrCorruptHeader
	}

	code, err := r.ReadByte()
	if err != nil {
		return "", nil, ErrCorruptHeader
	}
	dtype, ok := dtypeFromCode(code)
	if !ok {
		return "", nil, errors.Wrapf(ErrCorruptHeader, "unknown dtype code %d", code)
	}

	rank, err := r.ReadByte()
	if err != nil || rank > maxRank {
		return "", nil, ErrCorruptHeader
	}
	shape := make(tensor.Shape, rank)
	elems := int64(1)
	for d := range shape {
		var dim uint32
		if err := binary.Read(r, binary.LittleEndian, &dim); err != nil {
			return "", nil, ErrCorruptHeader
		}
		shape[d] = int(dim)
		if dim > 0 && elems > math.MaxInt64/int64(dim) {
			return "", nil, errors.Wrapf(ErrCorruptHeader, "element count overflows for shape %v", shape)
		}
		elems *= int64(dim)
	}

	// The declared data cannot exceed what the container holds; a crafted
	// header must not drive a huge (or wrapped) allocation.
	es := int64(dtype.Size())
	if elems > math.MaxInt64/es {
		return "", nil, errors.Wrapf(ErrCorruptHeader, "data size overflows for shape %v", shape)
	}
	if size := elems * es; size > int64(r.Len()) {
		return "", nil, errors.Wrapf(ErrCorruptHeader, "declared data size %d exceeds remaining %d bytes", size, r.Len())
	}

	t, err := tensor.NewRaw(shape, dtype, tensor.CPU)
	if err != nil {
		return "", nil, errors.Wrap(err, "allocate")
	}
	if _, err := io.ReadFull(r, t.Data()); err != nil {
		return "", nil, errors.Wrap(ErrCorruptHeader, "truncated data")
	}
	return string(name), t, nil
}
