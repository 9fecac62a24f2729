package serialization

import (
	"bufio"
	"crypto/sha256"
	"encoding/binary"
	"hash"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"

	"github.com/lattice-ml/lattice/internal/tensor"
)

// Save writes the named tensors to path in the .lat format. Tensors are
// written in name order so identical inputs produce identical files.
func Save(path string, tensors map[string]*tensor.RawTensor) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "serialization: create")
	}
	defer f.Close()

	if err := Write(f, tensors); err != nil {
		return errors.Wrapf(err, "serialization: write %s", path)
	}
	return f.Close()
}

// Write streams the container to w.
func Write(w io.Writer, tensors map[string]*tensor.RawTensor) error {
	sum := sha256.New()
	out := bufio.NewWriter(io.MultiWriter(w, sum))

	if _, err := out.WriteString(Magic); err != nil {
		return err
	}
	if err := writeU32(out, FormatVersion); err != nil {
		return err
	}
	if err := writeU32(out, uint32(len(tensors))); err != nil {
		return err
	}

	names := make([]string, 0, len(tensors))
	for name := range tensors {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := writeTensor(out, name, tensors[name]); err != nil {
			return errors.Wrapf(err, "tensor %q", name)
		}
	}
	if err := out.Flush(); err != nil {
		return err
	}

	_, err := w.Write(checksum(sum))
	return err
}

func writeTensor(w *bufio.Writer, name string, t *tensor.RawTensor) error {
	if len(name) > maxNameLen {
		return errors.Errorf("name longer than %d bytes", maxNameLen)
	}
	code, ok := dtypeCodes[t.DType()]
	if !ok {
		return errors.Errorf("unsupported dtype %s", t.DType())
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(name))); err != nil {
		return err
	}
	if _, err := w.WriteString(name); err != nil {
		return err
	}
	if err := w.WriteByte(code); err != nil {
		return err
	}
	shape := t.Shape()
	if err := w.WriteByte(uint8(shape.Rank())); err != nil {
		return err
	}
	for _, dim := range shape {
		if err := writeU32(w, uint32(dim)); err != nil {
			return err
		}
	}
	_, err := w.Write(t.Data())
	return err
}

func writeU32(w io.Writer, v uint32) error {
	return binary.Write(w, binary.LittleEndian, v)
}

func checksum(h hash.Hash) []byte {
	return h.Sum(nil)
}
