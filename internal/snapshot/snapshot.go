// Package snapshot implements the versioned binary form shared by maps, sets
// and views. All multi-byte fields are big endian.
//
//	header : 'g' 'c' tag version
//	map    : header keyCode valueCode count:u32 {key value}*
//	view   : header kind <delegate snapshot>
//	set    : header count:u32 {valueCode payload}*
package snapshot

import (
	"encoding/binary"
	"io"

	cerrors "github.com/fzft/go-collections/errors"
	"github.com/fzft/go-collections/internal/scalar"
)

// Version is the only layout this package reads and writes. Output for a
// given version must stay byte-for-byte stable.
const Version byte = 1

const (
	TagHashMap      byte = 0x01
	TagUnmodifiable byte = 0x02
	TagHashSet      byte = 0x03
	TagImmutableSet byte = 0x04
)

const headerLen = 4

var magic = [2]byte{'g', 'c'}

// Writer accumulates a snapshot.
type Writer struct {
	buf []byte
}

// NewWriter starts a snapshot with the header for tag.
func NewWriter(tag byte) *Writer {
	w := &Writer{buf: make([]byte, 0, 64)}
	w.buf = append(w.buf, magic[0], magic[1], tag, Version)
	return w
}

func (w *Writer) Byte(b byte) {
	w.buf = append(w.buf, b)
}

func (w *Writer) Uint32(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

// Raw appends p verbatim, typically a nested snapshot.
func (w *Writer) Raw(p []byte) {
	w.buf = append(w.buf, p...)
}

// Bytes returns the encoded snapshot.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// PutScalar appends k using exactly scalar.Size[K]() bytes.
func PutScalar[K scalar.Scalar](w *Writer, k K) {
	bits := scalar.Bits(k)
	switch scalar.Size[K]() {
	case 1:
		w.buf = append(w.buf, byte(bits))
	case 2:
		w.buf = binary.BigEndian.AppendUint16(w.buf, uint16(bits))
	case 4:
		w.buf = binary.BigEndian.AppendUint32(w.buf, uint32(bits))
	default:
		w.buf = binary.BigEndian.AppendUint64(w.buf, bits)
	}
}

// Reader decodes a snapshot. Every failure is a KindDeserialization error
// attributed to op.
type Reader struct {
	data []byte
	off  int
	op   string
}

// NewReader validates the header and positions the reader after it.
func NewReader(data []byte, tag byte, op string) (*Reader, error) {
	r := &Reader{data: data, op: op}
	if len(data) < headerLen {
		return nil, r.truncated("header")
	}
	if data[0] != magic[0] || data[1] != magic[1] {
		return nil, cerrors.Deserialization(op, "bad magic %q", data[:2])
	}
	if data[2] != tag {
		return nil, cerrors.Deserialization(op, "unexpected tag %#02x, want %#02x", data[2], tag)
	}
	if data[3] != Version {
		return nil, cerrors.Deserialization(op, "unsupported version %d", data[3])
	}
	r.off = headerLen
	return r, nil
}

// PeekTag returns the tag of a snapshot without consuming it.
func PeekTag(data []byte) (byte, bool) {
	if len(data) < headerLen || data[0] != magic[0] || data[1] != magic[1] {
		return 0, false
	}
	return data[2], true
}

func (r *Reader) truncated(what string) error {
	return cerrors.Wrap(io.ErrUnexpectedEOF, cerrors.KindDeserialization, r.op, "truncated "+what)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// Rest consumes and returns every unread byte.
func (r *Reader) Rest() []byte {
	rest := r.data[r.off:]
	r.off = len(r.data)
	return rest
}

func (r *Reader) Byte() (byte, error) {
	if r.Remaining() < 1 {
		return 0, r.truncated("byte")
	}
	b := r.data[r.off]
	r.off++
	return b, nil
}

func (r *Reader) Uint32() (uint32, error) {
	if r.Remaining() < 4 {
		return 0, r.truncated("uint32")
	}
	v := binary.BigEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v, nil
}

// Count reads an element count and rejects counts that cannot fit in the
// remaining input, given that every element takes at least minSize bytes.
func (r *Reader) Count(minSize int) (int, error) {
	n, err := r.Uint32()
	if err != nil {
		return 0, err
	}
	if minSize > 0 && int64(n)*int64(minSize) > int64(r.Remaining()) {
		return 0, cerrors.Deserialization(r.op, "count %d exceeds remaining %d bytes", n, r.Remaining())
	}
	return int(n), nil
}

// Done fails if unread bytes remain.
func (r *Reader) Done() error {
	if r.Remaining() != 0 {
		return cerrors.Deserialization(r.op, "%d trailing bytes", r.Remaining())
	}
	return nil
}

// ReadScalar reads a value written by PutScalar.
func ReadScalar[K scalar.Scalar](r *Reader) (K, error) {
	size := scalar.Size[K]()
	if r.Remaining() < size {
		var zero K
		return zero, r.truncated("scalar")
	}
	p := r.data[r.off : r.off+size]
	r.off += size
	var bits uint64
	switch size {
	case 1:
		bits = uint64(p[0])
	case 2:
		bits = uint64(binary.BigEndian.Uint16(p))
	case 4:
		bits = uint64(binary.BigEndian.Uint32(p))
	default:
		bits = binary.BigEndian.Uint64(p)
	}
	return scalar.FromBits[K](bits), nil
}

// ExpectCode reads one byte and checks it against want.
func (r *Reader) ExpectCode(want byte, what string) error {
	got, err := r.Byte()
	if err != nil {
		return err
	}
	if got != want {
		return cerrors.Deserialization(r.op, "%s code %#02x, want %#02x", what, got, want)
	}
	return nil
}
