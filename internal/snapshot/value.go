package snapshot

import (
	"encoding/binary"
	"fmt"
	"math"

	cerrors "github.com/fzft/go-collections/errors"
)

// Value codes for set elements. Numeric codes match scalar.Code.
const (
	CodeNil     byte = 0x00
	CodeInt8    byte = 0x11
	CodeInt16   byte = 0x12
	CodeInt32   byte = 0x14
	CodeInt64   byte = 0x18
	CodeInt     byte = 0x19
	CodeUint8   byte = 0x21
	CodeUint16  byte = 0x22
	CodeUint32  byte = 0x24
	CodeUint64  byte = 0x28
	CodeUint    byte = 0x29
	CodeFloat32 byte = 0x34
	CodeFloat64 byte = 0x38
	CodeBool    byte = 0x41
	CodeString  byte = 0x51
)

// Value appends a tagged element. int and uint are written as 64-bit values
// under their own codes so they decode back to the same Go type.
func (w *Writer) Value(v any) error {
	b := w.buf
	switch x := v.(type) {
	case nil:
		b = append(b, CodeNil)
	case int8:
		b = append(b, CodeInt8, byte(x))
	case int16:
		b = binary.BigEndian.AppendUint16(append(b, CodeInt16), uint16(x))
	case int32:
		b = binary.BigEndian.AppendUint32(append(b, CodeInt32), uint32(x))
	case int64:
		b = binary.BigEndian.AppendUint64(append(b, CodeInt64), uint64(x))
	case int:
		b = binary.BigEndian.AppendUint64(append(b, CodeInt), uint64(x))
	case uint8:
		b = append(b, CodeUint8, x)
	case uint16:
		b = binary.BigEndian.AppendUint16(append(b, CodeUint16), x)
	case uint32:
		b = binary.BigEndian.AppendUint32(append(b, CodeUint32), x)
	case uint64:
		b = binary.BigEndian.AppendUint64(append(b, CodeUint64), x)
	case uint:
		b = binary.BigEndian.AppendUint64(append(b, CodeUint), uint64(x))
	case float32:
		b = binary.BigEndian.AppendUint32(append(b, CodeFloat32), math.Float32bits(x))
	case float64:
		b = binary.BigEndian.AppendUint64(append(b, CodeFloat64), math.Float64bits(x))
	case bool:
		c := byte(0)
		if x {
			c = 1
		}
		b = append(b, CodeBool, c)
	case string:
		b = binary.BigEndian.AppendUint32(append(b, CodeString), uint32(len(x)))
		b = append(b, x...)
	default:
		return cerrors.New(cerrors.KindUnsupportedOperation, "snapshot.Value", "element type %T has no encoding", v)
	}
	w.buf = b
	return nil
}

func (r *Reader) take(n int, what string) ([]byte, error) {
	if r.Remaining() < n {
		return nil, r.truncated(what)
	}
	p := r.data[r.off : r.off+n]
	r.off += n
	return p, nil
}

// Value reads an element written by Writer.Value.
func (r *Reader) Value() (any, error) {
	code, err := r.Byte()
	if err != nil {
		return nil, err
	}
	if code == CodeNil {
		return nil, nil
	}
	if code == CodeString {
		n, err := r.Uint32()
		if err != nil {
			return nil, err
		}
		p, err := r.take(int(n), "string")
		if err != nil {
			return nil, err
		}
		return string(p), nil
	}

	width := int(code & 0x0f)
	switch width {
	case 1, 2, 4, 8:
	case 9:
		width = 8
	default:
		return nil, cerrors.Deserialization(r.op, "unknown value code %#02x", code)
	}
	p, err := r.take(width, "value")
	if err != nil {
		return nil, err
	}

	switch code {
	case CodeInt8:
		return int8(p[0]), nil
	case CodeInt16:
		return int16(binary.BigEndian.Uint16(p)), nil
	case CodeInt32:
		return int32(binary.BigEndian.Uint32(p)), nil
	case CodeInt64:
		return int64(binary.BigEndian.Uint64(p)), nil
	case CodeInt:
		return int(int64(binary.BigEndian.Uint64(p))), nil
	case CodeUint8:
		return p[0], nil
	case CodeUint16:
		return binary.BigEndian.Uint16(p), nil
	case CodeUint32:
		return binary.BigEndian.Uint32(p), nil
	case CodeUint64:
		return binary.BigEndian.Uint64(p), nil
	case CodeUint:
		return uint(binary.BigEndian.Uint64(p)), nil
	case CodeFloat32:
		return math.Float32frombits(binary.BigEndian.Uint32(p)), nil
	case CodeFloat64:
		return math.Float64frombits(binary.BigEndian.Uint64(p)), nil
	case CodeBool:
		switch p[0] {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return nil, cerrors.Deserialization(r.op, "bad bool byte %#02x", p[0])
	}
	return nil, cerrors.Deserialization(r.op, "unknown value code %#02x", code)
}

// As converts a decoded element to T. A nil element is only accepted when
// the zero value of T is itself nil.
func As[T any](r *Reader, v any) (T, error) {
	var zero T
	if v == nil {
		if any(zero) == nil {
			return zero, nil
		}
		return zero, cerrors.Deserialization(r.op, "nil element for %T", zero)
	}
	t, ok := v.(T)
	if !ok {
		return zero, cerrors.Deserialization(r.op, "element %v is %T, want %s", v, v, typeName[T]())
	}
	return t, nil
}

func typeName[T any]() string {
	var p *T
	return fmt.Sprintf("%T", p)[1:]
}
