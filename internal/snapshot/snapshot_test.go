package snapshot

import (
	"encoding/hex"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/fzft/go-collections/errors"
)

func TestWriterHeader(t *testing.T) {
	w := NewWriter(TagHashSet)
	w.Uint32(0)
	assert.Equal(t, "67630301"+"00000000", hex.EncodeToString(w.Bytes()))
}

func TestReaderRejectsBadHeaders(t *testing.T) {
	cases := map[string]string{
		"short":   "6763",
		"magic":   "78780101",
		"tag":     "67630201",
		"version": "67630102",
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			data, _ := hex.DecodeString(h)
			_, err := NewReader(data, TagHashMap, "test")
			require.Error(t, err)
			assert.True(t, errors.Is(err, cerrors.ErrDeserialization))
		})
	}
}

func TestPeekTag(t *testing.T) {
	tag, ok := PeekTag(NewWriter(TagImmutableSet).Bytes())
	assert.True(t, ok)
	assert.Equal(t, TagImmutableSet, tag)

	_, ok = PeekTag([]byte{'g'})
	assert.False(t, ok)
}

func TestScalarRoundTrip(t *testing.T) {
	w := NewWriter(TagHashMap)
	PutScalar[int64](w, -2)
	PutScalar[int32](w, 7)
	PutScalar[uint8](w, 200)
	PutScalar[float64](w, 1.5)
	assert.Equal(t, "67630101"+"fffffffffffffffe"+"00000007"+"c8"+"3ff8000000000000", hex.EncodeToString(w.Bytes()))

	r, err := NewReader(w.Bytes(), TagHashMap, "test")
	require.NoError(t, err)
	i64, err := ReadScalar[int64](r)
	require.NoError(t, err)
	assert.Equal(t, int64(-2), i64)
	i32, err := ReadScalar[int32](r)
	require.NoError(t, err)
	assert.Equal(t, int32(7), i32)
	u8, err := ReadScalar[uint8](r)
	require.NoError(t, err)
	assert.Equal(t, uint8(200), u8)
	f, err := ReadScalar[float64](r)
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)
	assert.NoError(t, r.Done())

	_, err = ReadScalar[int32](r)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestValueRoundTrip(t *testing.T) {
	values := []any{
		nil, int8(-3), int16(300), int32(-70000), int64(math.MaxInt64), -42,
		uint8(9), uint16(65000), uint32(1 << 31), uint64(math.MaxUint64), uint(17),
		float32(0.25), math.Copysign(0, -1), true, false, "", "Harry",
	}
	w := NewWriter(TagHashSet)
	for _, v := range values {
		require.NoError(t, w.Value(v))
	}

	r, err := NewReader(w.Bytes(), TagHashSet, "test")
	require.NoError(t, err)
	for _, want := range values {
		got, err := r.Value()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.NoError(t, r.Done())
}

func TestValueGolden(t *testing.T) {
	w := NewWriter(TagHashSet)
	require.NoError(t, w.Value("Tom"))
	require.NoError(t, w.Value(nil))
	require.NoError(t, w.Value(int32(1)))
	assert.Equal(t, "67630301"+"5100000003546f6d"+"00"+"1400000001", hex.EncodeToString(w.Bytes()))
}

func TestValueRejectsUnknownTypes(t *testing.T) {
	w := NewWriter(TagHashSet)
	err := w.Value(struct{}{})
	assert.True(t, errors.Is(err, cerrors.ErrUnsupportedOperation))
	assert.Equal(t, 4, len(w.Bytes()))
}

func TestReaderValueErrors(t *testing.T) {
	cases := map[string]string{
		"unknown code":     "67630301" + "77",
		"truncated string": "67630301" + "5100000005" + "4142",
		"bad bool":         "67630301" + "4102",
		"truncated int":    "67630301" + "180000",
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			data, err := hex.DecodeString(h)
			require.NoError(t, err)
			r, err := NewReader(data, TagHashSet, "test")
			require.NoError(t, err)
			_, err = r.Value()
			assert.True(t, errors.Is(err, cerrors.ErrDeserialization))
		})
	}
}

func TestCountRejectsImpossibleCounts(t *testing.T) {
	data, _ := hex.DecodeString("67630301" + "ffffffff" + "00")
	r, err := NewReader(data, TagHashSet, "test")
	require.NoError(t, err)
	_, err = r.Count(1)
	assert.True(t, errors.Is(err, cerrors.ErrDeserialization))
}

func TestDoneReportsTrailingBytes(t *testing.T) {
	r, err := NewReader([]byte{'g', 'c', TagHashSet, Version, 0xaa}, TagHashSet, "test")
	require.NoError(t, err)
	assert.Error(t, r.Done())
	assert.Equal(t, []byte{0xaa}, r.Rest())
	assert.NoError(t, r.Done())
}

func TestAs(t *testing.T) {
	r, _ := NewReader(NewWriter(TagHashSet).Bytes(), TagHashSet, "test")

	s, err := As[string](r, "x")
	require.NoError(t, err)
	assert.Equal(t, "x", s)

	v, err := As[any](r, nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = As[string](r, nil)
	assert.True(t, errors.Is(err, cerrors.ErrDeserialization))

	_, err = As[string](r, int64(1))
	assert.True(t, errors.Is(err, cerrors.ErrDeserialization))
}
