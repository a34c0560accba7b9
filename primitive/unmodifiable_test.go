package primitive

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/fzft/go-collections/errors"
	"github.com/fzft/go-collections/view"
)

func TestUnmodifiableMapForwardsReads(t *testing.T) {
	m := NewLongIntHashMap()
	_, _, _ = m.Put(1, 10)
	u := m.AsUnmodifiable()

	v, ok := u.Get(1)
	assert.True(t, ok)
	assert.Equal(t, int32(10), v)
	assert.Equal(t, view.KindMap, u.Kind())

	// reads see later writes to the delegate
	_, _, _ = m.Put(2, 20)
	assert.Equal(t, 2, u.Len())
	assert.True(t, u.ContainsKey(2))
	assert.True(t, u.ContainsValue(20))
	assert.Equal(t, m.String(), u.String())
}

func TestUnmodifiableMapRejectsWrites(t *testing.T) {
	m := NewLongIntHashMap()
	_, _, _ = m.Put(1, 10)
	u := NewUnmodifiableMap[int64, int32](m)

	writes := map[string]func() error{
		"Put":            func() error { _, _, err := u.Put(2, 2); return err },
		"Remove":         func() error { _, _, err := u.Remove(1); return err },
		"PutAll":         func() error { return u.PutAll(m) },
		"AddToValue":     func() error { _, err := u.AddToValue(1, 1); return err },
		"GetIfAbsentPut": func() error { _, err := u.GetIfAbsentPut(3, 3); return err },
		"Clear":          u.Clear,
	}
	for name, write := range writes {
		t.Run(name, func(t *testing.T) {
			err := write()
			assert.True(t, errors.Is(err, cerrors.ErrUnsupportedOperation))
			assert.Equal(t, 1, m.Len())
			v, _ := m.Get(1)
			assert.Equal(t, int32(10), v)
		})
	}
}

func TestUnmodifiableMapEquality(t *testing.T) {
	a := NewLongIntHashMap()
	b := NewLongIntHashMap()
	_, _, _ = a.Put(7, 1)
	_, _, _ = b.Put(7, 1)

	ua, ub := a.AsUnmodifiable(), b.AsUnmodifiable()
	assert.True(t, ua.Equal(ub))
	assert.True(t, ua.Equal(a))
	assert.True(t, a.Equal(ua))
	assert.Equal(t, a.HashCode(), ua.HashCode())

	_, _, _ = b.Put(8, 1)
	assert.False(t, ua.Equal(ub))
}

func TestNewUnmodifiableMapDoesNotRewrap(t *testing.T) {
	u := NewLongIntHashMap().AsUnmodifiable()
	assert.Same(t, u, NewUnmodifiableMap[int64, int32](u))
}

func TestUnmodifiableEmptyMapRoundTrip(t *testing.T) {
	u := NewLongIntHashMap().AsUnmodifiable()
	data, err := u.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, "Z2MCAQFnYwEBGBQAAAAA", base64.StdEncoding.EncodeToString(data))

	decoded, err := UnmarshalUnmodifiableMap[int64, int32](data)
	require.NoError(t, err)
	assert.NotSame(t, u, decoded)
	assert.True(t, decoded.Equal(u))
	assert.True(t, decoded.IsEmpty())

	_, _, err = decoded.Put(1, 1)
	assert.True(t, errors.Is(err, cerrors.ErrUnsupportedOperation))
	assert.True(t, decoded.IsEmpty())
}

func TestUnmodifiableMapUnmarshalBinary(t *testing.T) {
	m := NewLongIntHashMap()
	_, _, _ = m.Put(5, 50)
	data, err := m.AsUnmodifiable().MarshalBinary()
	require.NoError(t, err)

	var u UnmodifiableMap[int64, int32]
	require.NoError(t, u.UnmarshalBinary(data))
	assert.True(t, u.Equal(m))

	_, _, _ = m.Put(6, 60)
	assert.Equal(t, 1, u.Len(), "decoded view owns a new delegate")
}

func TestUnmodifiableMapUnmarshalBinaryRejectsBuiltView(t *testing.T) {
	src := NewLongIntHashMap()
	_, _, _ = src.Put(5, 50)
	_, _, _ = src.Put(6, 60)
	data, err := src.AsUnmodifiable().MarshalBinary()
	require.NoError(t, err)

	m := NewLongIntHashMap()
	_, _, _ = m.Put(1, 10)
	v := m.AsUnmodifiable()
	err = v.UnmarshalBinary(data)
	assert.True(t, errors.Is(err, cerrors.ErrUnsupportedOperation))
	assert.True(t, v.Equal(m))
	assert.Equal(t, 1, v.Len())

	_, _, _ = m.Put(2, 20)
	assert.Equal(t, 2, v.Len(), "view still reflects its delegate")
}

func TestUnmarshalUnmodifiableMapRejectsCorruptInput(t *testing.T) {
	cases := map[string]string{
		"plain map":      "67630101181400000000",
		"set kind":       "6763020102" + "67630101181400000000",
		"wrong key type": "6763020101" + "67630101141400000000",
		"truncated":      "6763020101" + "676301011814000000",
		"trailing":       "6763020101" + "67630101181400000000" + "ff",
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			data, err := hex.DecodeString(h)
			require.NoError(t, err)
			_, err = UnmarshalUnmodifiableMap[int64, int32](data)
			assert.True(t, errors.Is(err, cerrors.ErrDeserialization))
		})
	}
}
