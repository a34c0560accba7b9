package primitive

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/fzft/go-collections/errors"
)

func TestEmptyMapGolden(t *testing.T) {
	data, err := NewLongIntHashMap().MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, "Z2MBARgUAAAAAA==", base64.StdEncoding.EncodeToString(data))
}

func TestMapGolden(t *testing.T) {
	m := NewLongIntHashMap()
	_, _, _ = m.Put(2, 12)
	_, _, _ = m.Put(1, 11)
	_, _, _ = m.Put(0, 10)

	data, err := m.MarshalBinary()
	require.NoError(t, err)
	want := "67630101" + "18" + "14" + "00000003" +
		"0000000000000000" + "0000000a" +
		"0000000000000001" + "0000000b" +
		"0000000000000002" + "0000000c"
	assert.Equal(t, want, hex.EncodeToString(data))
}

func TestMapRoundTrip(t *testing.T) {
	m := NewLongIntHashMap()
	for k := int64(-100); k < 100; k++ {
		_, _, _ = m.Put(k*7919, int32(k))
	}
	data, err := m.MarshalBinary()
	require.NoError(t, err)

	decoded := NewLongIntHashMap()
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.True(t, decoded.Equal(m))

	again, err := decoded.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, len(data), len(again))
}

func TestFloatMapRoundTrip(t *testing.T) {
	m := NewHashMap[float32, uint16]()
	_, _, _ = m.Put(0, 1)
	_, _, _ = m.Put(1, 2)
	_, _, _ = m.Put(-2.5, 3)

	data, err := m.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, byte(0x34), data[4])
	assert.Equal(t, byte(0x22), data[5])

	decoded := NewHashMap[float32, uint16]()
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.True(t, decoded.Equal(m))
}

func TestUnmarshalFailureLeavesMapUnchanged(t *testing.T) {
	m := NewLongIntHashMap()
	_, _, _ = m.Put(9, 9)

	cases := map[string]string{
		"value type": "676301011818" + "00000000",
		"count":      "676301011814" + "00000002" + "0000000000000005" + "00000001",
		"duplicate":  "676301011814" + "00000002" + "0000000000000005" + "00000001" + "0000000000000005" + "00000002",
		"version":    "676301021814" + "00000000",
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			data, err := hex.DecodeString(h)
			require.NoError(t, err)
			err = m.UnmarshalBinary(data)
			assert.True(t, errors.Is(err, cerrors.ErrDeserialization))
			assert.Equal(t, 1, m.Len())
			assert.True(t, m.ContainsKey(9))
		})
	}
}
