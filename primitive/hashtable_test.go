package primitive

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/fzft/go-collections/errors"
	"github.com/fzft/go-collections/internal/scalar"
)

type rehashEvent struct {
	oldCap, newCap, live, tombstones int
}

type recordingObserver struct {
	events []rehashEvent
}

func (o *recordingObserver) OnRehash(oldCap, newCap, live, tombstones int) {
	o.events = append(o.events, rehashEvent{oldCap, newCap, live, tombstones})
}

// collidingKeys returns n keys that share a home slot in a table of slots
// slots.
func collidingKeys(slots, n int) []int64 {
	mask := uint64(slots - 1)
	var keys []int64
	var home uint64
	for k := int64(2); len(keys) < n; k++ {
		h := spread(scalar.Bits(k)) & mask
		if len(keys) == 0 {
			home = h
		}
		if h == home {
			keys = append(keys, k)
		}
	}
	return keys
}

func slotOf(t *hashTable[int64, int32], key int64) int {
	for i, k := range t.keys {
		if k == key {
			return i
		}
	}
	return -1
}

func TestSlotsFor(t *testing.T) {
	assert.Equal(t, 16, slotsFor(DefaultCapacity))
	assert.Equal(t, 2, slotsFor(0))
	assert.Equal(t, 2, slotsFor(1))
	assert.Equal(t, 32, slotsFor(9))
	assert.Panics(t, func() { slotsFor(-1) })
	assert.Panics(t, func() { slotsFor(MaxCapacity) })
}

func TestGrowCapacity(t *testing.T) {
	next, err := growCapacity(16)
	require.NoError(t, err)
	assert.Equal(t, 32, next)

	_, err = growCapacity(MaxCapacity)
	assert.True(t, errors.Is(err, cerrors.ErrCapacityOverflow))
}

func TestProbeChainSurvivesRemoval(t *testing.T) {
	table := newHashTable[int64, int32](DefaultCapacity, nil)
	keys := collidingKeys(16, 3)
	for i, k := range keys {
		table.put(k, int32(i+10))
	}
	assert.Equal(t, 3, table.size)
	assert.Equal(t, 3, table.occupied)

	prev, ok := table.remove(keys[1])
	assert.True(t, ok)
	assert.Equal(t, int32(11), prev)
	assert.Equal(t, 2, table.size)
	assert.Equal(t, 3, table.occupied, "tombstones keep their slot")

	v, ok := table.get(keys[2])
	assert.True(t, ok, "lookup continues past the tombstone")
	assert.Equal(t, int32(12), v)

	_, ok = table.get(keys[1])
	assert.False(t, ok)
}

func TestPutReusesFirstTombstone(t *testing.T) {
	table := newHashTable[int64, int32](DefaultCapacity, nil)
	keys := collidingKeys(16, 4)
	for _, k := range keys[:3] {
		table.put(k, 1)
	}
	tomb := slotOf(table, keys[0])
	table.remove(keys[0])

	table.put(keys[3], 4)
	assert.Equal(t, tomb, slotOf(table, keys[3]))
	assert.Equal(t, 3, table.size)
	assert.Equal(t, 3, table.occupied)

	// overwriting an existing key past the tombstone must not duplicate it
	table.remove(keys[3])
	table.put(keys[2], 9)
	assert.Equal(t, 2, table.size)
	v, _ := table.get(keys[2])
	assert.Equal(t, int32(9), v)
}

func TestSentinelKeysLiveOutOfBand(t *testing.T) {
	table := newHashTable[int64, int32](DefaultCapacity, nil)
	table.put(0, 100)
	table.put(1, 101)
	assert.Equal(t, 0, table.size)
	assert.Equal(t, 0, table.occupied)
	assert.Equal(t, 2, table.len())

	v, ok := table.get(0)
	assert.True(t, ok)
	assert.Equal(t, int32(100), v)
	v, ok = table.get(1)
	assert.True(t, ok)
	assert.Equal(t, int32(101), v)

	prev, ok := table.remove(0)
	assert.True(t, ok)
	assert.Equal(t, int32(100), prev)
	assert.False(t, table.containsKey(0))
	assert.True(t, table.containsKey(1))
}

func TestFloatKeysCompareByBits(t *testing.T) {
	table := newHashTable[float64, int32](DefaultCapacity, nil)
	negZero := math.Copysign(0, -1)
	nan := math.NaN()

	table.put(0, 1)
	table.put(negZero, 2)
	table.put(nan, 3)
	table.put(1.0, 4)
	assert.Equal(t, 4, table.len())
	assert.Equal(t, 2, table.size, "only -0.0 and NaN use the arrays")

	v, ok := table.get(negZero)
	assert.True(t, ok)
	assert.Equal(t, int32(2), v)
	v, ok = table.get(nan)
	assert.True(t, ok)
	assert.Equal(t, int32(3), v)
}

func TestRehashGrowsPastLoadFactor(t *testing.T) {
	obs := &recordingObserver{}
	table := newHashTable[int64, int32](DefaultCapacity, obs)
	for k := int64(2); k < 10; k++ {
		table.put(k, int32(k))
	}
	assert.Len(t, table.keys, 16)
	assert.Empty(t, obs.events)

	table.put(10, 10)
	assert.Len(t, table.keys, 32)
	assert.Equal(t, []rehashEvent{{16, 32, 9, 0}}, obs.events)
	assert.Equal(t, table.size, table.occupied)
	for k := int64(2); k <= 10; k++ {
		v, ok := table.get(k)
		assert.True(t, ok)
		assert.Equal(t, int32(k), v)
	}
}

func TestRehashCompactsTombstones(t *testing.T) {
	obs := &recordingObserver{}
	table := newHashTable[int64, int32](DefaultCapacity, obs)
	for k := int64(2); k < 10; k++ {
		table.put(k, int32(k))
	}
	for k := int64(2); k < 9; k++ {
		table.remove(k)
	}
	assert.Equal(t, 1, table.size)
	assert.Equal(t, 8, table.occupied)

	table.rehash()
	assert.Len(t, table.keys, 16, "tombstone heavy tables keep their capacity")
	assert.Equal(t, 1, table.occupied)
	assert.Equal(t, []rehashEvent{{16, 16, 1, 7}}, obs.events)
	v, ok := table.get(9)
	assert.True(t, ok)
	assert.Equal(t, int32(9), v)
}

func TestManyInsertsAndRemovals(t *testing.T) {
	table := newHashTable[int64, int32](0, nil)
	for k := int64(-500); k < 500; k++ {
		table.put(k, int32(k*2))
	}
	assert.Equal(t, 1000, table.len())
	for k := int64(-500); k < 500; k += 2 {
		table.remove(k)
	}
	assert.Equal(t, 500, table.len())
	for k := int64(-500); k < 500; k++ {
		v, ok := table.get(k)
		assert.Equal(t, k%2 != 0, ok, "key %d", k)
		if ok {
			assert.Equal(t, int32(k*2), v)
		}
	}
	assert.LessOrEqual(t, table.occupied*2, len(table.keys))
}

func TestClearKeepsCapacity(t *testing.T) {
	table := newHashTable[int64, int32](DefaultCapacity, nil)
	for k := int64(0); k < 20; k++ {
		table.put(k, 1)
	}
	slots := len(table.keys)
	table.clear()
	assert.Equal(t, 0, table.len())
	assert.Equal(t, 0, table.occupied)
	assert.Len(t, table.keys, slots)
	assert.False(t, table.containsKey(0))
	assert.False(t, table.containsKey(5))
}

func TestAllYieldsSentinelsFirst(t *testing.T) {
	table := newHashTable[int64, int32](DefaultCapacity, nil)
	table.put(7, 70)
	table.put(1, 10)
	table.put(0, 0)

	var keys []int64
	for k := range table.all() {
		keys = append(keys, k)
	}
	assert.Equal(t, []int64{0, 1, 7}, keys)
}
