package primitive

import (
	"fmt"
	"iter"

	"go.uber.org/zap"

	cerrors "github.com/fzft/go-collections/errors"
	"github.com/fzft/go-collections/internal/scalar"
	"github.com/fzft/go-collections/log"
)

const (
	// MaxCapacity is the largest slot count a table may grow to.
	MaxCapacity = 1 << 30

	// DefaultCapacity is the number of entries a new map holds before its
	// first rehash.
	DefaultCapacity = 8

	minSlots = 2
)

// Slot states. Keys are compared by bit pattern, so for float keys only +0.0
// and 1.0 collide with them; -0.0 and NaN are ordinary keys.
const (
	emptyBits = 0
)

// sentinels holds the entries whose key equals a slot state and therefore
// cannot live in the arrays.
type sentinels[V Scalar] struct {
	hasZero   bool
	zeroValue V
	hasOne    bool
	oneValue  V
}

func (s *sentinels[V]) count() int {
	n := 0
	if s.hasZero {
		n++
	}
	if s.hasOne {
		n++
	}
	return n
}

// hashTable is an open addressing table with linear probing. occupied counts
// live and tombstoned slots and never exceeds half of len(keys).
type hashTable[K, V Scalar] struct {
	keys     []K
	values   []V
	size     int
	occupied int
	sentinels[V]

	observer Observer
}

func newHashTable[K, V Scalar](capacity int, observer Observer) *hashTable[K, V] {
	slots := slotsFor(capacity)
	return &hashTable[K, V]{
		keys:     make([]K, slots),
		values:   make([]V, slots),
		observer: observer,
	}
}

// slotsFor returns the smallest power of two that holds capacity entries
// within the load factor.
func slotsFor(capacity int) int {
	if capacity < 0 {
		panic(fmt.Sprintf("primitive: negative capacity %d", capacity))
	}
	if capacity > MaxCapacity/2 {
		panic(cerrors.New(cerrors.KindCapacityOverflow, "primitive.NewHashMapWithCapacity",
			"capacity %d exceeds %d", capacity, MaxCapacity/2))
	}
	slots := minSlots
	for slots < capacity*2 {
		slots <<= 1
	}
	return slots
}

// growCapacity returns the next slot count after cur.
func growCapacity(cur int) (int, error) {
	if cur >= MaxCapacity {
		return 0, cerrors.New(cerrors.KindCapacityOverflow, "hashTable.rehash",
			"cannot grow beyond %d slots", MaxCapacity)
	}
	return cur << 1, nil
}

func removedBits[K Scalar]() uint64 {
	return scalar.Bits[K](1)
}

func (t *hashTable[K, V]) maxOccupied() int {
	return len(t.keys) >> 1
}

func (t *hashTable[K, V]) len() int {
	return t.size + t.sentinels.count()
}

// probe returns the slot holding key, or the slot an insert of key should
// use: the first tombstone on the probe path, else the terminating empty
// slot.
func (t *hashTable[K, V]) probe(bits uint64) (int, bool) {
	removed := removedBits[K]()
	mask := len(t.keys) - 1
	idx := int(spread(bits)) & mask
	tomb := -1
	for {
		cur := scalar.Bits(t.keys[idx])
		switch {
		case cur == emptyBits:
			if tomb >= 0 {
				return tomb, false
			}
			return idx, false
		case cur == removed:
			if tomb < 0 {
				tomb = idx
			}
		case cur == bits:
			return idx, true
		}
		idx = (idx + 1) & mask
	}
}

func (t *hashTable[K, V]) get(key K) (V, bool) {
	bits := scalar.Bits(key)
	switch bits {
	case emptyBits:
		return t.zeroValue, t.hasZero
	case removedBits[K]():
		return t.oneValue, t.hasOne
	}
	idx, ok := t.probe(bits)
	if !ok {
		var zero V
		return zero, false
	}
	return t.values[idx], true
}

func (t *hashTable[K, V]) containsKey(key K) bool {
	_, ok := t.get(key)
	return ok
}

func (t *hashTable[K, V]) put(key K, value V) (V, bool) {
	bits := scalar.Bits(key)
	switch bits {
	case emptyBits:
		prev, ok := t.zeroValue, t.hasZero
		t.zeroValue, t.hasZero = value, true
		return prev, ok
	case removedBits[K]():
		prev, ok := t.oneValue, t.hasOne
		t.oneValue, t.hasOne = value, true
		return prev, ok
	}

	idx, ok := t.probe(bits)
	if ok {
		prev := t.values[idx]
		t.values[idx] = value
		return prev, true
	}
	if scalar.Bits(t.keys[idx]) == emptyBits {
		t.occupied++
	}
	t.keys[idx] = key
	t.values[idx] = value
	t.size++
	if t.occupied > t.maxOccupied() {
		t.rehash()
	}
	var zero V
	return zero, false
}

func (t *hashTable[K, V]) remove(key K) (V, bool) {
	var zero V
	bits := scalar.Bits(key)
	switch bits {
	case emptyBits:
		prev, ok := t.zeroValue, t.hasZero
		t.zeroValue, t.hasZero = zero, false
		return prev, ok
	case removedBits[K]():
		prev, ok := t.oneValue, t.hasOne
		t.oneValue, t.hasOne = zero, false
		return prev, ok
	}

	idx, ok := t.probe(bits)
	if !ok {
		return zero, false
	}
	prev := t.values[idx]
	t.keys[idx] = K(1)
	t.values[idx] = zero
	t.size--
	return prev, true
}

func (t *hashTable[K, V]) clear() {
	clear(t.keys)
	clear(t.values)
	t.size, t.occupied = 0, 0
	t.sentinels = sentinels[V]{}
}

// rehash rebuilds the table without tombstones. It compacts in place when
// tombstones are at least half of the occupied slots and doubles otherwise.
func (t *hashTable[K, V]) rehash() {
	oldCap := len(t.keys)
	tombstones := t.occupied - t.size
	newCap := oldCap
	if tombstones*2 < t.occupied {
		next, err := growCapacity(oldCap)
		if err != nil {
			log.Logger.Error("hash table overflow",
				zap.Int("capacity", oldCap), zap.Int("size", t.size), zap.Error(err))
			panic(err)
		}
		newCap = next
	}

	oldKeys, oldValues := t.keys, t.values
	t.keys = make([]K, newCap)
	t.values = make([]V, newCap)
	removed := removedBits[K]()
	mask := newCap - 1
	for i, k := range oldKeys {
		bits := scalar.Bits(k)
		if bits == emptyBits || bits == removed {
			continue
		}
		idx := int(spread(bits)) & mask
		for scalar.Bits(t.keys[idx]) != emptyBits {
			idx = (idx + 1) & mask
		}
		t.keys[idx] = k
		t.values[idx] = oldValues[i]
	}
	t.occupied = t.size

	log.Logger.Debug("hash table rehashed",
		zap.Int("from", oldCap), zap.Int("to", newCap),
		zap.Int("live", t.size), zap.Int("tombstones", tombstones))
	if t.observer != nil {
		t.observer.OnRehash(oldCap, newCap, t.size, tombstones)
	}
}

// all yields the sentinel entries first, then the arrays in slot order.
func (t *hashTable[K, V]) all() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if t.hasZero && !yield(K(0), t.zeroValue) {
			return
		}
		if t.hasOne && !yield(K(1), t.oneValue) {
			return
		}
		removed := removedBits[K]()
		for i, k := range t.keys {
			bits := scalar.Bits(k)
			if bits == emptyBits || bits == removed {
				continue
			}
			if !yield(k, t.values[i]) {
				return
			}
		}
	}
}
