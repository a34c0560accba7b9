// Package primitive provides hash maps keyed and valued by primitive numeric
// types, stored unboxed in an open addressing table.
//
// Absent keys are not errors: Get reports presence separately, and
// GetOrDefault takes an explicit default. Mutators return an error so that
// HashMap and UnmodifiableMap share the MutableMap contract; on HashMap the
// error is always nil.
package primitive

import (
	"fmt"
	"iter"
	"strings"

	"github.com/fzft/go-collections/internal/scalar"
)

// Scalar is the set of key and value types a primitive map can hold.
type Scalar = scalar.Scalar

// Map is the read contract of a primitive map.
type Map[K, V Scalar] interface {
	Get(key K) (V, bool)
	GetOrDefault(key K, def V) V
	ContainsKey(key K) bool
	ContainsValue(value V) bool
	Len() int
	IsEmpty() bool
	All() iter.Seq2[K, V]
	Keys() iter.Seq[K]
	Values() iter.Seq[V]
	Equal(other Map[K, V]) bool
	HashCode() uint64
	String() string
}

// MutableMap adds writes to Map.
type MutableMap[K, V Scalar] interface {
	Map[K, V]
	Put(key K, value V) (prev V, existed bool, err error)
	Remove(key K) (prev V, existed bool, err error)
	PutAll(other Map[K, V]) error
	AddToValue(key K, delta V) (V, error)
	GetIfAbsentPut(key K, value V) (V, error)
	Clear() error
}

// Observer is notified after every rehash of a map's table. tombstones is the
// number of removed slots the rehash discarded.
type Observer interface {
	OnRehash(oldCap, newCap, live, tombstones int)
}

type options struct {
	observer Observer
}

// Option configures a HashMap.
type Option func(*options)

// WithObserver registers o to be called after each rehash.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		opts.observer = o
	}
}

// HashMap is a mutable primitive map. It is not safe for concurrent use.
type HashMap[K, V Scalar] struct {
	table *hashTable[K, V]
	opts  options
}

// LongIntHashMap maps int64 keys to int32 values.
type LongIntHashMap = HashMap[int64, int32]

// NewHashMap returns an empty map sized for DefaultCapacity entries.
func NewHashMap[K, V Scalar](opts ...Option) *HashMap[K, V] {
	return NewHashMapWithCapacity[K, V](DefaultCapacity, opts...)
}

// NewHashMapWithCapacity returns a map that holds capacity entries before
// its first rehash. It panics if capacity is negative or too large.
func NewHashMapWithCapacity[K, V Scalar](capacity int, opts ...Option) *HashMap[K, V] {
	m := &HashMap[K, V]{}
	for _, opt := range opts {
		opt(&m.opts)
	}
	m.table = newHashTable[K, V](capacity, m.opts.observer)
	return m
}

// NewLongIntHashMap returns an empty int64 to int32 map.
func NewLongIntHashMap(opts ...Option) *LongIntHashMap {
	return NewHashMap[int64, int32](opts...)
}

func (m *HashMap[K, V]) Get(key K) (V, bool) {
	return m.table.get(key)
}

func (m *HashMap[K, V]) GetOrDefault(key K, def V) V {
	if v, ok := m.table.get(key); ok {
		return v
	}
	return def
}

func (m *HashMap[K, V]) ContainsKey(key K) bool {
	return m.table.containsKey(key)
}

func (m *HashMap[K, V]) ContainsValue(value V) bool {
	want := scalar.Bits(value)
	for _, v := range m.table.all() {
		if scalar.Bits(v) == want {
			return true
		}
	}
	return false
}

func (m *HashMap[K, V]) Len() int {
	return m.table.len()
}

func (m *HashMap[K, V]) IsEmpty() bool {
	return m.table.len() == 0
}

// All yields every entry. Order is unspecified but stable while the map is
// not modified.
func (m *HashMap[K, V]) All() iter.Seq2[K, V] {
	return m.table.all()
}

func (m *HashMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.table.all() {
			if !yield(k) {
				return
			}
		}
	}
}

func (m *HashMap[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.table.all() {
			if !yield(v) {
				return
			}
		}
	}
}

func (m *HashMap[K, V]) Put(key K, value V) (V, bool, error) {
	prev, ok := m.table.put(key, value)
	return prev, ok, nil
}

func (m *HashMap[K, V]) Remove(key K) (V, bool, error) {
	prev, ok := m.table.remove(key)
	return prev, ok, nil
}

func (m *HashMap[K, V]) PutAll(other Map[K, V]) error {
	for k, v := range other.All() {
		m.table.put(k, v)
	}
	return nil
}

// AddToValue adds delta to the value under key, starting from zero when the
// key is absent, and returns the new value.
func (m *HashMap[K, V]) AddToValue(key K, delta V) (V, error) {
	v, _ := m.table.get(key)
	v += delta
	m.table.put(key, v)
	return v, nil
}

// GetIfAbsentPut returns the value under key, storing value first if the key
// is absent.
func (m *HashMap[K, V]) GetIfAbsentPut(key K, value V) (V, error) {
	if v, ok := m.table.get(key); ok {
		return v, nil
	}
	m.table.put(key, value)
	return value, nil
}

func (m *HashMap[K, V]) Clear() error {
	m.table.clear()
	return nil
}

// AsUnmodifiable returns a read-only view backed by m.
func (m *HashMap[K, V]) AsUnmodifiable() *UnmodifiableMap[K, V] {
	return NewUnmodifiableMap[K, V](m)
}

func (m *HashMap[K, V]) Equal(other Map[K, V]) bool {
	return mapsEqual[K, V](m, other)
}

func (m *HashMap[K, V]) HashCode() uint64 {
	return mapHashCode[K, V](m)
}

func (m *HashMap[K, V]) String() string {
	return mapString[K, V](m)
}

// mapsEqual compares entries by bit pattern, so NaN values equal themselves
// and -0.0 differs from +0.0.
func mapsEqual[K, V Scalar](a, b Map[K, V]) bool {
	if b == nil || a.Len() != b.Len() {
		return false
	}
	for k, v := range a.All() {
		w, ok := b.Get(k)
		if !ok || scalar.Bits(v) != scalar.Bits(w) {
			return false
		}
	}
	return true
}

// mapHashCode sums key ^ value over all entries, independent of order.
func mapHashCode[K, V Scalar](m Map[K, V]) uint64 {
	var h uint64
	for k, v := range m.All() {
		h += uint64(fold(scalar.Bits(k)) ^ fold(scalar.Bits(v)))
	}
	return h
}

func mapString[K, V Scalar](m Map[K, V]) string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for k, v := range m.All() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v=%v", k, v)
	}
	b.WriteByte('}')
	return b.String()
}
