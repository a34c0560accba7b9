package commands

import (
	"encoding"
	"errors"
	"maps"
	"path"
	"slices"

	cerrors "github.com/fzft/go-collections/errors"
	"github.com/fzft/go-collections/internal/snapshot"
	"github.com/fzft/go-collections/primitive"
	"github.com/fzft/go-collections/set"
	"github.com/fzft/go-collections/view"
)

var errWrongType = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")

// setValue is a string set stored under a key: a HashSet, or a frozen view
// of one.
type setValue interface {
	set.Set[string]
	view.Mutable[string]
	encoding.BinaryMarshaler
}

// mapValue is a long-int map stored under a key: a HashMap, or a frozen view
// of one.
type mapValue interface {
	primitive.MutableMap[int64, int32]
	encoding.BinaryMarshaler
}

// Keyspace holds the named collections of a shell session.
type Keyspace struct {
	values   map[string]any
	capacity int
	opts     []primitive.Option
}

// NewKeyspace creates an empty keyspace. Maps are created with capacity and
// opts.
func NewKeyspace(capacity int, opts ...primitive.Option) *Keyspace {
	return &Keyspace{
		values:   make(map[string]any),
		capacity: capacity,
		opts:     opts,
	}
}

func (ks *Keyspace) lookupSet(key string) (setValue, error) {
	v, ok := ks.values[key]
	if !ok {
		return nil, nil
	}
	s, ok := v.(setValue)
	if !ok {
		return nil, errWrongType
	}
	return s, nil
}

// readSet returns the set under key, or an empty set when key is missing.
func (ks *Keyspace) readSet(key string) (set.Set[string], error) {
	s, err := ks.lookupSet(key)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return set.NewHashSet[string](), nil
	}
	return s, nil
}

func (ks *Keyspace) setForWrite(key string) (setValue, error) {
	s, err := ks.lookupSet(key)
	if err != nil || s != nil {
		return s, err
	}
	created := set.NewHashSet[string]()
	ks.values[key] = created
	return created, nil
}

func (ks *Keyspace) lookupMap(key string) (mapValue, error) {
	v, ok := ks.values[key]
	if !ok {
		return nil, nil
	}
	m, ok := v.(mapValue)
	if !ok {
		return nil, errWrongType
	}
	return m, nil
}

func (ks *Keyspace) mapForWrite(key string) (mapValue, error) {
	m, err := ks.lookupMap(key)
	if err != nil || m != nil {
		return m, err
	}
	created := ks.newMap()
	ks.values[key] = created
	return created, nil
}

func (ks *Keyspace) newMap() *primitive.LongIntHashMap {
	return primitive.NewHashMapWithCapacity[int64, int32](ks.capacity, ks.opts...)
}

// dropIfEmpty removes key once its collection has no elements left.
func (ks *Keyspace) dropIfEmpty(key string, empty bool) {
	if empty {
		delete(ks.values, key)
	}
}

// Type names the kind of collection stored under key, or "none".
func (ks *Keyspace) Type(key string) string {
	switch ks.values[key].(type) {
	case setValue:
		return "set"
	case mapValue:
		return "map"
	default:
		return "none"
	}
}

// Frozen reports whether key holds an unmodifiable view.
func (ks *Keyspace) Frozen(key string) bool {
	switch ks.values[key].(type) {
	case *view.View[string], *primitive.UnmodifiableMap[int64, int32]:
		return true
	default:
		return false
	}
}

// Delete removes key and reports whether it existed.
func (ks *Keyspace) Delete(key string) bool {
	_, ok := ks.values[key]
	delete(ks.values, key)
	return ok
}

// Keys returns the sorted names matching the glob pattern.
func (ks *Keyspace) Keys(pattern string) ([]string, error) {
	var keys []string
	for _, k := range slices.Sorted(maps.Keys(ks.values)) {
		ok, err := path.Match(pattern, k)
		if err != nil {
			return nil, err
		}
		if ok {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// Len returns the number of keys.
func (ks *Keyspace) Len() int {
	return len(ks.values)
}

// freeze replaces the collection under key by an unmodifiable view of it.
func (ks *Keyspace) freeze(key string) (bool, error) {
	switch v := ks.values[key].(type) {
	case nil:
		return false, nil
	case setValue:
		ks.values[key] = view.Unmodifiable[string](v)
	case mapValue:
		ks.values[key] = primitive.NewUnmodifiableMap[int64, int32](v)
	default:
		return false, errWrongType
	}
	return true, nil
}

// dump serializes the collection under key. It returns nil for a missing key.
func (ks *Keyspace) dump(key string) ([]byte, error) {
	v, ok := ks.values[key]
	if !ok {
		return nil, nil
	}
	m, ok := v.(encoding.BinaryMarshaler)
	if !ok {
		return nil, errWrongType
	}
	return m.MarshalBinary()
}

// restore decodes a dump and stores it under key.
func (ks *Keyspace) restore(key string, data []byte) error {
	v, err := ks.decode(data)
	if err != nil {
		return err
	}
	ks.values[key] = v
	return nil
}

func (ks *Keyspace) decode(data []byte) (any, error) {
	const op = "RESTORE"
	tag, ok := snapshot.PeekTag(data)
	if !ok {
		return nil, cerrors.Deserialization(op, "not a collection snapshot")
	}
	switch tag {
	case snapshot.TagHashSet:
		return set.UnmarshalHashSet[string](data)
	case snapshot.TagHashMap:
		m := ks.newMap()
		if err := m.UnmarshalBinary(data); err != nil {
			return nil, err
		}
		return m, nil
	case snapshot.TagUnmodifiable:
		kind, _, err := view.OpenEnvelope(data, op)
		if err != nil {
			return nil, err
		}
		switch kind {
		case view.KindSet:
			return view.Unmarshal(data, decodeSet)
		case view.KindMap:
			return primitive.UnmarshalUnmodifiableMap[int64, int32](data)
		}
		return nil, cerrors.Deserialization(op, "cannot restore a %s view", kind)
	}
	return nil, cerrors.Deserialization(op, "cannot restore snapshot tag %#x", tag)
}

func decodeSet(data []byte) (view.Collection[string], error) {
	s, err := set.UnmarshalHashSet[string](data)
	if err != nil {
		return nil, err
	}
	return s, nil
}
