package primitive

import (
	"encoding"
	"iter"

	"go.uber.org/zap"

	cerrors "github.com/fzft/go-collections/errors"
	"github.com/fzft/go-collections/log"
	"github.com/fzft/go-collections/view"
)

// UnmodifiableMap is a read-only view of a Map. Reads see the delegate's
// current contents; writes return errors.KindUnsupportedOperation.
type UnmodifiableMap[K, V Scalar] struct {
	delegate Map[K, V]
}

var _ MutableMap[int64, int32] = (*UnmodifiableMap[int64, int32])(nil)

// NewUnmodifiableMap wraps delegate. Wrapping a view returns it unchanged.
func NewUnmodifiableMap[K, V Scalar](delegate Map[K, V]) *UnmodifiableMap[K, V] {
	if u, ok := delegate.(*UnmodifiableMap[K, V]); ok {
		return u
	}
	return &UnmodifiableMap[K, V]{delegate: delegate}
}

func (u *UnmodifiableMap[K, V]) Kind() view.Kind {
	return view.KindMap
}

func (u *UnmodifiableMap[K, V]) Get(key K) (V, bool)         { return u.delegate.Get(key) }
func (u *UnmodifiableMap[K, V]) GetOrDefault(key K, def V) V { return u.delegate.GetOrDefault(key, def) }
func (u *UnmodifiableMap[K, V]) ContainsKey(key K) bool      { return u.delegate.ContainsKey(key) }
func (u *UnmodifiableMap[K, V]) ContainsValue(value V) bool  { return u.delegate.ContainsValue(value) }
func (u *UnmodifiableMap[K, V]) Len() int                    { return u.delegate.Len() }
func (u *UnmodifiableMap[K, V]) IsEmpty() bool               { return u.delegate.IsEmpty() }
func (u *UnmodifiableMap[K, V]) All() iter.Seq2[K, V]        { return u.delegate.All() }
func (u *UnmodifiableMap[K, V]) Keys() iter.Seq[K]           { return u.delegate.Keys() }
func (u *UnmodifiableMap[K, V]) Values() iter.Seq[V]         { return u.delegate.Values() }
func (u *UnmodifiableMap[K, V]) HashCode() uint64            { return u.delegate.HashCode() }
func (u *UnmodifiableMap[K, V]) String() string              { return u.delegate.String() }

func (u *UnmodifiableMap[K, V]) Equal(other Map[K, V]) bool {
	if o, ok := other.(*UnmodifiableMap[K, V]); ok {
		other = o.delegate
	}
	return u.delegate.Equal(other)
}

func rejectWrite(op string) error {
	log.Logger.Debug("write through unmodifiable map rejected", zap.String("op", op))
	return cerrors.Unsupported(op)
}

func (u *UnmodifiableMap[K, V]) Put(K, V) (V, bool, error) {
	var zero V
	return zero, false, rejectWrite("UnmodifiableMap.Put")
}

func (u *UnmodifiableMap[K, V]) Remove(K) (V, bool, error) {
	var zero V
	return zero, false, rejectWrite("UnmodifiableMap.Remove")
}

func (u *UnmodifiableMap[K, V]) PutAll(Map[K, V]) error {
	return rejectWrite("UnmodifiableMap.PutAll")
}

func (u *UnmodifiableMap[K, V]) AddToValue(K, V) (V, error) {
	var zero V
	return zero, rejectWrite("UnmodifiableMap.AddToValue")
}

func (u *UnmodifiableMap[K, V]) GetIfAbsentPut(K, V) (V, error) {
	var zero V
	return zero, rejectWrite("UnmodifiableMap.GetIfAbsentPut")
}

func (u *UnmodifiableMap[K, V]) Clear() error {
	return rejectWrite("UnmodifiableMap.Clear")
}

// MarshalBinary writes the view envelope around the delegate's snapshot.
func (u *UnmodifiableMap[K, V]) MarshalBinary() ([]byte, error) {
	m, ok := u.delegate.(encoding.BinaryMarshaler)
	if !ok {
		return nil, cerrors.New(cerrors.KindUnsupportedOperation, "UnmodifiableMap.MarshalBinary",
			"delegate %T cannot be serialized", u.delegate)
	}
	inner, err := m.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return view.MarshalEnvelope(view.KindMap, inner), nil
}

// UnmarshalBinary fills a zero UnmodifiableMap with a new HashMap decoded
// from data. A view that already has a delegate rejects it. On failure u is
// unchanged.
func (u *UnmodifiableMap[K, V]) UnmarshalBinary(data []byte) error {
	if u.delegate != nil {
		return rejectWrite("UnmodifiableMap.UnmarshalBinary")
	}
	decoded, err := UnmarshalUnmodifiableMap[K, V](data)
	if err != nil {
		return err
	}
	u.delegate = decoded.delegate
	return nil
}

// UnmarshalUnmodifiableMap decodes a view snapshot into a new view over a new
// HashMap.
func UnmarshalUnmodifiableMap[K, V Scalar](data []byte) (*UnmodifiableMap[K, V], error) {
	const op = "primitive.UnmarshalUnmodifiableMap"
	kind, inner, err := view.OpenEnvelope(data, op)
	if err != nil {
		return nil, err
	}
	if kind != view.KindMap {
		return nil, cerrors.Deserialization(op, "view kind %s, want %s", kind, view.KindMap)
	}
	m := NewHashMap[K, V]()
	if err := m.UnmarshalBinary(inner); err != nil {
		return nil, err
	}
	return &UnmodifiableMap[K, V]{delegate: m}, nil
}
