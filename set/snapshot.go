package set

import (
	"go.uber.org/zap"

	cerrors "github.com/fzft/go-collections/errors"
	"github.com/fzft/go-collections/internal/snapshot"
	"github.com/fzft/go-collections/log"
)

func marshalElems[T comparable](tag byte, s Set[T]) ([]byte, error) {
	w := snapshot.NewWriter(tag)
	w.Uint32(uint32(s.Len()))
	for e := range s.All() {
		if err := w.Value(e); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

// decodeElems reads a set snapshot and passes each element to add, which
// reports false for a duplicate.
func decodeElems[T comparable](data []byte, tag byte, op string, add func(T) bool) error {
	r, err := snapshot.NewReader(data, tag, op)
	if err != nil {
		return err
	}
	n, err := r.Count(1)
	if err != nil {
		return err
	}
	for range n {
		v, err := r.Value()
		if err != nil {
			return err
		}
		e, err := snapshot.As[T](r, v)
		if err != nil {
			return err
		}
		if !add(e) {
			return cerrors.Deserialization(op, "duplicate element %v", e)
		}
	}
	return r.Done()
}

// MarshalBinary encodes the elements in insertion order. Only nil, bool,
// string and numeric elements can be encoded.
func (s *HashSet[T]) MarshalBinary() ([]byte, error) {
	return marshalElems[T](snapshot.TagHashSet, s)
}

// UnmarshalHashSet decodes a HashSet snapshot into a new mutable set.
func UnmarshalHashSet[T comparable](data []byte) (*HashSet[T], error) {
	s := newHashSet[T](0, Mutable)
	if err := decodeElems(data, snapshot.TagHashSet, "set.UnmarshalHashSet", s.insert); err != nil {
		log.Logger.Debug("set snapshot rejected", zap.Error(err))
		return nil, err
	}
	return s, nil
}

// UnmarshalBinary replaces the contents of s. A zero HashSet becomes
// mutable; otherwise s keeps its capability and must be able to grow and
// shrink. On failure s is unchanged.
func (s *HashSet[T]) UnmarshalBinary(data []byte) error {
	if s.index != nil && !s.caps.Has(CanGrow|CanShrink) {
		return unsupported("HashSet.UnmarshalBinary", s.caps)
	}
	decoded, err := UnmarshalHashSet[T](data)
	if err != nil {
		return err
	}
	caps := s.caps
	if s.index == nil {
		caps = Mutable
	}
	*s = *decoded
	s.caps = caps
	return nil
}

func (s *ImmutableSet[T]) MarshalBinary() ([]byte, error) {
	return marshalElems[T](snapshot.TagImmutableSet, s)
}

// UnmarshalImmutableSet decodes an ImmutableSet snapshot.
func UnmarshalImmutableSet[T comparable](data []byte) (*ImmutableSet[T], error) {
	b := newImmutableBuilder[T](elementHasher[T]{})
	add := func(e T) bool {
		if _, ok := b.index.Get(e); ok {
			return false
		}
		b.add(e)
		return true
	}
	if err := decodeElems(data, snapshot.TagImmutableSet, "set.UnmarshalImmutableSet", add); err != nil {
		log.Logger.Debug("set snapshot rejected", zap.Error(err))
		return nil, err
	}
	return b.build(), nil
}
