package primitive

import (
	"go.uber.org/zap"

	cerrors "github.com/fzft/go-collections/errors"
	"github.com/fzft/go-collections/internal/scalar"
	"github.com/fzft/go-collections/internal/snapshot"
	"github.com/fzft/go-collections/log"
	"github.com/fzft/go-collections/view"
)

func (m *HashMap[K, V]) Kind() view.Kind {
	return view.KindMap
}

// MarshalBinary encodes m as key code, value code, entry count and the
// entries in iteration order.
func (m *HashMap[K, V]) MarshalBinary() ([]byte, error) {
	w := snapshot.NewWriter(snapshot.TagHashMap)
	w.Byte(scalar.Code[K]())
	w.Byte(scalar.Code[V]())
	w.Uint32(uint32(m.Len()))
	for k, v := range m.table.all() {
		snapshot.PutScalar(w, k)
		snapshot.PutScalar(w, v)
	}
	return w.Bytes(), nil
}

// UnmarshalBinary replaces the contents of m with the decoded snapshot. On
// failure m is unchanged.
func (m *HashMap[K, V]) UnmarshalBinary(data []byte) error {
	t, err := decodeTable[K, V](data, m.opts.observer)
	if err != nil {
		log.Logger.Debug("map snapshot rejected", zap.Error(err))
		return err
	}
	m.table = t
	return nil
}

func decodeTable[K, V Scalar](data []byte, observer Observer) (*hashTable[K, V], error) {
	const op = "HashMap.UnmarshalBinary"
	r, err := snapshot.NewReader(data, snapshot.TagHashMap, op)
	if err != nil {
		return nil, err
	}
	if err := r.ExpectCode(scalar.Code[K](), "key"); err != nil {
		return nil, err
	}
	if err := r.ExpectCode(scalar.Code[V](), "value"); err != nil {
		return nil, err
	}
	n, err := r.Count(scalar.Size[K]() + scalar.Size[V]())
	if err != nil {
		return nil, err
	}
	if n > MaxCapacity/2 {
		return nil, cerrors.Deserialization(op, "entry count %d too large", n)
	}

	t := newHashTable[K, V](max(n, DefaultCapacity), observer)
	for range n {
		k, err := snapshot.ReadScalar[K](r)
		if err != nil {
			return nil, err
		}
		v, err := snapshot.ReadScalar[V](r)
		if err != nil {
			return nil, err
		}
		if _, dup := t.put(k, v); dup {
			return nil, cerrors.Deserialization(op, "duplicate key %v", k)
		}
	}
	if err := r.Done(); err != nil {
		return nil, err
	}
	return t, nil
}
