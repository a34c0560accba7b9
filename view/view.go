// Package view provides read-only decorators over mutable collections.
//
// A View forwards every read to its delegate and stores nothing itself, so it
// always reflects the delegate's current contents. Writes fail with
// errors.KindUnsupportedOperation and leave the delegate untouched. A view
// over a mutable delegate is only as safe for concurrent use as the delegate.
package view

import (
	"encoding"
	"iter"

	"go.uber.org/zap"

	cerrors "github.com/fzft/go-collections/errors"
	"github.com/fzft/go-collections/log"
)

// Kind names the shape of a wrapped collection. The value is part of the
// snapshot format.
type Kind byte

const (
	KindCollection Kind = iota
	KindMap
	KindSet
	KindBag
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindCollection:
		return "collection"
	case KindMap:
		return "map"
	case KindSet:
		return "set"
	case KindBag:
		return "bag"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Collection is the read contract shared by sets, bags and lists.
type Collection[T any] interface {
	Len() int
	IsEmpty() bool
	Contains(elem T) bool
	All() iter.Seq[T]
	ToSlice() []T
	Equal(other Collection[T]) bool
	HashCode() uint64
}

// Mutable adds writes to Collection. Implementations that cannot perform a
// write return errors.KindUnsupportedOperation without side effects.
type Mutable[T any] interface {
	Collection[T]
	Add(elem T) (bool, error)
	Remove(elem T) (bool, error)
	AddAll(elems ...T) error
	RemoveAll(elems ...T) error
	RetainAll(keep Collection[T]) error
	Clear() error
}

// Kinded is implemented by collections that know their Kind.
type Kinded interface {
	Kind() Kind
}

// KindOf returns c's Kind, or KindCollection when c does not report one.
func KindOf(c any) Kind {
	if k, ok := c.(Kinded); ok {
		return k.Kind()
	}
	return KindCollection
}

// View is an unmodifiable view of a Collection.
type View[T any] struct {
	delegate Collection[T]
}

var _ Mutable[int] = (*View[int])(nil)

// Unmodifiable wraps delegate. Wrapping a view returns it unchanged.
func Unmodifiable[T any](delegate Collection[T]) *View[T] {
	if v, ok := delegate.(*View[T]); ok {
		return v
	}
	return &View[T]{delegate: delegate}
}

func (v *View[T]) Kind() Kind {
	return KindOf(v.delegate)
}

func (v *View[T]) Len() int {
	return v.delegate.Len()
}

func (v *View[T]) IsEmpty() bool {
	return v.delegate.IsEmpty()
}

func (v *View[T]) Contains(elem T) bool {
	return v.delegate.Contains(elem)
}

func (v *View[T]) All() iter.Seq[T] {
	return v.delegate.All()
}

func (v *View[T]) ToSlice() []T {
	return v.delegate.ToSlice()
}

// Equal applies the delegate's equality to other, so a view equals its
// delegate and any collection the delegate equals.
func (v *View[T]) Equal(other Collection[T]) bool {
	if o, ok := other.(*View[T]); ok {
		other = o.delegate
	}
	return v.delegate.Equal(other)
}

func (v *View[T]) HashCode() uint64 {
	return v.delegate.HashCode()
}

func (v *View[T]) String() string {
	if s, ok := v.delegate.(interface{ String() string }); ok {
		return s.String()
	}
	return "view(" + v.Kind().String() + ")"
}

func reject(op string) error {
	log.Logger.Debug("write through unmodifiable view rejected", zap.String("op", op))
	return cerrors.Unsupported(op)
}

func (v *View[T]) Add(T) (bool, error) {
	return false, reject("View.Add")
}

func (v *View[T]) Remove(T) (bool, error) {
	return false, reject("View.Remove")
}

func (v *View[T]) AddAll(...T) error {
	return reject("View.AddAll")
}

func (v *View[T]) RemoveAll(...T) error {
	return reject("View.RemoveAll")
}

func (v *View[T]) RetainAll(Collection[T]) error {
	return reject("View.RetainAll")
}

func (v *View[T]) Clear() error {
	return reject("View.Clear")
}

// MarshalBinary writes the view marker, its kind and the delegate's own
// snapshot. The delegate must implement encoding.BinaryMarshaler.
func (v *View[T]) MarshalBinary() ([]byte, error) {
	m, ok := v.delegate.(encoding.BinaryMarshaler)
	if !ok {
		return nil, cerrors.New(cerrors.KindUnsupportedOperation, "View.MarshalBinary",
			"delegate %T cannot be serialized", v.delegate)
	}
	inner, err := m.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return MarshalEnvelope(v.Kind(), inner), nil
}

// Unmarshal rebuilds a view from MarshalBinary output. decode builds a new
// delegate from the inner snapshot; its Kind must match the recorded one.
func Unmarshal[T any](data []byte, decode func([]byte) (Collection[T], error)) (*View[T], error) {
	const op = "view.Unmarshal"
	kind, inner, err := OpenEnvelope(data, op)
	if err != nil {
		return nil, err
	}
	delegate, err := decode(inner)
	if err != nil {
		return nil, err
	}
	if got := KindOf(delegate); got != kind {
		log.Logger.Debug("view snapshot kind mismatch",
			zap.Stringer("recorded", kind), zap.Stringer("decoded", got))
		return nil, cerrors.Deserialization(op, "recorded kind %s, decoded %s", kind, got)
	}
	return &View[T]{delegate: delegate}, nil
}
