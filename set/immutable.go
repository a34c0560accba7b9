package set

import (
	"iter"

	"github.com/benbjohnson/immutable"

	"github.com/fzft/go-collections/view"
)

// ImmutableSet is a persistent set iterating in insertion order. Writes
// through the view.Mutable methods fail; NewWith and NewWithout return new
// sets that share structure with the receiver. Safe for concurrent reads.
type ImmutableSet[T comparable] struct {
	index  *immutable.Map[T, struct{}]
	order  *immutable.List[T]
	hasher immutable.Hasher[T]
}

var (
	_ Set[int]          = (*ImmutableSet[int])(nil)
	_ view.Mutable[int] = (*ImmutableSet[int])(nil)
)

// elementHasher matches elements with == and hashes them like every other
// set of this package, so HashCode agrees across representations.
type elementHasher[T comparable] struct{}

func (elementHasher[T]) Hash(v T) uint32   { return elementHash(v) }
func (elementHasher[T]) Equal(a, b T) bool { return a == b }

// contentHasher matches sets by contents, for sets of sets.
type contentHasher[T comparable] struct{}

func (contentHasher[T]) Hash(s Set[T]) uint32 {
	h := s.HashCode()
	return uint32(h ^ h>>32)
}

func (contentHasher[T]) Equal(a, b Set[T]) bool {
	return a.Equal(b)
}

// immutableBuilder collects elements for a new ImmutableSet.
type immutableBuilder[T comparable] struct {
	index  *immutable.MapBuilder[T, struct{}]
	order  *immutable.ListBuilder[T]
	hasher immutable.Hasher[T]
}

func newImmutableBuilder[T comparable](hasher immutable.Hasher[T]) *immutableBuilder[T] {
	return &immutableBuilder[T]{
		index:  immutable.NewMapBuilder[T, struct{}](hasher),
		order:  immutable.NewListBuilder[T](),
		hasher: hasher,
	}
}

func (b *immutableBuilder[T]) add(elem T) {
	if _, ok := b.index.Get(elem); ok {
		return
	}
	b.index.Set(elem, struct{}{})
	b.order.Append(elem)
}

func (b *immutableBuilder[T]) build() *ImmutableSet[T] {
	return &ImmutableSet[T]{index: b.index.Map(), order: b.order.List(), hasher: b.hasher}
}

func (s *ImmutableSet[T]) Capability() Capability {
	return Immutable
}

func (s *ImmutableSet[T]) Kind() view.Kind {
	return view.KindSet
}

func (s *ImmutableSet[T]) Len() int {
	return s.index.Len()
}

func (s *ImmutableSet[T]) IsEmpty() bool {
	return s.index.Len() == 0
}

func (s *ImmutableSet[T]) Contains(elem T) bool {
	_, ok := s.index.Get(elem)
	return ok
}

func (s *ImmutableSet[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := s.order.Iterator()
		for !it.Done() {
			_, v := it.Next()
			if !yield(v) {
				return
			}
		}
	}
}

func (s *ImmutableSet[T]) ToSlice() []T {
	out := make([]T, 0, s.order.Len())
	for e := range s.All() {
		out = append(out, e)
	}
	return out
}

func (s *ImmutableSet[T]) First() (T, bool) {
	if s.order.Len() == 0 {
		var zero T
		return zero, false
	}
	return s.order.Get(0), true
}

func (s *ImmutableSet[T]) Equal(other view.Collection[T]) bool {
	return equal[T](s, other)
}

// HashCode sums the hasher's element hashes.
func (s *ImmutableSet[T]) HashCode() uint64 {
	var h uint64
	for e := range s.All() {
		h += uint64(s.hasher.Hash(e))
	}
	return h
}

func (s *ImmutableSet[T]) String() string {
	return format(s.All())
}

// NewWith returns a set holding the elements of s and elem. It returns s
// itself when elem is already a member.
func (s *ImmutableSet[T]) NewWith(elem T) *ImmutableSet[T] {
	if s.Contains(elem) {
		return s
	}
	return &ImmutableSet[T]{
		index:  s.index.Set(elem, struct{}{}),
		order:  s.order.Append(elem),
		hasher: s.hasher,
	}
}

// NewWithout returns a set holding the elements of s except elem.
func (s *ImmutableSet[T]) NewWithout(elem T) *ImmutableSet[T] {
	if !s.Contains(elem) {
		return s
	}
	b := newImmutableBuilder(s.hasher)
	for e := range s.All() {
		if !s.hasher.Equal(e, elem) {
			b.add(e)
		}
	}
	return b.build()
}

func (s *ImmutableSet[T]) Add(T) (bool, error) {
	return false, unsupported("ImmutableSet.Add", Immutable)
}

func (s *ImmutableSet[T]) AddAll(...T) error {
	return unsupported("ImmutableSet.AddAll", Immutable)
}

func (s *ImmutableSet[T]) Remove(T) (bool, error) {
	return false, unsupported("ImmutableSet.Remove", Immutable)
}

func (s *ImmutableSet[T]) RemoveAll(...T) error {
	return unsupported("ImmutableSet.RemoveAll", Immutable)
}

func (s *ImmutableSet[T]) RetainAll(view.Collection[T]) error {
	return unsupported("ImmutableSet.RetainAll", Immutable)
}

func (s *ImmutableSet[T]) Clear() error {
	return unsupported("ImmutableSet.Clear", Immutable)
}
