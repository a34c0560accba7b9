package set

import (
	"iter"
	"slices"

	"github.com/fzft/go-collections/internal/list"
	"github.com/fzft/go-collections/view"
)

// HashSet is a set backed by a Go map, iterating in insertion order. Its
// Capability decides which writes it accepts. It is not safe for
// concurrent use.
type HashSet[T comparable] struct {
	index map[T]*list.Node[T]
	order *list.List[T]
	caps  Capability
}

var (
	_ Set[int]          = (*HashSet[int])(nil)
	_ view.Mutable[int] = (*HashSet[int])(nil)
)

// NewHashSet returns an empty mutable set.
func NewHashSet[T comparable]() *HashSet[T] {
	return newHashSet[T](0, Mutable)
}

func newHashSet[T comparable](size int, caps Capability) *HashSet[T] {
	return &HashSet[T]{
		index: make(map[T]*list.Node[T], size),
		order: list.New[T](),
		caps:  caps,
	}
}

// insert adds elem unless an equal element is present, in which case the
// existing representative is kept.
func (s *HashSet[T]) insert(elem T) bool {
	if _, ok := s.index[elem]; ok {
		return false
	}
	s.index[elem] = s.order.PushBack(elem)
	return true
}

func (s *HashSet[T]) delete(elem T) bool {
	node, ok := s.index[elem]
	if !ok {
		return false
	}
	s.order.Remove(node)
	delete(s.index, elem)
	return true
}

func (s *HashSet[T]) Capability() Capability {
	return s.caps
}

func (s *HashSet[T]) Kind() view.Kind {
	return view.KindSet
}

func (s *HashSet[T]) Len() int {
	return len(s.index)
}

func (s *HashSet[T]) IsEmpty() bool {
	return len(s.index) == 0
}

func (s *HashSet[T]) Contains(elem T) bool {
	_, ok := s.index[elem]
	return ok
}

// All yields elements in insertion order.
func (s *HashSet[T]) All() iter.Seq[T] {
	return s.order.All()
}

func (s *HashSet[T]) ToSlice() []T {
	return slices.Collect(s.order.All())
}

// First returns the oldest element.
func (s *HashSet[T]) First() (T, bool) {
	if s.order.Head == nil {
		var zero T
		return zero, false
	}
	return s.order.Head.Value, true
}

func (s *HashSet[T]) Equal(other view.Collection[T]) bool {
	return equal[T](s, other)
}

func (s *HashSet[T]) HashCode() uint64 {
	return hashCode(s.All())
}

func (s *HashSet[T]) String() string {
	return format(s.All())
}

func (s *HashSet[T]) Add(elem T) (bool, error) {
	if !s.caps.Has(CanGrow) {
		return false, unsupported("HashSet.Add", s.caps)
	}
	return s.insert(elem), nil
}

func (s *HashSet[T]) AddAll(elems ...T) error {
	if !s.caps.Has(CanGrow) {
		return unsupported("HashSet.AddAll", s.caps)
	}
	for _, e := range elems {
		s.insert(e)
	}
	return nil
}

func (s *HashSet[T]) Remove(elem T) (bool, error) {
	if !s.caps.Has(CanShrink) {
		return false, unsupported("HashSet.Remove", s.caps)
	}
	return s.delete(elem), nil
}

func (s *HashSet[T]) RemoveAll(elems ...T) error {
	if !s.caps.Has(CanShrink) {
		return unsupported("HashSet.RemoveAll", s.caps)
	}
	for _, e := range elems {
		s.delete(e)
	}
	return nil
}

// RetainAll removes every element not contained in keep.
func (s *HashSet[T]) RetainAll(keep view.Collection[T]) error {
	if !s.caps.Has(CanShrink) {
		return unsupported("HashSet.RetainAll", s.caps)
	}
	for e := range s.order.All() {
		if !keep.Contains(e) {
			s.delete(e)
		}
	}
	return nil
}

func (s *HashSet[T]) Clear() error {
	if !s.caps.Has(CanShrink) {
		return unsupported("HashSet.Clear", s.caps)
	}
	clear(s.index)
	s.order.Clear()
	return nil
}

// Replace swaps old for replacement in old's position. It reports false if
// old is absent. When replacement equals a different element already in
// the set the set shrinks, which requires CanShrink.
func (s *HashSet[T]) Replace(old, replacement T) (bool, error) {
	if !s.caps.Has(CanReplace) {
		return false, unsupported("HashSet.Replace", s.caps)
	}
	node, ok := s.index[old]
	if !ok {
		return false, nil
	}
	if existing, ok := s.index[replacement]; ok && existing != node {
		if !s.caps.Has(CanShrink) {
			return false, unsupported("HashSet.Replace", s.caps)
		}
		s.delete(old)
		return true, nil
	}
	delete(s.index, old)
	node.Value = replacement
	s.index[replacement] = node
	return true, nil
}

// Clone returns a mutable copy of s.
func (s *HashSet[T]) Clone() *HashSet[T] {
	c := newHashSet[T](s.Len(), Mutable)
	for e := range s.All() {
		c.insert(e)
	}
	return c
}
