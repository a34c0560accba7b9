package set

import (
	"cmp"
	"iter"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/fzft/go-collections/view"
)

// SortedSet is a mutable set ordered by a comparator. Two elements are the
// same member when the comparator returns 0.
type SortedSet[T comparable] struct {
	tree *treeset.Set
	cmp  func(a, b T) int
}

var _ Set[int] = (*SortedSet[int])(nil)

// SortedOf returns a set of elems in natural order.
func SortedOf[T cmp.Ordered](elems ...T) *SortedSet[T] {
	s := NewSortedFunc[T](cmp.Compare[T])
	for _, e := range elems {
		s.insert(e)
	}
	return s
}

// NewSortedFunc returns an empty set ordered by compare.
func NewSortedFunc[T comparable](compare func(a, b T) int) *SortedSet[T] {
	var c utils.Comparator = func(a, b interface{}) int {
		return compare(a.(T), b.(T))
	}
	return &SortedSet[T]{tree: treeset.NewWith(c), cmp: compare}
}

// Comparator returns the ordering of s.
func (s *SortedSet[T]) Comparator() func(a, b T) int {
	return s.cmp
}

func (s *SortedSet[T]) Capability() Capability {
	return Mutable
}

func (s *SortedSet[T]) Kind() view.Kind {
	return view.KindSet
}

func (s *SortedSet[T]) insert(elem T) bool {
	if s.tree.Contains(elem) {
		return false
	}
	s.tree.Add(elem)
	return true
}

func (s *SortedSet[T]) Len() int {
	return s.tree.Size()
}

func (s *SortedSet[T]) IsEmpty() bool {
	return s.tree.Empty()
}

func (s *SortedSet[T]) Contains(elem T) bool {
	return s.tree.Contains(elem)
}

// All yields elements in comparator order.
func (s *SortedSet[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := s.tree.Iterator()
		for it.Next() {
			if !yield(it.Value().(T)) {
				return
			}
		}
	}
}

func (s *SortedSet[T]) ToSlice() []T {
	out := make([]T, 0, s.tree.Size())
	for _, v := range s.tree.Values() {
		out = append(out, v.(T))
	}
	return out
}

// First returns the smallest element.
func (s *SortedSet[T]) First() (T, bool) {
	it := s.tree.Iterator()
	if !it.First() {
		var zero T
		return zero, false
	}
	return it.Value().(T), true
}

func (s *SortedSet[T]) Equal(other view.Collection[T]) bool {
	return equal[T](s, other)
}

func (s *SortedSet[T]) HashCode() uint64 {
	return hashCode(s.All())
}

func (s *SortedSet[T]) String() string {
	return format(s.All())
}

func (s *SortedSet[T]) Add(elem T) (bool, error) {
	return s.insert(elem), nil
}

func (s *SortedSet[T]) AddAll(elems ...T) error {
	for _, e := range elems {
		s.insert(e)
	}
	return nil
}

func (s *SortedSet[T]) Remove(elem T) (bool, error) {
	if !s.tree.Contains(elem) {
		return false, nil
	}
	s.tree.Remove(elem)
	return true, nil
}

func (s *SortedSet[T]) RemoveAll(elems ...T) error {
	for _, e := range elems {
		s.tree.Remove(e)
	}
	return nil
}

func (s *SortedSet[T]) RetainAll(keep view.Collection[T]) error {
	for _, v := range s.tree.Values() {
		if !keep.Contains(v.(T)) {
			s.tree.Remove(v)
		}
	}
	return nil
}

func (s *SortedSet[T]) Clear() error {
	s.tree.Clear()
	return nil
}

// emptyLike returns an empty set with the same ordering.
func (s *SortedSet[T]) emptyLike() *SortedSet[T] {
	return NewSortedFunc[T](s.cmp)
}
