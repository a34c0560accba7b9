package set

import "iter"

// smallLimit is the largest argument count deduplicated by linear scan.
const smallLimit = 5

// dedupeSmall drops later duplicates from a short argument list.
func dedupeSmall[T comparable](elems []T) []T {
	out := make([]T, 0, len(elems))
outer:
	for _, e := range elems {
		for _, seen := range out {
			if seen == e {
				continue outer
			}
		}
		out = append(out, e)
	}
	return out
}

func fill[T comparable](s *HashSet[T], elems []T) *HashSet[T] {
	if len(elems) <= smallLimit {
		for _, e := range dedupeSmall(elems) {
			s.index[e] = s.order.PushBack(e)
		}
		return s
	}
	for _, e := range elems {
		s.insert(e)
	}
	return s
}

// MutableOf returns a mutable set of elems. Of equal elements the first one
// is kept.
func MutableOf[T comparable](elems ...T) *HashSet[T] {
	return fill(newHashSet[T](len(elems), Mutable), elems)
}

// MutableOfAll is MutableOf over a sequence.
func MutableOfAll[T comparable](elems iter.Seq[T]) *HashSet[T] {
	s := newHashSet[T](0, Mutable)
	for e := range elems {
		s.insert(e)
	}
	return s
}

// FixedSizeOf returns a set whose elements can be replaced but not added or
// removed.
func FixedSizeOf[T comparable](elems ...T) *HashSet[T] {
	return fill(newHashSet[T](len(elems), FixedSize), elems)
}

// FixedSizeOfAll is FixedSizeOf over a sequence.
func FixedSizeOfAll[T comparable](elems iter.Seq[T]) *HashSet[T] {
	s := MutableOfAll(elems)
	s.caps = FixedSize
	return s
}

// ImmutableOf returns an immutable set of elems. Of equal elements the first
// one is kept.
func ImmutableOf[T comparable](elems ...T) *ImmutableSet[T] {
	b := newImmutableBuilder[T](elementHasher[T]{})
	for _, e := range elems {
		b.add(e)
	}
	return b.build()
}

// ImmutableOfAll is ImmutableOf over a sequence.
func ImmutableOfAll[T comparable](elems iter.Seq[T]) *ImmutableSet[T] {
	b := newImmutableBuilder[T](elementHasher[T]{})
	for e := range elems {
		b.add(e)
	}
	return b.build()
}
