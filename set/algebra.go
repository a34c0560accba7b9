package set

// builder is a set the algebra can fill without capability checks.
type builder[T comparable] interface {
	Set[T]
	insert(elem T) bool
}

// newLike returns an empty result set for an operation whose first operand
// is a.
func newLike[T comparable](a Set[T]) builder[T] {
	if s, ok := a.(*SortedSet[T]); ok {
		return s.emptyLike()
	}
	return newHashSet[T](0, Mutable)
}

// Union returns the elements of a followed by those of b not in a.
func Union[T comparable](a, b Set[T]) Set[T] {
	r := newLike(a)
	for e := range a.All() {
		r.insert(e)
	}
	for e := range b.All() {
		r.insert(e)
	}
	return r
}

// Intersect returns the elements of a that are also in b.
func Intersect[T comparable](a, b Set[T]) Set[T] {
	r := newLike(a)
	for e := range a.All() {
		if b.Contains(e) {
			r.insert(e)
		}
	}
	return r
}

// Difference returns the elements of a that are not in b.
func Difference[T comparable](a, b Set[T]) Set[T] {
	r := newLike(a)
	for e := range a.All() {
		if !b.Contains(e) {
			r.insert(e)
		}
	}
	return r
}

// SymmetricDifference returns the elements in exactly one of a and b.
func SymmetricDifference[T comparable](a, b Set[T]) Set[T] {
	r := newLike(a)
	for e := range a.All() {
		if !b.Contains(e) {
			r.insert(e)
		}
	}
	for e := range b.All() {
		if !a.Contains(e) {
			r.insert(e)
		}
	}
	return r
}

// IsSubsetOf reports whether every element of a is in b.
func IsSubsetOf[T comparable](a, b Set[T]) bool {
	if a.Len() > b.Len() {
		return false
	}
	for e := range a.All() {
		if !b.Contains(e) {
			return false
		}
	}
	return true
}

// IsProperSubsetOf reports whether a is a subset of b and b has elements a
// lacks. Sets with equal contents are never proper subsets of each other.
func IsProperSubsetOf[T comparable](a, b Set[T]) bool {
	return a.Len() < b.Len() && IsSubsetOf(a, b)
}

func fold[T comparable](op func(a, b Set[T]) Set[T], sets []Set[T]) Set[T] {
	if len(sets) == 0 {
		return NewHashSet[T]()
	}
	acc := Union[T](sets[0], newLike(sets[0]))
	for _, s := range sets[1:] {
		acc = op(acc, s)
	}
	return acc
}

// UnionAll folds Union over sets from left to right. With no arguments it
// returns an empty set.
func UnionAll[T comparable](sets ...Set[T]) Set[T] {
	return fold(Union[T], sets)
}

// IntersectAll folds Intersect over sets from left to right.
func IntersectAll[T comparable](sets ...Set[T]) Set[T] {
	return fold(Intersect[T], sets)
}

// DifferenceAll removes the elements of every later set from the first.
func DifferenceAll[T comparable](sets ...Set[T]) Set[T] {
	return fold(Difference[T], sets)
}
