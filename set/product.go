package set

import (
	"iter"
	"slices"

	"github.com/fzft/go-collections/view"
)

// Pair is one element of a Product.
type Pair[A, B comparable] struct {
	First  A
	Second B
}

// Product is the lazily evaluated cartesian product of two sets. It reads
// its operands on every traversal, so it reflects later changes to them.
type Product[A, B comparable] struct {
	a Set[A]
	b Set[B]
}

var _ Set[Pair[int, string]] = (*Product[int, string])(nil)

// CartesianProduct pairs every element of a with every element of b, a in
// the outer loop.
func CartesianProduct[A, B comparable](a Set[A], b Set[B]) *Product[A, B] {
	return &Product[A, B]{a: a, b: b}
}

func (p *Product[A, B]) Kind() view.Kind {
	return view.KindSet
}

func (p *Product[A, B]) Len() int {
	return p.a.Len() * p.b.Len()
}

func (p *Product[A, B]) IsEmpty() bool {
	return p.Len() == 0
}

func (p *Product[A, B]) Contains(pair Pair[A, B]) bool {
	return p.a.Contains(pair.First) && p.b.Contains(pair.Second)
}

func (p *Product[A, B]) All() iter.Seq[Pair[A, B]] {
	return func(yield func(Pair[A, B]) bool) {
		for x := range p.a.All() {
			for y := range p.b.All() {
				if !yield(Pair[A, B]{First: x, Second: y}) {
					return
				}
			}
		}
	}
}

func (p *Product[A, B]) ToSlice() []Pair[A, B] {
	return slices.Collect(p.All())
}

func (p *Product[A, B]) Equal(other view.Collection[Pair[A, B]]) bool {
	return equal[Pair[A, B]](p, other)
}

func (p *Product[A, B]) HashCode() uint64 {
	return hashCode(p.All())
}

func (p *Product[A, B]) String() string {
	return format(p.All())
}
