package set

import (
	"go.uber.org/zap"

	cerrors "github.com/fzft/go-collections/errors"
	"github.com/fzft/go-collections/log"
)

// MaxPowerSetBase is the largest set PowerSet accepts.
const MaxPowerSetBase = 30

// PowerSet returns every subset of a, including the empty set and a itself.
// The result matches members by contents, so any Set with the same elements
// as a subset is contained in it.
func PowerSet[T comparable](a Set[T]) (*ImmutableSet[Set[T]], error) {
	return BoundedPowerSet(a, MaxPowerSetBase)
}

// BoundedPowerSet is PowerSet for sets of at most maxBase elements, capped
// at MaxPowerSetBase. Larger sets fail with errors.KindCapacityOverflow
// before anything is allocated.
func BoundedPowerSet[T comparable](a Set[T], maxBase int) (*ImmutableSet[Set[T]], error) {
	maxBase = min(maxBase, MaxPowerSetBase)
	n := a.Len()
	if n > maxBase {
		log.Logger.Debug("power set too large", zap.Int("base", n), zap.Int("max", maxBase))
		return nil, cerrors.New(cerrors.KindCapacityOverflow, "set.PowerSet",
			"base of %d elements exceeds %d", n, maxBase)
	}
	elems := a.ToSlice()
	b := newImmutableBuilder[Set[T]](contentHasher[T]{})
	for mask := range 1 << n {
		sub := newImmutableBuilder[T](elementHasher[T]{})
		for i, e := range elems {
			if mask&(1<<i) != 0 {
				sub.add(e)
			}
		}
		b.add(sub.build())
	}
	return b.build(), nil
}
