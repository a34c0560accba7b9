package set

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/fzft/go-collections/errors"
)

func TestPowerSet(t *testing.T) {
	ps, err := PowerSet[int](MutableOf(1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, 8, ps.Len())

	for _, subset := range []Set[int]{
		MutableOf[int](),
		MutableOf(1),
		MutableOf(2),
		MutableOf(3),
		MutableOf(1, 2),
		MutableOf(1, 3),
		SortedOf(3, 2),
		ImmutableOf(3, 2, 1),
	} {
		assert.True(t, ps.Contains(subset), "missing %v", subset)
	}
	assert.False(t, ps.Contains(MutableOf(4)))
}

func TestPowerSetOfEmptySet(t *testing.T) {
	ps, err := PowerSet[string](MutableOf[string]())
	require.NoError(t, err)
	assert.Equal(t, 1, ps.Len())
	assert.True(t, ps.Contains(MutableOf[string]()))
}

func TestPowerSetEquality(t *testing.T) {
	a, err := PowerSet[int](MutableOf(1, 2))
	require.NoError(t, err)
	b, err := PowerSet[int](SortedOf(2, 1))
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.HashCode(), b.HashCode())
}

func TestPowerSetRejectsLargeBase(t *testing.T) {
	big := NewHashSet[int]()
	for i := range MaxPowerSetBase + 1 {
		_, _ = big.Add(i)
	}
	_, err := PowerSet[int](big)
	assert.True(t, errors.Is(err, cerrors.ErrCapacityOverflow))
}

func TestBoundedPowerSet(t *testing.T) {
	ps, err := BoundedPowerSet[int](MutableOf(1, 2, 3), 3)
	require.NoError(t, err)
	assert.Equal(t, 8, ps.Len())

	_, err = BoundedPowerSet[int](MutableOf(1, 2, 3, 4), 3)
	assert.True(t, errors.Is(err, cerrors.ErrCapacityOverflow))
	assert.EqualError(t, err, "set.PowerSet: capacity overflow: base of 4 elements exceeds 3")

	big := NewHashSet[int]()
	for i := range MaxPowerSetBase + 1 {
		_, _ = big.Add(i)
	}
	_, err = BoundedPowerSet[int](big, 64)
	assert.True(t, errors.Is(err, cerrors.ErrCapacityOverflow))
}

func TestCartesianProduct(t *testing.T) {
	p := CartesianProduct[int, int](MutableOf(1, 2), MutableOf(2, 3, 4))
	assert.Equal(t, 6, p.Len())

	want := []Pair[int, int]{{1, 2}, {1, 3}, {1, 4}, {2, 2}, {2, 3}, {2, 4}}
	assert.Equal(t, want, p.ToSlice())
	assert.True(t, p.Contains(Pair[int, int]{2, 4}))
	assert.False(t, p.Contains(Pair[int, int]{4, 2}))

	// restartable
	assert.Equal(t, want, slices.Collect(p.All()))
	assert.True(t, p.Equal(ImmutableOf(want...)))
	assert.Equal(t, ImmutableOf(want...).HashCode(), p.HashCode())
}

func TestCartesianProductWithEmptySet(t *testing.T) {
	p := CartesianProduct[int, string](MutableOf(1, 2), MutableOf[string]())
	assert.True(t, p.IsEmpty())
	assert.Empty(t, p.ToSlice())

	p = CartesianProduct[int, string](MutableOf[int](), MutableOf("a"))
	assert.Equal(t, 0, p.Len())
}

func TestCartesianProductIsLazy(t *testing.T) {
	a := MutableOf(1)
	b := MutableOf("x")
	p := CartesianProduct[int, string](a, b)
	_, _ = a.Add(2)
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, []Pair[int, string]{{1, "x"}, {2, "x"}}, p.ToSlice())
}
