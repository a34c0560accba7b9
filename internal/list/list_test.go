package list

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	l := New[int]()
	assert.Nil(t, l.Head)
	assert.Nil(t, l.Tail)
	assert.Equal(t, 0, l.Len())
}

func TestPushBack(t *testing.T) {
	l := New[int]()
	l.PushBack(5)
	assert.Equal(t, 5, l.Head.Value)
	assert.Equal(t, 5, l.Tail.Value)

	l.PushBack(10)
	l.PushBack(15)
	assert.Equal(t, []int{5, 10, 15}, slices.Collect(l.All()))
	assert.Equal(t, 15, l.Tail.Value)
	assert.Equal(t, 3, l.Len())
}

func TestRemove(t *testing.T) {
	l := New[string]()
	a := l.PushBack("a")
	b := l.PushBack("b")
	c := l.PushBack("c")

	l.Remove(b)
	assert.Equal(t, []string{"a", "c"}, slices.Collect(l.All()))
	assert.Nil(t, b.Next)
	assert.Nil(t, b.Prev)

	l.Remove(a)
	l.Remove(c)
	assert.Nil(t, l.Head)
	assert.Nil(t, l.Tail)
	assert.Equal(t, 0, l.Len())
}

func TestRemoveWhileIterating(t *testing.T) {
	l := New[int]()
	nodes := map[int]*Node[int]{}
	for i := range 5 {
		nodes[i] = l.PushBack(i)
	}
	var seen []int
	for v := range l.All() {
		seen = append(seen, v)
		if v%2 == 0 {
			l.Remove(nodes[v])
		}
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, seen)
	assert.Equal(t, []int{1, 3}, slices.Collect(l.All()))
}

func TestClear(t *testing.T) {
	l := New[int]()
	l.PushBack(1)
	l.PushBack(2)
	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, slices.Collect(l.All()))
}
