// Package list is a doubly linked list that hands out its nodes, so owners can
// index them and unlink in O(1).
package list

import "iter"

type Node[T any] struct {
	Prev  *Node[T]
	Next  *Node[T]
	Value T
}

type List[T any] struct {
	Head   *Node[T]
	Tail   *Node[T]
	Length int
}

func New[T any]() *List[T] {
	return &List[T]{}
}

// Clear drops every node.
func (l *List[T]) Clear() {
	l.Head, l.Tail = nil, nil
	l.Length = 0
}

func (l *List[T]) PushBack(value T) *Node[T] {
	node := &Node[T]{Value: value}
	if l.Tail == nil {
		l.Head, l.Tail = node, node
	} else {
		node.Prev, l.Tail.Next, l.Tail = l.Tail, node, node
	}
	l.Length++
	return node
}

// Remove unlinks node, which must belong to l.
func (l *List[T]) Remove(node *Node[T]) {
	if node.Prev != nil {
		node.Prev.Next = node.Next
	} else {
		l.Head = node.Next
	}
	if node.Next != nil {
		node.Next.Prev = node.Prev
	} else {
		l.Tail = node.Prev
	}
	node.Next, node.Prev = nil, nil
	l.Length--
}

func (l *List[T]) Len() int {
	return l.Length
}

// All yields values from head to tail. Removing the node being visited is
// allowed.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.Head; n != nil; {
			next := n.Next
			if !yield(n.Value) {
				return
			}
			n = next
		}
	}
}
