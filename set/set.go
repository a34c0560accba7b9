// Package set provides hash, sorted and immutable sets and an algebra over
// them.
//
// The algebra accepts any Set, including views from package view. A result
// is always a new set that shares nothing with its operands. When the first
// operand is a *SortedSet the result is sorted with the same comparator;
// otherwise it is a *HashSet holding the first operand's elements followed
// by the second's.
//
// Known gap: A∩(B∪C) and (A∩B)∪(A∩C) have equal contents but need not
// iterate in the same order when the operands are sorted by different
// comparators, since each result adopts its first operand's comparator.
package set

import (
	"fmt"
	"hash/maphash"
	"iter"
	"strings"

	"go.uber.org/zap"

	cerrors "github.com/fzft/go-collections/errors"
	"github.com/fzft/go-collections/log"
	"github.com/fzft/go-collections/view"
)

// Set is the read contract shared by every set of this package and by views
// over them.
type Set[T comparable] interface {
	view.Collection[T]
	Kind() view.Kind
}

// Capability says which writes a set accepts.
type Capability uint8

const (
	CanGrow Capability = 1 << iota
	CanShrink
	CanReplace
)

const (
	Immutable Capability = 0
	FixedSize            = CanReplace
	Mutable              = CanGrow | CanShrink | CanReplace
)

func (c Capability) Has(want Capability) bool {
	return c&want == want
}

func (c Capability) String() string {
	switch c {
	case Mutable:
		return "mutable"
	case FixedSize:
		return "fixed-size"
	case Immutable:
		return "immutable"
	}
	var parts []string
	if c.Has(CanGrow) {
		parts = append(parts, "grow")
	}
	if c.Has(CanShrink) {
		parts = append(parts, "shrink")
	}
	if c.Has(CanReplace) {
		parts = append(parts, "replace")
	}
	return strings.Join(parts, "|")
}

var seed = maphash.MakeSeed()

// elementHash is the per-element hash every set representation sums into
// its HashCode.
func elementHash[T comparable](v T) uint32 {
	h := maphash.Comparable(seed, v)
	return uint32(h ^ h>>32)
}

func hashCode[T comparable](elems iter.Seq[T]) uint64 {
	var h uint64
	for e := range elems {
		h += uint64(elementHash(e))
	}
	return h
}

// equal reports whether two sets hold the same elements, using b's
// membership test.
func equal[T comparable](a Set[T], b view.Collection[T]) bool {
	if b == nil || a.Len() != b.Len() {
		return false
	}
	for e := range a.All() {
		if !b.Contains(e) {
			return false
		}
	}
	return true
}

func format[T any](elems iter.Seq[T]) string {
	var b strings.Builder
	b.WriteByte('[')
	first := true
	for e := range elems {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprint(&b, e)
	}
	b.WriteByte(']')
	return b.String()
}

func unsupported(op string, caps Capability) error {
	log.Logger.Debug("set write rejected", zap.String("op", op), zap.Stringer("capability", caps))
	return cerrors.Unsupported(op)
}
