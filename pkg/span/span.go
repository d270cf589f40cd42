// Package span attaches byte ranges of the source text to values.
package span

import "fmt"

const noneOffset = -1

// Span is a half-open byte range [Start, End) in the parsed text.
type Span struct {
	Start int
	End   int
}

// New returns the span covering [start, end).
func New(start, end int) Span {
	return Span{Start: start, End: end}
}

// None returns the undefined span. It compares equal to every span.
func None() Span {
	return Span{Start: noneOffset, End: noneOffset}
}

// IsNone reports whether s is the undefined span.
func (s Span) IsNone() bool {
	return s.Start == noneOffset && s.End == noneOffset
}

// Equal reports whether s and o cover the same range. The undefined span
// is equal to any span, so the relation is not transitive.
func (s Span) Equal(o Span) bool {
	if s.IsNone() || o.IsNone() {
		return true
	}
	return s == o
}

// Enclose returns the smallest span covering both s and o.
func (s Span) Enclose(o Span) Span {
	switch {
	case s.IsNone():
		return o
	case o.IsNone():
		return s
	}
	return Span{Start: min(s.Start, o.Start), End: max(s.End, o.End)}
}

// Len returns the number of bytes covered, zero for the undefined span.
func (s Span) Len() int {
	if s.IsNone() {
		return 0
	}
	return s.End - s.Start
}

func (s Span) String() string {
	if s.IsNone() {
		return ".."
	}
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Node is a value together with the span of text it was parsed from.
type Node[T any] struct {
	Value T
	Span  Span
}

// NewNode wraps v with span s.
func NewNode[T any](v T, s Span) Node[T] {
	return Node[T]{Value: v, Span: s}
}

// Wrap wraps v with the undefined span. Used for hand-built trees.
func Wrap[T any](v T) Node[T] {
	return Node[T]{Value: v, Span: None()}
}

// Ptr is a shorthand for optional children.
func Ptr[T any](n Node[T]) *Node[T] {
	return &n
}
