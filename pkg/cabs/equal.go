package cabs

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/raymyers/cparse/pkg/span"
)

var equalOptions = []cmp.Option{
	cmp.Comparer(func(a, b span.Span) bool { return a.Equal(b) }),
	cmpopts.EquateEmpty(),
}

// Equal reports whether two trees have the same shape and values. Spans
// are compared with span.Span.Equal, so a hand-built tree using
// span.None matches a parsed one regardless of offsets. Nil and empty
// lists are equal.
func Equal(a, b any) bool {
	return cmp.Equal(a, b, equalOptions...)
}

// Diff returns a human readable report of the differences between two
// trees, or "" when Equal(a, b).
func Diff(a, b any) string {
	return cmp.Diff(a, b, equalOptions...)
}

var shapeOptions = []cmp.Option{
	cmp.Comparer(func(a, b span.Span) bool { return true }),
	cmpopts.EquateEmpty(),
}

// EqualShape is Equal with spans ignored entirely. Trees parsed from
// differently formatted text compare equal when they have the same
// structure.
func EqualShape(a, b any) bool {
	return cmp.Equal(a, b, shapeOptions...)
}

// DiffShape is Diff with spans ignored entirely.
func DiffShape(a, b any) string {
	return cmp.Diff(a, b, shapeOptions...)
}
