package cabs_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/raymyers/cparse/pkg/cabs"
	"github.com/raymyers/cparse/pkg/env"
	"github.com/raymyers/cparse/pkg/parser"
)

func kinds(t *testing.T, input string, keep func(cabs.Item) bool) []cabs.Kind {
	t.Helper()
	e, err := parser.Expression(input, gnuEnv())
	if err != nil {
		t.Fatal(err)
	}
	var got []cabs.Kind
	cabs.Inspect[string](e, func(item cabs.Item) bool {
		got = append(got, item.Kind)
		return keep(item)
	})
	return got
}

func all(cabs.Item) bool { return true }

func TestWalkOrder(t *testing.T) {
	tests := []struct {
		input string
		want  []cabs.Kind
	}{
		{"a + b++", []cabs.Kind{
			cabs.KindExpression, cabs.KindBinaryOperatorExpr,
			cabs.KindExpression, cabs.KindIdentifier,
			cabs.KindExpression, cabs.KindUnaryOperatorExpression,
			cabs.KindExpression, cabs.KindIdentifier,
			cabs.KindUnaryOperator,
			cabs.KindBinaryOperator,
		}},
		{"-x", []cabs.Kind{
			cabs.KindExpression, cabs.KindUnaryOperatorExpression,
			cabs.KindUnaryOperator,
			cabs.KindExpression, cabs.KindIdentifier,
		}},
		{"f(x)", []cabs.Kind{
			cabs.KindExpression, cabs.KindCallExpression,
			cabs.KindExpression, cabs.KindIdentifier,
			cabs.KindExpression, cabs.KindIdentifier,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, kinds(t, tt.input, all)); diff != "" {
				t.Errorf("visit order (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInspectPrunes(t *testing.T) {
	got := kinds(t, "a + b", func(item cabs.Item) bool {
		return item.Kind != cabs.KindBinaryOperatorExpr
	})
	want := []cabs.Kind{cabs.KindExpression, cabs.KindBinaryOperatorExpr}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("visit order (-want +got):\n%s", diff)
	}
}

func TestInspectSpans(t *testing.T) {
	e, err := parser.Expression("abc + d", gnuEnv())
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	cabs.Inspect[string](e, func(item cabs.Item) bool {
		if item.Kind == cabs.KindIdentifier {
			names = append(names, item.Span.String())
		}
		return true
	})
	if diff := cmp.Diff([]string{"0..3", "6..7"}, names); diff != "" {
		t.Errorf("identifier spans (-want +got):\n%s", diff)
	}
}

func TestWalkUnsupportedRoot(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	cabs.Inspect[string](42, all)
}

func TestWalkAvailability(t *testing.T) {
	d, err := parser.Declaration("int f __attribute__((availability(macos,introduced=10.6,message=\"m\")));",
		env.WithClang[string](cabs.StringInterner{}))
	if err != nil {
		t.Fatal(err)
	}

	var below []cabs.Kind
	inside := false
	cabs.Inspect[string](d, func(item cabs.Item) bool {
		if inside {
			below = append(below, item.Kind)
		}
		if item.Kind == cabs.KindAvailabilityAttribute {
			inside = true
		}
		return true
	})
	want := []cabs.Kind{
		cabs.KindAvailabilityClause,
		cabs.KindAvailabilityClause, cabs.KindStringLiteral,
	}
	if diff := cmp.Diff(want, below); diff != "" {
		t.Errorf("availability children (-want +got):\n%s", diff)
	}

	dump := cabs.Sdump[string](cabs.StringInterner{}, d)
	if !strings.HasSuffix(dump, "                AvailabilityAttribute\n") {
		t.Errorf("availability clauses should not be dumped:\n%s", dump)
	}
}
