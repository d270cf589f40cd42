package parser

import (
	"testing"

	"github.com/raymyers/cparse/pkg/cabs"
	"github.com/raymyers/cparse/pkg/span"
)

func idExpr(n string) cabs.Node[cabs.Expression] {
	return span.Wrap[cabs.Expression](cabs.Identifier[string]{Name: n})
}

func binary(op cabs.BinaryOperator, lhs, rhs cabs.Node[cabs.Expression]) cabs.Node[cabs.Expression] {
	return span.Wrap[cabs.Expression](&cabs.BinaryOperatorExpression{
		Operator: span.Wrap(op),
		LHS:      lhs,
		RHS:      rhs,
	})
}

func TestCast(t *testing.T) {
	got, err := Expression("(int) 1", newTestEnv(flavorCore))
	if err != nil {
		t.Fatal(err)
	}
	want := span.Wrap[cabs.Expression](&cabs.CastExpression[string]{
		TypeName: span.Wrap(&cabs.TypeName[string]{
			Specifiers: []cabs.Node[cabs.SpecifierQualifier]{span.Wrap[cabs.SpecifierQualifier](cabs.TypeInt)},
		}),
		Expression: span.Wrap[cabs.Expression](cabs.Integer{Base: cabs.BaseDecimal, Number: "1"}),
	})
	if diff := cabs.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCastNeedsTypename(t *testing.T) {
	if _, err := Expression("(foo) 1", newTestEnv(flavorCore)); err == nil {
		t.Error("(foo) 1 parsed although foo is not a typename")
	}
	e := newTestEnv(flavorCore)
	e.AddTypename("foo")
	if _, err := Expression("(foo) 1", e); err != nil {
		t.Errorf("cast to typedef name: %v", err)
	}
}

func TestLeftAssociative(t *testing.T) {
	tests := []struct {
		input string
		want  cabs.Node[cabs.Expression]
	}{
		{"a && b && c", binary(cabs.OpLogicalAnd, binary(cabs.OpLogicalAnd, idExpr("a"), idExpr("b")), idExpr("c"))},
		{"a - b + c", binary(cabs.OpAdd, binary(cabs.OpSubtract, idExpr("a"), idExpr("b")), idExpr("c"))},
		{"a || b && c", binary(cabs.OpLogicalOr, idExpr("a"), binary(cabs.OpLogicalAnd, idExpr("b"), idExpr("c")))},
		{"a = b = c", binary(cabs.OpAssign, idExpr("a"), binary(cabs.OpAssign, idExpr("b"), idExpr("c")))},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Expression(tt.input, newTestEnv(flavorCore))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cabs.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMultiplicationOrPointer(t *testing.T) {
	e := newTestEnv(flavorCore)
	got, err := Statement("a * b;", e)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.Value.(cabs.ExpressionStatement); !ok {
		t.Errorf("a * b; = %T, want an expression statement", got.Value)
	}

	e.AddTypename("a")
	got, err = Statement("{ a * b; }", e)
	if err != nil {
		t.Fatal(err)
	}
	block := got.Value.(cabs.CompoundStatement)
	if len(block) != 1 {
		t.Fatalf("got %d block items, want 1", len(block))
	}
	if _, ok := block[0].Value.(*cabs.Declaration[string]); !ok {
		t.Errorf("a * b; = %T, want a declaration", block[0].Value)
	}
}

func TestShadowedTypedefInFunction(t *testing.T) {
	got, err := TranslationUnit("typedef int a; int foo() { int a; }", newTestEnv(flavorCore))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Value) != 2 {
		t.Fatalf("got %d external declarations, want 2", len(got.Value))
	}
	if _, ok := got.Value[0].Value.(*cabs.Declaration[string]); !ok {
		t.Errorf("first item = %T, want a declaration", got.Value[0].Value)
	}
	if _, ok := got.Value[1].Value.(*cabs.FunctionDefinition[string]); !ok {
		t.Errorf("second item = %T, want a function definition", got.Value[1].Value)
	}
}
