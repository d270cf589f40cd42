package parser

import (
	"testing"

	"github.com/raymyers/cparse/pkg/cabs"
	"github.com/raymyers/cparse/pkg/span"
)

func ident(name string) cabs.Node[cabs.DeclaratorKind] {
	return span.Wrap[cabs.DeclaratorKind](cabs.Identifier[string]{Name: name})
}

func TestTypedefConst(t *testing.T) {
	got, err := Declaration("typedef const int foo;", newTestEnv(flavorCore))
	if err != nil {
		t.Fatal(err)
	}
	want := span.Wrap(&cabs.Declaration[string]{
		Specifiers: []cabs.Node[cabs.DeclarationSpecifier]{
			span.Wrap[cabs.DeclarationSpecifier](cabs.StorageTypedef),
			span.Wrap[cabs.DeclarationSpecifier](cabs.QualifierConst),
			span.Wrap[cabs.DeclarationSpecifier](cabs.TypeInt),
		},
		Declarators: []cabs.Node[*cabs.InitDeclarator[string]]{
			span.Wrap(&cabs.InitDeclarator[string]{
				Declarator: span.Wrap(&cabs.Declarator[string]{Kind: ident("foo")}),
			}),
		},
	})
	if diff := cabs.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestArrayDeclarators(t *testing.T) {
	got, err := Declaration("int typedef * foo, baz[static 10][const *];", newTestEnv(flavorCore))
	if err != nil {
		t.Fatal(err)
	}
	ten := span.Wrap[cabs.Expression](cabs.Integer{Base: cabs.BaseDecimal, Number: "10"})
	want := span.Wrap(&cabs.Declaration[string]{
		Specifiers: []cabs.Node[cabs.DeclarationSpecifier]{
			span.Wrap[cabs.DeclarationSpecifier](cabs.TypeInt),
			span.Wrap[cabs.DeclarationSpecifier](cabs.StorageTypedef),
		},
		Declarators: []cabs.Node[*cabs.InitDeclarator[string]]{
			span.Wrap(&cabs.InitDeclarator[string]{
				Declarator: span.Wrap(&cabs.Declarator[string]{
					Kind:    ident("foo"),
					Derived: []cabs.Node[cabs.DerivedDeclarator]{span.Wrap[cabs.DerivedDeclarator](cabs.PointerDeclarator(nil))},
				}),
			}),
			span.Wrap(&cabs.InitDeclarator[string]{
				Declarator: span.Wrap(&cabs.Declarator[string]{
					Kind: ident("baz"),
					Derived: []cabs.Node[cabs.DerivedDeclarator]{
						span.Wrap[cabs.DerivedDeclarator](&cabs.ArrayDeclarator{
							Size: cabs.ArraySize{Kind: cabs.SizeStaticExpression, Expression: &ten},
						}),
						span.Wrap[cabs.DerivedDeclarator](&cabs.ArrayDeclarator{
							Qualifiers: []cabs.Node[cabs.TypeQualifier]{span.Wrap(cabs.QualifierConst)},
							Size:       cabs.ArraySize{Kind: cabs.SizeVariableUnknown},
						}),
					},
				}),
			}),
		},
	})
	if diff := cabs.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSpans(t *testing.T) {
	src := "int x = a + b;"
	got, err := Declaration(src, newTestEnv(flavorCore))
	if err != nil {
		t.Fatal(err)
	}
	if got.Span != span.New(0, len(src)) {
		t.Errorf("declaration span = %v, want 0..%d", got.Span, len(src))
	}

	init := got.Value.Declarators[0].Value
	if d := init.Declarator.Span; d != span.New(4, 5) {
		t.Errorf("declarator span = %v, want 4..5", d)
	}
	e := init.Initializer.Value.(*cabs.ExpressionInitializer).Expression
	if e.Span != span.New(8, 13) {
		t.Errorf("initializer span = %v, want 8..13", e.Span)
	}
	bin := e.Value.(*cabs.BinaryOperatorExpression)
	if bin.Operator.Span != span.New(10, 11) {
		t.Errorf("operator span = %v, want 10..11", bin.Operator.Span)
	}
}

func TestParameterLists(t *testing.T) {
	tests := []struct {
		input string
		kr    bool
		count int
	}{
		{"int f();", true, 0},
		{"int f(a, b);", true, 2},
		{"int f(void);", false, 1},
		{"int f(int, char *);", false, 2},
		{"int f(int a, ...);", false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Declaration(tt.input, newTestEnv(flavorCore))
			if err != nil {
				t.Fatal(err)
			}
			derived := got.Value.Declarators[0].Value.Declarator.Value.Derived
			if len(derived) != 1 {
				t.Fatalf("got %d derived declarators, want 1", len(derived))
			}
			switch fn := derived[0].Value.(type) {
			case cabs.KRFunctionDeclarator[string]:
				if !tt.kr || len(fn) != tt.count {
					t.Errorf("got old-style list of %d, want kr=%v count=%d", len(fn), tt.kr, tt.count)
				}
			case *cabs.FunctionDeclarator[string]:
				if tt.kr || len(fn.Parameters) != tt.count {
					t.Errorf("got prototype of %d, want kr=%v count=%d", len(fn.Parameters), tt.kr, tt.count)
				}
			default:
				t.Fatalf("unexpected derived declarator %T", fn)
			}
		})
	}
}

func TestAbstractFunctionDeclarator(t *testing.T) {
	got, err := Expression("sizeof(int (*)())", newTestEnv(flavorCore))
	if err != nil {
		t.Fatal(err)
	}
	tn := got.Value.(*cabs.SizeOfType[string]).TypeName.Value
	d := tn.Declarator.Value
	if _, ok := d.Kind.Value.(*cabs.Declarator[string]); !ok {
		t.Fatalf("kind = %T, want nested declarator", d.Kind.Value)
	}
	fn, ok := d.Derived[0].Value.(*cabs.FunctionDeclarator[string])
	if !ok || len(fn.Parameters) != 0 {
		t.Errorf("derived = %#v, want empty prototype", d.Derived[0].Value)
	}
}
