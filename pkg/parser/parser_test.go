package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/raymyers/cparse/pkg/cabs"
	"github.com/raymyers/cparse/pkg/env"
)

type flavor string

const (
	flavorCore  flavor = "core"
	flavorGNU   flavor = "gnu"
	flavorClang flavor = "clang"
)

func newTestEnv(f flavor) *env.Env[string] {
	names := cabs.StringInterner{}
	switch f {
	case flavorGNU:
		return env.WithGNU[string](names)
	case flavorClang:
		return env.WithClang[string](names)
	default:
		return env.WithCore[string](names)
	}
}

func TestSyntaxErrorMessage(t *testing.T) {
	e := newTestEnv(flavorCore)
	_, err := Expression("a +", e)
	if err == nil {
		t.Fatal("expected an error")
	}
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("error %T is not a *SyntaxError", err)
	}
	if se.Line != 1 || se.Column != 4 || se.Offset != 3 {
		t.Errorf("position = %d:%d @%d, want 1:4 @3", se.Line, se.Column, se.Offset)
	}
	want := "unexpected token at line 1 column 4, expected '(', '<constant>', '<identifier>', '<string literal>'"
	if se.Error() != want {
		t.Errorf("message:\n got %q\nwant %q", se.Error(), want)
	}
}

func TestSyntaxErrorFarthestFailure(t *testing.T) {
	e := newTestEnv(flavorCore)
	_, err := TranslationUnit("int f(void) {\n  return 1 +;\n}\n", e)
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("got %v, want *SyntaxError", err)
	}
	if se.Line != 2 || se.Column != 13 {
		t.Errorf("position = %d:%d, want 2:13", se.Line, se.Column)
	}
}

func TestTrailingInput(t *testing.T) {
	_, err := Expression("a b", newTestEnv(flavorCore))
	if err == nil || !strings.Contains(err.Error(), "'<end of input>'") {
		t.Errorf("got %v, want an end of input error", err)
	}
}

func TestFailedParseLeavesEnvironment(t *testing.T) {
	e := newTestEnv(flavorCore)
	if _, err := Declaration("typedef int a, b = ;", e); err == nil {
		t.Fatal("expected an error")
	}
	if e.IsTypename("a") {
		t.Error("typedef from a failed declaration was kept")
	}
	if e.Depth() != 1 {
		t.Errorf("depth = %d, want 1", e.Depth())
	}
}

func TestDeclarationRegistersNames(t *testing.T) {
	e := newTestEnv(flavorCore)
	if _, err := Declaration("int typedef * foo, baz[static 10][const *];", e); err != nil {
		t.Fatal(err)
	}
	if !e.IsTypename("foo") || !e.IsTypename("baz") {
		t.Error("typedef names were not registered")
	}
	if _, err := Declaration("foo x;", e); err != nil {
		t.Errorf("declaration using typedef: %v", err)
	}
}

func TestTranslationUnitScopeIsDropped(t *testing.T) {
	e := newTestEnv(flavorCore)
	if _, err := TranslationUnit("typedef int a; a x;", e); err != nil {
		t.Fatal(err)
	}
	if e.IsTypename("a") {
		t.Error("file scope typedef leaked out of the translation unit")
	}
	if e.Depth() != 1 {
		t.Errorf("depth = %d, want 1", e.Depth())
	}
}

// Each case declares `a` as a typedef first. Whether the remaining code
// parses depends on which scope sees `a` as an ordinary identifier.
func TestTypedefScopes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"shadowed in block", "typedef int a; void foo() { a a; _Atomic(a) b; }", false},
		{"block scope ends", "void foo() { typedef int a; { a a; } _Atomic(a) b; }", true},
		{"shadowed by parameter", "typedef int a; void foo(int a, _Atomic(a) b) {}", false},
		{"parameter scope ends", "typedef int a; int foo(a a) {} int bar(int a); _Atomic(a) b;", true},
		{"parameter visible in body", "typedef int a; void foo(int a) { _Atomic(a) b; }", false},
		{"old-style declaration in body scope", "typedef int a; void foo(x) int a; { _Atomic(a) b; }", false},
		{"named before initializer", "typedef int a; int a = sizeof(_Atomic(a));", false},
		{"enumerator in cast", "typedef int a; int foo() { int x = (enum {a})1; _Atomic(a) b; }", false},
		{"enumerator visible to next enumerator", "typedef int a; int foo() { int x = (enum {a, b = (a)1})1; }", false},
		{"enumerator in block", "typedef int a; void f() { { enum { a }; } _Atomic(a) b; }", true},
		{"loops", "typedef int a; void foo() { for (a a;;) a = a; while (1) {int a;} do { int a; } while(1); _Atomic (a) b; }", true},
		{"for declaration in body", "typedef int a; void f() { for (int a = 0;;) { _Atomic(a) b; } }", false},
		{"selections", `typedef int a, b;
			int x;
			void foo() {
				if (sizeof(enum {a})) x = sizeof(enum{b});
				else x = b;
				switch (sizeof(enum {b})) x = b;
				a x, y;
				b z, w;
			}`, true},
		{"if condition scope", "typedef int a; void foo() { int x; if (sizeof(enum {a})) x = (_Atomic(a))1; }", false},
		{"struct member", "typedef int a; struct a { a a; a b; }; _Atomic(a) c;", true},
		{"unsigned variable", "typedef int a; unsigned a; a b;", false},
		{"pointer parameter", "typedef int a; int foo(int a* b) {}", false},
		{"struct field", "typedef int a; struct S { int a* b; };", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(flavorGNU)
			_, err := TranslationUnit(tt.input, e)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected a syntax error")
			}
			if e.Depth() != 1 {
				t.Errorf("depth = %d, want 1", e.Depth())
			}
		})
	}
}

func TestFlavorGating(t *testing.T) {
	tests := []struct {
		name  string
		entry string
		input string
		ok    map[flavor]bool
	}{
		{"empty struct", "decl", "struct foo { } S;",
			map[flavor]bool{flavorCore: false, flavorGNU: true, flavorClang: true}},
		{"empty initializer", "decl", "int a[] = {};",
			map[flavor]bool{flavorCore: false, flavorGNU: true, flavorClang: true}},
		{"statement expression", "expr", "({ int x = 1; x; })",
			map[flavor]bool{flavorCore: false, flavorGNU: true, flavorClang: true}},
		{"case range", "stmt", "switch (x) { case 1 ... 3: break; }",
			map[flavor]bool{flavorCore: false, flavorGNU: true, flavorClang: true}},
		{"typeof", "decl", "typeof(1) x;",
			map[flavor]bool{flavorCore: false, flavorGNU: true, flavorClang: true}},
		{"attribute", "decl", "int x __attribute__((unused));",
			map[flavor]bool{flavorCore: false, flavorGNU: true, flavorClang: true}},
		{"nullable", "decl", "int * _Nullable p;",
			map[flavor]bool{flavorCore: false, flavorGNU: false, flavorClang: true}},
		{"block pointer", "decl", "void (^b)(void);",
			map[flavor]bool{flavorCore: false, flavorGNU: false, flavorClang: true}},
		{"va_list", "decl", "__builtin_va_list ap;",
			map[flavor]bool{flavorCore: false, flavorGNU: true, flavorClang: true}},
	}

	for _, tt := range tests {
		for _, f := range []flavor{flavorCore, flavorGNU, flavorClang} {
			t.Run(tt.name+"/"+string(f), func(t *testing.T) {
				err := parseEntry(tt.entry, tt.input, newTestEnv(f))
				if got := err == nil; got != tt.ok[f] {
					t.Errorf("accepted = %v, want %v (err: %v)", got, tt.ok[f], err)
				}
			})
		}
	}
}

func parseEntry(entry, input string, e *env.Env[string]) error {
	_, err := parseDump(entry, input, e)
	return err
}

// parseDump runs the named entry point and renders its result with the
// debug printer.
func parseDump(entry, input string, e *env.Env[string]) (string, error) {
	names := cabs.StringInterner{}
	switch entry {
	case "constant":
		n, err := Constant(input, e)
		if err != nil {
			return "", err
		}
		return cabs.Sdump[string](names, n), nil
	case "expr":
		n, err := Expression(input, e)
		if err != nil {
			return "", err
		}
		return cabs.Sdump[string](names, n), nil
	case "decl":
		n, err := Declaration(input, e)
		if err != nil {
			return "", err
		}
		return cabs.Sdump[string](names, n), nil
	case "stmt":
		n, err := Statement(input, e)
		if err != nil {
			return "", err
		}
		return cabs.Sdump[string](names, n), nil
	default:
		n, err := TranslationUnit(input, e)
		if err != nil {
			return "", err
		}
		return cabs.Sdump[string](names, n), nil
	}
}
