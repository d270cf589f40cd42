package env

import (
	"testing"

	"github.com/raymyers/cparse/pkg/cabs"
	"github.com/raymyers/cparse/pkg/span"
)

func newStringEnv() *Env[string] {
	return WithGNU[string](cabs.StringInterner{})
}

func TestPresets(t *testing.T) {
	core := WithCore[string](cabs.StringInterner{})
	gnu := WithGNU[string](cabs.StringInterner{})
	clang := WithClang[string](cabs.StringInterner{})

	tests := []struct {
		name string
		env  *Env[string]
		gnu  bool
		word string
		res  bool
		va   bool
	}{
		{"core", core, false, "__attribute__", false, false},
		{"core int", core, false, "int", true, false},
		{"gnu", gnu, true, "__attribute__", true, true},
		{"gnu nullable", gnu, true, "_Nullable", false, true},
		{"clang nullable", clang, true, "_Nullable", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env.GNU() != tt.gnu {
				t.Errorf("GNU() = %v, want %v", tt.env.GNU(), tt.gnu)
			}
			if got := tt.env.IsReserved(tt.word); got != tt.res {
				t.Errorf("IsReserved(%q) = %v, want %v", tt.word, got, tt.res)
			}
			if got := tt.env.IsTypename("__builtin_va_list"); got != tt.va {
				t.Errorf("IsTypename(__builtin_va_list) = %v, want %v", got, tt.va)
			}
			if tt.env.Depth() != 1 {
				t.Errorf("Depth() = %d, want 1", tt.env.Depth())
			}
		})
	}
	if !clang.Clang() || gnu.Clang() {
		t.Error("Clang flag wrong")
	}
}

func TestShadowing(t *testing.T) {
	e := newStringEnv()
	e.AddTypename("a")
	e.EnterScope()
	if !e.IsTypename("a") {
		t.Fatal("outer typedef not visible")
	}
	e.AddSymbol("a", Identifier)
	if e.IsTypename("a") {
		t.Fatal("inner identifier does not shadow typedef")
	}
	e.LeaveScope()
	if !e.IsTypename("a") {
		t.Fatal("typedef not restored after scope")
	}
}

func TestLeaveLastScopePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic")
		}
	}()
	newStringEnv().LeaveScope()
}

func TestRollback(t *testing.T) {
	e := newStringEnv()
	e.AddTypename("keep")

	m := e.Checkpoint()
	e.AddSymbol("keep", Identifier)
	e.AddTypename("gone")
	e.EnterScope()
	e.AddTypename("inner")
	e.LeaveScope()
	e.EnterScope()
	e.AddTypename("open")
	if e.Depth() != 2 || e.IsTypename("keep") {
		t.Fatalf("before rollback: Depth() = %d, keep typename = %v", e.Depth(), e.IsTypename("keep"))
	}
	e.Rollback(m)

	if !e.IsTypename("keep") {
		t.Error("overwritten binding not restored")
	}
	for _, name := range []string{"gone", "inner", "open"} {
		if e.IsTypename(name) {
			t.Errorf("%s still a typename after rollback", name)
		}
	}
	if e.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", e.Depth())
	}
}

func TestRollbackRestoresPoppedScope(t *testing.T) {
	e := newStringEnv()
	e.EnterScope()
	e.AddTypename("t")

	m := e.Checkpoint()
	e.LeaveScope()
	if e.IsTypename("t") {
		t.Fatal("scope not popped")
	}
	e.Rollback(m)

	if !e.IsTypename("t") || e.Depth() != 2 {
		t.Fatal("popped scope not restored")
	}
}

func TestNestedCommitThenRollback(t *testing.T) {
	e := newStringEnv()
	outer := e.Checkpoint()
	inner := e.Checkpoint()
	e.AddTypename("x")
	e.Commit(inner)
	if !e.IsTypename("x") {
		t.Fatal("committed binding missing")
	}
	e.Rollback(outer)
	if e.IsTypename("x") {
		t.Fatal("outer rollback must undo committed inner changes")
	}
}

func TestHandleDeclaration(t *testing.T) {
	decl := func(name string) span.Node[*cabs.InitDeclarator[string]] {
		d := &cabs.Declarator[string]{Kind: span.Wrap[cabs.DeclaratorKind](cabs.Identifier[string]{Name: name})}
		return span.Wrap(&cabs.InitDeclarator[string]{Declarator: span.Wrap(d)})
	}
	nested := func(name string) span.Node[*cabs.InitDeclarator[string]] {
		inner := &cabs.Declarator[string]{Kind: span.Wrap[cabs.DeclaratorKind](cabs.Identifier[string]{Name: name})}
		d := &cabs.Declarator[string]{Kind: span.Wrap[cabs.DeclaratorKind](inner)}
		return span.Wrap(&cabs.InitDeclarator[string]{Declarator: span.Wrap(d)})
	}

	e := newStringEnv()
	typedef := []span.Node[cabs.DeclarationSpecifier]{
		span.Wrap[cabs.DeclarationSpecifier](cabs.TypeInt),
		span.Wrap[cabs.DeclarationSpecifier](cabs.StorageTypedef),
	}
	e.HandleDeclaration(typedef, []span.Node[*cabs.InitDeclarator[string]]{decl("foo"), nested("bar")})
	if !e.IsTypename("foo") || !e.IsTypename("bar") {
		t.Fatal("typedef names not registered")
	}

	plain := []span.Node[cabs.DeclarationSpecifier]{
		span.Wrap[cabs.DeclarationSpecifier](cabs.Extensions{}),
		span.Wrap[cabs.DeclarationSpecifier](cabs.TypeInt),
	}
	e.EnterScope()
	e.HandleDeclaration(plain, []span.Node[*cabs.InitDeclarator[string]]{decl("foo")})
	if e.IsTypename("foo") {
		t.Fatal("identifier did not shadow typedef")
	}
}

func TestSymbolTableNames(t *testing.T) {
	table := cabs.NewSymbolTable()
	e := WithGNU[cabs.Symbol](table)
	e.AddTypename(table.Intern("size_t"))
	if !e.IsTypename(table.Intern("size_t")) {
		t.Fatal("interned typedef not found")
	}
	if !e.IsTypename(table.Intern("__builtin_va_list")) {
		t.Fatal("preset typedef not interned")
	}
	if got := table.Recover(table.Intern("size_t")); got != "size_t" {
		t.Fatalf("Recover = %q", got)
	}
}
