// Package env tracks which identifiers name types while C is parsed.
//
// The environment is a stack of scopes mapping names to a Symbol kind.
// Parsing C needs this because `a * b;` is a declaration when a is a
// typedef name and an expression otherwise. The parser backtracks, so the
// environment is transactional: every change made after Checkpoint is
// journaled and undone by Rollback.
package env

import (
	"github.com/raymyers/cparse/pkg/cabs"
)

// Symbol classifies a name bound in a scope.
type Symbol int

const (
	Identifier Symbol = iota
	Typename
)

func (s Symbol) String() string {
	if s == Typename {
		return "Typename"
	}
	return "Identifier"
}

// Mark identifies a point in the journal returned by Checkpoint.
type Mark int

type opKind int

const (
	opPush opKind = iota
	opPop
	opInsert
)

type change[N cabs.Name] struct {
	op      opKind
	frame   map[N]Symbol // popped frame, or frame written by an insert
	name    N
	prev    Symbol
	hadPrev bool
}

// Env is the symbol environment for one translation unit.
type Env[N cabs.Name] struct {
	scopes   []map[N]Symbol
	reserved map[string]struct{}
	names    cabs.Interner[N]
	gnu      bool
	clang    bool

	journal []change[N]
	open    int
}

func newEnv[N cabs.Name](names cabs.Interner[N], words ...[]string) *Env[N] {
	e := &Env[N]{
		scopes:   []map[N]Symbol{{}},
		reserved: make(map[string]struct{}),
		names:    names,
	}
	for _, list := range words {
		for _, w := range list {
			e.reserved[w] = struct{}{}
		}
	}
	return e
}

// WithCore returns an environment for strict C11.
func WithCore[N cabs.Name](names cabs.Interner[N]) *Env[N] {
	return newEnv(names, reservedC11)
}

// WithGNU returns an environment for C11 with GNU extensions.
func WithGNU[N cabs.Name](names cabs.Interner[N]) *Env[N] {
	e := newEnv(names, reservedC11, reservedGNU)
	e.gnu = true
	e.scopes[0][names.Intern("__builtin_va_list")] = Typename
	return e
}

// WithClang returns an environment for C11 with GNU and Clang extensions.
func WithClang[N cabs.Name](names cabs.Interner[N]) *Env[N] {
	e := newEnv(names, reservedC11, reservedGNU, reservedClang)
	e.gnu = true
	e.clang = true
	e.scopes[0][names.Intern("__builtin_va_list")] = Typename
	return e
}

// GNU reports whether GNU extensions are enabled.
func (e *Env[N]) GNU() bool { return e.gnu }

// Clang reports whether Clang extensions are enabled.
func (e *Env[N]) Clang() bool { return e.clang }

// Names returns the interner used for identifiers.
func (e *Env[N]) Names() cabs.Interner[N] { return e.names }

// Depth returns the number of open scopes.
func (e *Env[N]) Depth() int { return len(e.scopes) }

// IsReserved reports whether word is a keyword in the active flavor.
func (e *Env[N]) IsReserved(word string) bool {
	_, ok := e.reserved[word]
	return ok
}

// EnterScope pushes a new innermost scope.
func (e *Env[N]) EnterScope() {
	e.scopes = append(e.scopes, map[N]Symbol{})
	e.record(change[N]{op: opPush})
}

// LeaveScope pops the innermost scope. Popping the outermost scope is a
// parser bug and panics.
func (e *Env[N]) LeaveScope() {
	if len(e.scopes) <= 1 {
		panic("env: more scope pops than pushes")
	}
	top := e.scopes[len(e.scopes)-1]
	e.scopes = e.scopes[:len(e.scopes)-1]
	e.record(change[N]{op: opPop, frame: top})
}

// Lookup returns the binding of name in the innermost scope that has one.
func (e *Env[N]) Lookup(name N) (Symbol, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if sym, ok := e.scopes[i][name]; ok {
			return sym, true
		}
	}
	return Identifier, false
}

// IsTypename reports whether name currently denotes a typedef.
func (e *Env[N]) IsTypename(name N) bool {
	sym, _ := e.Lookup(name)
	return sym == Typename
}

// AddSymbol binds name in the innermost scope.
func (e *Env[N]) AddSymbol(name N, sym Symbol) {
	frame := e.scopes[len(e.scopes)-1]
	prev, had := frame[name]
	frame[name] = sym
	e.record(change[N]{op: opInsert, frame: frame, name: name, prev: prev, hadPrev: had})
}

// AddTypename binds name as a typedef in the innermost scope.
func (e *Env[N]) AddTypename(name N) {
	e.AddSymbol(name, Typename)
}

// HandleDeclarator binds the name declared by d, if any.
func (e *Env[N]) HandleDeclarator(d *cabs.Declarator[N], sym Symbol) {
	if name, ok := DeclaratorName(d); ok {
		e.AddSymbol(name, sym)
	}
}

// HandleDeclaration binds every name declared by a declaration: as a
// typedef when the specifiers include typedef, as an identifier otherwise.
func (e *Env[N]) HandleDeclaration(specifiers []cabs.Node[cabs.DeclarationSpecifier], declarators []cabs.Node[*cabs.InitDeclarator[N]]) {
	sym := SymbolFor(specifiers)
	for _, d := range declarators {
		e.HandleDeclarator(d.Value.Declarator.Value, sym)
	}
}

// SymbolFor returns Typename when specifiers contain typedef.
func SymbolFor(specifiers []cabs.Node[cabs.DeclarationSpecifier]) Symbol {
	for _, s := range specifiers {
		if sc, ok := s.Value.(cabs.StorageClassSpecifier); ok && sc == cabs.StorageTypedef {
			return Typename
		}
	}
	return Identifier
}

// DeclaratorName returns the identifier declared by d, looking through
// parenthesized declarators.
func DeclaratorName[N cabs.Name](d *cabs.Declarator[N]) (N, bool) {
	for d != nil {
		switch k := d.Kind.Value.(type) {
		case cabs.Identifier[N]:
			return k.Name, true
		case *cabs.Declarator[N]:
			d = k
		default:
			d = nil
		}
	}
	var zero N
	return zero, false
}

// Checkpoint starts a transaction. Every Checkpoint must be matched by
// exactly one Rollback or Commit, innermost first.
func (e *Env[N]) Checkpoint() Mark {
	e.open++
	return Mark(len(e.journal))
}

// Rollback undoes every change made since m and ends the transaction.
func (e *Env[N]) Rollback(m Mark) {
	for len(e.journal) > int(m) {
		c := e.journal[len(e.journal)-1]
		e.journal = e.journal[:len(e.journal)-1]
		switch c.op {
		case opPush:
			e.scopes = e.scopes[:len(e.scopes)-1]
		case opPop:
			e.scopes = append(e.scopes, c.frame)
		case opInsert:
			if c.hadPrev {
				c.frame[c.name] = c.prev
			} else {
				delete(c.frame, c.name)
			}
		}
	}
	e.end()
}

// Commit keeps the changes made since m and ends the transaction.
func (e *Env[N]) Commit(m Mark) {
	e.end()
}

func (e *Env[N]) end() {
	if e.open == 0 {
		panic("env: transaction ended twice")
	}
	e.open--
	if e.open == 0 {
		e.journal = e.journal[:0]
	}
}

func (e *Env[N]) record(c change[N]) {
	if e.open > 0 {
		e.journal = append(e.journal, c)
	}
}
