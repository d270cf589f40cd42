package cabs

import "sync"

// Name is the representation of identifier text in the tree.
type Name interface {
	comparable
}

// Interner converts identifier text to and from its representation.
type Interner[N Name] interface {
	Intern(s string) N
	Recover(n N) string
}

// StringInterner stores identifiers as plain strings.
type StringInterner struct{}

func (StringInterner) Intern(s string) string  { return s }
func (StringInterner) Recover(n string) string { return n }

// Symbol is a dense handle issued by a SymbolTable.
type Symbol uint32

// SymbolTable interns identifiers as Symbols. The zero value is ready to
// use and safe for concurrent parsers sharing one table.
type SymbolTable struct {
	mu    sync.RWMutex
	ids   map[string]Symbol
	names []string
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

func (t *SymbolTable) Intern(s string) Symbol {
	t.mu.RLock()
	id, ok := t.ids[s]
	t.mu.RUnlock()
	if ok {
		return id
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.ids[s]; ok {
		return id
	}
	if t.ids == nil {
		t.ids = make(map[string]Symbol)
	}
	id = Symbol(len(t.names))
	t.ids[s] = id
	t.names = append(t.names, s)
	return id
}

// Recover returns the text of n. It panics on a handle the table never
// issued.
func (t *SymbolTable) Recover(n Symbol) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.names[n]
}

// Len returns the number of distinct identifiers interned.
func (t *SymbolTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.names)
}
