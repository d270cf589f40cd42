package cabs

import (
	"fmt"
	"sync"
	"testing"
)

func TestSymbolTable(t *testing.T) {
	var table SymbolTable
	a := table.Intern("alpha")
	b := table.Intern("beta")
	if a == b {
		t.Fatal("distinct names share a symbol")
	}
	if again := table.Intern("alpha"); again != a {
		t.Errorf("Intern(alpha) = %d, then %d", a, again)
	}
	if got := table.Recover(b); got != "beta" {
		t.Errorf("Recover = %q, want beta", got)
	}
	if table.Len() != 2 {
		t.Errorf("Len = %d, want 2", table.Len())
	}
}

func TestSymbolTableConcurrent(t *testing.T) {
	table := NewSymbolTable()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				name := fmt.Sprintf("n%d", i)
				if got := table.Recover(table.Intern(name)); got != name {
					t.Errorf("round trip %q = %q", name, got)
				}
			}
		}()
	}
	wg.Wait()
	if table.Len() != 100 {
		t.Errorf("Len = %d, want 100", table.Len())
	}
}

func TestStringInterner(t *testing.T) {
	var names StringInterner
	if names.Recover(names.Intern("x")) != "x" {
		t.Error("StringInterner does not round trip")
	}
}
