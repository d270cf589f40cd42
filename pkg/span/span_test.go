package span

import "testing"

func TestSpanEqual(t *testing.T) {
	tests := []struct {
		a, b Span
		want bool
	}{
		{New(0, 3), New(0, 3), true},
		{New(0, 3), New(0, 4), false},
		{None(), New(5, 9), true},
		{New(5, 9), None(), true},
		{None(), None(), true},
	}

	for i, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("tests[%d] - %v.Equal(%v) = %v, want %v", i, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSpanEqualNotTransitive(t *testing.T) {
	a, b := New(0, 1), New(2, 3)
	if !a.Equal(None()) || !None().Equal(b) {
		t.Fatal("sentinel must equal both spans")
	}
	if a.Equal(b) {
		t.Fatal("distinct spans compared equal")
	}
}

func TestSpanEnclose(t *testing.T) {
	if got := New(4, 6).Enclose(New(1, 5)); got != New(1, 6) {
		t.Errorf("Enclose = %v, want 1..6", got)
	}
	if got := None().Enclose(New(1, 5)); got != New(1, 5) {
		t.Errorf("Enclose with sentinel = %v, want 1..5", got)
	}
	if got := New(2, 3).Enclose(None()); got != New(2, 3) {
		t.Errorf("Enclose with sentinel = %v, want 2..3", got)
	}
}

func TestSpanString(t *testing.T) {
	if got := New(3, 7).String(); got != "3..7" {
		t.Errorf("String() = %q", got)
	}
	if got := None().String(); got != ".." {
		t.Errorf("String() = %q", got)
	}
	if got := None().Len(); got != 0 {
		t.Errorf("Len() = %d", got)
	}
}

func TestWrap(t *testing.T) {
	n := Wrap(42)
	if n.Value != 42 || !n.Span.IsNone() {
		t.Errorf("Wrap(42) = %+v", n)
	}
	p := Ptr(NewNode("x", New(0, 1)))
	if p.Value != "x" || p.Span != New(0, 1) {
		t.Errorf("Ptr = %+v", *p)
	}
}
