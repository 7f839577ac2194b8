package scope

import (
	"errors"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lower case preserved", "default", "default"},
		{"case folded", "DEFAULT", "default"},
		{"mixed case", "East-Wing", "east-wing"},
		{"whitespace trimmed", "  lighting  ", "lighting"},
		{"tabs trimmed", "\tlighting\t", "lighting"},
		{"interior whitespace kept", "main hall", "main hall"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Canonicalize(tt.in)
			if err != nil {
				t.Fatalf("Canonicalize(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	for _, in := range []string{"Lighting", " east-wing ", "A B C"} {
		once, err := Canonicalize(in)
		if err != nil {
			t.Fatalf("Canonicalize(%q) error: %v", in, err)
		}
		twice, err := Canonicalize(once)
		if err != nil {
			t.Fatalf("Canonicalize(%q) error: %v", once, err)
		}
		if once != twice {
			t.Errorf("Canonicalize not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestCanonicalizeEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		if _, err := Canonicalize(in); !errors.Is(err, ErrEmptyScope) {
			t.Errorf("Canonicalize(%q) error = %v, want ErrEmptyScope", in, err)
		}
	}
}

func TestNew(t *testing.T) {
	t.Run("DeduplicatesCanonicalForms", func(t *testing.T) {
		s, err := New("Lighting", " lighting ", "LIGHTING")
		if err != nil {
			t.Fatalf("New error: %v", err)
		}
		if s.Size() != 1 {
			t.Errorf("Size() = %d, want 1", s.Size())
		}
		if !s.Contains("lighting") {
			t.Error("Contains(lighting) = false, want true")
		}
	})

	t.Run("EmptyTokenFailsWholeConstruction", func(t *testing.T) {
		if _, err := New("default", "  "); !errors.Is(err, ErrEmptyScope) {
			t.Errorf("New error = %v, want ErrEmptyScope", err)
		}
	})

	t.Run("ZeroArgsYieldsEmptySet", func(t *testing.T) {
		s, err := New()
		if err != nil {
			t.Fatalf("New() error: %v", err)
		}
		if !s.Empty() || s.Size() != 0 {
			t.Errorf("Empty() = %v, Size() = %d, want empty set", s.Empty(), s.Size())
		}
	})
}

func TestEqualIgnoresInsertionOrder(t *testing.T) {
	a := MustNew("x", "y", "z")
	b := MustNew("z", "x", "y")
	if !a.Equal(b) {
		t.Errorf("%v and %v should be equal", a, b)
	}
	c := MustNew("Lighting")
	d := MustNew(" lighting ")
	if !c.Equal(d) {
		t.Errorf("%v and %v should be equal", c, d)
	}
}

func TestContains(t *testing.T) {
	s := MustNew("default", "east-wing")

	tests := []struct {
		scope string
		want  bool
	}{
		{"default", true},
		{"DEFAULT", true},
		{" east-wing ", true},
		{"west-wing", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := s.Contains(tt.scope); got != tt.want {
			t.Errorf("Contains(%q) = %v, want %v", tt.scope, got, tt.want)
		}
	}
}

func TestIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Set
		want bool
	}{
		{"shared scope", MustNew("default", "east-wing"), MustNew("east-wing", "west-wing"), true},
		{"disjoint", MustNew("a", "b"), MustNew("c", "d"), false},
		{"empty left", Set{}, MustNew("a"), false},
		{"empty right", MustNew("a"), Set{}, false},
		{"both empty", Set{}, Set{}, false},
		{"identical", MustNew("a", "b"), MustNew("a", "b"), true},
		{"case insensitive match", MustNew("Lighting"), MustNew("LIGHTING"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
			// Commutative for all operands.
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Errorf("reversed Intersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntersectionCount(t *testing.T) {
	a := MustNew("a", "b", "c", "d")
	b := MustNew("b", "d", "e")
	if got := a.IntersectionCount(b); got != 2 {
		t.Errorf("IntersectionCount = %d, want 2", got)
	}
	if got := b.IntersectionCount(a); got != 2 {
		t.Errorf("reversed IntersectionCount = %d, want 2", got)
	}
	if got := a.IntersectionCount(a); got != a.Size() {
		t.Errorf("IntersectionCount(self) = %d, want %d", got, a.Size())
	}
	if got := a.IntersectionCount(Set{}); got != 0 {
		t.Errorf("IntersectionCount(empty) = %d, want 0", got)
	}
}

func TestIntersection(t *testing.T) {
	a := MustNew("default", "east-wing")
	b := MustNew("east-wing", "west-wing")

	got := a.Intersection(b)
	if want := MustNew("east-wing"); !got.Equal(want) {
		t.Errorf("Intersection = %v, want %v", got, want)
	}

	// Pure: operands untouched.
	if !a.Equal(MustNew("default", "east-wing")) {
		t.Errorf("left operand mutated: %v", a)
	}
	if !b.Equal(MustNew("east-wing", "west-wing")) {
		t.Errorf("right operand mutated: %v", b)
	}
}

func TestDifference(t *testing.T) {
	a := MustNew("a", "b", "c")
	b := MustNew("b", "d")

	got := a.Difference(b)
	if want := MustNew("a", "c"); !got.Equal(want) {
		t.Errorf("Difference = %v, want %v", got, want)
	}
	if !a.Equal(MustNew("a", "b", "c")) {
		t.Errorf("left operand mutated: %v", a)
	}

	if got := a.Difference(Set{}); !got.Equal(a) {
		t.Errorf("Difference(empty) = %v, want %v", got, a)
	}
	if got := a.Difference(a); !got.Empty() {
		t.Errorf("Difference(self) = %v, want empty", got)
	}
}

func TestDifferenceUpdate(t *testing.T) {
	t.Run("RemovesAndReturnsRemoved", func(t *testing.T) {
		a := MustNew("x", "y", "z")
		b := MustNew("y")

		removed := a.DifferenceUpdate(b)
		if want := MustNew("x", "z"); !a.Equal(want) {
			t.Errorf("after DifferenceUpdate a = %v, want %v", a, want)
		}
		if want := MustNew("y"); !removed.Equal(want) {
			t.Errorf("removed = %v, want %v", removed, want)
		}
	})

	t.Run("RemovalDoesNotSkipFollowingElement", func(t *testing.T) {
		// Consecutive matches: removing "b" must not cause "c" to be
		// skipped.
		a := MustNew("a", "b", "c", "d")
		b := MustNew("b", "c")

		removed := a.DifferenceUpdate(b)
		if want := MustNew("a", "d"); !a.Equal(want) {
			t.Errorf("after DifferenceUpdate a = %v, want %v", a, want)
		}
		if want := MustNew("b", "c"); !removed.Equal(want) {
			t.Errorf("removed = %v, want %v", removed, want)
		}
	})

	t.Run("OtherNotMutated", func(t *testing.T) {
		a := MustNew("a", "b")
		b := MustNew("a", "b", "c")
		a.DifferenceUpdate(b)
		if !b.Equal(MustNew("a", "b", "c")) {
			t.Errorf("other operand mutated: %v", b)
		}
		if !a.Empty() {
			t.Errorf("a = %v, want empty", a)
		}
	})
}

func TestUpdate(t *testing.T) {
	t.Run("Union", func(t *testing.T) {
		a := MustNew("b", "d")
		a.Update(MustNew("a", "c", "d"))
		if want := MustNew("a", "b", "c", "d"); !a.Equal(want) {
			t.Errorf("after Update a = %v, want %v", a, want)
		}
	})

	t.Run("OrderOfUpdatesIrrelevant", func(t *testing.T) {
		x := MustNew("m")
		x.Update(MustNew("a"))
		x.Update(MustNew("z"))

		y := MustNew("m")
		y.Update(MustNew("z"))
		y.Update(MustNew("a"))

		if !x.Equal(y) {
			t.Errorf("update order changed membership: %v vs %v", x, y)
		}
	})

	t.Run("EmptyOtherIsNoop", func(t *testing.T) {
		a := MustNew("a")
		a.Update(Set{})
		if !a.Equal(MustNew("a")) {
			t.Errorf("a = %v, want {a}", a)
		}
	})
}

func TestCloneIsIndependent(t *testing.T) {
	a := MustNew("a", "b")
	c := a.Clone()
	c.Update(MustNew("z"))
	if a.Contains("z") {
		t.Error("mutating clone affected original")
	}

	// Scopes() hands out a copy, not internal storage.
	scopes := a.Scopes()
	scopes[0] = "mutated"
	if a.Contains("mutated") {
		t.Error("mutating Scopes() result affected set")
	}
}

func TestDefault(t *testing.T) {
	d := Default()
	if d.Size() != 1 || !d.Contains(DefaultScope) {
		t.Errorf("Default() = %v, want {%s}", d, DefaultScope)
	}
}

func TestString(t *testing.T) {
	s := MustNew("west-wing", "default")
	if got := s.String(); got != "default,west-wing" {
		t.Errorf("String() = %q, want %q", got, "default,west-wing")
	}
}
