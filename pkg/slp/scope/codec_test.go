package scope

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Set
	}{
		{"single scope", "default", MustNew("default")},
		{"two scopes", "default,east-wing", MustNew("default", "east-wing")},
		{"canonicalized on decode", "DEFAULT, East-Wing ", MustNew("default", "east-wing")},
		{"duplicates collapse", "a,A,a", MustNew("a")},
		{"escaped delimiter kept in scope", `a\,b,c`, MustNew("a,b", "c")},
		{"escaped backslash", `a\\b`, MustNew(`a\b`)},
		{"escape of ordinary char", `a\bc`, MustNew("abc")},
		{"empty input", "", Set{}},
		{"whitespace input", "   ", Set{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"trailing escape", `a\`, ErrDanglingEscape},
		{"lone escape", `\`, ErrDanglingEscape},
		{"empty middle token", "a,,b", ErrEmptyScope},
		{"trailing delimiter", "a,", ErrEmptyScope},
		{"leading delimiter", ",a", ErrEmptyScope},
		{"whitespace-only token", "a,  ,b", ErrEmptyScope},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.in); !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.in, err, tt.want)
			}
		})
	}
}

func TestEscaped(t *testing.T) {
	tests := []struct {
		name string
		set  Set
		want string
	}{
		{"plain", MustNew("default", "east-wing"), "default,east-wing"},
		{"sorted output", MustNew("zebra", "alpha"), "alpha,zebra"},
		{"delimiter escaped", MustNew("a,b", "c"), `a\,b,c`},
		{"backslash escaped", MustNew(`a\b`), `a\\b`},
		{"empty set", Set{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.set.Escaped(); got != tt.want {
				t.Errorf("Escaped() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	sets := []Set{
		{},
		MustNew("default"),
		MustNew("default", "east-wing", "west-wing"),
		MustNew("a,b", "c"),
		MustNew(`back\slash`, "comma,scope", "plain"),
	}
	for _, s := range sets {
		got, err := Parse(s.Escaped())
		if err != nil {
			t.Fatalf("Parse(Escaped(%v)) error: %v", s, err)
		}
		if !got.Equal(s) {
			t.Errorf("round trip of %v produced %v", s, got)
		}
	}
}
