package scope

import (
	"slices"
	"strings"
)

// Set is an ordered collection of unique canonical scope names.
//
// A Set behaves as a value: the pure operations (Intersection, Difference,
// Contains) never modify their operands, and every Set returned by this
// package owns its storage. The destructive operations (Update,
// DifferenceUpdate) use a pointer receiver; use Clone before sharing if the
// original must survive.
//
// Scopes are stored sorted so the algebra runs as linear two-pointer merges.
type Set struct {
	scopes []string
}

// New builds a Set from raw scope names. Each name is canonicalized and
// duplicates collapse into one entry. Returns ErrEmptyScope if any name
// canonicalizes to nothing.
func New(raws ...string) (Set, error) {
	var s Set
	for _, raw := range raws {
		c, err := Canonicalize(raw)
		if err != nil {
			return Set{}, err
		}
		s.insert(c)
	}
	return s, nil
}

// MustNew is New for static scope lists; it panics on invalid input.
func MustNew(raws ...string) Set {
	s, err := New(raws...)
	if err != nil {
		panic(err)
	}
	return s
}

// Default returns a Set containing only DefaultScope.
func Default() Set {
	return Set{scopes: []string{DefaultScope}}
}

// insert adds an already-canonical scope, keeping the slice sorted and
// duplicate-free.
func (s *Set) insert(c string) {
	i, found := slices.BinarySearch(s.scopes, c)
	if found {
		return
	}
	s.scopes = slices.Insert(s.scopes, i, c)
}

// Empty reports whether the set holds no scopes.
func (s Set) Empty() bool { return len(s.scopes) == 0 }

// Size returns the number of scopes in the set.
func (s Set) Size() int { return len(s.scopes) }

// Contains reports whether the canonical form of raw is in the set.
func (s Set) Contains(raw string) bool {
	c, err := Canonicalize(raw)
	if err != nil {
		return false
	}
	_, found := slices.BinarySearch(s.scopes, c)
	return found
}

// Scopes returns the canonical scopes in sorted order. The slice is a copy.
func (s Set) Scopes() []string {
	return slices.Clone(s.scopes)
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	return Set{scopes: slices.Clone(s.scopes)}
}

// Equal reports whether both sets contain exactly the same scopes,
// regardless of how either was constructed.
func (s Set) Equal(other Set) bool {
	return slices.Equal(s.scopes, other.scopes)
}

// Intersects reports whether the two sets share at least one scope. This is
// the accept/reject decision for every inbound discovery message, so it
// short-circuits on the first match.
func (s Set) Intersects(other Set) bool {
	i, j := 0, 0
	for i < len(s.scopes) && j < len(other.scopes) {
		switch {
		case s.scopes[i] == other.scopes[j]:
			return true
		case s.scopes[i] < other.scopes[j]:
			i++
		default:
			j++
		}
	}
	return false
}

// IntersectionCount returns the number of scopes present in both sets.
func (s Set) IntersectionCount(other Set) int {
	i, j, n := 0, 0, 0
	for i < len(s.scopes) && j < len(other.scopes) {
		switch {
		case s.scopes[i] == other.scopes[j]:
			n++
			i++
			j++
		case s.scopes[i] < other.scopes[j]:
			i++
		default:
			j++
		}
	}
	return n
}

// Intersection returns a new set holding the scopes present in both sets.
// Neither operand is modified.
func (s Set) Intersection(other Set) Set {
	var out []string
	i, j := 0, 0
	for i < len(s.scopes) && j < len(other.scopes) {
		switch {
		case s.scopes[i] == other.scopes[j]:
			out = append(out, s.scopes[i])
			i++
			j++
		case s.scopes[i] < other.scopes[j]:
			i++
		default:
			j++
		}
	}
	return Set{scopes: out}
}

// Difference returns a new set holding the scopes present in s but not in
// other. Neither operand is modified.
func (s Set) Difference(other Set) Set {
	var out []string
	i, j := 0, 0
	for i < len(s.scopes) {
		if j < len(other.scopes) {
			switch {
			case s.scopes[i] == other.scopes[j]:
				i++
				j++
				continue
			case s.scopes[i] > other.scopes[j]:
				j++
				continue
			}
		}
		out = append(out, s.scopes[i])
		i++
	}
	return Set{scopes: out}
}

// DifferenceUpdate removes from s every scope also present in other and
// returns the removed scopes. The merge collects kept and removed entries
// into fresh slices, so a removal never disturbs the walk over the
// remaining elements.
func (s *Set) DifferenceUpdate(other Set) Set {
	var kept, removed []string
	i, j := 0, 0
	for i < len(s.scopes) {
		if j < len(other.scopes) {
			switch {
			case s.scopes[i] == other.scopes[j]:
				removed = append(removed, s.scopes[i])
				i++
				j++
				continue
			case s.scopes[i] > other.scopes[j]:
				j++
				continue
			}
		}
		kept = append(kept, s.scopes[i])
		i++
	}
	s.scopes = kept
	return Set{scopes: removed}
}

// Update inserts every scope of other into s, preserving uniqueness and
// order.
func (s *Set) Update(other Set) {
	if other.Empty() {
		return
	}
	merged := make([]string, 0, len(s.scopes)+len(other.scopes))
	i, j := 0, 0
	for i < len(s.scopes) && j < len(other.scopes) {
		switch {
		case s.scopes[i] == other.scopes[j]:
			merged = append(merged, s.scopes[i])
			i++
			j++
		case s.scopes[i] < other.scopes[j]:
			merged = append(merged, s.scopes[i])
			i++
		default:
			merged = append(merged, other.scopes[j])
			j++
		}
	}
	merged = append(merged, s.scopes[i:]...)
	merged = append(merged, other.scopes[j:]...)
	s.scopes = merged
}

// String returns the scopes joined with commas, without escaping. It is
// meant for logs and debug output; the wire form is Escaped.
func (s Set) String() string {
	return strings.Join(s.scopes, ",")
}
