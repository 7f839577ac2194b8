package scope

import (
	"fmt"
	"strings"
)

// Reserved characters of the wire form.
const (
	delimiter = ','
	escapeCh  = '\\'
)

// Escaped returns the set's wire form: canonical scopes joined with commas,
// with any literal comma or backslash inside a scope backslash-escaped.
// Decoding the result with Parse yields an equal Set.
func (s Set) Escaped() string {
	var b strings.Builder
	for i, sc := range s.scopes {
		if i > 0 {
			b.WriteByte(delimiter)
		}
		for _, r := range sc {
			if r == delimiter || r == escapeCh {
				b.WriteByte(escapeCh)
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Parse decodes a wire-form scope list into a Set. A delimiter preceded by
// the escape character is part of the scope, not a separator; the escape
// character itself escapes any following character.
//
// An empty or all-whitespace input yields the empty Set. A scope that
// canonicalizes to empty fails the whole decode with ErrEmptyScope; a
// trailing escape character with nothing following it fails with
// ErrDanglingEscape.
func Parse(list string) (Set, error) {
	var s Set
	if strings.TrimSpace(list) == "" {
		return s, nil
	}

	var token strings.Builder
	flush := func() error {
		c, err := Canonicalize(token.String())
		if err != nil {
			return err
		}
		s.insert(c)
		token.Reset()
		return nil
	}

	escaped := false
	for _, r := range list {
		switch {
		case escaped:
			token.WriteRune(r)
			escaped = false
		case r == escapeCh:
			escaped = true
		case r == delimiter:
			if err := flush(); err != nil {
				return Set{}, err
			}
		default:
			token.WriteRune(r)
		}
	}
	if escaped {
		return Set{}, fmt.Errorf("%w: %q", ErrDanglingEscape, list)
	}
	if err := flush(); err != nil {
		return Set{}, err
	}
	return s, nil
}
