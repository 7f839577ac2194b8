package scope

import (
	"errors"
	"fmt"
	"strings"
)

// Scope errors.
var (
	// ErrEmptyScope indicates a scope name that canonicalizes to the
	// empty string. An empty scope is never a valid protocol scope, so
	// construction or decoding of the whole set fails rather than
	// silently dropping the entry.
	ErrEmptyScope = errors.New("empty scope name")

	// ErrDanglingEscape indicates a scope list ending in an escape
	// character with nothing left to escape.
	ErrDanglingEscape = errors.New("dangling escape in scope list")
)

// DefaultScope is the scope used when a deployment configures none.
const DefaultScope = "default"

// Canonicalize returns the canonical form of a raw scope name: leading and
// trailing whitespace stripped, characters folded to lower case. SLP scope
// matching is case-insensitive, so every string entering a Set passes
// through here. Canonicalize is idempotent.
func Canonicalize(raw string) (string, error) {
	c := strings.ToLower(strings.TrimSpace(raw))
	if c == "" {
		return "", fmt.Errorf("%w: %q", ErrEmptyScope, raw)
	}
	return c, nil
}
