// Package scope implements the administrative scope primitive of the
// Service Location Protocol (SLP, RFC 2608).
//
// A scope is a label that partitions a discovery namespace. A requester and
// an advertiser interoperate only if they share at least one scope, so every
// inbound discovery message is tested against the locally configured scope
// set. Scope matching is case-insensitive and ignores surrounding
// whitespace; every string entering a Set is canonicalized first so
// "Lighting" and " lighting " name the same scope.
//
// # Wire form
//
// Scope lists travel on the wire as a comma-separated string. A literal
// comma or backslash inside a scope name is backslash-escaped so the
// encoding round-trips unambiguously:
//
//	set, err := scope.Parse("default,east-wing")
//	wire := set.Escaped() // "default,east-wing"
//
// # Set algebra
//
// Sets keep their scopes in sorted order, which lets the algebra
// (Intersects, Intersection, Difference, Update, ...) run as linear
// two-pointer merges rather than pairwise comparison.
//
// A Set is a plain value with no internal locking. Concurrent reads are
// safe; concurrent mutation of the same Set must be serialized by the
// caller.
package scope
