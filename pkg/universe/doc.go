// Package universe maintains the set of active lighting-control universes.
//
// A universe is one DMX512 address space. The Store hands out universes by
// ID with get-or-create semantics, drops them again once nothing holds them
// active (no ports and no clients), and persists per-universe settings
// (name, merge mode) through a Preferences backend so they survive daemon
// restarts.
package universe
