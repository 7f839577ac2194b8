// Package persistence provides runtime state persistence for the daemon.
//
// This package handles the JSON serialization of runtime state (known
// directory agents, live service registrations) that should survive daemon
// restarts. Universe settings are handled separately by the universe
// package's Preferences backends.
package persistence
