// Package log captures SLP protocol events for diagnostics and interop
// debugging.
//
// The discovery engine emits an Event for every datagram it sends or
// receives and for every decode failure. Applications plug in a Logger
// implementation: NoopLogger discards everything, SlogAdapter forwards to a
// standard slog.Logger, FileLogger appends CBOR-encoded events to a capture
// file, and MultiLogger fans out to several of these at once. Reader decodes
// capture files back into events.
//
// Events are encoded with integer CBOR keys so long captures stay compact.
package log
