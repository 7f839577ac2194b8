// Package wire defines the SLPv2 binary message format (RFC 2608).
//
// Every SLP message starts with a common header carrying the protocol
// version, a function ID, the total message length, flags, a transaction ID
// (XID) and a language tag. All integers are big-endian; strings are
// length-prefixed with a 16-bit length.
//
// # Message types
//
// The function IDs implemented here cover the service discovery exchange:
//   - ServiceRequest / ServiceReply: find service URLs by type and scope
//   - ServiceRegistration / ServiceDeregistration / ServiceAck: maintain
//     registrations with a directory or service agent
//   - DAAdvert / SAAdvert: directory and service agent advertisements
//
// Scope-list fields travel as escaped comma-separated strings and are
// decoded into scope.Set values (see the scope package).
//
// # Authentication blocks
//
// Authentication blocks are parsed and skipped on decode, and never emitted
// on encode; authorization is out of scope for this implementation.
package wire
