// Package transport provides the UDP plumbing for SLP agents.
//
// SLP uses a single UDP socket for unicast exchanges and the administrative
// multicast group 239.255.255.253 on port 427 for discovery. Conn wraps both
// behind one read loop; handlers receive raw datagrams and decide what to
// send back.
//
// Deployments without root typically move the port above 1024; the port is
// a Config field rather than a constant for that reason.
package transport
