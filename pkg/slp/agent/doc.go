// Package agent implements the SLP discovery engine roles.
//
// A ServiceAgent answers service requests for the registrations it holds,
// accepting only messages whose scope list intersects the locally configured
// scope set. A UserAgent issues requests and collects replies. The DACache
// tracks directory agents learned from DAAdvert announcements so outbound
// registrations can be forwarded to a directory serving the right scopes.
//
// Message handling is split from socket handling: ServiceAgent.HandleDatagram
// maps one received packet to at most one reply packet and can be exercised
// without any network.
package agent
