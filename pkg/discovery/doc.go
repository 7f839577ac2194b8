// Package discovery advertises and browses OLA daemons over mDNS.
//
// Each daemon registers an _ola._tcp service whose TXT records carry the
// daemon's instance ID, its SLP scope list and its universe count. Clients
// browse the same service type to find daemons on the local network without
// knowing their addresses, complementing SLP unicast/multicast discovery.
package discovery
