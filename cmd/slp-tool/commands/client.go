// Package commands implements the slp-tool subcommands.
package commands

import (
	"fmt"
	"net"
	"strings"

	"github.com/openlighting/ola-go/pkg/slp/agent"
	"github.com/openlighting/ola-go/pkg/slp/scope"
	"github.com/openlighting/ola-go/pkg/slp/transport"
)

// newUserAgent opens an ephemeral client socket. Multicast membership is not
// needed to send group requests, only to answer them.
func newUserAgent(scopes scope.Set) (*agent.UserAgent, func(), error) {
	conn, err := transport.Listen(transport.Config{DisableMulticast: true})
	if err != nil {
		return nil, nil, fmt.Errorf("opening client socket: %w", err)
	}
	return agent.NewUserAgent(conn, scopes, nil), func() { conn.Close() }, nil
}

// parseScopeList parses a user-provided scope list, falling back to the
// default scope when empty.
func parseScopeList(list string) (scope.Set, error) {
	set, err := scope.Parse(list)
	if err != nil {
		return scope.Set{}, fmt.Errorf("scope list %q: %w", list, err)
	}
	if set.Empty() {
		return scope.Default(), nil
	}
	return set, nil
}

// resolveTarget resolves an agent address. Empty host means multicast and
// returns nil.
func resolveTarget(host string, port int) (*net.UDPAddr, error) {
	if host == "" {
		return nil, nil
	}
	if port == 0 {
		port = transport.DefaultPort
	}
	addr, err := net.ResolveUDPAddr("udp4", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return nil, fmt.Errorf("resolving target %q: %w", host, err)
	}
	return addr, nil
}

// serviceTypeOf derives the abstract service type from a service URL, e.g.
// "service:lighting-control://host" yields "service:lighting-control".
func serviceTypeOf(url string) string {
	if idx := strings.Index(url, "://"); idx >= 0 {
		return url[:idx]
	}
	return url
}
