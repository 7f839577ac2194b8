package discovery

import (
	"errors"
	"time"

	"github.com/openlighting/ola-go/pkg/slp/scope"
)

const (
	// ServiceTypeDaemon is the mDNS service type for OLA daemons.
	ServiceTypeDaemon = "_ola._tcp"

	// Domain is the mDNS domain.
	Domain = "local."

	// DefaultTTL is the DNS record TTL for advertisements.
	DefaultTTL = 120 * time.Second

	// BrowseTimeout is the default timeout for browse operations.
	BrowseTimeout = 10 * time.Second

	// MaxInstanceNameLen is the DNS-SD instance name limit.
	MaxInstanceNameLen = 63
)

// TXT record keys for the daemon service.
const (
	TXTKeyInstanceID = "id"
	TXTKeyScopes     = "scopes"
	TXTKeyVersion    = "ver"
	TXTKeyUniverses  = "universes"
)

var (
	// ErrMissingRequired indicates a required TXT record is absent.
	ErrMissingRequired = errors.New("missing required TXT record")

	// ErrInvalidTXTRecord indicates a TXT record that failed to parse.
	ErrInvalidTXTRecord = errors.New("invalid TXT record")

	// ErrInstanceNameTooLong indicates an instance name over the DNS-SD limit.
	ErrInstanceNameTooLong = errors.New("instance name too long")

	// ErrNotFound indicates no matching service was discovered.
	ErrNotFound = errors.New("service not found")
)

// DaemonInfo describes a daemon for advertisement.
type DaemonInfo struct {
	// InstanceName is the DNS-SD instance name, e.g. "olad on lightdesk".
	InstanceName string

	// InstanceID uniquely identifies this daemon instance across restarts
	// of the advertisement.
	InstanceID string

	// Scopes is the daemon's SLP scope list.
	Scopes scope.Set

	// Version is the daemon software version.
	Version string

	// Universes is the number of active lighting universes.
	Universes int

	// Port is the daemon's SLP listen port.
	Port uint16
}

// DaemonService is a daemon discovered on the network.
type DaemonService struct {
	InstanceName string
	Host         string
	Port         uint16
	Addresses    []string

	InstanceID string
	Scopes     scope.Set
	Version    string
	Universes  int
}
