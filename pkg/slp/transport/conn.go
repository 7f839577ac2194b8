package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"golang.org/x/net/ipv4"
)

const (
	// DefaultPort is the IANA-assigned SLP port.
	DefaultPort = 427

	// MulticastGroup is the SLP administrative multicast group.
	MulticastGroup = "239.255.255.253"

	// MaxDatagramSize bounds outgoing datagrams; replies that would
	// exceed it must set the OVERFLOW flag and truncate.
	MaxDatagramSize = 1400

	// readBufferSize is the receive buffer handed to each read.
	readBufferSize = 65535
)

// ErrClosed is returned by Serve after Close.
var ErrClosed = errors.New("transport closed")

// Handler processes one received datagram. The packet slice is only valid
// for the duration of the call.
type Handler func(pkt []byte, src *net.UDPAddr)

// Config configures a Conn.
type Config struct {
	// Port is the UDP port to bind. Zero binds an ephemeral port, which
	// suits user agents that only receive unicast replies.
	Port int

	// Interface restricts multicast to one interface by name. Empty
	// joins the group on the system default interface.
	Interface string

	// DisableMulticast skips joining the SLP multicast group. Unicast
	// exchanges still work; useful for pure user-agent sockets.
	DisableMulticast bool
}

// Conn is a UDP socket joined to the SLP multicast group.
type Conn struct {
	udp   *net.UDPConn
	pc    *ipv4.PacketConn
	group *net.UDPAddr
}

// Listen binds the SLP socket and joins the multicast group.
func Listen(cfg Config) (*Conn, error) {
	udp, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: cfg.Port})
	if err != nil {
		return nil, fmt.Errorf("bind udp port %d: %w", cfg.Port, err)
	}

	// Requests are always multicast to the well-known port, whatever the
	// local bind port is. Replies come back unicast to the local port.
	c := &Conn{
		udp:   udp,
		group: &net.UDPAddr{IP: net.ParseIP(MulticastGroup), Port: DefaultPort},
	}

	if !cfg.DisableMulticast {
		var iface *net.Interface
		if cfg.Interface != "" {
			iface, err = net.InterfaceByName(cfg.Interface)
			if err != nil {
				udp.Close()
				return nil, fmt.Errorf("interface %q: %w", cfg.Interface, err)
			}
		}

		pc := ipv4.NewPacketConn(udp)
		if err := pc.JoinGroup(iface, &net.UDPAddr{IP: c.group.IP}); err != nil {
			udp.Close()
			return nil, fmt.Errorf("join group %s: %w", MulticastGroup, err)
		}
		// Loopback lets agents on the same host find each other.
		_ = pc.SetMulticastLoopback(true)
		c.pc = pc
	}

	return c, nil
}

// LocalAddr returns the bound address.
func (c *Conn) LocalAddr() *net.UDPAddr {
	return c.udp.LocalAddr().(*net.UDPAddr)
}

// Serve reads datagrams and hands them to handler until ctx is canceled or
// the connection is closed.
func (c *Conn) Serve(ctx context.Context, handler Handler) error {
	go func() {
		<-ctx.Done()
		c.udp.Close()
	}()

	buf := make([]byte, readBufferSize)
	for {
		n, src, err := c.udp.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, net.ErrClosed) {
				return ErrClosed
			}
			return fmt.Errorf("read: %w", err)
		}
		handler(buf[:n], src)
	}
}

// SetReadDeadline bounds blocking ReadFrom calls.
func (c *Conn) SetReadDeadline(t time.Time) error {
	return c.udp.SetReadDeadline(t)
}

// ReadFrom reads one datagram into buf. Used by request/response callers
// that collect replies themselves instead of running Serve.
func (c *Conn) ReadFrom(buf []byte) (int, *net.UDPAddr, error) {
	return c.udp.ReadFromUDP(buf)
}

// WriteTo sends a datagram to a unicast destination.
func (c *Conn) WriteTo(pkt []byte, dst *net.UDPAddr) error {
	if len(pkt) > MaxDatagramSize {
		return fmt.Errorf("datagram of %d bytes exceeds %d", len(pkt), MaxDatagramSize)
	}
	_, err := c.udp.WriteToUDP(pkt, dst)
	return err
}

// Multicast sends a datagram to the SLP multicast group.
func (c *Conn) Multicast(pkt []byte) error {
	return c.WriteTo(pkt, c.group)
}

// Close closes the socket. Serve returns ErrClosed.
func (c *Conn) Close() error {
	if c.pc != nil {
		_ = c.pc.LeaveGroup(nil, &net.UDPAddr{IP: c.group.IP})
	}
	return c.udp.Close()
}
