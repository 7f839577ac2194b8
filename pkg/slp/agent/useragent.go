package agent

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/openlighting/ola-go/pkg/log"
	"github.com/openlighting/ola-go/pkg/slp/scope"
	"github.com/openlighting/ola-go/pkg/slp/transport"
	"github.com/openlighting/ola-go/pkg/slp/wire"
)

// ErrTimeout indicates that no reply arrived within the request deadline.
var ErrTimeout = errors.New("request timed out")

// DefaultWaitTime bounds a request when the caller's context carries no
// deadline.
const DefaultWaitTime = 3 * time.Second

// UserAgent issues SLP requests and collects the replies.
type UserAgent struct {
	conn   *transport.Conn
	scopes scope.Set
	logger log.Logger
	xid    atomic.Uint32
}

// NewUserAgent creates a user agent on conn, requesting within the given
// scopes (Default when empty).
func NewUserAgent(conn *transport.Conn, scopes scope.Set, logger log.Logger) *UserAgent {
	if scopes.Empty() {
		scopes = scope.Default()
	}
	if logger == nil {
		logger = log.NoopLogger{}
	}
	ua := &UserAgent{conn: conn, scopes: scopes, logger: logger}
	// Random starting XID so restarts do not collide with cached state.
	ua.xid.Store(rand.Uint32N(0xFFFF))
	return ua
}

func (u *UserAgent) nextXID() uint16 {
	return uint16(u.xid.Add(1))
}

// Find multicasts a service request and collects URL entries until the
// context deadline passes. Duplicate URLs from retransmitting responders
// collapse into one entry.
func (u *UserAgent) Find(ctx context.Context, serviceType string) ([]wire.URLEntry, error) {
	ctx, cancel := withDefaultDeadline(ctx)
	defer cancel()

	xid := u.nextXID()
	req := &wire.ServiceRequest{ServiceType: serviceType, Scopes: u.scopes}
	pkt, err := wire.Marshal(wire.Header{XID: xid, Flags: wire.FlagMulticast}, req)
	if err != nil {
		return nil, err
	}
	if err := u.conn.Multicast(pkt); err != nil {
		return nil, fmt.Errorf("multicast request: %w", err)
	}
	u.logOut(req.Function(), xid, req.Scopes, len(pkt))

	seen := make(map[string]struct{})
	var entries []wire.URLEntry
	err = u.collect(ctx, xid, func(msg wire.Message) bool {
		reply, ok := msg.(*wire.ServiceReply)
		if !ok || reply.Status != wire.StatusOK {
			return false
		}
		for _, e := range reply.URLEntries {
			if _, dup := seen[e.URL]; dup {
				continue
			}
			seen[e.URL] = struct{}{}
			entries = append(entries, e)
		}
		return false // keep collecting until the deadline
	})
	if err != nil && !errors.Is(err, ErrTimeout) {
		return entries, err
	}
	return entries, nil
}

// FindAt unicasts a service request to one agent, typically a directory
// agent selected from the DA cache, and returns its URL entries.
func (u *UserAgent) FindAt(ctx context.Context, serviceType string, dst *net.UDPAddr) ([]wire.URLEntry, error) {
	ctx, cancel := withDefaultDeadline(ctx)
	defer cancel()

	xid := u.nextXID()
	req := &wire.ServiceRequest{ServiceType: serviceType, Scopes: u.scopes}
	pkt, err := wire.Marshal(wire.Header{XID: xid}, req)
	if err != nil {
		return nil, err
	}
	if err := u.conn.WriteTo(pkt, dst); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	u.logOut(req.Function(), xid, req.Scopes, len(pkt))

	var entries []wire.URLEntry
	var status wire.StatusCode
	err = u.collect(ctx, xid, func(msg wire.Message) bool {
		reply, ok := msg.(*wire.ServiceReply)
		if !ok {
			return false
		}
		status = reply.Status
		entries = reply.URLEntries
		return true
	})
	if err != nil {
		return nil, err
	}
	if serr := status.Err(); serr != nil {
		return nil, serr
	}
	return entries, nil
}

// DiscoverDirectoryAgents multicasts a DA discovery request and returns the
// directory agents that answered before the deadline.
func (u *UserAgent) DiscoverDirectoryAgents(ctx context.Context) ([]DirectoryAgent, error) {
	ctx, cancel := withDefaultDeadline(ctx)
	defer cancel()

	xid := u.nextXID()
	req := &wire.ServiceRequest{ServiceType: ServiceTypeDirectoryAgent, Scopes: u.scopes}
	pkt, err := wire.Marshal(wire.Header{XID: xid, Flags: wire.FlagMulticast}, req)
	if err != nil {
		return nil, err
	}
	if err := u.conn.Multicast(pkt); err != nil {
		return nil, fmt.Errorf("multicast DA discovery: %w", err)
	}
	u.logOut(req.Function(), xid, req.Scopes, len(pkt))

	cache := NewDACache()
	err = u.collect(ctx, xid, func(msg wire.Message) bool {
		if advert, ok := msg.(*wire.DAAdvert); ok && advert.Status == wire.StatusOK {
			cache.Observe(advert)
		}
		return false
	})
	if err != nil && !errors.Is(err, ErrTimeout) {
		return cache.List(), err
	}
	return cache.List(), nil
}

// Register sends a fresh registration to dst and waits for the ack.
func (u *UserAgent) Register(ctx context.Context, reg *wire.ServiceRegistration, dst *net.UDPAddr) error {
	ctx, cancel := withDefaultDeadline(ctx)
	defer cancel()

	xid := u.nextXID()
	pkt, err := wire.Marshal(wire.Header{XID: xid, Flags: wire.FlagFresh}, reg)
	if err != nil {
		return err
	}
	if err := u.conn.WriteTo(pkt, dst); err != nil {
		return fmt.Errorf("send registration: %w", err)
	}
	u.logOut(reg.Function(), xid, reg.Scopes, len(pkt))
	return u.awaitAck(ctx, xid)
}

// Deregister withdraws a registration at dst and waits for the ack.
func (u *UserAgent) Deregister(ctx context.Context, dereg *wire.ServiceDeregistration, dst *net.UDPAddr) error {
	ctx, cancel := withDefaultDeadline(ctx)
	defer cancel()

	xid := u.nextXID()
	pkt, err := wire.Marshal(wire.Header{XID: xid}, dereg)
	if err != nil {
		return err
	}
	if err := u.conn.WriteTo(pkt, dst); err != nil {
		return fmt.Errorf("send deregistration: %w", err)
	}
	u.logOut(dereg.Function(), xid, dereg.Scopes, len(pkt))
	return u.awaitAck(ctx, xid)
}

// awaitAck waits for a ServiceAck with the given XID and converts its
// status to an error.
func (u *UserAgent) awaitAck(ctx context.Context, xid uint16) error {
	var status *wire.StatusCode
	err := u.collect(ctx, xid, func(msg wire.Message) bool {
		if ack, ok := msg.(*wire.ServiceAck); ok {
			status = &ack.Status
			return true
		}
		return false
	})
	if status != nil {
		return status.Err()
	}
	if err != nil {
		return err
	}
	return ErrTimeout
}

// collect reads replies matching xid until done returns true, the deadline
// passes (ErrTimeout) or ctx is canceled.
func (u *UserAgent) collect(ctx context.Context, xid uint16, done func(wire.Message) bool) error {
	deadline, _ := ctx.Deadline()
	buf := make([]byte, 65535)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := u.conn.SetReadDeadline(deadline); err != nil {
			return err
		}
		n, src, err := u.conn.ReadFrom(buf)
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				return ErrTimeout
			}
			return err
		}

		h, msg, err := wire.Unmarshal(buf[:n])
		if err != nil {
			u.logger.Log(log.Event{
				Timestamp:  time.Now(),
				Direction:  log.DirectionIn,
				Category:   log.CategoryDecodeError,
				RemoteAddr: addrString(src),
				Size:       n,
				Error:      err.Error(),
			})
			continue
		}
		if h.XID != xid {
			continue
		}
		u.logger.Log(log.Event{
			Timestamp:  time.Now(),
			Direction:  log.DirectionIn,
			Category:   log.CategoryMessage,
			RemoteAddr: addrString(src),
			Function:   msg.Function(),
			XID:        h.XID,
			Size:       n,
		})
		if done(msg) {
			return nil
		}
	}
}

func (u *UserAgent) logOut(fn wire.FunctionID, xid uint16, scopes scope.Set, size int) {
	u.logger.Log(log.Event{
		Timestamp:  time.Now(),
		ExchangeID: log.NewExchangeID(),
		Direction:  log.DirectionOut,
		Category:   log.CategoryMessage,
		Function:   fn,
		XID:        xid,
		Scopes:     scopes.Escaped(),
		Size:       size,
	})
}

// withDefaultDeadline applies DefaultWaitTime when ctx has no deadline.
func withDefaultDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, DefaultWaitTime)
}
