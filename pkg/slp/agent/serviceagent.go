package agent

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/openlighting/ola-go/pkg/log"
	"github.com/openlighting/ola-go/pkg/slp/scope"
	"github.com/openlighting/ola-go/pkg/slp/transport"
	"github.com/openlighting/ola-go/pkg/slp/wire"
)

// Well-known service types of the protocol itself.
const (
	ServiceTypeDirectoryAgent = "service:directory-agent"
	ServiceTypeServiceAgent   = "service:service-agent"
)

// reapInterval is how often the registration store drops expired entries.
const reapInterval = 30 * time.Second

// ServiceAgentConfig configures a ServiceAgent.
type ServiceAgentConfig struct {
	// Scopes is the agent's configured scope set (Default when empty).
	Scopes scope.Set

	// URL is the agent's own service URL, announced in SAAdvert replies.
	URL string

	// Addresses lists the agent's own addresses. Requests whose
	// previous-responder list contains one of them are not answered
	// again.
	Addresses []string

	// Logger receives protocol events (NoopLogger when nil).
	Logger log.Logger
}

// ServiceAgent answers SLP requests for its registration store. The scope
// gate is the core of the protocol: a request is served only when its scope
// list intersects the agent's configured scopes.
type ServiceAgent struct {
	scopes scope.Set
	url    string
	addrs  map[string]struct{}
	store  *RegistrationStore
	das    *DACache
	logger log.Logger
}

// NewServiceAgent creates a service agent with an empty registration store.
func NewServiceAgent(cfg ServiceAgentConfig) *ServiceAgent {
	scopes := cfg.Scopes
	if scopes.Empty() {
		scopes = scope.Default()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NoopLogger{}
	}
	addrs := make(map[string]struct{}, len(cfg.Addresses))
	for _, a := range cfg.Addresses {
		addrs[a] = struct{}{}
	}
	return &ServiceAgent{
		scopes: scopes,
		url:    cfg.URL,
		addrs:  addrs,
		store:  NewRegistrationStore(),
		das:    NewDACache(),
		logger: logger,
	}
}

// Scopes returns the agent's configured scope set.
func (a *ServiceAgent) Scopes() scope.Set { return a.scopes.Clone() }

// Registrations returns the agent's registration store.
func (a *ServiceAgent) Registrations() *RegistrationStore { return a.store }

// DirectoryAgents returns the agent's DA cache.
func (a *ServiceAgent) DirectoryAgents() *DACache { return a.das }

// HandleDatagram processes one received packet and returns the reply packet
// to send back, or nil when the message warrants no reply.
func (a *ServiceAgent) HandleDatagram(pkt []byte, src *net.UDPAddr) []byte {
	h, msg, err := wire.Unmarshal(pkt)
	if err != nil {
		a.logger.Log(log.Event{
			Timestamp:  time.Now(),
			Direction:  log.DirectionIn,
			Category:   log.CategoryDecodeError,
			RemoteAddr: addrString(src),
			Size:       len(pkt),
			Error:      err.Error(),
		})
		return nil
	}
	a.logEvent(log.DirectionIn, log.CategoryMessage, h, msg, src, len(pkt))

	switch m := msg.(type) {
	case *wire.ServiceRequest:
		return a.handleRequest(h, m, src)
	case *wire.ServiceRegistration:
		return a.reply(h, src, &wire.ServiceAck{Status: a.register(h, m)})
	case *wire.ServiceDeregistration:
		return a.reply(h, src, &wire.ServiceAck{Status: a.deregister(m)})
	case *wire.DAAdvert:
		a.das.Observe(m)
		return nil
	default:
		// Replies, acks and SA adverts addressed to us need no answer.
		return nil
	}
}

func (a *ServiceAgent) handleRequest(h wire.Header, req *wire.ServiceRequest, src *net.UDPAddr) []byte {
	// Stay silent if we already answered an earlier transmission.
	for _, responder := range req.PreviousResponders {
		if _, ok := a.addrs[responder]; ok {
			return nil
		}
	}

	// The scope gate. Multicast requests that miss are dropped silently;
	// unicast requests get an explicit error so the requester can adapt.
	reqScopes := req.Scopes
	if reqScopes.Empty() {
		reqScopes = scope.Default()
	}
	if !a.scopes.Intersects(reqScopes) {
		a.logEvent(log.DirectionIn, log.CategoryDropped, h, req, src, 0)
		if h.Multicast() {
			return nil
		}
		return a.reply(h, src, &wire.ServiceReply{Status: wire.StatusScopeNotSupported})
	}

	switch req.ServiceType {
	case ServiceTypeDirectoryAgent:
		// We are not a directory agent; multicast DA discovery is
		// answered only by DAs.
		return nil
	case ServiceTypeServiceAgent:
		return a.reply(h, src, &wire.SAAdvert{URL: a.url, Scopes: a.scopes})
	}

	entries := a.store.Find(req.ServiceType, reqScopes)
	if len(entries) == 0 && h.Multicast() {
		// Multicast requests with no matches are dropped so the wire
		// stays quiet.
		return nil
	}
	return a.reply(h, src, &wire.ServiceReply{Status: wire.StatusOK, URLEntries: entries})
}

func (a *ServiceAgent) register(h wire.Header, m *wire.ServiceRegistration) wire.StatusCode {
	// Registrations outside our configured scopes are refused.
	if !a.scopes.Intersects(m.Scopes) {
		return wire.StatusScopeNotSupported
	}
	if err := a.store.Register(m, h.Fresh()); err != nil {
		return wire.StatusInvalidRegistration
	}
	return wire.StatusOK
}

func (a *ServiceAgent) deregister(m *wire.ServiceDeregistration) wire.StatusCode {
	switch err := a.store.Deregister(m.Entry.URL, m.Scopes); {
	case err == nil:
		return wire.StatusOK
	case errors.Is(err, ErrScopeMismatch):
		return wire.StatusScopeNotSupported
	default:
		return wire.StatusInvalidRegistration
	}
}

// reply marshals a response reusing the request's XID and language.
func (a *ServiceAgent) reply(h wire.Header, src *net.UDPAddr, msg wire.Message) []byte {
	pkt, err := wire.Marshal(wire.Header{XID: h.XID, Language: h.Language}, msg)
	if err != nil {
		a.logger.Log(log.Event{
			Timestamp:  time.Now(),
			Direction:  log.DirectionOut,
			Category:   log.CategoryDecodeError,
			RemoteAddr: addrString(src),
			Error:      err.Error(),
		})
		return nil
	}
	a.logEvent(log.DirectionOut, log.CategoryMessage, h, msg, src, len(pkt))
	return pkt
}

// Serve runs the agent on conn until ctx is canceled, reaping expired
// registrations in the background.
func (a *ServiceAgent) Serve(ctx context.Context, conn *transport.Conn) error {
	go func() {
		ticker := time.NewTicker(reapInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.store.Reap()
				a.das.ExpireStale(DefaultDAStaleAge)
			}
		}
	}()

	return conn.Serve(ctx, func(pkt []byte, src *net.UDPAddr) {
		if resp := a.HandleDatagram(pkt, src); resp != nil {
			_ = conn.WriteTo(resp, src)
		}
	})
}

func (a *ServiceAgent) logEvent(dir log.Direction, cat log.Category, h wire.Header, msg wire.Message, src *net.UDPAddr, size int) {
	event := log.Event{
		Timestamp:  time.Now(),
		Direction:  dir,
		Category:   cat,
		RemoteAddr: addrString(src),
		Function:   msg.Function(),
		XID:        h.XID,
		Size:       size,
	}
	switch m := msg.(type) {
	case *wire.ServiceRequest:
		event.Scopes = m.Scopes.Escaped()
	case *wire.ServiceRegistration:
		event.Scopes = m.Scopes.Escaped()
	case *wire.ServiceDeregistration:
		event.Scopes = m.Scopes.Escaped()
	case *wire.DAAdvert:
		event.Scopes = m.Scopes.Escaped()
	case *wire.SAAdvert:
		event.Scopes = m.Scopes.Escaped()
	}
	a.logger.Log(event)
}

func addrString(a *net.UDPAddr) string {
	if a == nil {
		return ""
	}
	return a.String()
}
