package wire

import (
	"fmt"
	"strings"

	"github.com/openlighting/ola-go/pkg/slp/scope"
)

// Message is implemented by every SLP message body.
type Message interface {
	// Function returns the function ID this body belongs to.
	Function() FunctionID

	encode(w *writer)
	decode(r *reader) error
}

// URLEntry is a service URL with its registration lifetime, as carried in
// replies, registrations and deregistrations.
type URLEntry struct {
	// Lifetime is the remaining registration lifetime in seconds.
	Lifetime uint16

	// URL is the service URL, e.g. "service:printer:lpr://host:515".
	URL string
}

func (e URLEntry) encode(w *writer) {
	w.u8(0) // reserved
	w.u16(e.Lifetime)
	w.str(e.URL)
	w.u8(0) // no auth blocks
}

func (e *URLEntry) decode(r *reader) {
	r.u8() // reserved
	e.Lifetime = r.u16()
	e.URL = r.str()
	skipAuthBlocks(r)
}

// skipAuthBlocks consumes authentication blocks without interpreting them.
// Each block carries its own 16-bit length covering the whole block.
func skipAuthBlocks(r *reader) {
	count := int(r.u8())
	for range count {
		r.u16() // block structure descriptor
		length := int(r.u16())
		if length < 4 {
			if r.err == nil {
				r.err = fmt.Errorf("%w: auth block length %d", ErrLength, length)
			}
			return
		}
		r.skip(length - 4)
	}
}

// ServiceRequest asks for service URLs of a given type within a scope set.
type ServiceRequest struct {
	// PreviousResponders lists addresses that already answered this
	// request; they must stay silent on retransmission.
	PreviousResponders []string

	// ServiceType is the requested service type, e.g. "service:printer".
	ServiceType string

	// Scopes is the requester's scope set. A responder answers only if
	// its own scopes intersect.
	Scopes scope.Set

	// Predicate is an optional LDAPv3 attribute filter.
	Predicate string

	// SPI is the security parameter index (unused, kept for round-trip).
	SPI string
}

// Function returns FnServiceRequest.
func (m *ServiceRequest) Function() FunctionID { return FnServiceRequest }

func (m *ServiceRequest) encode(w *writer) {
	w.str(strings.Join(m.PreviousResponders, ","))
	w.str(m.ServiceType)
	w.str(m.Scopes.Escaped())
	w.str(m.Predicate)
	w.str(m.SPI)
}

func (m *ServiceRequest) decode(r *reader) error {
	prList := r.str()
	m.ServiceType = r.str()
	scopeList := r.str()
	m.Predicate = r.str()
	m.SPI = r.str()
	if r.err != nil {
		return r.err
	}
	if prList != "" {
		m.PreviousResponders = strings.Split(prList, ",")
	}
	var err error
	m.Scopes, err = scope.Parse(scopeList)
	if err != nil {
		return fmt.Errorf("service request scopes: %w", err)
	}
	return nil
}

// ServiceReply answers a ServiceRequest with the matching URL entries.
type ServiceReply struct {
	Status     StatusCode
	URLEntries []URLEntry
}

// Function returns FnServiceReply.
func (m *ServiceReply) Function() FunctionID { return FnServiceReply }

func (m *ServiceReply) encode(w *writer) {
	w.u16(uint16(m.Status))
	w.u16(uint16(len(m.URLEntries)))
	for _, e := range m.URLEntries {
		e.encode(w)
	}
}

func (m *ServiceReply) decode(r *reader) error {
	m.Status = StatusCode(r.u16())
	count := int(r.u16())
	for range count {
		var e URLEntry
		e.decode(r)
		if r.err != nil {
			return r.err
		}
		m.URLEntries = append(m.URLEntries, e)
	}
	return r.err
}

// ServiceRegistration registers a service URL within a scope set. The FRESH
// header flag distinguishes a replacing registration from an incremental
// one.
type ServiceRegistration struct {
	Entry       URLEntry
	ServiceType string
	Scopes      scope.Set

	// Attributes is the escaped attribute list, e.g. "(universes=1,2)".
	Attributes string
}

// Function returns FnServiceRegistration.
func (m *ServiceRegistration) Function() FunctionID { return FnServiceRegistration }

func (m *ServiceRegistration) encode(w *writer) {
	m.Entry.encode(w)
	w.str(m.ServiceType)
	w.str(m.Scopes.Escaped())
	w.str(m.Attributes)
	w.u8(0) // no attr auth blocks
}

func (m *ServiceRegistration) decode(r *reader) error {
	m.Entry.decode(r)
	m.ServiceType = r.str()
	scopeList := r.str()
	m.Attributes = r.str()
	skipAuthBlocks(r)
	if r.err != nil {
		return r.err
	}
	var err error
	m.Scopes, err = scope.Parse(scopeList)
	if err != nil {
		return fmt.Errorf("service registration scopes: %w", err)
	}
	return nil
}

// ServiceDeregistration withdraws a registration from the named scopes.
type ServiceDeregistration struct {
	Scopes scope.Set
	Entry  URLEntry

	// Tags selects attributes to remove; empty deregisters the URL.
	Tags string
}

// Function returns FnServiceDeregistration.
func (m *ServiceDeregistration) Function() FunctionID { return FnServiceDeregistration }

func (m *ServiceDeregistration) encode(w *writer) {
	w.str(m.Scopes.Escaped())
	m.Entry.encode(w)
	w.str(m.Tags)
}

func (m *ServiceDeregistration) decode(r *reader) error {
	scopeList := r.str()
	m.Entry.decode(r)
	m.Tags = r.str()
	if r.err != nil {
		return r.err
	}
	var err error
	m.Scopes, err = scope.Parse(scopeList)
	if err != nil {
		return fmt.Errorf("service deregistration scopes: %w", err)
	}
	return nil
}

// ServiceAck acknowledges a registration or deregistration.
type ServiceAck struct {
	Status StatusCode
}

// Function returns FnServiceAck.
func (m *ServiceAck) Function() FunctionID { return FnServiceAck }

func (m *ServiceAck) encode(w *writer) {
	w.u16(uint16(m.Status))
}

func (m *ServiceAck) decode(r *reader) error {
	m.Status = StatusCode(r.u16())
	return r.err
}

// DAAdvert announces a directory agent and the scopes it serves. A boot
// timestamp of zero announces a shutdown.
type DAAdvert struct {
	Status        StatusCode
	BootTimestamp uint32
	URL           string
	Scopes        scope.Set
	Attributes    string
	SPIList       string
}

// Function returns FnDAAdvert.
func (m *DAAdvert) Function() FunctionID { return FnDAAdvert }

func (m *DAAdvert) encode(w *writer) {
	w.u16(uint16(m.Status))
	w.u32(m.BootTimestamp)
	w.str(m.URL)
	w.str(m.Scopes.Escaped())
	w.str(m.Attributes)
	w.str(m.SPIList)
	w.u8(0) // no auth blocks
}

func (m *DAAdvert) decode(r *reader) error {
	m.Status = StatusCode(r.u16())
	m.BootTimestamp = r.u32()
	m.URL = r.str()
	scopeList := r.str()
	m.Attributes = r.str()
	m.SPIList = r.str()
	skipAuthBlocks(r)
	if r.err != nil {
		return r.err
	}
	var err error
	m.Scopes, err = scope.Parse(scopeList)
	if err != nil {
		return fmt.Errorf("DA advert scopes: %w", err)
	}
	return nil
}

// SAAdvert announces a service agent and the scopes it serves.
type SAAdvert struct {
	URL        string
	Scopes     scope.Set
	Attributes string
}

// Function returns FnSAAdvert.
func (m *SAAdvert) Function() FunctionID { return FnSAAdvert }

func (m *SAAdvert) encode(w *writer) {
	w.str(m.URL)
	w.str(m.Scopes.Escaped())
	w.str(m.Attributes)
	w.u8(0) // no auth blocks
}

func (m *SAAdvert) decode(r *reader) error {
	m.URL = r.str()
	scopeList := r.str()
	m.Attributes = r.str()
	skipAuthBlocks(r)
	if r.err != nil {
		return r.err
	}
	var err error
	m.Scopes, err = scope.Parse(scopeList)
	if err != nil {
		return fmt.Errorf("SA advert scopes: %w", err)
	}
	return nil
}
