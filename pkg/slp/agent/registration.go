package agent

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/openlighting/ola-go/pkg/slp/scope"
	"github.com/openlighting/ola-go/pkg/slp/wire"
)

// Registration errors.
var (
	ErrNotFound            = errors.New("registration not found")
	ErrInvalidRegistration = errors.New("invalid registration")
	ErrScopeMismatch       = errors.New("scopes do not match registration")
)

// MaxLifetime is the largest lifetime the 16-bit wire field can carry.
const MaxLifetime = 0xFFFF * time.Second

// Registration is one registered service URL.
type Registration struct {
	// URL is the registered service URL (unique store key).
	URL string

	// ServiceType is the service type, e.g. "service:lighting-control".
	ServiceType string

	// Scopes holds the scopes the URL is registered in.
	Scopes scope.Set

	// Attributes is the escaped attribute list.
	Attributes string

	// ExpiresAt is when the registration lapses.
	ExpiresAt time.Time
}

// Expired reports whether the registration has lapsed at now.
func (r *Registration) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// remainingLifetime returns the lifetime left, clamped to the wire range.
func (r *Registration) remainingLifetime(now time.Time) uint16 {
	left := r.ExpiresAt.Sub(now)
	if left <= 0 {
		return 0
	}
	if left > MaxLifetime {
		return 0xFFFF
	}
	return uint16(left / time.Second)
}

// RegistrationStore holds the registrations a service or directory agent
// answers for. Safe for concurrent use.
type RegistrationStore struct {
	mu   sync.RWMutex
	regs map[string]*Registration
	now  func() time.Time
}

// NewRegistrationStore creates an empty store.
func NewRegistrationStore() *RegistrationStore {
	return &RegistrationStore{
		regs: make(map[string]*Registration),
		now:  time.Now,
	}
}

// Register inserts or refreshes a registration. With fresh set the new
// registration replaces any existing one for the URL; otherwise scopes are
// merged into the existing registration and the lifetime restarts.
func (s *RegistrationStore) Register(msg *wire.ServiceRegistration, fresh bool) error {
	if msg.Entry.URL == "" || msg.ServiceType == "" || msg.Entry.Lifetime == 0 {
		return ErrInvalidRegistration
	}
	if msg.Scopes.Empty() {
		return ErrInvalidRegistration
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	expires := now.Add(time.Duration(msg.Entry.Lifetime) * time.Second)

	existing, ok := s.regs[msg.Entry.URL]
	if !ok || fresh || existing.Expired(now) {
		s.regs[msg.Entry.URL] = &Registration{
			URL:         msg.Entry.URL,
			ServiceType: msg.ServiceType,
			Scopes:      msg.Scopes.Clone(),
			Attributes:  msg.Attributes,
			ExpiresAt:   expires,
		}
		return nil
	}

	// Incremental update: scopes accumulate, lifetime restarts.
	if existing.ServiceType != msg.ServiceType {
		return ErrInvalidRegistration
	}
	existing.Scopes.Update(msg.Scopes)
	if msg.Attributes != "" {
		existing.Attributes = msg.Attributes
	}
	existing.ExpiresAt = expires
	return nil
}

// Deregister withdraws a URL from the given scopes. Scopes present in the
// registration are removed; when none remain the registration is deleted.
// Returns ErrScopeMismatch if the scopes touch none of the registration's.
func (s *RegistrationStore) Deregister(url string, scopes scope.Set) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, ok := s.regs[url]
	if !ok || reg.Expired(s.now()) {
		return ErrNotFound
	}

	removed := reg.Scopes.DifferenceUpdate(scopes)
	if removed.Empty() {
		return ErrScopeMismatch
	}
	if reg.Scopes.Empty() {
		delete(s.regs, url)
	}
	return nil
}

// Find returns the live registrations of the given service type whose
// scopes intersect the requested set, as wire URL entries with their
// remaining lifetimes. Results are ordered by URL.
func (s *RegistrationStore) Find(serviceType string, scopes scope.Set) []wire.URLEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	var entries []wire.URLEntry
	for _, reg := range s.regs {
		if reg.ServiceType != serviceType || reg.Expired(now) {
			continue
		}
		if !reg.Scopes.Intersects(scopes) {
			continue
		}
		entries = append(entries, wire.URLEntry{
			Lifetime: reg.remainingLifetime(now),
			URL:      reg.URL,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].URL < entries[j].URL })
	return entries
}

// Get returns a copy of the registration for url.
func (s *RegistrationStore) Get(url string) (Registration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reg, ok := s.regs[url]
	if !ok || reg.Expired(s.now()) {
		return Registration{}, false
	}
	cp := *reg
	cp.Scopes = reg.Scopes.Clone()
	return cp, true
}

// Len returns the number of live registrations.
func (s *RegistrationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	n := 0
	for _, reg := range s.regs {
		if !reg.Expired(now) {
			n++
		}
	}
	return n
}

// Reap removes expired registrations and returns how many were dropped.
func (s *RegistrationStore) Reap() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for url, reg := range s.regs {
		if reg.Expired(now) {
			delete(s.regs, url)
			n++
		}
	}
	return n
}

// Snapshot returns copies of all live registrations, ordered by URL.
// Used by the daemon to persist state across restarts.
func (s *RegistrationStore) Snapshot() []Registration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	var regs []Registration
	for _, reg := range s.regs {
		if reg.Expired(now) {
			continue
		}
		cp := *reg
		cp.Scopes = reg.Scopes.Clone()
		regs = append(regs, cp)
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].URL < regs[j].URL })
	return regs
}

// Restore inserts a previously persisted registration, keeping its original
// expiry.
func (s *RegistrationStore) Restore(reg Registration) {
	if reg.URL == "" || reg.Expired(s.now()) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := reg
	cp.Scopes = reg.Scopes.Clone()
	s.regs[reg.URL] = &cp
}
