package universe

import (
	"fmt"
	"sync"
)

// MergeMode selects how a universe combines values from multiple sources.
type MergeMode uint8

const (
	// MergeHTP keeps the highest value per slot.
	MergeHTP MergeMode = iota
	// MergeLTP keeps the most recently written value per slot.
	MergeLTP
)

func (m MergeMode) String() string {
	switch m {
	case MergeHTP:
		return "HTP"
	case MergeLTP:
		return "LTP"
	default:
		return fmt.Sprintf("MergeMode(%d)", uint8(m))
	}
}

// ParseMergeMode reads a merge mode from its wire/preference form.
// Unknown values fall back to HTP, matching the default for new universes.
func ParseMergeMode(s string) MergeMode {
	if s == "LTP" {
		return MergeLTP
	}
	return MergeHTP
}

// Universe is one DMX512 address space. Ports and clients attach to it;
// while at least one is attached the universe counts as active and is kept
// in the Store.
type Universe struct {
	id uint32

	mu            sync.Mutex
	name          string
	mergeMode     MergeMode
	ports         int
	sourceClients int
	sinkClients   int
}

// New returns an inactive universe with the default name and HTP merging.
func New(id uint32) *Universe {
	return &Universe{
		id:   id,
		name: fmt.Sprintf("Universe %d", id),
	}
}

// ID returns the universe ID.
func (u *Universe) ID() uint32 { return u.id }

// Name returns the human-readable universe name.
func (u *Universe) Name() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.name
}

// SetName sets the human-readable universe name.
func (u *Universe) SetName(name string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.name = name
}

// MergeMode returns the current merge mode.
func (u *Universe) MergeMode() MergeMode {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.mergeMode
}

// SetMergeMode sets the merge mode.
func (u *Universe) SetMergeMode(m MergeMode) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.mergeMode = m
}

// AddPort records a port binding to this universe.
func (u *Universe) AddPort() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.ports++
}

// RemovePort removes a port binding.
func (u *Universe) RemovePort() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.ports > 0 {
		u.ports--
	}
}

// AddSourceClient records a client that writes DMX data into this universe.
func (u *Universe) AddSourceClient() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.sourceClients++
}

// RemoveSourceClient removes a source client.
func (u *Universe) RemoveSourceClient() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.sourceClients > 0 {
		u.sourceClients--
	}
}

// AddSinkClient records a client that reads DMX data from this universe.
func (u *Universe) AddSinkClient() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.sinkClients++
}

// RemoveSinkClient removes a sink client.
func (u *Universe) RemoveSinkClient() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.sinkClients > 0 {
		u.sinkClients--
	}
}

// Active reports whether any port or client is attached.
func (u *Universe) Active() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.ports > 0 || u.sourceClients > 0 || u.sinkClients > 0
}
