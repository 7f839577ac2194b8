package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// DaemonState contains the runtime state for the daemon.
type DaemonState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// DirectoryAgents contains the known directory agents.
	DirectoryAgents []DirectoryAgentRecord `json:"directory_agents,omitempty"`

	// Registrations contains the live service registrations.
	Registrations []RegistrationRecord `json:"registrations,omitempty"`
}

// DirectoryAgentRecord mirrors agent.DirectoryAgent for JSON serialization.
type DirectoryAgentRecord struct {
	// URL is the DA's service URL.
	URL string `json:"url"`

	// Scopes is the DA's scope list in escaped list form.
	Scopes string `json:"scopes"`

	// BootTimestamp is the DA's boot time in seconds since the epoch.
	BootTimestamp uint32 `json:"boot_timestamp"`

	// LastSeen is when the DA last advertised.
	LastSeen time.Time `json:"last_seen"`
}

// RegistrationRecord mirrors agent.Registration for JSON serialization.
type RegistrationRecord struct {
	// URL is the registered service URL.
	URL string `json:"url"`

	// ServiceType is the abstract service type of the URL.
	ServiceType string `json:"service_type"`

	// Scopes is the registration's scope list in escaped list form.
	Scopes string `json:"scopes"`

	// Attributes is the raw attribute list.
	Attributes string `json:"attributes,omitempty"`

	// ExpiresAt is when the registration lapses.
	ExpiresAt time.Time `json:"expires_at"`
}

// StateStore manages persistence of daemon state to a JSON file.
type StateStore struct {
	mu   sync.Mutex
	path string
}

// NewStateStore creates a new daemon state store.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// Save persists the daemon state to disk.
func (s *StateStore) Save(state *DaemonState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	state.Version = StateVersion
	if state.SavedAt.IsZero() {
		state.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Load reads the daemon state from disk.
// Returns nil, nil if the file doesn't exist (empty state).
func (s *StateStore) Load() (*DaemonState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &DaemonState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}

	return state, nil
}

// Clear removes the state file.
func (s *StateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
