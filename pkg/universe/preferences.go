package universe

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Preferences is a flat key/value settings backend. The Store uses it to
// persist per-universe settings across daemon restarts.
type Preferences interface {
	// Get returns the stored value for key, or "" if unset.
	Get(key string) string
	// Set stores value under key. Changes become durable on Save.
	Set(key, value string)
	// Delete removes key.
	Delete(key string)
	// Load replaces the in-memory state with the persisted state.
	Load() error
	// Save persists the in-memory state.
	Save() error
}

// MemoryPreferences holds settings in memory only. Load and Save are no-ops.
type MemoryPreferences struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryPreferences returns an empty in-memory backend.
func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{values: make(map[string]string)}
}

func (p *MemoryPreferences) Get(key string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.values[key]
}

func (p *MemoryPreferences) Set(key, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = value
}

func (p *MemoryPreferences) Delete(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.values, key)
}

func (p *MemoryPreferences) Load() error { return nil }

func (p *MemoryPreferences) Save() error { return nil }

// FilePreferences persists settings as a YAML map. A missing file loads as
// empty state so first runs need no setup.
type FilePreferences struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// NewFilePreferences returns a file-backed backend at path. Call Load before
// first use.
func NewFilePreferences(path string) *FilePreferences {
	return &FilePreferences{
		path:   path,
		values: make(map[string]string),
	}
}

func (p *FilePreferences) Get(key string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.values[key]
}

func (p *FilePreferences) Set(key, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = value
}

func (p *FilePreferences) Delete(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.values, key)
}

func (p *FilePreferences) Load() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			p.values = make(map[string]string)
			return nil
		}
		return fmt.Errorf("reading preferences: %w", err)
	}

	values := make(map[string]string)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("parsing preferences: %w", err)
	}
	if values == nil {
		values = make(map[string]string)
	}
	p.values = values
	return nil
}

func (p *FilePreferences) Save() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := yaml.Marshal(p.values)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}

	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("replacing preferences: %w", err)
	}
	return nil
}
