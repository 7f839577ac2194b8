package universe

import (
	"fmt"
	"slices"
	"sync"
)

// Store is the registry of active universes. Universes come into existence
// on first use via GetOrCreate and go away once inactive. Settings round-trip
// through the Preferences backend under per-universe keys.
type Store struct {
	mu        sync.Mutex
	universes map[uint32]*Universe
	prefs     Preferences
}

// NewStore returns an empty registry backed by prefs. A nil prefs disables
// settings persistence.
func NewStore(prefs Preferences) *Store {
	return &Store{
		universes: make(map[uint32]*Universe),
		prefs:     prefs,
	}
}

// Get returns the universe with this ID if it exists.
func (s *Store) Get(id uint32) (*Universe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.universes[id]
	return u, ok
}

// GetOrCreate returns the universe with this ID, creating it if needed.
// Newly created universes get any previously persisted settings applied.
func (s *Store) GetOrCreate(id uint32) *Universe {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.universes[id]; ok {
		return u
	}

	u := New(id)
	s.restoreSettings(u)
	s.universes[id] = u
	return u
}

// List returns all current universes ordered by ID.
func (s *Store) List() []*Universe {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]*Universe, 0, len(s.universes))
	for _, u := range s.universes {
		list = append(list, u)
	}
	slices.SortFunc(list, func(a, b *Universe) int {
		return int(a.id) - int(b.id)
	})
	return list
}

// Count returns the number of current universes.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.universes)
}

// DeleteIfInactive removes the universe if nothing is attached to it,
// persisting its settings first. It reports whether the universe was removed.
func (s *Store) DeleteIfInactive(u *Universe) bool {
	if u.Active() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.universes[u.id] != u {
		return false
	}
	s.saveSettings(u)
	delete(s.universes, u.id)
	return true
}

// DeleteAll persists every universe's settings and empties the registry.
func (s *Store) DeleteAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.universes {
		s.saveSettings(u)
	}
	s.universes = make(map[uint32]*Universe)

	if s.prefs == nil {
		return nil
	}
	return s.prefs.Save()
}

func nameKey(id uint32) string  { return fmt.Sprintf("uni_%d_name", id) }
func mergeKey(id uint32) string { return fmt.Sprintf("uni_%d_merge", id) }

func (s *Store) restoreSettings(u *Universe) {
	if s.prefs == nil {
		return
	}
	if name := s.prefs.Get(nameKey(u.id)); name != "" {
		u.SetName(name)
	}
	if mode := s.prefs.Get(mergeKey(u.id)); mode != "" {
		u.SetMergeMode(ParseMergeMode(mode))
	}
}

func (s *Store) saveSettings(u *Universe) {
	if s.prefs == nil {
		return
	}
	s.prefs.Set(nameKey(u.id), u.Name())
	s.prefs.Set(mergeKey(u.id), u.MergeMode().String())
}
