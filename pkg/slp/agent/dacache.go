package agent

import (
	"sort"
	"sync"
	"time"

	"github.com/openlighting/ola-go/pkg/slp/scope"
	"github.com/openlighting/ola-go/pkg/slp/wire"
)

// DefaultDAStaleAge is how long a directory agent stays usable without a
// fresh advertisement.
const DefaultDAStaleAge = 15 * time.Minute

// DirectoryAgent is a directory agent learned from a DAAdvert.
type DirectoryAgent struct {
	// URL is the DA's service URL.
	URL string

	// Scopes holds the scopes the DA serves.
	Scopes scope.Set

	// BootTimestamp is the DA's stateless boot time. A change means the
	// DA restarted and lost its registrations.
	BootTimestamp uint32

	// LastSeen is when the last advertisement arrived.
	LastSeen time.Time
}

// DACache tracks known directory agents. Safe for concurrent use.
type DACache struct {
	mu  sync.RWMutex
	das map[string]*DirectoryAgent
	now func() time.Time
}

// NewDACache creates an empty cache.
func NewDACache() *DACache {
	return &DACache{
		das: make(map[string]*DirectoryAgent),
		now: time.Now,
	}
}

// Observe records a DAAdvert. A boot timestamp of zero announces the DA's
// shutdown and evicts it. Returns true when the advert changed the cache in
// a way that requires re-registration (new DA, or a DA that rebooted).
func (c *DACache) Observe(advert *wire.DAAdvert) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if advert.BootTimestamp == 0 {
		delete(c.das, advert.URL)
		return false
	}

	existing, ok := c.das[advert.URL]
	rebooted := ok && existing.BootTimestamp != advert.BootTimestamp
	c.das[advert.URL] = &DirectoryAgent{
		URL:           advert.URL,
		Scopes:        advert.Scopes.Clone(),
		BootTimestamp: advert.BootTimestamp,
		LastSeen:      c.now(),
	}
	return !ok || rebooted
}

// Select returns a directory agent serving at least one of the given
// scopes. Selection is deterministic (lowest URL wins) so repeated
// registrations target the same DA.
func (c *DACache) Select(scopes scope.Set) (DirectoryAgent, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	urls := make([]string, 0, len(c.das))
	for url := range c.das {
		urls = append(urls, url)
	}
	sort.Strings(urls)

	for _, url := range urls {
		da := c.das[url]
		if da.Scopes.Intersects(scopes) {
			cp := *da
			cp.Scopes = da.Scopes.Clone()
			return cp, true
		}
	}
	return DirectoryAgent{}, false
}

// List returns all known directory agents ordered by URL.
func (c *DACache) List() []DirectoryAgent {
	c.mu.RLock()
	defer c.mu.RUnlock()

	das := make([]DirectoryAgent, 0, len(c.das))
	for _, da := range c.das {
		cp := *da
		cp.Scopes = da.Scopes.Clone()
		das = append(das, cp)
	}
	sort.Slice(das, func(i, j int) bool { return das[i].URL < das[j].URL })
	return das
}

// ExpireStale evicts directory agents not heard from within maxAge and
// returns how many were dropped.
func (c *DACache) ExpireStale(maxAge time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-maxAge)
	n := 0
	for url, da := range c.das {
		if da.LastSeen.Before(cutoff) {
			delete(c.das, url)
			n++
		}
	}
	return n
}
