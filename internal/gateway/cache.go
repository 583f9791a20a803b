package gateway

import (
	"sync"
	"time"
)

// State of a cached resource value.
type State string

const (
	StateEmpty State = "empty"
	StateFresh State = "fresh"
	StateStale State = "stale"
)

type cacheKey struct {
	resource Resource
	param    string
}

func (k cacheKey) String() string {
	if k.param == "" {
		return string(k.resource)
	}
	return string(k.resource) + ":" + k.param
}

// maxEntriesPerResource bounds the per-city weather entries; the oldest is evicted.
const maxEntriesPerResource = 64

type cacheEntry struct {
	value       any
	refreshedAt time.Time
}

// Cache keeps one value per resource (per city for weather) with a shared TTL.
// Values are replaced wholesale; a partial value is never stored.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	clock   Clock
	entries map[cacheKey]cacheEntry
	// bumped by every invalidation of the resource
	gens map[Resource]uint64
}

func NewCache(ttl time.Duration, clock Clock) *Cache {
	if clock == nil {
		clock = SystemClock
	}
	return &Cache{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[cacheKey]cacheEntry),
		gens:    make(map[Resource]uint64),
	}
}

// Fresh returns the cached value only while now - refreshedAt < ttl.
func (c *Cache) Fresh(key cacheKey) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.clock.Now().Sub(e.refreshedAt) >= c.ttl {
		return nil, false
	}
	return e.value, true
}

// Peek returns the cached value regardless of its age.
func (c *Cache) Peek(key cacheKey) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Set(key cacheKey, value any) {
	c.mu.Lock()
	c.set(key, value)
	c.mu.Unlock()
}

// Generation identifies the invalidations of r seen so far.
func (c *Cache) Generation(r Resource) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gens[r]
}

// SetIfGeneration stores value only if r was not invalidated since gen was read.
func (c *Cache) SetIfGeneration(key cacheKey, value any, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gens[key.resource] != gen {
		return false
	}
	c.set(key, value)
	return true
}

func (c *Cache) set(key cacheKey, value any) {
	c.entries[key] = cacheEntry{value: value, refreshedAt: c.clock.Now()}

	var (
		n      int
		oldest cacheKey
		found  bool
	)
	for k, e := range c.entries {
		if k.resource != key.resource {
			continue
		}
		n++
		if k != key && (!found || e.refreshedAt.Before(c.entries[oldest].refreshedAt)) {
			oldest, found = k, true
		}
	}
	if n > maxEntriesPerResource && found {
		delete(c.entries, oldest)
	}
}

// Invalidate drops every entry of the resource and reports how many were removed.
func (c *Cache) Invalidate(r Resource) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gens[r]++
	n := 0
	for k := range c.entries {
		if k.resource == r {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[cacheKey]cacheEntry)
	for _, r := range Resources() {
		c.gens[r]++
	}
	c.mu.Unlock()
}

// EntryState describes one cached value.
type EntryState struct {
	Param       string    `json:"param,omitempty"`
	State       State     `json:"state"`
	RefreshedAt time.Time `json:"refreshedAt"`
	Age         string    `json:"age"`
}

func (c *Cache) entryStates(r Resource) []EntryState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.clock.Now()
	var states []EntryState
	for k, e := range c.entries {
		if k.resource != r {
			continue
		}
		age := now.Sub(e.refreshedAt)
		state := StateFresh
		if age >= c.ttl {
			state = StateStale
		}
		states = append(states, EntryState{
			Param:       k.param,
			State:       state,
			RefreshedAt: e.refreshedAt,
			Age:         age.Truncate(time.Second).String(),
		})
	}
	return states
}
