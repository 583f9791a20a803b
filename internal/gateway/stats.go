package gateway

import (
	"sync"
	"time"
)

// ResourceStats is what an operator sees for one resource. Failures never
// reach callers, so this is the only place a dead upstream shows up.
type ResourceStats struct {
	Resource        Resource     `json:"resource"`
	State           State        `json:"state"`
	Entries         []EntryState `json:"entries"`
	Hits            uint64       `json:"hits"`
	Misses          uint64       `json:"misses"`
	SourceAttempts  uint64       `json:"sourceAttempts"`
	SourceFailures  uint64       `json:"sourceFailures"`
	FallbacksServed uint64       `json:"fallbacksServed"`
	StaleServed     uint64       `json:"staleServed"`
	LastSource      string       `json:"lastSource,omitempty"`
	LastError       string       `json:"lastError,omitempty"`
	LastErrorAt     *time.Time   `json:"lastErrorAt,omitempty"`
}

type statsRecorder struct {
	mu    sync.Mutex
	clock Clock
	res   map[Resource]*ResourceStats
}

func newStatsRecorder(clock Clock) *statsRecorder {
	return &statsRecorder{clock: clock, res: make(map[Resource]*ResourceStats)}
}

func (s *statsRecorder) with(r Resource, fn func(*ResourceStats)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.res[r]
	if !ok {
		st = &ResourceStats{Resource: r}
		s.res[r] = st
	}
	fn(st)
}

func (s *statsRecorder) hit(r Resource) {
	s.with(r, func(st *ResourceStats) { st.Hits++ })
}

func (s *statsRecorder) miss(r Resource) {
	s.with(r, func(st *ResourceStats) { st.Misses++ })
}

func (s *statsRecorder) attempt(r Resource) {
	s.with(r, func(st *ResourceStats) { st.SourceAttempts++ })
}

func (s *statsRecorder) failure(r Resource, err error) {
	now := s.clock.Now()
	s.with(r, func(st *ResourceStats) {
		st.SourceFailures++
		st.LastError = err.Error()
		st.LastErrorAt = &now
	})
}

func (s *statsRecorder) success(r Resource, source string) {
	s.with(r, func(st *ResourceStats) { st.LastSource = source })
}

func (s *statsRecorder) fallbackServed(r Resource) {
	s.with(r, func(st *ResourceStats) { st.FallbacksServed++ })
}

func (s *statsRecorder) staleServed(r Resource) {
	s.with(r, func(st *ResourceStats) { st.StaleServed++ })
}

func (s *statsRecorder) snapshot(r Resource) ResourceStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.res[r]
	if !ok {
		return ResourceStats{Resource: r}
	}
	return *st
}
