package gateway

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSourcesExhausted is returned only under a strict policy, when every
// source of a resource failed.
var ErrSourcesExhausted = errors.New("all sources exhausted")

// Policy decides what happens when every source of a resource fails.
//
// The zero value is the silent policy: sample data is returned, nothing is
// cached, and the next call goes back to the sources immediately.
type Policy struct {
	// Strict returns ErrSourcesExhausted instead of any degraded value.
	Strict bool
	// CacheFallback stores the sample data as if it were live, so a dead
	// upstream is retried at most once per TTL.
	CacheFallback bool
	// ServeStale prefers an expired cached value over sample data.
	ServeStale bool
}

// ParsePolicy maps the config's fallback_mode onto a Policy.
func ParsePolicy(mode string, cacheFallback, serveStale bool) (Policy, error) {
	p := Policy{CacheFallback: cacheFallback, ServeStale: serveStale}

	switch strings.ToLower(mode) {
	case "", "silent":
	case "strict":
		p.Strict = true
	default:
		return Policy{}, fmt.Errorf("unknown fallback mode %q", mode)
	}

	return p, nil
}
