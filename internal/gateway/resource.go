package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Resource is one of the externally sourced content kinds.
type Resource string

const (
	Events  Resource = "events"
	Teams   Resource = "teams"
	News    Resource = "news"
	Weather Resource = "weather"
)

// Resources lists every resource in a stable order.
func Resources() []Resource {
	return []Resource{Events, Teams, News, Weather}
}

func ParseResource(s string) (Resource, error) {
	r := Resource(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case Events, Teams, News, Weather:
		return r, nil
	}
	return "", fmt.Errorf("unknown resource %q", s)
}

// Source is one entry of a resource's fallback chain.
// param is resource specific: the city for Weather, empty otherwise.
type Source[T any] interface {
	Name() string
	Fetch(ctx context.Context, param string) (T, error)
}

type sourceFunc[T any] struct {
	name string
	fn   func(ctx context.Context, param string) (T, error)
}

func (s sourceFunc[T]) Name() string { return s.name }

func (s sourceFunc[T]) Fetch(ctx context.Context, param string) (T, error) {
	return s.fn(ctx, param)
}

// SourceFunc turns a plain function into a Source.
func SourceFunc[T any](name string, fn func(ctx context.Context, param string) (T, error)) Source[T] {
	return sourceFunc[T]{name: name, fn: fn}
}

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)
