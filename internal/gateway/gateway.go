package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/footyhub/uganda-footy-hub/internal/model"
	"github.com/footyhub/uganda-footy-hub/internal/sample"
)

const DefaultTTL = 5 * time.Minute

// Sources are the ordered fallback chains, tried strictly one after another.
type Sources struct {
	Events  []Source[[]model.Event]
	Teams   []Source[[]model.Team]
	News    []Source[[]model.NewsArticle]
	Weather []Source[model.WeatherSnapshot]
}

// Fallbacks produce the static data served when a chain is exhausted.
// Nil fields use the sample package.
type Fallbacks struct {
	Events  func() []model.Event
	Teams   func() []model.Team
	News    func(now time.Time) []model.NewsArticle
	Weather func(city string) model.WeatherSnapshot
}

type Options struct {
	TTL    time.Duration
	Clock  Clock
	Policy Policy
	// Coalesce makes concurrent misses for the same key share one source chain.
	Coalesce    bool
	DefaultCity string
	Logger      *zap.Logger
	Sources     Sources
	Fallbacks   Fallbacks
}

// Gateway mediates between the pages/bot and every content source: a fresh
// cached value is returned as is, otherwise the resource's chain is walked
// and the first success is cached.
type Gateway struct {
	cache       *Cache
	clock       Clock
	policy      Policy
	coalesce    bool
	defaultCity string
	sources     Sources
	fallbacks   Fallbacks
	group       singleflight.Group
	stats       *statsRecorder
	log         *zap.Logger
}

func New(opts Options) *Gateway {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	fb := opts.Fallbacks
	if fb.Events == nil {
		fb.Events = sample.Events
	}
	if fb.Teams == nil {
		fb.Teams = sample.Teams
	}
	if fb.News == nil {
		fb.News = sample.News
	}
	if fb.Weather == nil {
		fb.Weather = func(string) model.WeatherSnapshot { return sample.Weather() }
	}

	return &Gateway{
		cache:       NewCache(opts.TTL, opts.Clock),
		clock:       opts.Clock,
		policy:      opts.Policy,
		coalesce:    opts.Coalesce,
		defaultCity: opts.DefaultCity,
		sources:     opts.Sources,
		fallbacks:   fb,
		stats:       newStatsRecorder(opts.Clock),
		log:         opts.Logger.Named("gateway"),
	}
}

func (g *Gateway) Events(ctx context.Context) ([]model.Event, error) {
	return load(ctx, g, cacheKey{resource: Events}, "", g.sources.Events, g.fallbacks.Events)
}

func (g *Gateway) Teams(ctx context.Context) ([]model.Team, error) {
	return load(ctx, g, cacheKey{resource: Teams}, "", g.sources.Teams, g.fallbacks.Teams)
}

func (g *Gateway) News(ctx context.Context) ([]model.NewsArticle, error) {
	return load(ctx, g, cacheKey{resource: News}, "", g.sources.News, func() []model.NewsArticle {
		return g.fallbacks.News(g.clock.Now())
	})
}

// Weather reads the snapshot for city, or for the default city when city is empty.
// Cities differing only in case or surrounding space share one cache entry.
func (g *Gateway) Weather(ctx context.Context, city string) (model.WeatherSnapshot, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		city = g.defaultCity
	}
	key := cacheKey{resource: Weather, param: strings.ToLower(city)}
	return load(ctx, g, key, city, g.sources.Weather, func() model.WeatherSnapshot {
		return g.fallbacks.Weather(city)
	})
}

// Get is the untyped form of the four accessors.
func (g *Gateway) Get(ctx context.Context, r Resource, param string) (any, error) {
	switch r {
	case Events:
		return g.Events(ctx)
	case Teams:
		return g.Teams(ctx)
	case News:
		return g.News(ctx)
	case Weather:
		return g.Weather(ctx, param)
	}
	return nil, fmt.Errorf("unknown resource %q", r)
}

// Invalidate forgets the cached value of r, forcing the next read to go to the sources.
func (g *Gateway) Invalidate(r Resource) {
	n := g.cache.Invalidate(r)
	g.log.Info("cache invalidated", zap.String("resource", string(r)), zap.Int("entries", n))
}

func (g *Gateway) InvalidateAll() {
	g.cache.InvalidateAll()
	g.log.Info("cache invalidated", zap.String("resource", "all"))
}

// Stats is the debug view of every resource: cache state plus counters.
func (g *Gateway) Stats() []ResourceStats {
	out := make([]ResourceStats, 0, len(Resources()))
	for _, r := range Resources() {
		s := g.stats.snapshot(r)
		s.Entries = g.cache.entryStates(r)
		s.State = StateEmpty
		var latest time.Time
		for _, e := range s.Entries {
			if e.RefreshedAt.After(latest) {
				latest = e.RefreshedAt
				s.State = e.State
			}
		}
		out = append(out, s)
	}
	return out
}

func load[T any](ctx context.Context, g *Gateway, key cacheKey, param string, sources []Source[T], fallback func() T) (T, error) {
	if v, ok := g.cache.Fresh(key); ok {
		g.stats.hit(key.resource)
		return v.(T), nil
	}
	g.stats.miss(key.resource)

	// the chain outlives an abandoned caller; the http timeout bounds it
	ctx = context.WithoutCancel(ctx)

	if !g.coalesce {
		return refresh(ctx, g, key, param, sources, fallback)
	}

	v, err, shared := g.group.Do(key.String(), func() (any, error) {
		return refresh(ctx, g, key, param, sources, fallback)
	})
	if shared {
		g.log.Debug("coalesced refresh", zap.Stringer("key", key))
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// refresh walks the chain. A value is cached only if the resource was not
// invalidated while the chain ran; the caller gets it either way.
func refresh[T any](ctx context.Context, g *Gateway, key cacheKey, param string, sources []Source[T], fallback func() T) (T, error) {
	var errs []error
	gen := g.cache.Generation(key.resource)

	for _, src := range sources {
		g.stats.attempt(key.resource)

		started := time.Now()
		v, err := src.Fetch(ctx, param)
		if err != nil {
			g.stats.failure(key.resource, err)
			g.log.Warn("source attempt failed",
				zap.Stringer("key", key),
				zap.String("source", src.Name()),
				zap.Duration("took", time.Since(started)),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}

		g.store(key, v, gen)
		g.stats.success(key.resource, src.Name())
		g.log.Debug("resource refreshed",
			zap.Stringer("key", key),
			zap.String("source", src.Name()),
			zap.Duration("took", time.Since(started)),
		)
		return v, nil
	}

	exhausted := fmt.Errorf("%s: %w", key, ErrSourcesExhausted)
	if len(errs) > 0 {
		exhausted = fmt.Errorf("%s: %w: %w", key, ErrSourcesExhausted, errors.Join(errs...))
	}

	if g.policy.Strict {
		var zero T
		return zero, exhausted
	}

	if g.policy.ServeStale {
		if v, ok := g.cache.Peek(key); ok {
			g.stats.staleServed(key.resource)
			g.log.Warn("serving stale value", zap.Stringer("key", key), zap.Error(exhausted))
			return v.(T), nil
		}
	}

	fb := fallback()
	if g.policy.CacheFallback {
		g.store(key, fb, gen)
	}
	g.stats.fallbackServed(key.resource)
	g.log.Warn("serving sample data", zap.Stringer("key", key), zap.Error(exhausted))

	return fb, nil
}

func (g *Gateway) store(key cacheKey, value any, gen uint64) {
	if !g.cache.SetIfGeneration(key, value, gen) {
		g.log.Debug("invalidated during refresh, value not cached", zap.Stringer("key", key))
	}
}
