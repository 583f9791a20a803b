package fetcher

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/footyhub/uganda-footy-hub/internal/model"
)

type fakeContent struct {
	mu      sync.Mutex
	calls   map[string]int
	cities  []string
	news    []model.NewsArticle
	newsErr error
}

func (c *fakeContent) record(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.calls == nil {
		c.calls = make(map[string]int)
	}
	c.calls[name]++
}

func (c *fakeContent) Events(context.Context) ([]model.Event, error) {
	c.record("events")
	return nil, errors.New("boom")
}

func (c *fakeContent) Teams(context.Context) ([]model.Team, error) {
	c.record("teams")
	return nil, nil
}

func (c *fakeContent) News(context.Context) ([]model.NewsArticle, error) {
	c.record("news")
	return c.news, c.newsErr
}

func (c *fakeContent) Weather(_ context.Context, city string) (model.WeatherSnapshot, error) {
	c.record("weather")
	c.mu.Lock()
	c.cities = append(c.cities, city)
	c.mu.Unlock()
	return model.WeatherSnapshot{City: city}, nil
}

type fakeArticles struct {
	mu     sync.Mutex
	stored []model.NewsArticle
}

func (s *fakeArticles) Store(_ context.Context, a model.NewsArticle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stored = append(s.stored, a)
	return nil
}

func TestFetcher_FetchReadsEveryResource(t *testing.T) {
	content := &fakeContent{}
	f := New(content, nil, time.Minute, []string{"Kampala,UG", "Jinja,UG"}, zap.NewNop())

	f.Fetch(context.Background())

	for _, name := range []string{"events", "teams", "news"} {
		if content.calls[name] != 1 {
			t.Errorf("%s read %d times, want 1", name, content.calls[name])
		}
	}

	sort.Strings(content.cities)
	if len(content.cities) != 2 || content.cities[0] != "Jinja,UG" || content.cities[1] != "Kampala,UG" {
		t.Errorf("weather cities = %v", content.cities)
	}
}

func TestFetcher_DefaultCity(t *testing.T) {
	content := &fakeContent{}
	New(content, nil, time.Minute, nil, zap.NewNop()).Fetch(context.Background())

	if len(content.cities) != 1 || content.cities[0] != "" {
		t.Errorf("weather cities = %q, want the default city", content.cities)
	}
}

func TestFetcher_StoresLinkableNews(t *testing.T) {
	eat := time.FixedZone("EAT", 3*60*60)
	content := &fakeContent{news: []model.NewsArticle{
		{Title: "Cranes qualify", URL: "https://example.com/cranes", PublishedAt: time.Date(2024, 3, 1, 18, 0, 0, 0, eat)},
		{Title: "Sample story", URL: "#"},
		{Title: "", URL: "https://example.com/untitled"},
		{Title: "Vipers sign striker", URL: "http://example.com/vipers"},
	}}
	articles := &fakeArticles{}

	New(content, articles, time.Minute, nil, zap.NewNop()).Fetch(context.Background())

	if len(articles.stored) != 2 {
		t.Fatalf("stored %d articles, want 2", len(articles.stored))
	}
	first := articles.stored[0]
	if first.Title != "Cranes qualify" {
		t.Errorf("first stored = %q", first.Title)
	}
	if first.PublishedAt.Location() != time.UTC || first.PublishedAt.Hour() != 15 {
		t.Errorf("published at = %v, want 15:00 UTC", first.PublishedAt)
	}
}

func TestFetcher_NewsErrorStoresNothing(t *testing.T) {
	content := &fakeContent{newsErr: errors.New("exhausted")}
	articles := &fakeArticles{}

	New(content, articles, time.Minute, nil, zap.NewNop()).Fetch(context.Background())

	if len(articles.stored) != 0 {
		t.Errorf("stored %d articles, want 0", len(articles.stored))
	}
}

func TestFetcher_StartStopsOnCancel(t *testing.T) {
	content := &fakeContent{}
	f := New(content, nil, time.Hour, nil, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.Start(ctx) }()

	// the first pass runs before the ticker
	deadline := time.After(2 * time.Second)
	for {
		content.mu.Lock()
		n := content.calls["teams"]
		content.mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("initial fetch did not run")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Start() = %v, want context.Canceled", err)
	}
}
