package fetcher

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/footyhub/uganda-footy-hub/internal/model"
)

type ArticleStorage interface {
	Store(ctx context.Context, article model.NewsArticle) error
}

// Content is the read side of the gateway.
type Content interface {
	Events(ctx context.Context) ([]model.Event, error)
	Teams(ctx context.Context) ([]model.Team, error)
	News(ctx context.Context) ([]model.NewsArticle, error)
	Weather(ctx context.Context, city string) (model.WeatherSnapshot, error)
}

// Fetcher keeps the gateway cache warm and copies fresh news into the
// article storage the notifier posts from.
type Fetcher struct {
	content       Content
	articles      ArticleStorage // nil disables the news feed
	cities        []string
	fetchInterval time.Duration
	log           *zap.Logger
}

func New(content Content, articles ArticleStorage, fetchInterval time.Duration, cities []string, log *zap.Logger) *Fetcher {
	if len(cities) == 0 {
		cities = []string{""}
	}
	return &Fetcher{
		content:       content,
		articles:      articles,
		cities:        cities,
		fetchInterval: fetchInterval,
		log:           log.Named("fetcher"),
	}
}

func (f *Fetcher) Start(ctx context.Context) error {
	ticker := time.NewTicker(f.fetchInterval)
	defer ticker.Stop()

	f.Fetch(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			f.Fetch(ctx)
		}
	}
}

// Fetch reads every resource in parallel. A failing read never stops the
// others.
func (f *Fetcher) Fetch(ctx context.Context) {
	var wg sync.WaitGroup

	run := func(name string, fn func(ctx context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()

			started := time.Now()
			if err := fn(ctx); err != nil {
				f.log.Error("warming failed", zap.String("resource", name), zap.Error(err))
				return
			}
			f.log.Debug("warmed", zap.String("resource", name), zap.Duration("took", time.Since(started)))
		}()
	}

	run("events", func(ctx context.Context) error {
		_, err := f.content.Events(ctx)
		return err
	})
	run("teams", func(ctx context.Context) error {
		_, err := f.content.Teams(ctx)
		return err
	})
	run("news", func(ctx context.Context) error {
		news, err := f.content.News(ctx)
		if err != nil {
			return err
		}
		return f.processNews(ctx, news)
	})
	for _, city := range f.cities {
		city := city
		run("weather", func(ctx context.Context) error {
			_, err := f.content.Weather(ctx, city)
			return err
		})
	}

	wg.Wait()
}

func (f *Fetcher) processNews(ctx context.Context, news []model.NewsArticle) error {
	if f.articles == nil {
		return nil
	}

	for _, article := range lo.Filter(news, func(a model.NewsArticle, _ int) bool { return !articleShouldBeSkipped(a) }) {
		article.PublishedAt = article.PublishedAt.UTC()

		if err := f.articles.Store(ctx, article); err != nil {
			return err
		}
	}

	return nil
}

// Sample articles link to "#"; only real pages can be summarized and posted.
func articleShouldBeSkipped(a model.NewsArticle) bool {
	if strings.TrimSpace(a.Title) == "" {
		return true
	}
	return !strings.HasPrefix(a.URL, "http://") && !strings.HasPrefix(a.URL, "https://")
}
