package source

import (
	"context"
	"net/http"
	"strings"

	"github.com/SlyMarbo/rss"
	"github.com/samber/lo"
	"github.com/tomakado/containers/set"

	"github.com/footyhub/uganda-footy-hub/internal/model"
)

// RSSSource turns a football news feed into news articles. Items whose title
// or categories hit one of the exclude keywords are dropped.
type RSSSource struct {
	URL        string
	SourceName string

	httpClient      *http.Client
	excludeKeywords []string
}

func NewRSSSource(url, name string, httpClient *http.Client, excludeKeywords []string) RSSSource {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return RSSSource{
		URL:        url,
		SourceName: name,
		httpClient: httpClient,
		excludeKeywords: lo.Map(excludeKeywords, func(k string, _ int) string {
			return strings.ToLower(strings.TrimSpace(k))
		}),
	}
}

func (s RSSSource) Name() string {
	return "rss"
}

func (s RSSSource) Fetch(ctx context.Context, _ string) ([]model.NewsArticle, error) {
	feed, err := s.loadFeed(ctx, s.URL)
	if err != nil {
		return nil, err
	}

	articles := make([]model.NewsArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		if s.itemShouldBeSkipped(item) {
			continue
		}

		articles = append(articles, model.NewsArticle{
			Title:       item.Title,
			Description: item.Summary,
			URL:         item.Link,
			PublishedAt: item.Date.UTC(),
			Source:      model.NewsSource{Name: s.SourceName},
		})
	}

	return articles, nil
}

func (s RSSSource) loadFeed(ctx context.Context, url string) (*rss.Feed, error) {
	var (
		feedCh = make(chan *rss.Feed, 1)
		errCh  = make(chan error, 1)
	)

	go func() {
		feed, err := rss.FetchByClient(url, s.httpClient)
		if err != nil {
			errCh <- err
			return
		}

		feedCh <- feed
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-errCh:
		return nil, err
	case feed := <-feedCh:
		return feed, nil
	}
}

func (s RSSSource) itemShouldBeSkipped(item *rss.Item) bool {
	if strings.TrimSpace(item.Title) == "" {
		return true
	}

	categories := set.New(lo.Map(item.Categories, func(c string, _ int) string {
		return strings.ToLower(c)
	})...)
	title := strings.ToLower(item.Title)

	for _, keyword := range s.excludeKeywords {
		if keyword == "" {
			continue
		}
		if categories.Contains(keyword) || strings.Contains(title, keyword) {
			return true
		}
	}

	return false
}
