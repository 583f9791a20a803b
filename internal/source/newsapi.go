package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/footyhub/uganda-footy-hub/internal/fetch"
	"github.com/footyhub/uganda-footy-hub/internal/model"
)

var ErrNoAPIKey = errors.New("api key is not configured")

// removedPlaceholder is what NewsAPI puts in place of taken-down articles.
const removedPlaceholder = "[Removed]"

type NewsAPIOptions struct {
	BaseURL  string
	APIKey   string
	Query    string
	Language string
	PageSize int
}

// NewsAPI reads the latest articles from newsapi.org's /everything endpoint.
type NewsAPI struct {
	client *fetch.Client
	opts   NewsAPIOptions
}

func NewNewsAPI(client *fetch.Client, opts NewsAPIOptions) *NewsAPI {
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	return &NewsAPI{client: client, opts: opts}
}

func (s *NewsAPI) Name() string {
	return "newsapi"
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	URLToImage  string    `json:"urlToImage"`
	PublishedAt time.Time `json:"publishedAt"`
}

func (s *NewsAPI) Fetch(ctx context.Context, _ string) ([]model.NewsArticle, error) {
	if s.opts.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	q := url.Values{}
	q.Set("q", s.opts.Query)
	q.Set("language", s.opts.Language)
	q.Set("sortBy", "publishedAt")
	q.Set("pageSize", strconv.Itoa(s.opts.PageSize))
	q.Set("apiKey", s.opts.APIKey)

	var payload struct {
		Status   string            `json:"status"`
		Code     string            `json:"code"`
		Message  string            `json:"message"`
		Articles *[]newsAPIArticle `json:"articles"`
	}
	if err := s.client.GetJSON(ctx, s.opts.BaseURL+"/everything?"+q.Encode(), &payload); err != nil {
		return nil, err
	}

	if payload.Status != "ok" {
		return nil, fmt.Errorf("newsapi status %q: %s %s", payload.Status, payload.Code, payload.Message)
	}
	if payload.Articles == nil {
		return nil, fmt.Errorf("articles: %w", ErrMissingField)
	}

	kept := lo.Filter(*payload.Articles, func(a newsAPIArticle, _ int) bool {
		title := strings.TrimSpace(a.Title)
		return title != "" && title != removedPlaceholder
	})

	return lo.Map(kept, func(a newsAPIArticle, _ int) model.NewsArticle {
		return model.NewsArticle{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			URLToImage:  a.URLToImage,
			PublishedAt: a.PublishedAt,
			Source:      model.NewsSource{Name: a.Source.Name},
		}
	}), nil
}
