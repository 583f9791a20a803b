package source

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/footyhub/uganda-footy-hub/internal/fetch"
	"github.com/footyhub/uganda-footy-hub/internal/model"
)

// Wikipedia is the encyclopedia lookup used for team and event background.
// It is best effort: failures are logged and come back as empty results.
type Wikipedia struct {
	client  *fetch.Client
	baseURL string
	log     *zap.Logger
}

func NewWikipedia(client *fetch.Client, baseURL string, log *zap.Logger) *Wikipedia {
	if log == nil {
		log = zap.NewNop()
	}
	return &Wikipedia{client: client, baseURL: baseURL, log: log.Named("wikipedia")}
}

type wikiSearchHit struct {
	PageID    int64  `json:"pageid"`
	Title     string `json:"title"`
	Snippet   string `json:"snippet"`
	WordCount int    `json:"wordcount"`
}

type wikiSearchResponse struct {
	Query struct {
		Search []wikiSearchHit `json:"search"`
	} `json:"query"`
}

// Search returns the hits for query with snippet markup stripped. It never returns nil.
func (w *Wikipedia) Search(ctx context.Context, query string) []model.WikiHit {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.WikiHit{}
	}

	q := url.Values{}
	q.Set("action", "query")
	q.Set("list", "search")
	q.Set("srsearch", query)
	q.Set("format", "json")

	var payload wikiSearchResponse
	if err := w.client.GetJSON(ctx, w.baseURL+"?"+q.Encode(), &payload); err != nil {
		w.log.Warn("search failed", zap.String("query", query), zap.Error(err))
		return []model.WikiHit{}
	}

	return lo.Map(payload.Query.Search, func(h wikiSearchHit, _ int) model.WikiHit {
		return model.WikiHit{
			PageID:    h.PageID,
			Title:     h.Title,
			Snippet:   stripHTML(h.Snippet),
			WordCount: h.WordCount,
		}
	})
}

type wikiPagesResponse struct {
	Query struct {
		Pages map[string]struct {
			PageID    int64   `json:"pageid"`
			Title     string  `json:"title"`
			Extract   string  `json:"extract"`
			Missing   *string `json:"missing"`
			Thumbnail *struct {
				Source string `json:"source"`
			} `json:"thumbnail"`
		} `json:"pages"`
	} `json:"query"`
}

// Page returns the intro extract of a page, or nil when it cannot be read.
func (w *Wikipedia) Page(ctx context.Context, pageID int64) *model.WikiPage {
	id := strconv.FormatInt(pageID, 10)

	q := url.Values{}
	q.Set("action", "query")
	q.Set("pageids", id)
	q.Set("prop", "extracts|pageimages")
	q.Set("exintro", "true")
	q.Set("explaintext", "true")
	q.Set("format", "json")

	var payload wikiPagesResponse
	if err := w.client.GetJSON(ctx, w.baseURL+"?"+q.Encode(), &payload); err != nil {
		w.log.Warn("page lookup failed", zap.Int64("pageId", pageID), zap.Error(err))
		return nil
	}

	p, ok := payload.Query.Pages[id]
	if !ok || p.Missing != nil {
		w.log.Debug("page not found", zap.Int64("pageId", pageID))
		return nil
	}

	page := &model.WikiPage{
		PageID:  p.PageID,
		Title:   p.Title,
		Extract: p.Extract,
	}
	if p.Thumbnail != nil {
		page.Thumbnail = p.Thumbnail.Source
	}
	return page
}

// stripHTML turns a search snippet like `<span class="searchmatch">Cranes</span>`
// into plain text.
func stripHTML(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// ParsePageID validates a page id taken from a URL or a chat command.
func ParsePageID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid page id %q", s)
	}
	return id, nil
}
