package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/footyhub/uganda-footy-hub/internal/model"
)

const (
	DefaultNewsPerPage = 9
	MaxNewsPerPage     = 50
)

type NewsCategory string

const (
	CategoryAll           NewsCategory = "all"
	CategoryTeams         NewsCategory = "teams"
	CategoryPlayers       NewsCategory = "players"
	CategoryMatches       NewsCategory = "matches"
	CategoryTransfers     NewsCategory = "transfers"
	CategoryInternational NewsCategory = "international"
)

var categoryKeywords = map[NewsCategory][]string{
	CategoryTeams:         {"team", "club", "fc"},
	CategoryPlayers:       {"player", "striker", "goalkeeper"},
	CategoryMatches:       {"match", "game", "vs"},
	CategoryTransfers:     {"transfer", "sign", "joined"},
	CategoryInternational: {"international", "world cup", "afcon"},
}

func ParseNewsCategory(s string) (NewsCategory, error) {
	c := NewsCategory(strings.ToLower(strings.TrimSpace(s)))
	if c == "" || c == CategoryAll {
		return CategoryAll, nil
	}
	if _, ok := categoryKeywords[c]; !ok {
		return "", fmt.Errorf("unknown news category %q", s)
	}
	return c, nil
}

// FilterNews keeps articles whose title or description mention one of the
// category's keywords.
func FilterNews(articles []model.NewsArticle, c NewsCategory) []model.NewsArticle {
	keywords, ok := categoryKeywords[c]
	if !ok {
		return append([]model.NewsArticle{}, articles...)
	}

	return lo.Filter(articles, func(a model.NewsArticle, _ int) bool {
		content := strings.ToLower(a.Title + " " + a.Description)
		return lo.SomeBy(keywords, func(k string) bool {
			return strings.Contains(content, k)
		})
	})
}

type NewsPage struct {
	Featured *model.NewsArticle  `json:"featured,omitempty"`
	Articles []model.NewsArticle `json:"articles"`
	Page     int                 `json:"page"`
	PerPage  int                 `json:"perPage"`
	Total    int                 `json:"total"`
	HasMore  bool                `json:"hasMore"`
}

// PaginateNews puts the first article aside as featured and returns page
// items [(page-1)*perPage+1, (page-1)*perPage+1+perPage) of the rest.
// perPage is capped at MaxNewsPerPage; a page past the end is empty.
func PaginateNews(articles []model.NewsArticle, page, perPage int) NewsPage {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultNewsPerPage
	}
	perPage = lo.Min([]int{perPage, MaxNewsPerPage})

	p := NewsPage{
		Page:     page,
		PerPage:  perPage,
		Total:    len(articles),
		Articles: []model.NewsArticle{},
	}
	if len(articles) == 0 {
		return p
	}

	featured := articles[0]
	p.Featured = &featured

	// checked before multiplying so a huge page cannot overflow
	if page-1 > (len(articles)-1)/perPage {
		return p
	}

	start := (page-1)*perPage + 1
	end := start + perPage
	if start < len(articles) {
		p.Articles = append(p.Articles, articles[start:lo.Min([]int{end, len(articles)})]...)
	}
	p.HasMore = end < len(articles)

	return p
}

// Label is the badge shown on a news card.
func Label(a model.NewsArticle) string {
	title := strings.ToLower(a.Title)
	switch {
	case strings.Contains(title, "match"), strings.Contains(title, "game"):
		return "Match"
	case strings.Contains(title, "transfer"):
		return "Transfer"
	case strings.Contains(title, "player"):
		return "Player"
	}
	return "News"
}

// TimeAgo renders a publish time relative to now.
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Hour:
		return "Just now"
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	}
	return t.Format("2 Jan 2006")
}
