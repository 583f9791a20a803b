package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/footyhub/uganda-footy-hub/internal/model"
)

const (
	MinQueryLength       = 2
	DescriptionMaxLength = 80
)

type ContentProvider interface {
	Events(ctx context.Context) ([]model.Event, error)
	Teams(ctx context.Context) ([]model.Team, error)
}

// Index searches the timeline and teams. There is no prebuilt index: every
// query reads the content through the gateway cache and scans it.
type Index struct {
	content ContentProvider
}

func New(content ContentProvider) *Index {
	return &Index{content: content}
}

// Search matches query case-insensitively against event title, description,
// year and team, and team name and stadium. Events come first.
func (i *Index) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(q)) < MinQueryLength {
		return []model.SearchResult{}, nil
	}

	events, err := i.content.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}
	teams, err := i.content.Teams(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading teams: %w", err)
	}

	return append(matchEvents(events, q), matchTeams(teams, q)...), nil
}

func matchEvents(events []model.Event, q string) []model.SearchResult {
	return lo.FilterMap(events, func(e model.Event, _ int) (model.SearchResult, bool) {
		hit := contains(e.Title, q) ||
			contains(e.Description, q) ||
			strings.Contains(strconv.Itoa(e.Year), q) ||
			contains(e.Team, q)
		if !hit {
			return model.SearchResult{}, false
		}

		return model.SearchResult{
			Type:        model.SearchResultEvent,
			ID:          e.ID,
			Title:       e.Title,
			Subtitle:    fmt.Sprintf("%d • %s", e.Year, lo.Ternary(e.Type != "", e.Type, "Event")),
			Description: Truncate(e.Description, DescriptionMaxLength),
		}, true
	})
}

func matchTeams(teams []model.Team, q string) []model.SearchResult {
	return lo.FilterMap(teams, func(t model.Team, _ int) (model.SearchResult, bool) {
		if !contains(t.Name, q) && !contains(t.Stadium, q) {
			return model.SearchResult{}, false
		}

		founded := "Unknown"
		if t.Founded > 0 {
			founded = strconv.Itoa(int(t.Founded))
		}

		return model.SearchResult{
			Type:        model.SearchResultTeam,
			ID:          t.ID,
			Title:       t.Name,
			Subtitle:    lo.Ternary(t.Stadium != "", t.Stadium, "Stadium TBA"),
			Description: "Founded: " + founded,
		}, true
	})
}

func contains(s, lowerQuery string) bool {
	return s != "" && strings.Contains(strings.ToLower(s), lowerQuery)
}

// Truncate cuts s to max runes and marks the cut with "...".
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
