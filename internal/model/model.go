package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ID accepts both JSON numbers and strings: the bundled files use numbers,
// TheSportsDB uses strings.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Year is a calendar year that may arrive as "1963", 1963, "" or null.
// Zero means unknown.
type Year int

func (y *Year) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		*y = 0
		return nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("year %q: %w", s, err)
	}
	*y = Year(n)
	return nil
}

// Event is one entry of the football history timeline.
type Event struct {
	ID          ID       `json:"id"`
	Year        int      `json:"year"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image,omitempty"`
	Source      string   `json:"source"`
	Tags        []string `json:"tags"`
	Team        string   `json:"team,omitempty"`
	Type        string   `json:"type"`
}

var (
	ErrMissingTitle = errors.New("missing title")
	ErrInvalidYear  = errors.New("invalid year")
	ErrMissingName  = errors.New("missing name")
)

func (e Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("event %s: %w", e.ID, ErrMissingTitle)
	}
	if e.Year <= 0 {
		return fmt.Errorf("event %s: %w", e.ID, ErrInvalidYear)
	}
	return nil
}

// Decade returns the decade the event belongs to, e.g. 2010 for 2018.
func (e Event) Decade() int {
	return e.Year / 10 * 10
}

type Team struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	Stadium string `json:"stadium,omitempty"`
	Founded Year   `json:"founded,omitempty"`
	Badge   string `json:"badge,omitempty"`
	League  string `json:"league"`

	// Optional enrichment. Left empty by the gateway, defaulted by whoever renders the team.
	Trophies     *int     `json:"trophies,omitempty"`
	Players      *int     `json:"players,omitempty"`
	Matches      *int     `json:"matches,omitempty"`
	Goals        *int     `json:"goals,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
	History      string   `json:"history,omitempty"`
	Squad        []Player `json:"squad,omitempty"`
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team %s: %w", t.ID, ErrMissingName)
	}
	return nil
}

type Player struct {
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
	Number   int    `json:"number,omitempty"`
}

type NewsSource struct {
	Name string `json:"name"`
}

type NewsArticle struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	URLToImage  string     `json:"urlToImage,omitempty"`
	PublishedAt time.Time  `json:"publishedAt"`
	Source      NewsSource `json:"source"`
}

// Article is a news article remembered by the channel notifier.
type Article struct {
	ID          int64
	Title       string
	URL         string
	Description string
	SourceName  string
	PublishedAt time.Time
	PostedAt    *time.Time
}

// Point-in-time weather read for one city.
type WeatherSnapshot struct {
	Temperature int     `json:"temperature"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
}

type FavoriteKind string

const (
	FavoriteTeams   FavoriteKind = "teams"
	FavoritePlayers FavoriteKind = "players"
	FavoriteEvents  FavoriteKind = "events"
)

func (k FavoriteKind) Valid() bool {
	switch k {
	case FavoriteTeams, FavoritePlayers, FavoriteEvents:
		return true
	}
	return false
}

// Favorite keeps a snapshot of the favorited item taken when it was added.
type Favorite struct {
	Kind    FavoriteKind    `json:"kind"`
	ItemID  ID              `json:"id"`
	Title   string          `json:"title"`
	Payload json.RawMessage `json:"item,omitempty"`
	AddedAt time.Time       `json:"addedAt"`
}

type Comment struct {
	ID        string    `json:"id"`
	EntityID  string    `json:"entityId"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"timestamp"`
}

type SearchResultType string

const (
	SearchResultEvent SearchResultType = "event"
	SearchResultTeam  SearchResultType = "team"
)

type SearchResult struct {
	Type        SearchResultType `json:"type"`
	ID          ID               `json:"id"`
	Title       string           `json:"title"`
	Subtitle    string           `json:"subtitle"`
	Description string           `json:"description"`
}

// WikiHit is one encyclopedia search result.
type WikiHit struct {
	PageID    int64  `json:"pageId"`
	Title     string `json:"title"`
	Snippet   string `json:"snippet"`
	WordCount int    `json:"wordCount"`
}

type WikiPage struct {
	PageID    int64  `json:"pageId"`
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	Thumbnail string `json:"thumbnail,omitempty"`
}
