package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/footyhub/uganda-footy-hub/internal/catalog"
	"github.com/footyhub/uganda-footy-hub/internal/fetch"
	"github.com/footyhub/uganda-footy-hub/internal/gateway"
	"github.com/footyhub/uganda-footy-hub/internal/model"
	"github.com/footyhub/uganda-footy-hub/internal/search"
	"github.com/footyhub/uganda-footy-hub/internal/source"
	"github.com/footyhub/uganda-footy-hub/internal/storage"
)

type fakeContent struct {
	err         error
	weatherCity string
}

func (c *fakeContent) Events(context.Context) ([]model.Event, error) {
	return []model.Event{
		{ID: "101", Year: 1978, Title: "AFCON final", Description: "Cranes reach the final in Ghana.", Type: "international"},
		{ID: "102", Year: 2019, Title: "Round of 16", Description: "Cranes advance in Egypt.", Type: "international"},
		{ID: "103", Year: 2013, Title: "KCCA title", Description: "KCCA FC win the league.", Team: "KCCA FC", Type: "league"},
	}, c.err
}

func (c *fakeContent) Teams(context.Context) ([]model.Team, error) {
	return []model.Team{
		{ID: "2", Name: "Vipers SC", Stadium: "St. Mary's Stadium", League: "Uganda Premier League", Founded: 1969},
		{ID: "1", Name: "KCCA FC", League: "Uganda Premier League", Founded: 1963},
		{ID: "7", Name: "Uganda Cranes", Stadium: "Mandela National Stadium", League: "International"},
	}, c.err
}

func (c *fakeContent) News(context.Context) ([]model.NewsArticle, error) {
	now := time.Now()
	return []model.NewsArticle{
		{Title: "Cranes squad named", URL: "https://a/1", PublishedAt: now.Add(-time.Hour)},
		{Title: "Vipers transfer news", URL: "https://a/2", PublishedAt: now.Add(-2 * time.Hour)},
		{Title: "League match report", URL: "https://a/3", PublishedAt: now.Add(-3 * time.Hour)},
	}, c.err
}

func (c *fakeContent) Weather(_ context.Context, city string) (model.WeatherSnapshot, error) {
	c.weatherCity = city
	return model.WeatherSnapshot{City: city, Temperature: 24}, c.err
}

type fakeCache struct {
	invalidated []gateway.Resource
	all         bool
}

func (c *fakeCache) Stats() []gateway.ResourceStats {
	return []gateway.ResourceStats{{Resource: gateway.Events, State: gateway.StateFresh, Hits: 2}}
}

func (c *fakeCache) Invalidate(r gateway.Resource) { c.invalidated = append(c.invalidated, r) }
func (c *fakeCache) InvalidateAll()                 { c.all = true }

type fakeWiki struct{}

func (fakeWiki) Search(_ context.Context, query string) []model.WikiHit {
	return []model.WikiHit{{PageID: 42, Title: query}}
}

func (fakeWiki) Page(_ context.Context, pageID int64) *model.WikiPage {
	if pageID != 42 {
		return nil
	}
	return &model.WikiPage{PageID: 42, Title: "Uganda Cranes"}
}

type testServer struct {
	content *fakeContent
	cache   *fakeCache
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := storage.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ts := &testServer{content: &fakeContent{}, cache: &fakeCache{}}
	ts.handler = New(Options{
		Content:   ts.content,
		Cache:     ts.cache,
		Search:    search.New(ts.content),
		Wiki:      fakeWiki{},
		Favorites: storage.NewFavoriteStorage(db),
		Comments:  storage.NewCommentStorage(db),
		DB:        db,
	}).Handler()

	return ts
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body %s", rec.Code, want, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/health", "")
	expectStatus(t, rec, http.StatusOK)

	if got := decode[map[string]any](t, rec)["status"]; got != "healthy" {
		t.Errorf("status = %v", got)
	}
}

func TestEvents(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/events?decade=2010&type=international,league", "")
	expectStatus(t, rec, http.StatusOK)

	resp := decode[struct {
		Events  []model.Event `json:"events"`
		Count   int           `json:"count"`
		Decades []int         `json:"decades"`
		Teams   []string      `json:"teams"`
	}](t, rec)

	if resp.Count != 2 || resp.Events[0].ID != "102" || resp.Events[1].ID != "103" {
		t.Errorf("events = %+v", resp.Events)
	}
	if fmt.Sprint(resp.Decades) != "[2010 1970]" {
		t.Errorf("decades = %v", resp.Decades)
	}
	if fmt.Sprint(resp.Teams) != "[KCCA FC]" {
		t.Errorf("teams = %v", resp.Teams)
	}

	expectStatus(t, ts.do(t, http.MethodGet, "/api/v1/events?decade=seventies", ""), http.StatusBadRequest)
}

func TestEventByID(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/events/101", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[model.Event](t, rec); got.Title != "AFCON final" {
		t.Errorf("event = %+v", got)
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/events/999", "")
	expectStatus(t, rec, http.StatusNotFound)
	if got := decode[ErrorResponse](t, rec); got.Code != http.StatusNotFound || got.Message != "event not found" {
		t.Errorf("error = %+v", got)
	}
}

func TestTeams(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/teams?league=premier&sort=founded", "")
	expectStatus(t, rec, http.StatusOK)

	resp := decode[struct {
		Teams []model.Team `json:"teams"`
		Count int          `json:"count"`
	}](t, rec)
	if resp.Count != 2 || resp.Teams[0].Name != "KCCA FC" || resp.Teams[1].Name != "Vipers SC" {
		t.Errorf("teams = %+v", resp.Teams)
	}

	expectStatus(t, ts.do(t, http.MethodGet, "/api/v1/teams?sort=goals", ""), http.StatusBadRequest)

	rec = ts.do(t, http.MethodGet, "/api/v1/teams/featured", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[map[string][]model.Team](t, rec)["teams"]; len(got) != 3 || got[0].ID != "2" {
		t.Errorf("featured = %+v", got)
	}
}

func TestTeamProfile(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/teams/1", "")
	expectStatus(t, rec, http.StatusOK)

	resp := decode[map[string]any](t, rec)
	if resp["stadium"] != "Stadium TBA" || resp["founded"] != "1963" {
		t.Errorf("profile = %v", resp)
	}

	expectStatus(t, ts.do(t, http.MethodGet, "/api/v1/teams/404", ""), http.StatusNotFound)
}

func TestNews(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/news?perPage=1", "")
	expectStatus(t, rec, http.StatusOK)

	resp := decode[newsResponse](t, rec)
	if resp.Featured == nil || resp.Featured.Title != "Cranes squad named" {
		t.Fatalf("featured = %+v", resp.Featured)
	}
	if len(resp.Articles) != 1 || resp.Articles[0].Label != "Transfer" || resp.Articles[0].TimeAgo != "2 hours ago" {
		t.Errorf("articles = %+v", resp.Articles)
	}
	if !resp.HasMore || resp.Total != 3 {
		t.Errorf("page = %+v", resp)
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/news?category=matches", "")
	expectStatus(t, rec, http.StatusOK)
	if resp := decode[newsResponse](t, rec); resp.Total != 1 || resp.Featured.Label != "Match" {
		t.Errorf("matches = %+v", resp)
	}

	expectStatus(t, ts.do(t, http.MethodGet, "/api/v1/news?category=gossip", ""), http.StatusBadRequest)

	rec = ts.do(t, http.MethodGet, "/api/v1/news?page=2&perPage=9223372036854775807", "")
	expectStatus(t, rec, http.StatusOK)
	if resp := decode[newsResponse](t, rec); len(resp.Articles) != 0 || resp.PerPage != catalog.MaxNewsPerPage {
		t.Errorf("huge perPage = %+v", resp)
	}
}

func TestWeather(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/weather?city=Jinja,UG", "")
	expectStatus(t, rec, http.StatusOK)

	if ts.content.weatherCity != "Jinja,UG" {
		t.Errorf("city = %q", ts.content.weatherCity)
	}
	if got := decode[model.WeatherSnapshot](t, rec); got.Temperature != 24 {
		t.Errorf("weather = %+v", got)
	}
}

func TestStrictPolicyErrors(t *testing.T) {
	ts := newTestServer(t)
	ts.content.err = fmt.Errorf("teams: %w", gateway.ErrSourcesExhausted)

	expectStatus(t, ts.do(t, http.MethodGet, "/api/v1/teams", ""), http.StatusServiceUnavailable)

	ts.content.err = io.ErrUnexpectedEOF
	expectStatus(t, ts.do(t, http.MethodGet, "/api/v1/events", ""), http.StatusInternalServerError)
}

func TestSearch(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/search?q=kcca", "")
	expectStatus(t, rec, http.StatusOK)

	resp := decode[struct {
		Results []model.SearchResult `json:"results"`
		Count   int                  `json:"count"`
	}](t, rec)
	if resp.Count != 2 || resp.Results[0].Type != model.SearchResultEvent || resp.Results[1].Type != model.SearchResultTeam {
		t.Errorf("results = %+v", resp.Results)
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/search?q=k", "")
	expectStatus(t, rec, http.StatusOK)
	if resp := decode[map[string]any](t, rec); resp["count"] != float64(0) {
		t.Errorf("short query = %v", resp)
	}
}

func TestWiki(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/wiki/search?q=Cranes", "")
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `"pageId":42`) {
		t.Errorf("body = %s", rec.Body.String())
	}

	expectStatus(t, ts.do(t, http.MethodGet, "/api/v1/wiki/search", ""), http.StatusBadRequest)
	expectStatus(t, ts.do(t, http.MethodGet, "/api/v1/wiki/pages/42", ""), http.StatusOK)
	expectStatus(t, ts.do(t, http.MethodGet, "/api/v1/wiki/pages/7", ""), http.StatusNotFound)
	expectStatus(t, ts.do(t, http.MethodGet, "/api/v1/wiki/pages/abc", ""), http.StatusBadRequest)
}

func TestFavoritesFlow(t *testing.T) {
	ts := newTestServer(t)

	body := `{"kind": "teams", "id": "1", "title": "KCCA FC", "item": {"name": "KCCA FC"}}`
	expectStatus(t, ts.do(t, http.MethodPost, "/api/v1/favorites", body), http.StatusCreated)

	rec := ts.do(t, http.MethodPost, "/api/v1/favorites", body)
	expectStatus(t, rec, http.StatusOK)
	if decode[map[string]bool](t, rec)["added"] {
		t.Error("duplicate favorite reported as added")
	}

	expectStatus(t, ts.do(t, http.MethodPost, "/api/v1/favorites", `{"kind": "coaches", "id": "1"}`), http.StatusBadRequest)
	expectStatus(t, ts.do(t, http.MethodPost, "/api/v1/favorites", `{"kind": "teams"}`), http.StatusBadRequest)
	expectStatus(t, ts.do(t, http.MethodPost, "/api/v1/favorites", `not json`), http.StatusBadRequest)

	rec = ts.do(t, http.MethodGet, "/api/v1/favorites/teams/1", "")
	expectStatus(t, rec, http.StatusOK)
	if !decode[map[string]bool](t, rec)["favorite"] {
		t.Error("team 1 should be a favorite")
	}

	expectStatus(t, ts.do(t, http.MethodPost, "/api/v1/favorites", `{"kind": "players", "id": "Denis Onyango"}`), http.StatusCreated)

	rec = ts.do(t, http.MethodGet, "/api/v1/favorites", "")
	expectStatus(t, rec, http.StatusOK)
	list := decode[struct {
		Favorites map[model.FavoriteKind][]model.Favorite `json:"favorites"`
		Count     int                                     `json:"count"`
	}](t, rec)
	if list.Count != 2 || len(list.Favorites[model.FavoriteTeams]) != 1 || list.Favorites[model.FavoriteTeams][0].Title != "KCCA FC" {
		t.Errorf("favorites = %+v", list)
	}

	rec = ts.do(t, http.MethodDelete, "/api/v1/favorites?kind=teams&id=1", "")
	expectStatus(t, rec, http.StatusOK)
	if !decode[map[string]bool](t, rec)["removed"] {
		t.Error("favorite not removed")
	}

	expectStatus(t, ts.do(t, http.MethodDelete, "/api/v1/favorites", ""), http.StatusNoContent)

	rec = ts.do(t, http.MethodGet, "/api/v1/favorites", "")
	if got := decode[map[string]any](t, rec)["count"]; got != float64(0) {
		t.Errorf("count after clear = %v", got)
	}
}

func TestCommentsFlow(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/comments/team-1", `{"text": "short"}`)
	expectStatus(t, rec, http.StatusBadRequest)
	if got := decode[ErrorResponse](t, rec); !strings.Contains(got.Message, "at least 10") {
		t.Errorf("message = %q", got.Message)
	}

	rec = ts.do(t, http.MethodPost, "/api/v1/comments/team-1", `{"text": "What a season for KCCA!"}`)
	expectStatus(t, rec, http.StatusCreated)
	comment := decode[model.Comment](t, rec)
	if comment.Author != storage.DefaultAuthor || comment.EntityID != "team-1" {
		t.Errorf("comment = %+v", comment)
	}

	likePath := "/api/v1/comments/team-1/" + comment.ID + "/like"
	rec = ts.do(t, http.MethodPost, likePath, "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[map[string]int](t, rec)["likes"]; got != 1 {
		t.Errorf("likes = %d", got)
	}

	expectStatus(t, ts.do(t, http.MethodPost, "/api/v1/comments/team-2/"+comment.ID+"/like", ""), http.StatusNotFound)

	rec = ts.do(t, http.MethodGet, "/api/v1/comments/team-1", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[map[string]any](t, rec)["count"]; got != float64(1) {
		t.Errorf("count = %v", got)
	}

	expectStatus(t, ts.do(t, http.MethodDelete, "/api/v1/comments/team-1/"+comment.ID, ""), http.StatusNoContent)
	expectStatus(t, ts.do(t, http.MethodDelete, "/api/v1/comments/team-1/"+comment.ID, ""), http.StatusNotFound)
}

func TestCache(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/cache", "")
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `"state":"fresh"`) {
		t.Errorf("body = %s", rec.Body.String())
	}

	expectStatus(t, ts.do(t, http.MethodDelete, "/api/v1/cache/news", ""), http.StatusNoContent)
	if len(ts.cache.invalidated) != 1 || ts.cache.invalidated[0] != gateway.News {
		t.Errorf("invalidated = %v", ts.cache.invalidated)
	}

	expectStatus(t, ts.do(t, http.MethodDelete, "/api/v1/cache/all", ""), http.StatusNoContent)
	if !ts.cache.all {
		t.Error("InvalidateAll not called")
	}

	expectStatus(t, ts.do(t, http.MethodDelete, "/api/v1/cache/players", ""), http.StatusBadRequest)
}

func TestCacheStatsHideAPIKeys(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":"error","code":"apiKeyInvalid"}`, http.StatusUnauthorized)
	}))
	defer upstream.Close()

	client := fetch.NewClient(fetch.ClientOptions{Timeout: 2 * time.Second})
	gw := gateway.New(gateway.Options{
		DefaultCity: "Kampala,UG",
		Sources: gateway.Sources{
			News: []gateway.Source[[]model.NewsArticle]{
				source.NewNewsAPI(client, source.NewsAPIOptions{
					BaseURL:  upstream.URL,
					APIKey:   "SECRET-NEWS-KEY",
					Query:    "Uganda football",
					Language: "en",
					PageSize: 10,
				}),
			},
			Weather: []gateway.Source[model.WeatherSnapshot]{
				source.NewOpenWeatherMap(client, upstream.URL, "SECRET-OWM-KEY", "metric"),
			},
		},
	})

	ctx := context.Background()
	if _, err := gw.News(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := gw.Weather(ctx, ""); err != nil {
		t.Fatal(err)
	}

	handler := New(Options{Content: gw, Cache: gw}).Handler()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cache", nil))
	expectStatus(t, rec, http.StatusOK)

	body := rec.Body.String()
	if !strings.Contains(body, "401") {
		t.Errorf("expected the upstream failure in stats, got %s", body)
	}
	for _, key := range []string{"SECRET-NEWS-KEY", "SECRET-OWM-KEY"} {
		if strings.Contains(body, key) {
			t.Errorf("cache stats expose %s: %s", key, body)
		}
	}
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather", nil)
	req.Header.Set("Origin", "https://footyhub.example")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("missing CORS header")
	}
}
