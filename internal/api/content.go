package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/footyhub/uganda-footy-hub/internal/catalog"
	"github.com/footyhub/uganda-footy-hub/internal/model"
	"github.com/footyhub/uganda-footy-hub/internal/source"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			s.respondError(w, http.StatusServiceUnavailable, "store unhealthy", err)
			return
		}
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": s.clock().UTC(),
	})
}

// listEvents accepts decade, type and team query parameters; decade and
// type take comma separated lists.
func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.content.Events(r.Context())
	if err != nil {
		s.respondContentError(w, err)
		return
	}

	var decades []int
	for _, d := range queryList(r, "decade") {
		n, err := strconv.Atoi(d)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "decade must be a year like 1970", nil)
			return
		}
		decades = append(decades, n/10*10)
	}

	filtered := catalog.FilterEvents(events, catalog.EventFilter{
		Decades: decades,
		Types:   queryList(r, "type"),
		Team:    r.URL.Query().Get("team"),
	})

	s.respondJSON(w, http.StatusOK, map[string]any{
		"events":  filtered,
		"count":   len(filtered),
		"decades": catalog.Decades(events),
		"teams":   catalog.EventTeams(events),
	})
}

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	events, err := s.content.Events(r.Context())
	if err != nil {
		s.respondContentError(w, err)
		return
	}

	event, ok := catalog.EventByID(events, model.ID(chi.URLParam(r, "id")))
	if !ok {
		s.respondError(w, http.StatusNotFound, "event not found", nil)
		return
	}

	s.respondJSON(w, http.StatusOK, event)
}

func (s *Server) listTeams(w http.ResponseWriter, r *http.Request) {
	sortBy, err := catalog.ParseTeamSort(r.URL.Query().Get("sort"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	teams, err := s.content.Teams(r.Context())
	if err != nil {
		s.respondContentError(w, err)
		return
	}

	filtered := catalog.FilterTeams(teams, catalog.TeamQuery{
		League: r.URL.Query().Get("league"),
		Sort:   sortBy,
	})

	s.respondJSON(w, http.StatusOK, map[string]any{
		"teams": filtered,
		"count": len(filtered),
	})
}

func (s *Server) featuredTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.content.Teams(r.Context())
	if err != nil {
		s.respondContentError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"teams": catalog.Featured(teams),
	})
}

func (s *Server) getTeam(w http.ResponseWriter, r *http.Request) {
	teams, err := s.content.Teams(r.Context())
	if err != nil {
		s.respondContentError(w, err)
		return
	}

	team, ok := catalog.TeamByID(teams, model.ID(chi.URLParam(r, "id")))
	if !ok {
		s.respondError(w, http.StatusNotFound, "team not found", nil)
		return
	}

	s.respondJSON(w, http.StatusOK, catalog.Profile(team))
}

type newsItem struct {
	model.NewsArticle
	Label   string `json:"label"`
	TimeAgo string `json:"timeAgo"`
}

type newsResponse struct {
	Category catalog.NewsCategory `json:"category"`
	Featured *newsItem            `json:"featured,omitempty"`
	Articles []newsItem           `json:"articles"`
	Page     int                  `json:"page"`
	PerPage  int                  `json:"perPage"`
	Total    int                  `json:"total"`
	HasMore  bool                 `json:"hasMore"`
}

func (s *Server) listNews(w http.ResponseWriter, r *http.Request) {
	category, err := catalog.ParseNewsCategory(r.URL.Query().Get("category"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	news, err := s.content.News(r.Context())
	if err != nil {
		s.respondContentError(w, err)
		return
	}

	p := catalog.PaginateNews(
		catalog.FilterNews(news, category),
		parseIntParam(r, "page", 1),
		parseIntParam(r, "perPage", catalog.DefaultNewsPerPage),
	)

	now := s.clock()
	toItem := func(a model.NewsArticle, _ int) newsItem {
		return newsItem{NewsArticle: a, Label: catalog.Label(a), TimeAgo: catalog.TimeAgo(a.PublishedAt, now)}
	}

	resp := newsResponse{
		Category: category,
		Articles: lo.Map(p.Articles, toItem),
		Page:     p.Page,
		PerPage:  p.PerPage,
		Total:    p.Total,
		HasMore:  p.HasMore,
	}
	if p.Featured != nil {
		featured := toItem(*p.Featured, 0)
		resp.Featured = &featured
	}

	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) getWeather(w http.ResponseWriter, r *http.Request) {
	weather, err := s.content.Weather(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		s.respondContentError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, weather)
}

func (s *Server) searchContent(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results, err := s.search.Search(r.Context(), query)
	if err != nil {
		s.respondContentError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"results": results,
		"count":   len(results),
	})
}

func (s *Server) searchWiki(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.respondError(w, http.StatusBadRequest, "q is required", nil)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"query": query,
		"hits":  s.wiki.Search(r.Context(), query),
	})
}

func (s *Server) getWikiPage(w http.ResponseWriter, r *http.Request) {
	pageID, err := source.ParsePageID(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	page := s.wiki.Page(r.Context(), pageID)
	if page == nil {
		s.respondError(w, http.StatusNotFound, "page not found", nil)
		return
	}

	s.respondJSON(w, http.StatusOK, page)
}
