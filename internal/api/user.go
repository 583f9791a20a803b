package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/footyhub/uganda-footy-hub/internal/gateway"
	"github.com/footyhub/uganda-footy-hub/internal/model"
	"github.com/footyhub/uganda-footy-hub/internal/storage"
)

func (s *Server) listFavorites(w http.ResponseWriter, r *http.Request) {
	byKind, err := s.favorites.List(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to list favorites", err)
		return
	}

	count, err := s.favorites.Count(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to count favorites", err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"favorites": byKind,
		"count":     count,
	})
}

type addFavoriteRequest struct {
	Kind  model.FavoriteKind `json:"kind"`
	ID    model.ID           `json:"id"`
	Title string             `json:"title"`
	Item  json.RawMessage    `json:"item"`
}

func (s *Server) addFavorite(w http.ResponseWriter, r *http.Request) {
	var req addFavoriteRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if req.ID == "" {
		s.respondError(w, http.StatusBadRequest, "id is required", nil)
		return
	}

	added, err := s.favorites.Add(r.Context(), model.Favorite{
		Kind:    req.Kind,
		ItemID:  req.ID,
		Title:   req.Title,
		Payload: req.Item,
	})
	if errors.Is(err, storage.ErrInvalidKind) {
		s.respondError(w, http.StatusBadRequest, "kind must be one of teams, players, events", nil)
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to add favorite", err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	s.respondJSON(w, status, map[string]bool{"added": added})
}

// removeFavorite removes one item given kind and id, or clears every
// favorite when neither is given.
func (s *Server) removeFavorite(w http.ResponseWriter, r *http.Request) {
	kind := model.FavoriteKind(r.URL.Query().Get("kind"))
	id := model.ID(r.URL.Query().Get("id"))

	if kind == "" && id == "" {
		if err := s.favorites.Clear(r.Context()); err != nil {
			s.respondError(w, http.StatusInternalServerError, "failed to clear favorites", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	removed, err := s.favorites.Remove(r.Context(), kind, id)
	if errors.Is(err, storage.ErrInvalidKind) {
		s.respondError(w, http.StatusBadRequest, "kind must be one of teams, players, events", nil)
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to remove favorite", err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (s *Server) containsFavorite(w http.ResponseWriter, r *http.Request) {
	ok, err := s.favorites.Contains(
		r.Context(),
		model.FavoriteKind(chi.URLParam(r, "kind")),
		model.ID(chi.URLParam(r, "id")),
	)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to check favorite", err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]bool{"favorite": ok})
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	entityID := chi.URLParam(r, "entityID")

	comments, err := s.comments.List(r.Context(), entityID)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to list comments", err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"entityId": entityID,
		"comments": comments,
		"count":    len(comments),
	})
}

type addCommentRequest struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

func (s *Server) addComment(w http.ResponseWriter, r *http.Request) {
	var req addCommentRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	comment, err := s.comments.Add(r.Context(), chi.URLParam(r, "entityID"), req.Author, req.Text)
	if storage.ValidationError(err) {
		s.respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to add comment", err)
		return
	}

	s.respondJSON(w, http.StatusCreated, comment)
}

func (s *Server) likeComment(w http.ResponseWriter, r *http.Request) {
	likes, err := s.comments.Like(r.Context(), chi.URLParam(r, "entityID"), chi.URLParam(r, "commentID"))
	if errors.Is(err, storage.ErrCommentNotFound) {
		s.respondError(w, http.StatusNotFound, "comment not found", nil)
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to like comment", err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]int{"likes": likes})
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	err := s.comments.Delete(r.Context(), chi.URLParam(r, "entityID"), chi.URLParam(r, "commentID"))
	if errors.Is(err, storage.ErrCommentNotFound) {
		s.respondError(w, http.StatusNotFound, "comment not found", nil)
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to delete comment", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) cacheStats(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"resources": s.cache.Stats(),
	})
}

func (s *Server) invalidateCache(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "resource")
	if name == "all" {
		s.cache.InvalidateAll()
		w.WriteHeader(http.StatusNoContent)
		return
	}

	res, err := gateway.ParseResource(name)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	s.cache.Invalidate(res)
	w.WriteHeader(http.StatusNoContent)
}
