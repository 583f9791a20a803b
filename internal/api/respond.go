package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/footyhub/uganda-footy-hub/internal/gateway"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		s.log.Error(message, zap.Int("status", status), zap.Error(err))
	}

	s.respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

// respondContentError maps a gateway failure. Only a strict policy lets one
// through, and then the upstreams are what is unavailable.
func (s *Server) respondContentError(w http.ResponseWriter, err error) {
	if errors.Is(err, gateway.ErrSourcesExhausted) {
		s.respondError(w, http.StatusServiceUnavailable, "content temporarily unavailable", err)
		return
	}
	s.respondError(w, http.StatusInternalServerError, "failed to load content", err)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func parseIntParam(r *http.Request, param string, defaultValue int) int {
	valueStr := r.URL.Query().Get(param)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// queryList reads a comma separated query parameter, also accepting the
// parameter repeated.
func queryList(r *http.Request, param string) []string {
	var out []string
	for _, v := range r.URL.Query()[param] {
		out = append(out, lo.FilterMap(strings.Split(v, ","), func(s string, _ int) (string, bool) {
			s = strings.TrimSpace(s)
			return s, s != ""
		})...)
	}
	return out
}
