package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/hyperjump/annai/internal/catalog"
	"github.com/hyperjump/annai/internal/history"
	"github.com/hyperjump/annai/internal/router"
	"github.com/hyperjump/annai/internal/runner"
	"github.com/hyperjump/annai/internal/store"
)

type routeRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		s.respondError(w, http.StatusBadRequest, "query is required")
		return
	}
	s.logger.Debug("route request", zap.String("query", req.Query))
	decision, err := s.engine.Route(r.Context(), req.Query)
	if err != nil {
		if errors.Is(err, store.ErrNotInitialized) {
			s.respondError(w, http.StatusServiceUnavailable, "index not built yet")
			return
		}
		s.logger.Error("routing failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.recordDecision(r, decision)
	s.respondJSON(w, http.StatusOK, decision)
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		s.respondError(w, http.StatusBadRequest, "query is required")
		return
	}
	decision, err := s.engine.Route(r.Context(), req.Query)
	if err != nil {
		if errors.Is(err, store.ErrNotInitialized) {
			s.respondError(w, http.StatusServiceUnavailable, "index not built yet")
			return
		}
		s.logger.Error("routing failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	response, err := runner.Execute(decision.SelectedModel, req.Query)
	if err != nil {
		if errors.Is(err, runner.ErrUnknownModel) {
			s.respondError(w, http.StatusBadGateway, err.Error())
			return
		}
		s.logger.Error("execution failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.recordDecision(r, decision)
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"decision": decision,
		"response": response,
	})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	cat := s.engine.Catalog()
	q := r.URL.Query().Get("q")
	if q == "" || s.keyword == nil {
		s.respondJSON(w, http.StatusOK, map[string]interface{}{"models": cat.Models()})
		return
	}
	hits, err := s.keyword.Lookup(q, cat.Size())
	if err != nil {
		s.logger.Error("keyword lookup failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	models := make([]*catalog.Model, 0, len(hits))
	for _, hit := range hits {
		m, err := cat.ByName(hit.Name)
		if err != nil {
			continue
		}
		models = append(models, m)
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"models": models})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.histLog == nil {
		s.respondError(w, http.StatusNotImplemented, "history not enabled")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	entries, err := s.histLog.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("history query failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []*history.Entry{}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := s.engine.Store()
	resp := map[string]interface{}{
		"models":            s.engine.Catalog().Size(),
		"index_size":        st.Size(),
		"index_dimensions":  st.Dimensions(),
		"history_enabled":   s.histLog != nil,
		"keyword_enabled":   s.keyword != nil,
		"executable_models": runner.Names(),
	}
	if s.histLog != nil {
		if n, err := s.histLog.Count(r.Context()); err == nil {
			resp["decisions_recorded"] = n
		}
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) recordDecision(r *http.Request, d *router.Decision) {
	if s.histLog == nil {
		return
	}
	if _, err := s.histLog.Record(r.Context(), d); err != nil {
		s.logger.Warn("failed to record decision", zap.Error(err))
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
