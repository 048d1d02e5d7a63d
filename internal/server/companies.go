package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soldes-dev/soldes/internal/registry"
)

func (s *Server) handleCompany(w http.ResponseWriter, r *http.Request) {
	if s.registry == nil {
		writeError(w, http.StatusServiceUnavailable, "company register not configured")
		return
	}

	company, err := s.registry.Lookup(r.Context(), chi.URLParam(r, "siren"))
	if err != nil {
		var httpErr *registry.HTTPError
		switch {
		case errors.Is(err, registry.ErrInvalidSIREN):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, registry.ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.As(err, &httpErr):
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			s.logger.Error("company lookup failed", "error", err)
			writeError(w, http.StatusBadGateway, "company register unavailable")
		}
		return
	}
	writeJSON(w, http.StatusOK, company)
}
