package handler

import (
	"net/http"
	"strconv"

	"washpos-backend/internal/domain"
	"washpos-backend/internal/repository"

	"github.com/go-chi/chi/v5"
)

type AuditHandler struct {
	Repo repository.AuditRepository
}

func (h AuditHandler) RegisterRoutes(r chi.Router) {
	r.Get("/audit", h.list)
}

func (h AuditHandler) list(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.Repo.List(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, map[string]any{
			"id":       e.ID,
			"action":   e.Action,
			"entity":   e.Entity,
			"detail":   e.Detail,
			"actor":    e.Actor,
			"loggedAt": domain.FormatDateTime(e.LoggedAt),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
