package handler

import (
	"encoding/json"
	"net/http"

	"washpos-backend/internal/repository"

	"github.com/go-chi/chi/v5"
)

type SettingsHandler struct {
	Repo repository.SettingsRepository
}

func (h SettingsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/settings", h.list)
	r.Get("/settings/shifts", h.listShifts)
	r.Put("/settings/shifts/{shift}", h.putShift)
	r.Get("/settings/{key}", h.get)
	r.Put("/settings/{key}", h.put)
}

func (h SettingsHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	raw, err := h.Repo.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, raw)
}

func (h SettingsHandler) put(w http.ResponseWriter, r *http.Request) {
	var value json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON value")
		return
	}
	if err := h.Repo.Put(r.Context(), chi.URLParam(r, "key"), value); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h SettingsHandler) listShifts(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.ListShifts(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, s := range items {
		resp = append(resp, map[string]any{
			"shift":      s.Shift,
			"percentage": s.Percentage,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h SettingsHandler) putShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Percentage float64 `json:"percentage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Percentage <= 0 {
		writeError(w, http.StatusBadRequest, "percentage must be positive")
		return
	}
	if err := h.Repo.PutShift(r.Context(), chi.URLParam(r, "shift"), req.Percentage); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
