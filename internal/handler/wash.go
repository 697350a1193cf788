package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"washpos-backend/internal/domain"
	"washpos-backend/internal/repository"
	"washpos-backend/internal/server/authctx"
	"washpos-backend/internal/service"

	"github.com/go-chi/chi/v5"
)

type WashHandler struct {
	Service  service.WashService
	Repo     repository.WashRepository
	Currency string
}

func (h WashHandler) RegisterRoutes(r chi.Router) {
	r.Get("/washes", h.list)
	r.Get("/washes/{id}", h.get)
	r.Post("/washes", h.checkIn)
	r.Post("/washes/{id}/checkout", h.checkOut)
}

func (h WashHandler) list(w http.ResponseWriter, r *http.Request) {
	plate := r.URL.Query().Get("plate")
	var (
		items []domain.WashTransaction
		err   error
	)
	if plate != "" {
		items, err = h.Repo.ListByPlate(r.Context(), plate, 200)
	} else {
		items, err = h.Repo.List(r.Context(), 200)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, wt := range items {
		resp = append(resp, h.toWashResponse(wt))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h WashHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	wt, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toWashResponse(*wt))
}

func (h WashHandler) checkIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Plate            string   `json:"plate"`
		Package          string   `json:"package"`
		ArrivalChecklist []string `json:"arrivalChecklist"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Plate == "" || req.Package == "" {
		writeError(w, http.StatusBadRequest, "plate and package are required")
		return
	}
	wt, err := h.Service.CheckIn(r.Context(), service.CheckInInput{
		Plate:            req.Plate,
		Package:          req.Package,
		ArrivalChecklist: req.ArrivalChecklist,
		Actor:            actorName(r),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.toWashResponse(*wt))
}

func (h WashHandler) checkOut(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		CompletionChecklist []string `json:"completionChecklist"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	wt, err := h.Service.CheckOut(r.Context(), id, req.CompletionChecklist, actorName(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toWashResponse(*wt))
}

func (h WashHandler) toWashResponse(wt domain.WashTransaction) map[string]any {
	resp := map[string]any{
		"id":                  wt.ID,
		"plate":               wt.Plate,
		"package":             wt.Package,
		"price":               wt.Price.Amount,
		"currency":            h.Currency,
		"status":              wt.Status,
		"checkIn":             domain.FormatDateTime(wt.CheckIn),
		"arrivalChecklist":    wt.ArrivalChecklist,
		"completionChecklist": wt.CompletionChecklist,
	}
	if wt.CheckOut != nil {
		resp["checkOut"] = domain.FormatDateTime(*wt.CheckOut)
	}
	return resp
}

func actorName(r *http.Request) string {
	if u := authctx.FromContext(r.Context()); u != nil {
		return u.Username
	}
	return ""
}
