package handler

import (
	"encoding/json"
	"net/http"

	"washpos-backend/internal/domain"
	"washpos-backend/internal/repository"
	"washpos-backend/internal/service"

	"github.com/go-chi/chi/v5"
)

type ReviewHandler struct {
	Service service.ReviewService
	Repo    repository.ReviewRepository
	Points  repository.PointsRepository
}

func (h ReviewHandler) RegisterRoutes(r chi.Router) {
	r.Get("/reviews", h.list)
	r.Post("/reviews", h.submit)
	r.Get("/points/{plate}", h.points)
}

func (h ReviewHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context(), 200)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, rev := range items {
		resp = append(resp, map[string]any{
			"id":                 rev.ID,
			"kasirTransactionId": rev.KasirTransactionID,
			"rating":             rev.Rating,
			"text":               rev.Text,
			"rewardPoints":       rev.RewardPoints,
			"createdAt":          domain.FormatDateTime(rev.CreatedAt),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h ReviewHandler) submit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SecretCode string `json:"secretCode"`
		Rating     int    `json:"rating"`
		Text       string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.SecretCode == "" {
		writeError(w, http.StatusBadRequest, "secretCode is required")
		return
	}
	rev, err := h.Service.Submit(r.Context(), service.SubmitReviewInput{
		SecretCode: req.SecretCode,
		Rating:     req.Rating,
		Text:       req.Text,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":           rev.ID,
		"rating":       rev.Rating,
		"rewardPoints": rev.RewardPoints,
	})
}

func (h ReviewHandler) points(w http.ResponseWriter, r *http.Request) {
	items, err := h.Points.GetByPlate(r.Context(), chi.URLParam(r, "plate"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, p := range items {
		resp = append(resp, map[string]any{
			"plate":     p.Plate,
			"phone":     p.Phone,
			"points":    p.Points,
			"updatedAt": domain.FormatDateTime(p.UpdatedAt),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
