package handler

import (
	"encoding/json"
	"net/http"

	"washpos-backend/internal/domain"
	"washpos-backend/internal/repository"

	"github.com/go-chi/chi/v5"
)

type CustomerHandler struct {
	Repo repository.CustomerRepository
}

func (h CustomerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/customers", h.list)
	r.Get("/customers/{plate}", h.get)
	r.Post("/customers", h.create)
	r.Put("/customers/{plate}", h.update)
}

func (h CustomerHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context(), 500)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, c := range items {
		resp = append(resp, toCustomerResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h CustomerHandler) get(w http.ResponseWriter, r *http.Request) {
	c, err := h.Repo.GetByPlate(r.Context(), chi.URLParam(r, "plate"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(*c))
}

func (h CustomerHandler) create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCustomer(w, r)
	if !ok {
		return
	}
	saved, err := h.Repo.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCustomerResponse(*saved))
}

func (h CustomerHandler) update(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCustomer(w, r)
	if !ok {
		return
	}
	req.Plate = chi.URLParam(r, "plate")
	saved, err := h.Repo.Update(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(*saved))
}

func decodeCustomer(w http.ResponseWriter, r *http.Request) (domain.Customer, bool) {
	var req struct {
		Plate       string `json:"plate"`
		Name        string `json:"name"`
		Phone       string `json:"phone"`
		VehicleType string `json:"vehicleType"`
		Brand       string `json:"brand"`
		Size        string `json:"size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return domain.Customer{}, false
	}
	if req.Plate == "" && r.Method == http.MethodPost {
		writeError(w, http.StatusBadRequest, "plate is required")
		return domain.Customer{}, false
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return domain.Customer{}, false
	}
	if req.Size == "" {
		req.Size = "M"
	}
	return domain.Customer{
		Plate:       req.Plate,
		Name:        req.Name,
		Phone:       req.Phone,
		VehicleType: req.VehicleType,
		Brand:       req.Brand,
		Size:        req.Size,
	}, true
}

func toCustomerResponse(c domain.Customer) map[string]any {
	return map[string]any{
		"id":          c.ID,
		"plate":       c.Plate,
		"name":        c.Name,
		"phone":       c.Phone,
		"vehicleType": c.VehicleType,
		"brand":       c.Brand,
		"size":        c.Size,
		"createdAt":   domain.FormatDateTime(c.CreatedAt),
	}
}
