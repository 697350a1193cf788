package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"washpos-backend/internal/domain"
	"washpos-backend/internal/repository"

	"github.com/go-chi/chi/v5"
)

type EmployeeHandler struct {
	Repo repository.EmployeeRepository
}

func (h EmployeeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/employees", h.list)
	r.Get("/employees/{id}", h.get)
	r.Post("/employees", h.create)
	r.Put("/employees/{id}", h.update)
}

func (h EmployeeHandler) list(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	items, err := h.Repo.List(r.Context(), activeOnly)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, e := range items {
		resp = append(resp, toEmployeeResponse(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h EmployeeHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	e, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeResponse(*e))
}

func (h EmployeeHandler) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		Role      string `json:"role"`
		DailyWage int64  `json:"dailyWage"`
		Shift     string `json:"shift"`
		Phone     string `json:"phone"`
		JoinDate  string `json:"joinDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" || req.Role == "" || req.DailyWage <= 0 {
		writeError(w, http.StatusBadRequest, "name, role and dailyWage are required")
		return
	}
	joinDate := domain.Today()
	if req.JoinDate != "" {
		parsed, err := domain.ParseDate(req.JoinDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "joinDate must be dd-mm-yyyy")
			return
		}
		joinDate = parsed
	}
	e, err := h.Repo.Create(r.Context(), repository.CreateEmployeeInput{
		Name:      req.Name,
		Role:      req.Role,
		DailyWage: req.DailyWage,
		Shift:     req.Shift,
		Phone:     req.Phone,
		JoinDate:  joinDate,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeResponse(*e))
}

func (h EmployeeHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Name      string `json:"name"`
		Role      string `json:"role"`
		DailyWage int64  `json:"dailyWage"`
		Shift     string `json:"shift"`
		Phone     string `json:"phone"`
		Active    bool   `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	e, err := h.Repo.Update(r.Context(), domain.Employee{
		ID:        id,
		Name:      req.Name,
		Role:      req.Role,
		DailyWage: domain.Money{Amount: req.DailyWage},
		Shift:     req.Shift,
		Phone:     req.Phone,
		Active:    req.Active,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeResponse(*e))
}

func toEmployeeResponse(e domain.Employee) map[string]any {
	return map[string]any{
		"id":        e.ID,
		"name":      e.Name,
		"role":      e.Role,
		"dailyWage": e.DailyWage.Amount,
		"shift":     e.Shift,
		"phone":     e.Phone,
		"active":    e.Active,
		"joinDate":  domain.FormatDate(e.JoinDate),
	}
}
