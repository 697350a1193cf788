package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"washpos-backend/internal/domain"
	"washpos-backend/internal/repository"

	"github.com/go-chi/chi/v5"
)

type AttendanceHandler struct {
	Repo      repository.AttendanceRepository
	Employees repository.EmployeeRepository
}

func (h AttendanceHandler) RegisterRoutes(r chi.Router) {
	r.Post("/attendance/checkin", h.checkIn)
	r.Post("/attendance/checkout", h.checkOut)
	r.Post("/attendance/status", h.markStatus)
	r.Get("/attendance", h.listMonth)
}

func (h AttendanceHandler) checkIn(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.decodeEmployee(w, r)
	if !ok {
		return
	}
	if err := h.Repo.CheckIn(r.Context(), employeeID, time.Now().In(domain.WIB)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h AttendanceHandler) checkOut(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.decodeEmployee(w, r)
	if !ok {
		return
	}
	if err := h.Repo.CheckOut(r.Context(), employeeID, time.Now().In(domain.WIB)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h AttendanceHandler) markStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID int64  `json:"employeeId"`
		Date       string `json:"date"`
		Status     string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	status := domain.AttendanceStatus(req.Status)
	if status != domain.AttendanceIzin && status != domain.AttendanceAlpha {
		writeError(w, http.StatusBadRequest, "status must be Izin or Alpha")
		return
	}
	date := domain.Today()
	if req.Date != "" {
		parsed, err := domain.ParseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be dd-mm-yyyy")
			return
		}
		date = parsed
	}
	if _, err := h.Employees.GetByID(r.Context(), req.EmployeeID); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.Repo.MarkStatus(r.Context(), req.EmployeeID, date, status); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h AttendanceHandler) listMonth(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(r.URL.Query().Get("employeeId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "employeeId is required")
		return
	}
	month := time.Now().In(domain.WIB)
	if m := r.URL.Query().Get("month"); m != "" {
		parsed, err := time.ParseInLocation("01-2006", m, domain.WIB)
		if err != nil {
			writeError(w, http.StatusBadRequest, "month must be mm-yyyy")
			return
		}
		month = parsed
	}
	items, err := h.Repo.ListMonth(r.Context(), employeeID, month)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, a := range items {
		row := map[string]any{
			"id":     a.ID,
			"date":   domain.FormatDate(a.Date),
			"status": a.Status,
		}
		if a.CheckIn != nil {
			row["checkIn"] = domain.FormatDateTime(*a.CheckIn)
		}
		if a.CheckOut != nil {
			row["checkOut"] = domain.FormatDateTime(*a.CheckOut)
		}
		resp = append(resp, row)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h AttendanceHandler) decodeEmployee(w http.ResponseWriter, r *http.Request) (int64, bool) {
	var req struct {
		EmployeeID int64 `json:"employeeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return 0, false
	}
	if req.EmployeeID == 0 {
		writeError(w, http.StatusBadRequest, "employeeId is required")
		return 0, false
	}
	if _, err := h.Employees.GetByID(r.Context(), req.EmployeeID); err != nil {
		writeDomainError(w, err)
		return 0, false
	}
	return req.EmployeeID, true
}
