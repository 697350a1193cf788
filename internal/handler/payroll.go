package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"washpos-backend/internal/domain"
	"washpos-backend/internal/repository"
	"washpos-backend/internal/service"

	"github.com/go-chi/chi/v5"
)

type PayrollHandler struct {
	Service  service.PayrollService
	Repo     repository.PayrollRepository
	Currency string
}

func (h PayrollHandler) RegisterRoutes(r chi.Router) {
	r.Get("/payroll", h.list)
	r.Post("/payroll", h.generate)
	r.Post("/payroll/{id}/pay", h.pay)
}

func (h PayrollHandler) list(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(r.URL.Query().Get("employeeId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "employeeId is required")
		return
	}
	items, err := h.Repo.ListByEmployee(r.Context(), employeeID, 50)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, p := range items {
		resp = append(resp, h.toPayrollResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h PayrollHandler) generate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID  int64  `json:"employeeId"`
		PeriodStart string `json:"periodStart"`
		PeriodEnd   string `json:"periodEnd"`
		Bonus       int64  `json:"bonus"`
		Deduction   int64  `json:"deduction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	start, err := domain.ParseDate(req.PeriodStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, "periodStart must be dd-mm-yyyy")
		return
	}
	end, err := domain.ParseDate(req.PeriodEnd)
	if err != nil {
		writeError(w, http.StatusBadRequest, "periodEnd must be dd-mm-yyyy")
		return
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "periodEnd before periodStart")
		return
	}
	rec, err := h.Service.GeneratePeriod(r.Context(), service.GeneratePayrollInput{
		EmployeeID:  req.EmployeeID,
		PeriodStart: start,
		PeriodEnd:   end,
		Bonus:       req.Bonus,
		Deduction:   req.Deduction,
		Actor:       actorName(r),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.toPayrollResponse(*rec))
}

func (h PayrollHandler) pay(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	rec, err := h.Service.Pay(r.Context(), id, actorName(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toPayrollResponse(*rec))
}

func (h PayrollHandler) toPayrollResponse(p domain.PayrollRecord) map[string]any {
	resp := map[string]any{
		"id":          p.ID,
		"employeeId":  p.EmployeeID,
		"periodStart": domain.FormatDate(p.PeriodStart),
		"periodEnd":   domain.FormatDate(p.PeriodEnd),
		"daysWorked":  p.DaysWorked,
		"basePay":     p.BasePay.Amount,
		"bonus":       p.Bonus.Amount,
		"deduction":   p.Deduction.Amount,
		"netPay":      p.NetPay.Amount,
		"currency":    h.Currency,
		"status":      p.Status,
	}
	if p.PaidAt != nil {
		resp["paidAt"] = domain.FormatDateTime(*p.PaidAt)
	}
	return resp
}
