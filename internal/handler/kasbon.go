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

type KasBonHandler struct {
	Service  service.KasBonService
	Repo     repository.KasBonRepository
	Currency string
}

func (h KasBonHandler) RegisterRoutes(r chi.Router) {
	r.Get("/kasbon", h.list)
	r.Get("/kasbon/{id}", h.get)
	r.Post("/kasbon", h.create)
	r.Post("/kasbon/{id}/installments", h.payInstallment)
}

func (h KasBonHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context(), 200)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, kb := range items {
		resp = append(resp, h.toKasBonResponse(kb))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h KasBonHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	kb, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	installments, err := h.Repo.ListInstallments(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := h.toKasBonResponse(*kb)
	rows := make([]map[string]any, 0, len(installments))
	for _, p := range installments {
		row := map[string]any{
			"id":       p.ID,
			"paidDate": domain.FormatDate(p.PaidDate),
			"amount":   p.Amount.Amount,
			"method":   p.Method,
		}
		if p.PayrollID != nil {
			row["payrollId"] = *p.PayrollID
		}
		rows = append(rows, row)
	}
	resp["installments"] = rows
	writeJSON(w, http.StatusOK, resp)
}

func (h KasBonHandler) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID int64  `json:"employeeId"`
		Principal  int64  `json:"principal"`
		LoanDate   string `json:"loanDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	loanDate := domain.Today()
	if req.LoanDate != "" {
		parsed, err := domain.ParseDate(req.LoanDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "loanDate must be dd-mm-yyyy")
			return
		}
		loanDate = parsed
	}
	kb, err := h.Service.CreateAdvance(r.Context(), req.EmployeeID, req.Principal, loanDate, actorName(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.toKasBonResponse(*kb))
}

func (h KasBonHandler) payInstallment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Amount    int64  `json:"amount"`
		Method    string `json:"method"`
		PaidDate  string `json:"paidDate"`
		PayrollID *int64 `json:"payrollId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Method == "" {
		req.Method = string(domain.PayTunai)
	}
	paidDate := domain.Today()
	if req.PaidDate != "" {
		parsed, err := domain.ParseDate(req.PaidDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "paidDate must be dd-mm-yyyy")
			return
		}
		paidDate = parsed
	}
	payment, kb, err := h.Service.PayInstallment(r.Context(), service.PayInstallmentInput{
		KasBonID:  id,
		Amount:    req.Amount,
		Method:    domain.PaymentMethod(req.Method),
		PaidDate:  paidDate,
		PayrollID: req.PayrollID,
		Actor:     actorName(r),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := map[string]any{
		"id":        payment.ID,
		"amount":    payment.Amount.Amount,
		"method":    payment.Method,
		"paidDate":  domain.FormatDate(payment.PaidDate),
		"remaining": kb.Remaining.Amount,
		"status":    kb.Status,
	}
	if payment.PayrollID != nil {
		resp["payrollId"] = *payment.PayrollID
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h KasBonHandler) toKasBonResponse(kb domain.KasBon) map[string]any {
	return map[string]any{
		"id":         kb.ID,
		"employeeId": kb.EmployeeID,
		"loanDate":   domain.FormatDate(kb.LoanDate),
		"principal":  kb.Principal.Amount,
		"remaining":  kb.Remaining.Amount,
		"currency":   h.Currency,
		"status":     kb.Status,
	}
}
