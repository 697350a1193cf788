package handler

import (
	"encoding/json"
	"net/http"

	"washpos-backend/internal/domain"
	"washpos-backend/internal/repository"
	"washpos-backend/internal/service"

	"github.com/go-chi/chi/v5"
)

type CheckoutHandler struct {
	Service  service.CheckoutService
	Repo     repository.KasirRepository
	Currency string
}

func (h CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Get("/kasir", h.list)
	r.Post("/kasir", h.checkout)
}

func (h CheckoutHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context(), 200)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, t := range items {
		resp = append(resp, h.toKasirResponse(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h CheckoutHandler) checkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Plate             string `json:"plate"`
		WashTransactionID *int64 `json:"washTransactionId"`
		PaymentMethod     string `json:"paymentMethod"`
		Items             []struct {
			Name      string `json:"name"`
			UnitPrice int64  `json:"unitPrice"`
			Qty       int    `json:"qty"`
		} `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.WashTransactionID == nil && len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "nothing to charge")
		return
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = string(domain.PayTunai)
	}
	items := make([]repository.CreateCoffeeSale, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Name == "" || it.Qty <= 0 || it.UnitPrice < 0 {
			writeError(w, http.StatusBadRequest, "invalid item")
			return
		}
		items = append(items, repository.CreateCoffeeSale{Name: it.Name, UnitPrice: it.UnitPrice, Qty: it.Qty})
	}
	out, err := h.Service.Checkout(r.Context(), service.CheckoutInput{
		Plate:             req.Plate,
		WashTransactionID: req.WashTransactionID,
		Items:             items,
		PaymentMethod:     domain.PaymentMethod(req.PaymentMethod),
		Actor:             actorName(r),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.toKasirResponse(*out))
}

func (h CheckoutHandler) toKasirResponse(t domain.KasirTransaction) map[string]any {
	items := make([]map[string]any, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, map[string]any{
			"name":      it.Name,
			"unitPrice": it.UnitPrice.Amount,
			"qty":       it.Qty,
			"subtotal":  it.Subtotal.Amount,
		})
	}
	resp := map[string]any{
		"id":            t.ID,
		"secretCode":    t.SecretCode,
		"plate":         t.Plate,
		"washTotal":     t.WashTotal.Amount,
		"cafeTotal":     t.CafeTotal.Amount,
		"total":         t.Total.Amount,
		"currency":      h.Currency,
		"paymentMethod": t.PaymentMethod,
		"transactedAt":  domain.FormatDateTime(t.TransactedAt),
		"items":         items,
	}
	if t.WashTransactionID != nil {
		resp["washTransactionId"] = *t.WashTransactionID
	}
	return resp
}
