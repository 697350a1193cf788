package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"washpos-backend/internal/domain"
	"washpos-backend/internal/repository"

	"github.com/google/uuid"
)

// CheckoutService turns a finished wash plus café items into one payment
// record carrying a single-use review code.
type CheckoutService struct {
	Kasir repository.KasirRepository
	Wash  repository.WashRepository
	Audit repository.AuditRepository
}

type CheckoutInput struct {
	Plate             string
	WashTransactionID *int64
	Items             []repository.CreateCoffeeSale
	PaymentMethod     domain.PaymentMethod
	Actor             string
}

func (s CheckoutService) Checkout(ctx context.Context, in CheckoutInput) (*domain.KasirTransaction, error) {
	var washTotal int64
	plate := in.Plate
	if in.WashTransactionID != nil {
		wash, err := s.Wash.GetByID(ctx, *in.WashTransactionID)
		if err != nil {
			return nil, err
		}
		washTotal = wash.Price.Amount
		plate = wash.Plate
	}

	out, err := s.Kasir.Create(ctx, repository.CreateKasirInput{
		SecretCode:        NewSecretCode(),
		Plate:             plate,
		WashTransactionID: in.WashTransactionID,
		WashTotal:         washTotal,
		PaymentMethod:     in.PaymentMethod,
		TransactedAt:      time.Now().In(domain.WIB),
		Items:             in.Items,
	})
	if err != nil {
		return nil, err
	}
	_, _ = s.Audit.Create(ctx, repository.CreateAuditInput{
		Action: "checkout",
		Entity: "kasir_transaction",
		Detail: fmt.Sprintf("transaksi %d total %d via %s", out.ID, out.Total.Amount, out.PaymentMethod),
		Actor:  in.Actor,
	})
	return out, nil
}

// NewSecretCode derives an 8-character upper-case review redemption token.
func NewSecretCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:8])
}
