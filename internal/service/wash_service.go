package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"washpos-backend/internal/config"
	"washpos-backend/internal/domain"
	"washpos-backend/internal/repository"
)

// ErrUnknownPackage is returned when checking in with a package that is not
// in the configured price list.
var ErrUnknownPackage = errors.New("unknown wash package")

type WashService struct {
	Wash     repository.WashRepository
	Customer repository.CustomerRepository
	Settings repository.SettingsRepository
	Audit    repository.AuditRepository
}

type CheckInInput struct {
	Plate            string
	Package          string
	ArrivalChecklist []string
	Actor            string
}

// CheckIn opens a wash job in Dalam Proses, priced from the configured
// package list and the customer's vehicle size.
func (s WashService) CheckIn(ctx context.Context, in CheckInInput) (*domain.WashTransaction, error) {
	customer, err := s.Customer.GetByPlate(ctx, in.Plate)
	if err != nil {
		return nil, err
	}

	price, err := s.priceFor(ctx, in.Package, customer.Size)
	if err != nil {
		return nil, err
	}

	wash, err := s.Wash.CheckIn(ctx, repository.CheckInWashInput{
		Plate:            customer.Plate,
		Package:          in.Package,
		Price:            price,
		CheckIn:          time.Now().In(domain.WIB),
		ArrivalChecklist: in.ArrivalChecklist,
	})
	if err != nil {
		return nil, err
	}
	_, _ = s.Audit.Create(ctx, repository.CreateAuditInput{
		Action: "check-in",
		Entity: "wash_transaction",
		Detail: fmt.Sprintf("cuci %s paket %s seharga %d", customer.Plate, in.Package, price),
		Actor:  in.Actor,
	})
	return wash, nil
}

// CheckOut performs the one-way transition to Selesai.
func (s WashService) CheckOut(ctx context.Context, id int64, completionChecklist []string, actor string) (*domain.WashTransaction, error) {
	wash, err := s.Wash.CheckOut(ctx, id, time.Now().In(domain.WIB), completionChecklist)
	if err != nil {
		return nil, err
	}
	_, _ = s.Audit.Create(ctx, repository.CreateAuditInput{
		Action: "check-out",
		Entity: "wash_transaction",
		Detail: fmt.Sprintf("cuci %d selesai", id),
		Actor:  actor,
	})
	return wash, nil
}

func (s WashService) priceFor(ctx context.Context, packageName, size string) (int64, error) {
	var packages []config.WashPackage
	if err := s.Settings.Load(ctx, config.KeyWashPackages, &packages); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			packages = nil
		} else {
			return 0, err
		}
	}

	var base int64
	found := false
	for _, p := range packages {
		if p.Name == packageName {
			base = p.Price
			found = true
			break
		}
	}
	if !found {
		return 0, ErrUnknownPackage
	}

	multipliers := map[string]float64{}
	if err := s.Settings.Load(ctx, config.KeySizeMultipliers, &multipliers); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return 0, err
	}
	mult, ok := multipliers[size]
	if !ok {
		mult = 1.0
	}
	return WashPrice(base, mult), nil
}

// WashPrice applies a size multiplier to a package base price, rounded to the
// nearest 1,000 rupiah.
func WashPrice(base int64, multiplier float64) int64 {
	raw := float64(base) * multiplier
	return int64(math.Round(raw/1000)) * 1000
}
