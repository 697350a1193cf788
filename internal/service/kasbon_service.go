package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"washpos-backend/internal/domain"
	"washpos-backend/internal/repository"
)

// ErrInvalidAmount is returned for zero or negative installment amounts.
var ErrInvalidAmount = errors.New("amount must be positive")

// KasBonService owns employee cash advances and their repayments.
type KasBonService struct {
	KasBon   repository.KasBonRepository
	Payroll  repository.PayrollRepository
	Employee repository.EmployeeRepository
	Audit    repository.AuditRepository
}

func (s KasBonService) CreateAdvance(ctx context.Context, employeeID, principal int64, loanDate time.Time, actor string) (*domain.KasBon, error) {
	if principal <= 0 {
		return nil, ErrInvalidAmount
	}
	if _, err := s.Employee.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	kb, err := s.KasBon.Create(ctx, repository.CreateKasBonInput{
		EmployeeID: employeeID,
		LoanDate:   loanDate,
		Principal:  principal,
	})
	if err != nil {
		return nil, err
	}
	_, _ = s.Audit.Create(ctx, repository.CreateAuditInput{
		Action: "create",
		Entity: "kas_bon",
		Detail: fmt.Sprintf("kas bon %d sebesar %d untuk karyawan %d", kb.ID, principal, employeeID),
		Actor:  actor,
	})
	return kb, nil
}

type PayInstallmentInput struct {
	KasBonID  int64
	Amount    int64
	Method    domain.PaymentMethod
	PaidDate  time.Time
	PayrollID *int64
	Actor     string
}

// PayInstallment applies one repayment. Overpayment is rejected with the row
// untouched; the balance reaching zero flips the advance to Lunas. A payroll
// deduction without an explicit payroll reference is linked to the paid
// record closest in date, when one exists within three days.
func (s KasBonService) PayInstallment(ctx context.Context, in PayInstallmentInput) (*domain.InstallmentPayment, *domain.KasBon, error) {
	if in.Amount <= 0 {
		return nil, nil, ErrInvalidAmount
	}

	tx, err := s.KasBon.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	payrollID := in.PayrollID
	if payrollID == nil && in.Method == domain.PayPotongGaji {
		current, err := s.KasBon.GetByID(ctx, in.KasBonID)
		if err != nil {
			return nil, nil, err
		}
		match, err := s.Payroll.FindPaidNearTx(ctx, tx, current.EmployeeID, in.PaidDate, 3*24*time.Hour)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, nil, err
		}
		if match != nil {
			payrollID = &match.ID
		}
	}

	payment, kb, err := s.KasBon.ApplyInstallmentTx(ctx, tx, repository.ApplyInstallmentInput{
		KasBonID:  in.KasBonID,
		PayrollID: payrollID,
		PaidDate:  in.PaidDate,
		Amount:    in.Amount,
		Method:    in.Method,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}

	_, _ = s.Audit.Create(ctx, repository.CreateAuditInput{
		Action: "installment",
		Entity: "kas_bon",
		Detail: fmt.Sprintf("angsuran %d untuk kas bon %d, sisa %d", in.Amount, in.KasBonID, kb.Remaining.Amount),
		Actor:  in.Actor,
	})
	return payment, kb, nil
}
