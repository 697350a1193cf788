package service

import (
	"math/rand"
	"time"

	"washpos-backend/internal/domain"
)

// DefaultInstallmentFloor is the minimum non-final repayment in rupiah.
const DefaultInstallmentFloor = 50_000

// PlannedInstallment is one step of a simulated repayment schedule.
type PlannedInstallment struct {
	Date   time.Time
	Amount int64
	Method domain.PaymentMethod
}

// PlanInstallments builds a repayment schedule for a cash advance of the
// given principal taken on loanDate.
//
// The plan targets 2 to 5 installments. Every non-final installment pays
// between min(floor, remaining) and half of the current remaining balance,
// rounded down to a multiple of 10,000; the final installment pays the exact
// remainder so the balance terminates at zero, never below. Installment i is
// dated loanDate + (7..14 days) x i; anything dated past now is suppressed,
// which leaves the advance partially repaid. Methods follow a weighted
// 70/20/10 split between payroll deduction, cash and transfer.
func PlanInstallments(rng *rand.Rand, principal int64, loanDate, now time.Time, floor int64) []PlannedInstallment {
	if principal <= 0 {
		return nil
	}
	if floor <= 0 {
		floor = DefaultInstallmentFloor
	}

	count := 2 + rng.Intn(4)
	remaining := principal
	var plan []PlannedInstallment
	prev := loanDate

	for i := 1; i <= count && remaining > 0; i++ {
		date := loanDate.AddDate(0, 0, (7+rng.Intn(8))*i)
		if !date.After(prev) {
			date = prev.AddDate(0, 0, 1)
		}
		if date.After(now) {
			break
		}
		prev = date

		amount := remaining
		if i < count {
			amount = partialAmount(rng, remaining, floor)
		}

		plan = append(plan, PlannedInstallment{
			Date:   date,
			Amount: amount,
			Method: pickMethod(rng),
		})
		remaining -= amount
	}
	return plan
}

// partialAmount draws a non-final repayment in [min(floor, remaining),
// remaining/2], rounded down to a 10,000 multiple but never below the lower
// bound or above the balance.
func partialAmount(rng *rand.Rand, remaining, floor int64) int64 {
	lo := floor
	if remaining < lo {
		lo = remaining
	}
	hi := remaining / 2
	if hi <= lo {
		return lo
	}
	amount := lo + rng.Int63n(hi-lo+1)
	amount -= amount % 10_000
	if amount < lo {
		amount = lo
	}
	return amount
}

func pickMethod(rng *rand.Rand) domain.PaymentMethod {
	switch p := rng.Float64(); {
	case p < 0.70:
		return domain.PayPotongGaji
	case p < 0.90:
		return domain.PayTunai
	default:
		return domain.PayTransfer
	}
}

// MatchPayroll returns the id of the first payroll record for employeeID paid
// within three days of date. Used to link payroll-deducted installments; a
// miss leaves the link null.
func MatchPayroll(payrolls []domain.PayrollRecord, employeeID int64, date time.Time) *int64 {
	const window = 3 * 24 * time.Hour
	for _, p := range payrolls {
		if p.EmployeeID != employeeID || p.PaidAt == nil {
			continue
		}
		diff := p.PaidAt.Sub(date)
		if diff < 0 {
			diff = -diff
		}
		if diff <= window {
			id := p.ID
			return &id
		}
	}
	return nil
}
