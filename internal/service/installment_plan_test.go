package service

import (
	"math/rand"
	"testing"
	"time"

	"washpos-backend/internal/domain"

	"github.com/stretchr/testify/require"
)

func planFixture(seed int64, principal int64, daysAgo int) []PlannedInstallment {
	rng := rand.New(rand.NewSource(seed))
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, domain.WIB)
	loanDate := now.AddDate(0, 0, -daysAgo)
	return PlanInstallments(rng, principal, loanDate, now, DefaultInstallmentFloor)
}

// The schedule must never over-collect: the paid total stays within the
// principal, and once the balance hits zero no further installments appear.
func TestPlanInstallments_NeverOvershoots(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		plan := planFixture(seed, 500_000, 90)
		var paid int64
		for i, inst := range plan {
			require.Positive(t, inst.Amount, "seed %d installment %d", seed, i)
			paid += inst.Amount
		}
		require.LessOrEqual(t, paid, int64(500_000), "seed %d", seed)
	}
}

// Non-final installments pay at least the floor and at most half of the
// balance outstanding at that step, rounded to a 10,000 multiple.
func TestPlanInstallments_PartialBounds(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		plan := planFixture(seed, 1_000_000, 120)
		remaining := int64(1_000_000)
		for i, inst := range plan {
			if i < len(plan)-1 || remaining-inst.Amount > 0 {
				// not the terminal payment
				lo := int64(DefaultInstallmentFloor)
				if remaining < lo {
					lo = remaining
				}
				require.GreaterOrEqual(t, inst.Amount, lo, "seed %d installment %d", seed, i)
				if remaining/2 > lo {
					require.LessOrEqual(t, inst.Amount, remaining/2, "seed %d installment %d", seed, i)
					require.Zero(t, inst.Amount%10_000, "seed %d installment %d", seed, i)
				}
			}
			remaining -= inst.Amount
		}
		require.GreaterOrEqual(t, remaining, int64(0), "seed %d", seed)
	}
}

// A schedule that runs to completion pays the principal exactly.
func TestPlanInstallments_FinalPaysExactRemainder(t *testing.T) {
	found := false
	for seed := int64(0); seed < 500; seed++ {
		plan := planFixture(seed, 300_000, 365)
		var paid int64
		for _, inst := range plan {
			paid += inst.Amount
		}
		if paid == 300_000 {
			found = true
			break
		}
	}
	require.True(t, found, "expected at least one fully repaid schedule across seeds")
}

// A fully repaid 500,000 advance in three steps: two bounded partials, then
// the exact remainder.
func TestPlanInstallments_ThreeStepExample(t *testing.T) {
	checked := false
	for seed := int64(0); seed < 2000 && !checked; seed++ {
		plan := planFixture(seed, 500_000, 365)
		var paid int64
		for _, inst := range plan {
			paid += inst.Amount
		}
		if len(plan) != 3 || paid != 500_000 {
			continue
		}
		checked = true
		remaining := int64(500_000)
		for _, inst := range plan[:2] {
			require.GreaterOrEqual(t, inst.Amount, int64(50_000))
			require.LessOrEqual(t, inst.Amount, remaining/2)
			require.Zero(t, inst.Amount%10_000)
			remaining -= inst.Amount
		}
		require.Equal(t, remaining, plan[2].Amount)
	}
	require.True(t, checked, "expected a fully repaid three-step schedule across seeds")
}

// Installment dates are strictly increasing and never later than now.
func TestPlanInstallments_DatesOrderedAndPast(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, domain.WIB)
	for seed := int64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		loanDate := now.AddDate(0, 0, -45)
		plan := PlanInstallments(rng, 750_000, loanDate, now, DefaultInstallmentFloor)
		prev := loanDate
		for i, inst := range plan {
			require.True(t, inst.Date.After(prev), "seed %d installment %d", seed, i)
			require.False(t, inst.Date.After(now), "seed %d installment %d", seed, i)
			prev = inst.Date
		}
	}
}

// A loan taken today cannot have any repayment yet.
func TestPlanInstallments_FreshLoanHasNoPayments(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, domain.WIB)
	rng := rand.New(rand.NewSource(1))
	plan := PlanInstallments(rng, 500_000, now, now, DefaultInstallmentFloor)
	require.Empty(t, plan)
}

func TestPlanInstallments_RejectsNonPositivePrincipal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	now := time.Now().In(domain.WIB)
	require.Nil(t, PlanInstallments(rng, 0, now.AddDate(0, 0, -30), now, 0))
	require.Nil(t, PlanInstallments(rng, -100, now.AddDate(0, 0, -30), now, 0))
}

// Method draws follow the weighted split; with enough samples every method
// shows up and payroll deduction dominates.
func TestPlanInstallments_MethodMix(t *testing.T) {
	counts := map[domain.PaymentMethod]int{}
	for seed := int64(0); seed < 300; seed++ {
		for _, inst := range planFixture(seed, 1_000_000, 180) {
			counts[inst.Method]++
		}
	}
	require.Greater(t, counts[domain.PayPotongGaji], counts[domain.PayTunai])
	require.Greater(t, counts[domain.PayTunai], 0)
	require.Greater(t, counts[domain.PayTransfer], 0)
}

// Identical seeds produce identical schedules.
func TestPlanInstallments_Deterministic(t *testing.T) {
	a := planFixture(42, 800_000, 60)
	b := planFixture(42, 800_000, 60)
	require.Equal(t, a, b)
}

func TestPartialAmount_SmallBalanceReturnsLowerBound(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	// remaining below the floor: pays off everything left
	require.Equal(t, int64(30_000), partialAmount(rng, 30_000, 50_000))
	// half of remaining does not exceed the floor: pays the floor
	require.Equal(t, int64(50_000), partialAmount(rng, 90_000, 50_000))
}

func TestMatchPayroll_WithinThreeDays(t *testing.T) {
	paidNear := time.Date(2026, 8, 10, 9, 0, 0, 0, domain.WIB)
	paidFar := time.Date(2026, 7, 1, 9, 0, 0, 0, domain.WIB)
	payrolls := []domain.PayrollRecord{
		{ID: 1, EmployeeID: 2, PaidAt: &paidNear},
		{ID: 2, EmployeeID: 1, PaidAt: &paidFar},
		{ID: 3, EmployeeID: 1, PaidAt: &paidNear},
		{ID: 4, EmployeeID: 1, PaidAt: nil},
	}

	got := MatchPayroll(payrolls, 1, time.Date(2026, 8, 12, 0, 0, 0, 0, domain.WIB))
	require.NotNil(t, got)
	require.Equal(t, int64(3), *got)

	require.Nil(t, MatchPayroll(payrolls, 1, time.Date(2026, 8, 20, 0, 0, 0, 0, domain.WIB)))
	require.Nil(t, MatchPayroll(payrolls, 9, time.Date(2026, 8, 12, 0, 0, 0, 0, domain.WIB)))
}
