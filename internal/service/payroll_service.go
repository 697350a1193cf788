package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"washpos-backend/internal/domain"
	"washpos-backend/internal/repository"
)

type PayrollService struct {
	Payroll    repository.PayrollRepository
	Attendance repository.AttendanceRepository
	Employee   repository.EmployeeRepository
	Settings   repository.SettingsRepository
	Audit      repository.AuditRepository
}

type GeneratePayrollInput struct {
	EmployeeID  int64
	PeriodStart time.Time
	PeriodEnd   time.Time
	Bonus       int64
	Deduction   int64
	Actor       string
}

// GeneratePeriod computes one payroll record from attendance: base pay is
// daily wage x Hadir days x shift percentage, rounded down to the nearest
// 100 rupiah.
func (s PayrollService) GeneratePeriod(ctx context.Context, in GeneratePayrollInput) (*domain.PayrollRecord, error) {
	emp, err := s.Employee.GetByID(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	days, err := s.Attendance.CountPresent(ctx, in.EmployeeID, in.PeriodStart, in.PeriodEnd)
	if err != nil {
		return nil, err
	}

	pct, err := s.Settings.GetShiftPercentage(ctx, emp.Shift)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		pct = 1.0
	}

	base := BasePay(emp.DailyWage.Amount, days, pct)
	rec, err := s.Payroll.Create(ctx, repository.CreatePayrollInput{
		EmployeeID:  in.EmployeeID,
		PeriodStart: in.PeriodStart,
		PeriodEnd:   in.PeriodEnd,
		DaysWorked:  days,
		BasePay:     base,
		Bonus:       in.Bonus,
		Deduction:   in.Deduction,
		NetPay:      base + in.Bonus - in.Deduction,
	})
	if err != nil {
		return nil, err
	}
	_, _ = s.Audit.Create(ctx, repository.CreateAuditInput{
		Action: "generate",
		Entity: "payroll",
		Detail: fmt.Sprintf("gaji %d untuk karyawan %d (%d hari)", rec.NetPay.Amount, in.EmployeeID, days),
		Actor:  in.Actor,
	})
	return rec, nil
}

func (s PayrollService) Pay(ctx context.Context, id int64, actor string) (*domain.PayrollRecord, error) {
	rec, err := s.Payroll.Pay(ctx, id, time.Now().In(domain.WIB))
	if err != nil {
		return nil, err
	}
	_, _ = s.Audit.Create(ctx, repository.CreateAuditInput{
		Action: "pay",
		Entity: "payroll",
		Detail: fmt.Sprintf("gaji %d dibayar", id),
		Actor:  actor,
	})
	return rec, nil
}

// BasePay is the canonical payroll formula shared with the fixture generator.
func BasePay(dailyWage int64, daysWorked int, shiftPct float64) int64 {
	raw := int64(float64(dailyWage) * float64(daysWorked) * shiftPct)
	return raw - raw%100
}
