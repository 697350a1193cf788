package repository

import (
	"context"
	"errors"
	"time"

	"washpos-backend/internal/db"
	"washpos-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// ErrPayrollNotPending is returned when paying a payroll record twice.
var ErrPayrollNotPending = errors.New("payroll record is not pending")

type PayrollRepository struct {
	DB *db.Postgres
}

type CreatePayrollInput struct {
	EmployeeID  int64
	PeriodStart time.Time
	PeriodEnd   time.Time
	DaysWorked  int
	BasePay     int64
	Bonus       int64
	Deduction   int64
	NetPay      int64
}

func (r PayrollRepository) Create(ctx context.Context, in CreatePayrollInput) (*domain.PayrollRecord, error) {
	return r.create(ctx, r.DB.Pool, in)
}

func (r PayrollRepository) CreateTx(ctx context.Context, tx pgx.Tx, in CreatePayrollInput) (*domain.PayrollRecord, error) {
	return r.create(ctx, tx, in)
}

func (r PayrollRepository) create(ctx context.Context, q querier, in CreatePayrollInput) (*domain.PayrollRecord, error) {
	row := q.QueryRow(ctx, `
		INSERT INTO payroll (employee_id, period_start, period_end, days_worked, base_pay, bonus, deduction, net_pay, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9, now())
		RETURNING id, employee_id, period_start, period_end, days_worked, base_pay, bonus, deduction, net_pay, status, paid_at, created_at
	`, in.EmployeeID,
		in.PeriodStart.In(domain.WIB).Format("2006-01-02"),
		in.PeriodEnd.In(domain.WIB).Format("2006-01-02"),
		in.DaysWorked, in.BasePay, in.Bonus, in.Deduction, in.NetPay, domain.PayrollPending)
	return scanPayroll(row)
}

// Pay flips pending -> paid, stamping the paid time. Paying twice fails and
// leaves the row unchanged.
func (r PayrollRepository) Pay(ctx context.Context, id int64, at time.Time) (*domain.PayrollRecord, error) {
	return r.pay(ctx, r.DB.Pool, id, at)
}

func (r PayrollRepository) PayTx(ctx context.Context, tx pgx.Tx, id int64, at time.Time) (*domain.PayrollRecord, error) {
	return r.pay(ctx, tx, id, at)
}

func (r PayrollRepository) pay(ctx context.Context, q querier, id int64, at time.Time) (*domain.PayrollRecord, error) {
	row := q.QueryRow(ctx, `
		UPDATE payroll
		SET status=$2, paid_at=$3
		WHERE id=$1 AND status=$4
		RETURNING id, employee_id, period_start, period_end, days_worked, base_pay, bonus, deduction, net_pay, status, paid_at, created_at
	`, id, domain.PayrollPaid, at, domain.PayrollPending)
	rec, err := scanPayroll(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var status string
			probeErr := q.QueryRow(ctx, `SELECT status FROM payroll WHERE id=$1`, id).Scan(&status)
			if probeErr == pgx.ErrNoRows {
				return nil, ErrNotFound
			}
			if probeErr != nil {
				return nil, probeErr
			}
			return nil, ErrPayrollNotPending
		}
		return nil, err
	}
	return rec, nil
}

func (r PayrollRepository) GetByID(ctx context.Context, id int64) (*domain.PayrollRecord, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, employee_id, period_start, period_end, days_worked, base_pay, bonus, deduction, net_pay, status, paid_at, created_at
		FROM payroll
		WHERE id=$1
	`, id)
	rec, err := scanPayroll(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r PayrollRepository) ListByEmployee(ctx context.Context, employeeID int64, limit int) ([]domain.PayrollRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, employee_id, period_start, period_end, days_worked, base_pay, bonus, deduction, net_pay, status, paid_at, created_at
		FROM payroll
		WHERE employee_id=$1
		ORDER BY period_start DESC, id DESC
		LIMIT $2
	`, employeeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.PayrollRecord
	for rows.Next() {
		rec, err := scanPayroll(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rec)
	}
	return items, rows.Err()
}

// FindPaidNearTx returns the first paid payroll record for the employee whose
// paid date falls within the given window around date, if any.
func (r PayrollRepository) FindPaidNearTx(ctx context.Context, tx pgx.Tx, employeeID int64, date time.Time, within time.Duration) (*domain.PayrollRecord, error) {
	row := tx.QueryRow(ctx, `
		SELECT id, employee_id, period_start, period_end, days_worked, base_pay, bonus, deduction, net_pay, status, paid_at, created_at
		FROM payroll
		WHERE employee_id=$1 AND status=$2 AND paid_at IS NOT NULL
		  AND paid_at BETWEEN $3 AND $4
		ORDER BY paid_at ASC, id ASC
		LIMIT 1
	`, employeeID, domain.PayrollPaid, date.Add(-within), date.Add(within))
	rec, err := scanPayroll(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func scanPayroll(row pgx.Row) (*domain.PayrollRecord, error) {
	var p domain.PayrollRecord
	var status string
	var paidAt pgtype.Timestamptz
	if err := row.Scan(
		&p.ID, &p.EmployeeID, &p.PeriodStart, &p.PeriodEnd, &p.DaysWorked,
		&p.BasePay.Amount, &p.Bonus.Amount, &p.Deduction.Amount, &p.NetPay.Amount,
		&status, &paidAt, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	p.Status = domain.PayrollStatus(status)
	if paidAt.Valid {
		t := paidAt.Time
		p.PaidAt = &t
	}
	return &p, nil
}
