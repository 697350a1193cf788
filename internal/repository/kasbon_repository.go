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

// ErrOverpayment is returned when an installment exceeds the remaining
// balance of a cash advance.
var ErrOverpayment = errors.New("installment exceeds remaining balance")

type KasBonRepository struct {
	DB *db.Postgres
}

type CreateKasBonInput struct {
	EmployeeID int64
	LoanDate   time.Time
	Principal  int64
}

func (r KasBonRepository) Create(ctx context.Context, in CreateKasBonInput) (*domain.KasBon, error) {
	return r.create(ctx, r.DB.Pool, in)
}

func (r KasBonRepository) CreateTx(ctx context.Context, tx pgx.Tx, in CreateKasBonInput) (*domain.KasBon, error) {
	return r.create(ctx, tx, in)
}

func (r KasBonRepository) create(ctx context.Context, q querier, in CreateKasBonInput) (*domain.KasBon, error) {
	row := q.QueryRow(ctx, `
		INSERT INTO kas_bon (employee_id, loan_date, principal, remaining, status, created_at, updated_at)
		VALUES ($1,$2,$3,$3,$4, now(), now())
		RETURNING id, employee_id, loan_date, principal, remaining, status, created_at, updated_at
	`, in.EmployeeID, in.LoanDate.In(domain.WIB).Format("2006-01-02"), in.Principal, domain.KasBonOutstanding)
	return scanKasBon(row)
}

type ApplyInstallmentInput struct {
	KasBonID  int64
	PayrollID *int64
	PaidDate  time.Time
	Amount    int64
	Method    domain.PaymentMethod
}

// ApplyInstallmentTx records one repayment and decrements the running
// balance. The guarded UPDATE enforces remaining >= 0; when the balance hits
// zero the advance flips to Lunas in the same statement.
func (r KasBonRepository) ApplyInstallmentTx(ctx context.Context, tx pgx.Tx, in ApplyInstallmentInput) (*domain.InstallmentPayment, *domain.KasBon, error) {
	row := tx.QueryRow(ctx, `
		UPDATE kas_bon
		SET remaining = remaining - $2,
		    status = CASE WHEN remaining - $2 = 0 THEN $3 ELSE status END,
		    updated_at = now()
		WHERE id=$1 AND remaining >= $2
		RETURNING id, employee_id, loan_date, principal, remaining, status, created_at, updated_at
	`, in.KasBonID, in.Amount, domain.KasBonPaid)
	kb, err := scanKasBon(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			probeErr := tx.QueryRow(ctx, `SELECT true FROM kas_bon WHERE id=$1`, in.KasBonID).Scan(&exists)
			if probeErr == pgx.ErrNoRows {
				return nil, nil, ErrNotFound
			}
			if probeErr != nil {
				return nil, nil, probeErr
			}
			return nil, nil, ErrOverpayment
		}
		return nil, nil, err
	}

	var payment domain.InstallmentPayment
	var payrollID pgtype.Int8
	var method string
	err = tx.QueryRow(ctx, `
		INSERT INTO pembayaran_kas_bon (kas_bon_id, payroll_id, paid_date, amount, method, created_at)
		VALUES ($1,$2,$3,$4,$5, now())
		RETURNING id, kas_bon_id, payroll_id, paid_date, amount, method, created_at
	`, in.KasBonID, in.PayrollID, in.PaidDate.In(domain.WIB).Format("2006-01-02"), in.Amount, string(in.Method)).Scan(
		&payment.ID, &payment.KasBonID, &payrollID, &payment.PaidDate, &payment.Amount.Amount, &method, &payment.CreatedAt,
	)
	if err != nil {
		return nil, nil, err
	}
	payment.Method = domain.PaymentMethod(method)
	if payrollID.Valid {
		payment.PayrollID = &payrollID.Int64
	}
	return &payment, kb, nil
}

func (r KasBonRepository) GetByID(ctx context.Context, id int64) (*domain.KasBon, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, employee_id, loan_date, principal, remaining, status, created_at, updated_at
		FROM kas_bon
		WHERE id=$1
	`, id)
	kb, err := scanKasBon(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return kb, nil
}

func (r KasBonRepository) List(ctx context.Context, limit int) ([]domain.KasBon, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, employee_id, loan_date, principal, remaining, status, created_at, updated_at
		FROM kas_bon
		ORDER BY loan_date DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.KasBon
	for rows.Next() {
		kb, err := scanKasBon(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *kb)
	}
	return items, rows.Err()
}

func (r KasBonRepository) ListInstallments(ctx context.Context, kasBonID int64) ([]domain.InstallmentPayment, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, kas_bon_id, payroll_id, paid_date, amount, method, created_at
		FROM pembayaran_kas_bon
		WHERE kas_bon_id=$1
		ORDER BY paid_date ASC, id ASC
	`, kasBonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.InstallmentPayment
	for rows.Next() {
		var p domain.InstallmentPayment
		var payrollID pgtype.Int8
		var method string
		if err := rows.Scan(&p.ID, &p.KasBonID, &payrollID, &p.PaidDate, &p.Amount.Amount, &method, &p.CreatedAt); err != nil {
			return nil, err
		}
		if payrollID.Valid {
			p.PayrollID = &payrollID.Int64
		}
		p.Method = domain.PaymentMethod(method)
		items = append(items, p)
	}
	return items, rows.Err()
}

func scanKasBon(row pgx.Row) (*domain.KasBon, error) {
	var kb domain.KasBon
	var status string
	if err := row.Scan(
		&kb.ID, &kb.EmployeeID, &kb.LoanDate, &kb.Principal.Amount, &kb.Remaining.Amount, &status, &kb.CreatedAt, &kb.UpdatedAt,
	); err != nil {
		return nil, err
	}
	kb.Status = domain.KasBonStatus(status)
	return &kb, nil
}
