package repository

import (
	"context"
	"errors"
	"time"

	"washpos-backend/internal/db"
	"washpos-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

// ErrWashNotInProgress is returned when checking out a wash job that already
// left the Dalam Proses state. The row is left untouched.
var ErrWashNotInProgress = errors.New("wash transaction is not in progress")

type WashRepository struct {
	DB *db.Postgres
}

type CheckInWashInput struct {
	Plate            string
	Package          string
	Price            int64
	CheckIn          time.Time
	ArrivalChecklist []string
}

func (r WashRepository) CheckIn(ctx context.Context, in CheckInWashInput) (*domain.WashTransaction, error) {
	return r.checkIn(ctx, r.DB.Pool, in)
}

func (r WashRepository) CheckInTx(ctx context.Context, tx pgx.Tx, in CheckInWashInput) (*domain.WashTransaction, error) {
	return r.checkIn(ctx, tx, in)
}

func (r WashRepository) checkIn(ctx context.Context, q querier, in CheckInWashInput) (*domain.WashTransaction, error) {
	var id int64
	var createdAt time.Time
	err := q.QueryRow(ctx, `
		INSERT INTO wash_transactions (plate, package_name, price, status, check_in, arrival_checklist, created_at)
		VALUES ($1,$2,$3,$4,$5,$6, now())
		RETURNING id, created_at
	`, NormalizePlate(in.Plate), in.Package, in.Price, domain.WashInProgress, in.CheckIn, checklistOrEmpty(in.ArrivalChecklist)).Scan(&id, &createdAt)
	if err != nil {
		return nil, err
	}
	return &domain.WashTransaction{
		ID:               id,
		Plate:            NormalizePlate(in.Plate),
		Package:          in.Package,
		Price:            domain.Money{Amount: in.Price},
		Status:           domain.WashInProgress,
		CheckIn:          in.CheckIn,
		ArrivalChecklist: in.ArrivalChecklist,
		CreatedAt:        createdAt,
	}, nil
}

// CheckOut performs the one-way Dalam Proses -> Selesai transition. It fails
// with ErrNotFound for an unknown id and ErrWashNotInProgress when the row is
// in any other state; in both cases nothing is written.
func (r WashRepository) CheckOut(ctx context.Context, id int64, at time.Time, completionChecklist []string) (*domain.WashTransaction, error) {
	tag, err := r.DB.Pool.Exec(ctx, `
		UPDATE wash_transactions
		SET status=$2, check_out=$3, completion_checklist=$4
		WHERE id=$1 AND status=$5
	`, id, domain.WashDone, at, checklistOrEmpty(completionChecklist), domain.WashInProgress)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing row from a wrong-state row.
		var status string
		err := r.DB.Pool.QueryRow(ctx, `SELECT status FROM wash_transactions WHERE id=$1`, id).Scan(&status)
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		return nil, ErrWashNotInProgress
	}
	return r.GetByID(ctx, id)
}

// CheckOutTx stamps a historic check-out inside a transaction. Used by the
// fixture generator to close washes at a synthetic point in time.
func (r WashRepository) CheckOutTx(ctx context.Context, tx pgx.Tx, id int64, at time.Time, completionChecklist []string) error {
	tag, err := tx.Exec(ctx, `
		UPDATE wash_transactions
		SET status=$2, check_out=$3, completion_checklist=$4
		WHERE id=$1 AND status=$5
	`, id, domain.WashDone, at, checklistOrEmpty(completionChecklist), domain.WashInProgress)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWashNotInProgress
	}
	return nil
}

func (r WashRepository) GetByID(ctx context.Context, id int64) (*domain.WashTransaction, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, plate, package_name, price, status, check_in, check_out, arrival_checklist, completion_checklist, created_at
		FROM wash_transactions
		WHERE id=$1
	`, id)
	w, err := scanWash(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

func (r WashRepository) List(ctx context.Context, limit int) ([]domain.WashTransaction, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, plate, package_name, price, status, check_in, check_out, arrival_checklist, completion_checklist, created_at
		FROM wash_transactions
		ORDER BY check_in DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWashes(rows)
}

func (r WashRepository) ListByPlate(ctx context.Context, plate string, limit int) ([]domain.WashTransaction, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, plate, package_name, price, status, check_in, check_out, arrival_checklist, completion_checklist, created_at
		FROM wash_transactions
		WHERE plate=$1
		ORDER BY check_in DESC, id DESC
		LIMIT $2
	`, NormalizePlate(plate), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWashes(rows)
}

func collectWashes(rows pgx.Rows) ([]domain.WashTransaction, error) {
	var items []domain.WashTransaction
	for rows.Next() {
		w, err := scanWash(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *w)
	}
	return items, rows.Err()
}

func scanWash(row pgx.Row) (*domain.WashTransaction, error) {
	var w domain.WashTransaction
	var status string
	if err := row.Scan(
		&w.ID, &w.Plate, &w.Package, &w.Price.Amount, &status, &w.CheckIn, &w.CheckOut,
		&w.ArrivalChecklist, &w.CompletionChecklist, &w.CreatedAt,
	); err != nil {
		return nil, err
	}
	w.Status = domain.WashStatus(status)
	return &w, nil
}

func checklistOrEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
