package repository

import (
	"context"
	"errors"

	"washpos-backend/internal/db"
	"washpos-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

type PointsRepository struct {
	DB *db.Postgres
}

// AddTx upserts the (plate, phone) accumulator, adding points to any existing
// balance. One row per key; the balance only ever grows.
func (r PointsRepository) AddTx(ctx context.Context, tx pgx.Tx, plate, phone string, points int64) (*domain.CustomerPoints, error) {
	var out domain.CustomerPoints
	err := tx.QueryRow(ctx, `
		INSERT INTO customer_points (plate, phone, points, updated_at)
		VALUES ($1,$2,$3, now())
		ON CONFLICT (plate, phone) DO UPDATE SET
			points = customer_points.points + EXCLUDED.points,
			updated_at = now()
		RETURNING plate, phone, points, updated_at
	`, NormalizePlate(plate), phone, points).Scan(&out.Plate, &out.Phone, &out.Points, &out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r PointsRepository) GetByPlate(ctx context.Context, plate string) ([]domain.CustomerPoints, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT plate, phone, points, updated_at
		FROM customer_points
		WHERE plate=$1
		ORDER BY phone ASC
	`, NormalizePlate(plate))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.CustomerPoints
	for rows.Next() {
		var p domain.CustomerPoints
		if err := rows.Scan(&p.Plate, &p.Phone, &p.Points, &p.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r PointsRepository) Get(ctx context.Context, plate, phone string) (*domain.CustomerPoints, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT plate, phone, points, updated_at
		FROM customer_points
		WHERE plate=$1 AND phone=$2
	`, NormalizePlate(plate), phone)
	var p domain.CustomerPoints
	if err := row.Scan(&p.Plate, &p.Phone, &p.Points, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
