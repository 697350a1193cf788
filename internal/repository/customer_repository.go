package repository

import (
	"context"
	"errors"
	"strings"

	"washpos-backend/internal/db"
	"washpos-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

// ErrPlateExists is returned when registering an already known plate.
var ErrPlateExists = errors.New("plate already registered")

type CustomerRepository struct {
	DB *db.Postgres
}

// NormalizePlate upper-cases and trims a license plate.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

func (r CustomerRepository) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	return r.create(ctx, r.DB.Pool, c)
}

// CreateTx inserts a customer inside an existing transaction.
func (r CustomerRepository) CreateTx(ctx context.Context, tx pgx.Tx, c domain.Customer) (*domain.Customer, error) {
	return r.create(ctx, tx, c)
}

func (r CustomerRepository) create(ctx context.Context, q querier, c domain.Customer) (*domain.Customer, error) {
	var out domain.Customer
	err := q.QueryRow(ctx, `
		INSERT INTO customers (plate, name, phone, vehicle_type, brand, size, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6, now(), now())
		RETURNING id, plate, name, phone, vehicle_type, brand, size, created_at, updated_at
	`, NormalizePlate(c.Plate), c.Name, c.Phone, c.VehicleType, c.Brand, c.Size).Scan(
		&out.ID, &out.Plate, &out.Name, &out.Phone, &out.VehicleType, &out.Brand, &out.Size, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrPlateExists
		}
		return nil, err
	}
	return &out, nil
}

func (r CustomerRepository) GetByPlate(ctx context.Context, plate string) (*domain.Customer, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, plate, name, phone, vehicle_type, brand, size, created_at, updated_at
		FROM customers
		WHERE plate = $1
	`, NormalizePlate(plate))
	var c domain.Customer
	if err := row.Scan(&c.ID, &c.Plate, &c.Name, &c.Phone, &c.VehicleType, &c.Brand, &c.Size, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r CustomerRepository) List(ctx context.Context, limit int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 500
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, plate, name, phone, vehicle_type, brand, size, created_at, updated_at
		FROM customers
		ORDER BY name ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Plate, &c.Name, &c.Phone, &c.VehicleType, &c.Brand, &c.Size, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r CustomerRepository) Update(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	var out domain.Customer
	err := r.DB.Pool.QueryRow(ctx, `
		UPDATE customers
		SET name=$2, phone=$3, vehicle_type=$4, brand=$5, size=$6, updated_at=now()
		WHERE plate=$1
		RETURNING id, plate, name, phone, vehicle_type, brand, size, created_at, updated_at
	`, NormalizePlate(c.Plate), c.Name, c.Phone, c.VehicleType, c.Brand, c.Size).Scan(
		&out.ID, &out.Plate, &out.Name, &out.Phone, &out.VehicleType, &out.Brand, &out.Size, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}
