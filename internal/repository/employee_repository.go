package repository

import (
	"context"
	"errors"
	"time"

	"washpos-backend/internal/db"
	"washpos-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

type EmployeeRepository struct {
	DB *db.Postgres
}

type CreateEmployeeInput struct {
	Name      string
	Role      string
	DailyWage int64
	Shift     string
	Phone     string
	JoinDate  time.Time
}

func (r EmployeeRepository) Create(ctx context.Context, in CreateEmployeeInput) (*domain.Employee, error) {
	return r.create(ctx, r.DB.Pool, in)
}

func (r EmployeeRepository) CreateTx(ctx context.Context, tx pgx.Tx, in CreateEmployeeInput) (*domain.Employee, error) {
	return r.create(ctx, tx, in)
}

func (r EmployeeRepository) create(ctx context.Context, q querier, in CreateEmployeeInput) (*domain.Employee, error) {
	row := q.QueryRow(ctx, `
		INSERT INTO employees (name, role, daily_wage, shift, phone, active, join_date, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,true,$6, now(), now())
		RETURNING id, name, role, daily_wage, shift, phone, active, join_date, created_at, updated_at
	`, in.Name, in.Role, in.DailyWage, in.Shift, in.Phone, in.JoinDate)
	return scanEmployee(row)
}

func (r EmployeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, name, role, daily_wage, shift, phone, active, join_date, created_at, updated_at
		FROM employees
		WHERE id=$1
	`, id)
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r EmployeeRepository) List(ctx context.Context, activeOnly bool) ([]domain.Employee, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, name, role, daily_wage, shift, phone, active, join_date, created_at, updated_at
		FROM employees
		WHERE NOT $1 OR active
		ORDER BY name ASC
	`, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	return items, rows.Err()
}

func (r EmployeeRepository) Update(ctx context.Context, e domain.Employee) (*domain.Employee, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE employees
		SET name=$2, role=$3, daily_wage=$4, shift=$5, phone=$6, active=$7, updated_at=now()
		WHERE id=$1
		RETURNING id, name, role, daily_wage, shift, phone, active, join_date, created_at, updated_at
	`, e.ID, e.Name, e.Role, e.DailyWage.Amount, e.Shift, e.Phone, e.Active)
	out, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var e domain.Employee
	if err := row.Scan(
		&e.ID, &e.Name, &e.Role, &e.DailyWage.Amount, &e.Shift, &e.Phone, &e.Active, &e.JoinDate, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}
