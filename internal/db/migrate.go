package db

import (
	"context"
	"fmt"
	"log/slog"
)

type migration struct {
	Version int
	Name    string
	SQL     string
}

// Ordered schema history. Append only; never edit an applied entry.
var migrations = []migration{
	{
		Version: 1,
		Name:    "customers",
		SQL: `
			CREATE TABLE IF NOT EXISTS customers (
				id           BIGSERIAL PRIMARY KEY,
				plate        TEXT NOT NULL UNIQUE,
				name         TEXT NOT NULL,
				phone        TEXT NOT NULL DEFAULT '',
				vehicle_type TEXT NOT NULL DEFAULT '',
				brand        TEXT NOT NULL DEFAULT '',
				size         TEXT NOT NULL DEFAULT 'M',
				created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
	},
	{
		Version: 2,
		Name:    "wash_transactions",
		SQL: `
			CREATE TABLE IF NOT EXISTS wash_transactions (
				id                   BIGSERIAL PRIMARY KEY,
				plate                TEXT NOT NULL REFERENCES customers(plate),
				package_name         TEXT NOT NULL,
				price                BIGINT NOT NULL,
				status               TEXT NOT NULL DEFAULT 'Dalam Proses',
				check_in             TIMESTAMPTZ NOT NULL,
				check_out            TIMESTAMPTZ,
				arrival_checklist    JSONB NOT NULL DEFAULT '[]',
				completion_checklist JSONB NOT NULL DEFAULT '[]',
				created_at           TIMESTAMPTZ NOT NULL DEFAULT now()
			);
			CREATE INDEX IF NOT EXISTS idx_wash_plate ON wash_transactions(plate)`,
	},
	{
		Version: 3,
		Name:    "kasir_transactions and coffee_sales",
		SQL: `
			CREATE TABLE IF NOT EXISTS kasir_transactions (
				id                  BIGSERIAL PRIMARY KEY,
				secret_code         TEXT NOT NULL UNIQUE,
				plate               TEXT NOT NULL DEFAULT '',
				wash_transaction_id BIGINT REFERENCES wash_transactions(id),
				wash_total          BIGINT NOT NULL DEFAULT 0,
				cafe_total          BIGINT NOT NULL DEFAULT 0,
				total               BIGINT NOT NULL,
				payment_method      TEXT NOT NULL,
				transacted_at       TIMESTAMPTZ NOT NULL,
				created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
			);
			CREATE TABLE IF NOT EXISTS coffee_sales (
				id                   BIGSERIAL PRIMARY KEY,
				kasir_transaction_id BIGINT NOT NULL REFERENCES kasir_transactions(id),
				name                 TEXT NOT NULL,
				unit_price           BIGINT NOT NULL,
				qty                  INT NOT NULL,
				subtotal             BIGINT NOT NULL,
				created_at           TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
	},
	{
		Version: 4,
		Name:    "customer_reviews and customer_points",
		SQL: `
			CREATE TABLE IF NOT EXISTS customer_reviews (
				id                   BIGSERIAL PRIMARY KEY,
				kasir_transaction_id BIGINT NOT NULL UNIQUE REFERENCES kasir_transactions(id),
				rating               INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
				review_text          TEXT NOT NULL DEFAULT '',
				reward_points        INT NOT NULL,
				created_at           TIMESTAMPTZ NOT NULL DEFAULT now()
			);
			CREATE TABLE IF NOT EXISTS customer_points (
				plate      TEXT NOT NULL,
				phone      TEXT NOT NULL,
				points     BIGINT NOT NULL DEFAULT 0,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				PRIMARY KEY (plate, phone)
			)`,
	},
	{
		Version: 5,
		Name:    "settings",
		SQL: `
			CREATE TABLE IF NOT EXISTS settings (
				key        TEXT PRIMARY KEY,
				value      JSONB NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
	},
	{
		Version: 6,
		Name:    "users",
		SQL: `
			CREATE TABLE IF NOT EXISTS users (
				id            BIGSERIAL PRIMARY KEY,
				name          TEXT NOT NULL,
				username      TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				role          TEXT NOT NULL DEFAULT 'kasir',
				created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
	},
	{
		Version: 7,
		Name:    "employees and attendance",
		SQL: `
			CREATE TABLE IF NOT EXISTS employees (
				id         BIGSERIAL PRIMARY KEY,
				name       TEXT NOT NULL,
				role       TEXT NOT NULL,
				daily_wage BIGINT NOT NULL,
				shift      TEXT NOT NULL,
				phone      TEXT NOT NULL DEFAULT '',
				active     BOOLEAN NOT NULL DEFAULT true,
				join_date  DATE NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);
			CREATE TABLE IF NOT EXISTS attendance (
				id              BIGSERIAL PRIMARY KEY,
				employee_id     BIGINT NOT NULL REFERENCES employees(id),
				attendance_date DATE NOT NULL,
				status          TEXT NOT NULL,
				check_in        TIMESTAMPTZ,
				check_out       TIMESTAMPTZ,
				created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
				UNIQUE (employee_id, attendance_date)
			)`,
	},
	{
		Version: 8,
		Name:    "shift_settings and payroll",
		SQL: `
			CREATE TABLE IF NOT EXISTS shift_settings (
				shift      TEXT PRIMARY KEY,
				percentage DOUBLE PRECISION NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);
			CREATE TABLE IF NOT EXISTS payroll (
				id           BIGSERIAL PRIMARY KEY,
				employee_id  BIGINT NOT NULL REFERENCES employees(id),
				period_start DATE NOT NULL,
				period_end   DATE NOT NULL,
				days_worked  INT NOT NULL,
				base_pay     BIGINT NOT NULL,
				bonus        BIGINT NOT NULL DEFAULT 0,
				deduction    BIGINT NOT NULL DEFAULT 0,
				net_pay      BIGINT NOT NULL,
				status       TEXT NOT NULL DEFAULT 'pending',
				paid_at      TIMESTAMPTZ,
				created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
				UNIQUE (employee_id, period_start, period_end)
			)`,
	},
	{
		Version: 9,
		Name:    "kas_bon and pembayaran_kas_bon",
		SQL: `
			CREATE TABLE IF NOT EXISTS kas_bon (
				id          BIGSERIAL PRIMARY KEY,
				employee_id BIGINT NOT NULL REFERENCES employees(id),
				loan_date   DATE NOT NULL,
				principal   BIGINT NOT NULL CHECK (principal > 0),
				remaining   BIGINT NOT NULL CHECK (remaining >= 0),
				status      TEXT NOT NULL DEFAULT 'Belum Lunas',
				created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
			);
			CREATE TABLE IF NOT EXISTS pembayaran_kas_bon (
				id         BIGSERIAL PRIMARY KEY,
				kas_bon_id BIGINT NOT NULL REFERENCES kas_bon(id),
				payroll_id BIGINT REFERENCES payroll(id),
				paid_date  DATE NOT NULL,
				amount     BIGINT NOT NULL CHECK (amount > 0),
				method     TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
	},
	{
		Version: 10,
		Name:    "audit_trail",
		SQL: `
			CREATE TABLE IF NOT EXISTS audit_trail (
				id        BIGSERIAL PRIMARY KEY,
				action    TEXT NOT NULL,
				entity    TEXT NOT NULL,
				detail    TEXT NOT NULL DEFAULT '',
				actor     TEXT NOT NULL DEFAULT '',
				logged_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);
			CREATE INDEX IF NOT EXISTS idx_audit_logged_at ON audit_trail(logged_at)`,
	},
}

// Migrate applies pending migrations in order. Each migration runs in its own
// transaction together with the version bookkeeping row, so a failure leaves
// the schema at the last fully applied version.
func (p *Postgres) Migrate(ctx context.Context, logger *slog.Logger) error {
	_, err := p.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INT PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var current int
	if err := p.Pool.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		tx, err := p.Pool.Begin(ctx)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, m.SQL); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, m.Version, m.Name); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return err
		}
		logger.Info("applied migration", "version", m.Version, "name", m.Name)
	}
	return nil
}
