package repository

import (
	"context"
	"time"

	"washpos-backend/internal/db"
	"washpos-backend/internal/domain"
)

type AuditRepository struct {
	DB *db.Postgres
}

type CreateAuditInput struct {
	Action string
	Entity string
	Detail string
	Actor  string
}

func (r AuditRepository) Create(ctx context.Context, in CreateAuditInput) (int64, error) {
	var id int64
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO audit_trail (action, entity, detail, actor, logged_at)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`, in.Action, in.Entity, in.Detail, in.Actor, time.Now()).Scan(&id)
	return id, err
}

func (r AuditRepository) List(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, action, entity, detail, actor, logged_at
		FROM audit_trail
		ORDER BY logged_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.ID, &e.Action, &e.Entity, &e.Detail, &e.Actor, &e.LoggedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
