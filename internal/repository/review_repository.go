package repository

import (
	"context"
	"errors"
	"time"

	"washpos-backend/internal/db"
	"washpos-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

// ErrReviewExists is returned when a checkout's secret code was already
// redeemed. At most one review per checkout.
var ErrReviewExists = errors.New("review already submitted for this transaction")

type ReviewRepository struct {
	DB *db.Postgres
}

type CreateReviewInput struct {
	KasirTransactionID int64
	Rating             int
	Text               string
	RewardPoints       int
}

// CreateTx inserts a review inside a caller-owned transaction so the points
// accrual can commit atomically with it.
func (r ReviewRepository) CreateTx(ctx context.Context, tx pgx.Tx, in CreateReviewInput) (*domain.Review, error) {
	var id int64
	var createdAt time.Time
	err := tx.QueryRow(ctx, `
		INSERT INTO customer_reviews (kasir_transaction_id, rating, review_text, reward_points, created_at)
		VALUES ($1,$2,$3,$4, now())
		RETURNING id, created_at
	`, in.KasirTransactionID, in.Rating, in.Text, in.RewardPoints).Scan(&id, &createdAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrReviewExists
		}
		return nil, err
	}
	return &domain.Review{
		ID:                 id,
		KasirTransactionID: in.KasirTransactionID,
		Rating:             in.Rating,
		Text:               in.Text,
		RewardPoints:       in.RewardPoints,
		CreatedAt:          createdAt,
	}, nil
}

func (r ReviewRepository) List(ctx context.Context, limit int) ([]domain.Review, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, kasir_transaction_id, rating, review_text, reward_points, created_at
		FROM customer_reviews
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Review
	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(&rev.ID, &rev.KasirTransactionID, &rev.Rating, &rev.Text, &rev.RewardPoints, &rev.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, rev)
	}
	return items, rows.Err()
}
