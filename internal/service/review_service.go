package service

import (
	"context"
	"errors"
	"fmt"

	"washpos-backend/internal/domain"
	"washpos-backend/internal/repository"
)

// ErrInvalidRating is returned for ratings outside 1..5.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// PointsPerRating converts a star rating into reward points.
const PointsPerRating = 10

// ReviewService redeems a checkout's secret code into a review and accrues
// loyalty points in the same transaction.
type ReviewService struct {
	Reviews  repository.ReviewRepository
	Kasir    repository.KasirRepository
	Points   repository.PointsRepository
	Customer repository.CustomerRepository
	Audit    repository.AuditRepository
}

type SubmitReviewInput struct {
	SecretCode string
	Rating     int
	Text       string
}

func (s ReviewService) Submit(ctx context.Context, in SubmitReviewInput) (*domain.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}

	tx, err := s.Reviews.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	kasir, err := s.Kasir.GetBySecretCodeTx(ctx, tx, in.SecretCode)
	if err != nil {
		return nil, err
	}

	review, err := s.Reviews.CreateTx(ctx, tx, repository.CreateReviewInput{
		KasirTransactionID: kasir.ID,
		Rating:             in.Rating,
		Text:               in.Text,
		RewardPoints:       in.Rating * PointsPerRating,
	})
	if err != nil {
		return nil, err
	}

	// Café-only sales have no plate; no accumulator to credit.
	if kasir.Plate != "" {
		phone := ""
		if c, err := s.Customer.GetByPlate(ctx, kasir.Plate); err == nil {
			phone = c.Phone
		}
		if _, err := s.Points.AddTx(ctx, tx, kasir.Plate, phone, int64(review.RewardPoints)); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	_, _ = s.Audit.Create(ctx, repository.CreateAuditInput{
		Action: "review",
		Entity: "customer_review",
		Detail: fmt.Sprintf("ulasan bintang %d untuk transaksi %d", in.Rating, kasir.ID),
		Actor:  kasir.Plate,
	})
	return review, nil
}
