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

type KasirRepository struct {
	DB *db.Postgres
}

type CreateKasirInput struct {
	SecretCode        string
	Plate             string
	WashTransactionID *int64
	WashTotal         int64
	PaymentMethod     domain.PaymentMethod
	TransactedAt      time.Time
	Items             []CreateCoffeeSale
}

type CreateCoffeeSale struct {
	Name      string
	UnitPrice int64
	Qty       int
}

// Create records one checkout with its café line items atomically.
func (r KasirRepository) Create(ctx context.Context, in CreateKasirInput) (*domain.KasirTransaction, error) {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	out, err := r.CreateTx(ctx, tx, in)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTx inserts the checkout and its items inside an existing transaction.
func (r KasirRepository) CreateTx(ctx context.Context, tx pgx.Tx, in CreateKasirInput) (*domain.KasirTransaction, error) {
	var cafeTotal int64
	for _, it := range in.Items {
		cafeTotal += it.UnitPrice * int64(it.Qty)
	}
	total := in.WashTotal + cafeTotal

	var id int64
	var createdAt time.Time
	err := tx.QueryRow(ctx, `
		INSERT INTO kasir_transactions
		(secret_code, plate, wash_transaction_id, wash_total, cafe_total, total, payment_method, transacted_at, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8, now())
		RETURNING id, created_at
	`, in.SecretCode, NormalizePlate(in.Plate), in.WashTransactionID, in.WashTotal, cafeTotal, total,
		string(in.PaymentMethod), in.TransactedAt).Scan(&id, &createdAt)
	if err != nil {
		return nil, err
	}

	out := &domain.KasirTransaction{
		ID:                id,
		SecretCode:        in.SecretCode,
		Plate:             NormalizePlate(in.Plate),
		WashTransactionID: in.WashTransactionID,
		WashTotal:         domain.Money{Amount: in.WashTotal},
		CafeTotal:         domain.Money{Amount: cafeTotal},
		Total:             domain.Money{Amount: total},
		PaymentMethod:     in.PaymentMethod,
		TransactedAt:      in.TransactedAt,
		CreatedAt:         createdAt,
	}

	for _, it := range in.Items {
		subtotal := it.UnitPrice * int64(it.Qty)
		var itemID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO coffee_sales (kasir_transaction_id, name, unit_price, qty, subtotal, created_at)
			VALUES ($1,$2,$3,$4,$5, now())
			RETURNING id
		`, id, it.Name, it.UnitPrice, it.Qty, subtotal).Scan(&itemID)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, domain.CoffeeSale{
			ID:                 itemID,
			KasirTransactionID: id,
			Name:               it.Name,
			UnitPrice:          domain.Money{Amount: it.UnitPrice},
			Qty:                it.Qty,
			Subtotal:           domain.Money{Amount: subtotal},
		})
	}
	return out, nil
}

// GetBySecretCodeTx resolves a checkout by its review redemption code.
func (r KasirRepository) GetBySecretCodeTx(ctx context.Context, tx pgx.Tx, code string) (*domain.KasirTransaction, error) {
	return r.getBySecretCode(ctx, tx, code)
}

func (r KasirRepository) GetBySecretCode(ctx context.Context, code string) (*domain.KasirTransaction, error) {
	return r.getBySecretCode(ctx, r.DB.Pool, code)
}

func (r KasirRepository) getBySecretCode(ctx context.Context, q querier, code string) (*domain.KasirTransaction, error) {
	row := q.QueryRow(ctx, `
		SELECT id, secret_code, plate, wash_transaction_id, wash_total, cafe_total, total, payment_method, transacted_at, created_at
		FROM kasir_transactions
		WHERE secret_code=$1
	`, code)
	t, err := scanKasir(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r KasirRepository) List(ctx context.Context, limit int) ([]domain.KasirTransaction, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, secret_code, plate, wash_transaction_id, wash_total, cafe_total, total, payment_method, transacted_at, created_at
		FROM kasir_transactions
		ORDER BY transacted_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.KasirTransaction
	var ids []int64
	for rows.Next() {
		t, err := scanKasir(rows)
		if err != nil {
			return nil, err
		}
		ids = append(ids, t.ID)
		txs = append(txs, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return txs, nil
	}

	itemRows, err := r.DB.Pool.Query(ctx, `
		SELECT kasir_transaction_id, id, name, unit_price, qty, subtotal, created_at
		FROM coffee_sales
		WHERE kasir_transaction_id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	itemsByTx := make(map[int64][]domain.CoffeeSale)
	for itemRows.Next() {
		var it domain.CoffeeSale
		if err := itemRows.Scan(&it.KasirTransactionID, &it.ID, &it.Name, &it.UnitPrice.Amount, &it.Qty, &it.Subtotal.Amount, &it.CreatedAt); err != nil {
			return nil, err
		}
		itemsByTx[it.KasirTransactionID] = append(itemsByTx[it.KasirTransactionID], it)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	for i := range txs {
		txs[i].Items = itemsByTx[txs[i].ID]
	}
	return txs, nil
}

func scanKasir(row pgx.Row) (*domain.KasirTransaction, error) {
	var t domain.KasirTransaction
	var method string
	var washID pgtype.Int8
	if err := row.Scan(
		&t.ID, &t.SecretCode, &t.Plate, &washID, &t.WashTotal.Amount, &t.CafeTotal.Amount, &t.Total.Amount,
		&method, &t.TransactedAt, &t.CreatedAt,
	); err != nil {
		return nil, err
	}
	if washID.Valid {
		t.WashTransactionID = &washID.Int64
	}
	t.PaymentMethod = domain.PaymentMethod(method)
	return &t, nil
}
