package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

const receiptColumns = `id, order_id, payment_method, price_paid, created_at`

type ReceiptRepo struct {
	db *sql.DB
}

func NewReceiptRepo(db *sql.DB) *ReceiptRepo {
	return &ReceiptRepo{db: db}
}

func (r *ReceiptRepo) findOne(ctx context.Context, op, query string, args ...any) (*models.Receipt, error) {
	var rc models.Receipt
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&rc.ID, &rc.OrderID, &rc.PaymentMethod, &rc.PricePaid, &rc.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, op)
	}
	return &rc, nil
}

func (r *ReceiptRepo) GetByID(ctx context.Context, id int64) (*models.Receipt, error) {
	return r.findOne(ctx, "get receipt", `SELECT `+receiptColumns+` FROM receipts WHERE id = $1`, id)
}

func (r *ReceiptRepo) GetByOrderID(ctx context.Context, orderID int64) (*models.Receipt, error) {
	return r.findOne(ctx, "get receipt by order", `SELECT `+receiptColumns+` FROM receipts WHERE order_id = $1`, orderID)
}

// Update edits payment method and/or amount paid; nil leaves a column as is.
func (r *ReceiptRepo) Update(ctx context.Context, id int64, paymentMethod *string, pricePaid *decimal.Decimal) (*models.Receipt, error) {
	var paid decimal.NullDecimal
	if pricePaid != nil {
		paid = decimal.NewNullDecimal(*pricePaid)
	}
	query := `
		UPDATE receipts SET
			payment_method = COALESCE($2, payment_method),
			price_paid = COALESCE($3, price_paid)
		WHERE id = $1
		RETURNING ` + receiptColumns
	return r.findOne(ctx, "update receipt", query, id, paymentMethod, paid)
}
