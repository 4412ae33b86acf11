package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

const orderColumns = `
	id, customer_id, cashier_id, order_type, products, price, discount,
	discount_code, shipping, shipping_location, total_price, receipt_id, created_at`

type OrderRepo struct {
	db        *sql.DB
	usageRepo *UsageRepo
}

func NewOrderRepo(db *sql.DB, usageRepo *UsageRepo) *OrderRepo {
	return &OrderRepo{db: db, usageRepo: usageRepo}
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID,
		&o.CustomerID,
		&o.CashierID,
		&o.OrderType,
		&o.Products,
		&o.Price,
		&o.Discount,
		&o.DiscountCode,
		&o.Shipping,
		&o.ShippingLocation,
		&o.TotalPrice,
		&o.ReceiptID,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) findOne(ctx context.Context, op, query string, args ...any) (*models.Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, op)
	}
	return o, nil
}

// CreateWithReceipt persists the order, its receipt, the back-reference from
// order to receipt and (for coupon orders) the usage log entry as one
// transaction. Either all rows exist afterwards or none do.
func (r *OrderRepo) CreateWithReceipt(ctx context.Context, in models.NewOrder) (*models.OrderWithReceipt, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "begin tx")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	insertOrder := `
		INSERT INTO orders_custom
		(customer_id, cashier_id, order_type, products, price, discount, discount_code,
		 shipping, shipping_location, total_price, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,NOW())
		RETURNING id, created_at
	`
	order := models.Order{
		CustomerID:       in.CustomerID,
		CashierID:        in.CashierID,
		OrderType:        in.OrderType,
		Products:         in.Products,
		Price:            in.Price,
		Discount:         in.Discount,
		DiscountCode:     in.DiscountCode,
		Shipping:         in.Shipping,
		ShippingLocation: in.ShippingLocation,
		TotalPrice:       in.TotalPrice,
	}
	err = tx.QueryRowContext(ctx, insertOrder,
		in.CustomerID,
		in.CashierID,
		in.OrderType,
		in.Products,
		in.Price,
		in.Discount,
		in.DiscountCode,
		in.Shipping,
		in.ShippingLocation,
		in.TotalPrice,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "insert order")
	}

	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodUnpaid
	}
	receipt := models.Receipt{
		OrderID:       order.ID,
		PaymentMethod: paymentMethod,
		PricePaid:     in.PricePaid,
	}
	insertReceipt := `
		INSERT INTO receipts (order_id, payment_method, price_paid, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`
	err = tx.QueryRowContext(ctx, insertReceipt, receipt.OrderID, receipt.PaymentMethod, receipt.PricePaid).
		Scan(&receipt.ID, &receipt.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "insert receipt")
	}

	if _, err := tx.ExecContext(ctx, `UPDATE orders_custom SET receipt_id = $2 WHERE id = $1`, order.ID, receipt.ID); err != nil {
		return nil, errors.Wrap(err, "link receipt")
	}
	order.ReceiptID = &receipt.ID

	if in.DiscountID != nil {
		usage := models.DiscountUsage{
			DiscountID: *in.DiscountID,
			OrderID:    order.ID,
			UserID:     in.CustomerID,
			Amount:     in.Discount,
		}
		if err := r.usageRepo.Record(ctx, tx, usage); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit order")
	}
	committed = true

	return &models.OrderWithReceipt{Order: order, Receipt: receipt}, nil
}

func (r *OrderRepo) List(ctx context.Context) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders_custom ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan order")
		}
		orders = append(orders, *o)
	}
	return orders, errors.Wrap(rows.Err(), "list orders")
}

func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	return r.findOne(ctx, "get order", `SELECT `+orderColumns+` FROM orders_custom WHERE id = $1`, id)
}

// UpdateShipping changes only the fields that are non-nil. Prices are never
// touched.
func (r *OrderRepo) UpdateShipping(ctx context.Context, id int64, shipping *bool, location *string) (*models.Order, error) {
	query := `
		UPDATE orders_custom SET
			shipping = COALESCE($2, shipping),
			shipping_location = COALESCE($3, shipping_location)
		WHERE id = $1
		RETURNING ` + orderColumns
	return r.findOne(ctx, "update order shipping", query, id, shipping, location)
}

// Delete removes the order. Its receipt and usage entries go with it through
// ON DELETE CASCADE.
func (r *OrderRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders_custom WHERE id = $1`, id)
	if err != nil {
		return false, errors.Wrap(err, "delete order")
	}
	return affected(res, "delete order")
}
