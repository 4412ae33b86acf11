package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

type OrderStore interface {
	List(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	UpdateShipping(ctx context.Context, id int64, shipping *bool, location *string) (*models.Order, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type ReceiptStore interface {
	GetByID(ctx context.Context, id int64) (*models.Receipt, error)
	GetByOrderID(ctx context.Context, orderID int64) (*models.Receipt, error)
	Update(ctx context.Context, id int64, paymentMethod *string, pricePaid *decimal.Decimal) (*models.Receipt, error)
}

// OrderService is the admin view over stored orders and receipts. Nothing
// here recomputes prices or discounts.
type OrderService struct {
	orders   OrderStore
	receipts ReceiptStore
}

func NewOrderService(orders OrderStore, receipts ReceiptStore) *OrderService {
	return &OrderService{orders: orders, receipts: receipts}
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx)
}

func (s *OrderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	return orderFound(s.orders.GetByID(ctx, id))
}

func (s *OrderService) UpdateShipping(ctx context.Context, id int64, shipping *bool, location *string) (*models.Order, error) {
	return orderFound(s.orders.UpdateShipping(ctx, id, shipping, location))
}

// DeleteOrder removes the order together with its receipt.
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	ok, err := s.orders.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOrderNotFound
	}
	return nil
}

func (s *OrderService) GetReceipt(ctx context.Context, id int64) (*models.Receipt, error) {
	return receiptFound(s.receipts.GetByID(ctx, id))
}

func (s *OrderService) GetReceiptForOrder(ctx context.Context, orderID int64) (*models.Receipt, error) {
	return receiptFound(s.receipts.GetByOrderID(ctx, orderID))
}

func (s *OrderService) UpdateReceipt(ctx context.Context, id int64, paymentMethod *string, pricePaid *decimal.Decimal) (*models.Receipt, error) {
	return receiptFound(s.receipts.Update(ctx, id, paymentMethod, pricePaid))
}

func orderFound(o *models.Order, err error) (*models.Order, error) {
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func receiptFound(r *models.Receipt, err error) (*models.Receipt, error) {
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrReceiptNotFound
	}
	return r, nil
}
