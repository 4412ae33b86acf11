package service

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/storefront-service/internal/models"
	"github.com/Cheertaboi/storefront-service/internal/repository"
)

type fakeDiscounts struct {
	mu     sync.Mutex
	byID   map[int64]*models.Discount
	nextID int64
	err    error
}

func newFakeDiscounts(ds ...*models.Discount) *fakeDiscounts {
	f := &fakeDiscounts{byID: map[int64]*models.Discount{}}
	for _, d := range ds {
		f.nextID++
		if d.ID == 0 {
			d.ID = f.nextID
		}
		f.byID[d.ID] = d
	}
	return f
}

func (f *fakeDiscounts) FindActiveByCode(_ context.Context, code string) (*models.Discount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, d := range f.byID {
		if d.Code == code && d.IsActive {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeDiscounts) FindByID(_ context.Context, id int64) (*models.Discount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDiscounts) List(_ context.Context) ([]models.Discount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Discount{}
	for _, d := range f.byID {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeDiscounts) Create(_ context.Context, d *models.Discount) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Code == d.Code {
			return errors.Wrap(repository.ErrDuplicateKey, "create discount")
		}
	}
	f.nextID++
	d.ID = f.nextID
	cp := *d
	f.byID[d.ID] = &cp
	return nil
}

func (f *fakeDiscounts) Update(_ context.Context, d *models.Discount) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[d.ID]; !ok {
		return false, nil
	}
	cp := *d
	f.byID[d.ID] = &cp
	return true, nil
}

func (f *fakeDiscounts) Delete(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

type fakeUsage struct {
	total, byUser int
}

func (f fakeUsage) CountByDiscount(_ context.Context, _ int64, _ *int64) (int, int, error) {
	return f.total, f.byUser, nil
}

type fakeCarts struct {
	mu     sync.Mutex
	carts  map[int64]*models.Cart
	codes  map[string]bool
	nextID int64
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{carts: map[int64]*models.Cart{}, codes: map[string]bool{}}
}

func (f *fakeCarts) Create(_ context.Context, userID *int64, items models.LineItems, code string) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.codes[code] {
		return nil, errors.Wrap(repository.ErrDuplicateKey, "create cart")
	}
	f.codes[code] = true
	f.nextID++
	c := &models.Cart{ID: f.nextID, UserID: userID, Products: items, ShareableCode: code}
	f.carts[c.ID] = c
	cp := *c
	return &cp, nil
}

func (f *fakeCarts) GetByID(_ context.Context, id int64) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.carts[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCarts) GetByCode(_ context.Context, code string) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.carts {
		if c.ShareableCode == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCarts) List(_ context.Context) ([]models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Cart{}
	for _, c := range f.carts {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCarts) Update(_ context.Context, id int64, items models.LineItems) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.carts[id]
	if !ok {
		return nil, nil
	}
	c.Products = items
	cp := *c
	return &cp, nil
}

func (f *fakeCarts) Delete(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.carts[id]
	if !ok {
		return false, nil
	}
	delete(f.codes, c.ShareableCode)
	delete(f.carts, id)
	return true, nil
}

type fakeOrderWriter struct {
	got   []models.NewOrder
	err   error
	seqID int64
}

func (f *fakeOrderWriter) CreateWithReceipt(_ context.Context, in models.NewOrder) (*models.OrderWithReceipt, error) {
	f.got = append(f.got, in)
	if f.err != nil {
		return nil, f.err
	}
	f.seqID++
	receiptID := f.seqID + 100
	return &models.OrderWithReceipt{
		Order: models.Order{
			ID:           f.seqID,
			CustomerID:   in.CustomerID,
			CashierID:    in.CashierID,
			OrderType:    in.OrderType,
			Products:     in.Products,
			Price:        in.Price,
			Discount:     in.Discount,
			DiscountCode: in.DiscountCode,
			TotalPrice:   in.TotalPrice,
			ReceiptID:    &receiptID,
		},
		Receipt: models.Receipt{
			ID:            receiptID,
			OrderID:       f.seqID,
			PaymentMethod: in.PaymentMethod,
			PricePaid:     in.PricePaid,
		},
	}, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func nullDec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(s))
}

func strPtr(s string) *string { return &s }
