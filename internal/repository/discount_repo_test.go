package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

var discountCols = []string{
	"id", "code", "name", "description", "type", "value",
	"minimum_order_amount", "maximum_discount_amount",
	"usage_limit", "usage_limit_per_user", "start_date", "end_date",
	"is_active", "applies_to", "application_id", "created_by",
	"created_at", "updated_at",
}

func TestFindActiveByCode(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDiscountRepo(db)
	now := time.Now()

	mock.ExpectQuery(q("FROM discounts WHERE code = $1 AND is_active = TRUE")).
		WithArgs("SAVE10").
		WillReturnRows(sqlmock.NewRows(discountCols).AddRow(
			int64(1), "SAVE10", "Ten off", "", "percentage", "10.00",
			"100.00", nil,
			nil, nil, nil, nil,
			true, "all", nil, nil,
			now, now,
		))

	d, err := repo.FindActiveByCode(context.Background(), "SAVE10")
	if err != nil {
		t.Fatal(err)
	}
	if d == nil || d.Type != models.DiscountTypePercentage || !d.Value.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("discount = %+v", d)
	}
	if !d.MinimumOrderAmount.Valid || !d.MinimumOrderAmount.Decimal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("minimum = %+v", d.MinimumOrderAmount)
	}
	if d.MaximumDiscountAmount.Valid || d.StartDate != nil || d.UsageLimit != nil {
		t.Fatalf("null columns not preserved: %+v", d)
	}
}

func TestFindActiveByCodeMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDiscountRepo(db)

	mock.ExpectQuery(q("FROM discounts WHERE code = $1")).
		WithArgs("NOPE").
		WillReturnRows(sqlmock.NewRows(discountCols))

	d, err := repo.FindActiveByCode(context.Background(), "NOPE")
	if err != nil || d != nil {
		t.Fatalf("FindActiveByCode = %v, %v; want nil, nil", d, err)
	}
}

func TestDiscountCreateDuplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDiscountRepo(db)

	mock.ExpectQuery(q("INSERT INTO discounts")).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &models.Discount{Code: "SAVE10", Type: "fixed"})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("err = %v", err)
	}
}

func TestDiscountUpdateMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDiscountRepo(db)

	mock.ExpectQuery(q("UPDATE discounts SET")).
		WillReturnRows(sqlmock.NewRows([]string{"created_by", "created_at", "updated_at"}))

	ok, err := repo.Update(context.Background(), &models.Discount{ID: 404, Code: "X", Type: "fixed"})
	if err != nil || ok {
		t.Fatalf("Update = %v, %v; want false, nil", ok, err)
	}
}

func TestUsageCount(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUsageRepo(db)
	user := int64(9)

	mock.ExpectQuery(q("FROM discount_usages")).
		WithArgs(int64(3), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"total", "by_user"}).AddRow(int64(5), int64(2)))

	total, byUser, err := repo.CountByDiscount(context.Background(), 3, &user)
	if err != nil {
		t.Fatal(err)
	}
	if total != 5 || byUser != 2 {
		t.Fatalf("counts = %d/%d", total, byUser)
	}
}
