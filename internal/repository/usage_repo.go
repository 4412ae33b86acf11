package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

type UsageRepo struct {
	db *sql.DB
}

func NewUsageRepo(db *sql.DB) *UsageRepo {
	return &UsageRepo{db: db}
}

// Record appends a redemption to the usage log. It runs on the caller's
// transaction so the entry commits or rolls back with its order.
func (r *UsageRepo) Record(ctx context.Context, tx Runner, u models.DiscountUsage) error {
	query := `
		INSERT INTO discount_usages (discount_id, order_id, user_id, amount, used_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	if _, err := tx.ExecContext(ctx, query, u.DiscountID, u.OrderID, u.UserID, u.Amount); err != nil {
		return errors.Wrap(err, "record discount usage")
	}
	return nil
}

// CountByDiscount returns how many times a discount has been redeemed in total
// and by userID. Nothing rejects a redemption on these numbers; admins read
// them next to the configured limits.
func (r *UsageRepo) CountByDiscount(ctx context.Context, discountID int64, userID *int64) (total int, byUser int, err error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE $2::BIGINT IS NOT NULL AND user_id = $2)
		FROM discount_usages
		WHERE discount_id = $1
	`
	if err := r.db.QueryRowContext(ctx, query, discountID, userID).Scan(&total, &byUser); err != nil {
		return 0, 0, errors.Wrap(err, "count discount usage")
	}
	return total, byUser, nil
}
