package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

const discountColumns = `
	id, code, name, description, type, value,
	minimum_order_amount, maximum_discount_amount,
	usage_limit, usage_limit_per_user, start_date, end_date,
	is_active, applies_to, application_id, created_by,
	created_at, updated_at`

type DiscountRepo struct {
	db *sql.DB
}

func NewDiscountRepo(db *sql.DB) *DiscountRepo {
	return &DiscountRepo{db: db}
}

func scanDiscount(row rowScanner) (*models.Discount, error) {
	var d models.Discount
	err := row.Scan(
		&d.ID,
		&d.Code,
		&d.Name,
		&d.Description,
		&d.Type,
		&d.Value,
		&d.MinimumOrderAmount,
		&d.MaximumDiscountAmount,
		&d.UsageLimit,
		&d.UsageLimitPerUser,
		&d.StartDate,
		&d.EndDate,
		&d.IsActive,
		&d.AppliesTo,
		&d.ApplicationID,
		&d.CreatedBy,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DiscountRepo) findOne(ctx context.Context, op, query string, args ...any) (*models.Discount, error) {
	d, err := scanDiscount(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, op)
	}
	return d, nil
}

// FindActiveByCode resolves an exact code to an active discount. Inactive and
// unknown codes both yield (nil, nil).
func (r *DiscountRepo) FindActiveByCode(ctx context.Context, code string) (*models.Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts WHERE code = $1 AND is_active = TRUE`
	return r.findOne(ctx, "find active discount by code", query, code)
}

func (r *DiscountRepo) FindByID(ctx context.Context, id int64) (*models.Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts WHERE id = $1`
	return r.findOne(ctx, "find discount by id", query, id)
}

func (r *DiscountRepo) List(ctx context.Context) ([]models.Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "list discounts")
	}
	defer rows.Close()

	discounts := []models.Discount{}
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan discount")
		}
		discounts = append(discounts, *d)
	}
	return discounts, errors.Wrap(rows.Err(), "list discounts")
}

// Create inserts d and fills in the generated id and timestamps.
func (r *DiscountRepo) Create(ctx context.Context, d *models.Discount) error {
	query := `
		INSERT INTO discounts
		(code, name, description, type, value, minimum_order_amount, maximum_discount_amount,
		 usage_limit, usage_limit_per_user, start_date, end_date, is_active,
		 applies_to, application_id, created_by, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,NOW(),NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		d.Code,
		d.Name,
		d.Description,
		d.Type,
		d.Value,
		d.MinimumOrderAmount,
		d.MaximumDiscountAmount,
		d.UsageLimit,
		d.UsageLimitPerUser,
		d.StartDate,
		d.EndDate,
		d.IsActive,
		d.AppliesTo,
		d.ApplicationID,
		d.CreatedBy,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return wrapWrite(err, "create discount")
	}
	return nil
}

// Update overwrites every editable column of the row d.ID. It reports false
// when no such row exists.
func (r *DiscountRepo) Update(ctx context.Context, d *models.Discount) (bool, error) {
	query := `
		UPDATE discounts SET
			code = $2, name = $3, description = $4, type = $5, value = $6,
			minimum_order_amount = $7, maximum_discount_amount = $8,
			usage_limit = $9, usage_limit_per_user = $10,
			start_date = $11, end_date = $12, is_active = $13,
			applies_to = $14, application_id = $15, updated_at = NOW()
		WHERE id = $1
		RETURNING created_by, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		d.ID,
		d.Code,
		d.Name,
		d.Description,
		d.Type,
		d.Value,
		d.MinimumOrderAmount,
		d.MaximumDiscountAmount,
		d.UsageLimit,
		d.UsageLimitPerUser,
		d.StartDate,
		d.EndDate,
		d.IsActive,
		d.AppliesTo,
		d.ApplicationID,
	).Scan(&d.CreatedBy, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, wrapWrite(err, "update discount")
	}
	return true, nil
}

func (r *DiscountRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM discounts WHERE id = $1`, id)
	if err != nil {
		return false, errors.Wrap(err, "delete discount")
	}
	return affected(res, "delete discount")
}
