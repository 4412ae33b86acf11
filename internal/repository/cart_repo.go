package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

const cartColumns = `id, user_id, products, shareable_code, created_at, updated_at`

type CartRepo struct {
	db *sql.DB
}

func NewCartRepo(db *sql.DB) *CartRepo {
	return &CartRepo{db: db}
}

func scanCart(row rowScanner) (*models.Cart, error) {
	var c models.Cart
	if err := row.Scan(&c.ID, &c.UserID, &c.Products, &c.ShareableCode, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CartRepo) findOne(ctx context.Context, op, query string, args ...any) (*models.Cart, error) {
	c, err := scanCart(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, op)
	}
	return c, nil
}

// Create inserts a cart under code in a single statement. A code already
// taken by another cart surfaces as ErrDuplicateKey.
func (r *CartRepo) Create(ctx context.Context, userID *int64, items models.LineItems, code string) (*models.Cart, error) {
	query := `
		INSERT INTO carts (user_id, products, shareable_code, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING ` + cartColumns
	c, err := scanCart(r.db.QueryRowContext(ctx, query, userID, items, code))
	if err != nil {
		return nil, wrapWrite(err, "create cart")
	}
	return c, nil
}

func (r *CartRepo) GetByID(ctx context.Context, id int64) (*models.Cart, error) {
	return r.findOne(ctx, "get cart by id", `SELECT `+cartColumns+` FROM carts WHERE id = $1`, id)
}

func (r *CartRepo) GetByCode(ctx context.Context, code string) (*models.Cart, error) {
	return r.findOne(ctx, "get cart by code", `SELECT `+cartColumns+` FROM carts WHERE shareable_code = $1`, code)
}

func (r *CartRepo) List(ctx context.Context) ([]models.Cart, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+cartColumns+` FROM carts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "list carts")
	}
	defer rows.Close()

	carts := []models.Cart{}
	for rows.Next() {
		c, err := scanCart(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan cart")
		}
		carts = append(carts, *c)
	}
	return carts, errors.Wrap(rows.Err(), "list carts")
}

// Update replaces the stored line items wholesale. Returns (nil, nil) when the
// cart does not exist.
func (r *CartRepo) Update(ctx context.Context, id int64, items models.LineItems) (*models.Cart, error) {
	query := `
		UPDATE carts SET products = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + cartColumns
	return r.findOne(ctx, "update cart", query, id, items)
}

func (r *CartRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, id)
	if err != nil {
		return false, errors.Wrap(err, "delete cart")
	}
	return affected(res, "delete cart")
}
