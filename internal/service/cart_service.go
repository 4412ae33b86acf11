package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

type CartStore interface {
	Create(ctx context.Context, userID *int64, items models.LineItems, code string) (*models.Cart, error)
	GetByID(ctx context.Context, id int64) (*models.Cart, error)
	GetByCode(ctx context.Context, code string) (*models.Cart, error)
	List(ctx context.Context) ([]models.Cart, error)
	Update(ctx context.Context, id int64, items models.LineItems) (*models.Cart, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type CartService struct {
	carts   CartStore
	newCode CodeGenerator
}

func NewCartService(carts CartStore, gen CodeGenerator) *CartService {
	if gen == nil {
		gen = RandomCode
	}
	return &CartService{carts: carts, newCode: gen}
}

// Create stores a cart under a fresh shareable code. Quantities are stored as
// given.
func (s *CartService) Create(ctx context.Context, userID *int64, items models.LineItems) (*models.Cart, error) {
	if items == nil {
		items = models.LineItems{}
	}
	cart, err := insertWithUniqueCode(ctx, s.newCode, cartCodeLength, func(code string) (*models.Cart, error) {
		return s.carts.Create(ctx, userID, items, code)
	})
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Int64("cart_id", cart.ID).Str("code", cart.ShareableCode).Msg("cart created")
	return cart, nil
}

func (s *CartService) GetByID(ctx context.Context, id int64) (*models.Cart, error) {
	return found(s.carts.GetByID(ctx, id))
}

func (s *CartService) GetByCode(ctx context.Context, code string) (*models.Cart, error) {
	return found(s.carts.GetByCode(ctx, code))
}

func (s *CartService) List(ctx context.Context) ([]models.Cart, error) {
	return s.carts.List(ctx)
}

// Update replaces the cart's line items; nothing is merged.
func (s *CartService) Update(ctx context.Context, id int64, items models.LineItems) (*models.Cart, error) {
	if items == nil {
		items = models.LineItems{}
	}
	return found(s.carts.Update(ctx, id, items))
}

// Delete reports whether a cart was removed.
func (s *CartService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.carts.Delete(ctx, id)
}

func found(c *models.Cart, err error) (*models.Cart, error) {
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}
	return c, nil
}
