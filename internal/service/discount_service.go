package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/Cheertaboi/storefront-service/internal/models"
	"github.com/Cheertaboi/storefront-service/internal/repository"
)

// DiscountStore is the single read/write path for discount rows, shared by
// the coupon validator and the admin endpoints.
type DiscountStore interface {
	DiscountFinder
	FindByID(ctx context.Context, id int64) (*models.Discount, error)
	List(ctx context.Context) ([]models.Discount, error)
	Create(ctx context.Context, d *models.Discount) error
	Update(ctx context.Context, d *models.Discount) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type UsageCounter interface {
	CountByDiscount(ctx context.Context, discountID int64, userID *int64) (total int, byUser int, err error)
}

// DiscountUsageSummary reports redemptions next to the configured limits.
type DiscountUsageSummary struct {
	DiscountID        int64  `json:"discount_id"`
	TimesUsed         int    `json:"times_used"`
	UsageLimit        *int   `json:"usage_limit"`
	UserID            *int64 `json:"user_id,omitempty"`
	TimesUsedByUser   *int   `json:"times_used_by_user,omitempty"`
	UsageLimitPerUser *int   `json:"usage_limit_per_user"`
}

type DiscountService struct {
	discounts DiscountStore
	usage     UsageCounter
	newCode   CodeGenerator
}

func NewDiscountService(discounts DiscountStore, usage UsageCounter, gen CodeGenerator) *DiscountService {
	if gen == nil {
		gen = RandomCode
	}
	return &DiscountService{discounts: discounts, usage: usage, newCode: gen}
}

// Create stores a new discount. A blank code is replaced by a generated
// unique one.
func (s *DiscountService) Create(ctx context.Context, in models.DiscountInput, createdBy *int64) (*models.Discount, error) {
	d, err := fromInput(in)
	if err != nil {
		return nil, err
	}
	d.CreatedBy = createdBy
	if in.IsActive == nil {
		d.IsActive = true
	}

	if d.Code != "" {
		if err := s.discounts.Create(ctx, d); err != nil {
			return nil, codeConflict(err)
		}
		return d, nil
	}

	return insertWithUniqueCode(ctx, s.newCode, discountCodeLength, func(code string) (*models.Discount, error) {
		d.Code = code
		if err := s.discounts.Create(ctx, d); err != nil {
			return nil, err
		}
		return d, nil
	})
}

func (s *DiscountService) Get(ctx context.Context, id int64) (*models.Discount, error) {
	d, err := s.discounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDiscountNotFound
	}
	return d, nil
}

func (s *DiscountService) List(ctx context.Context) ([]models.Discount, error) {
	return s.discounts.List(ctx)
}

// Update replaces the editable fields of discount id. The code is required
// on update.
func (s *DiscountService) Update(ctx context.Context, id int64, in models.DiscountInput) (*models.Discount, error) {
	d, err := fromInput(in)
	if err != nil {
		return nil, err
	}
	if d.Code == "" {
		return nil, errors.WithMessage(ErrMissingRequiredFields, "code is required")
	}
	if in.IsActive == nil {
		current, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		d.IsActive = current.IsActive
	}

	d.ID = id
	ok, err := s.discounts.Update(ctx, d)
	if err != nil {
		return nil, codeConflict(err)
	}
	if !ok {
		return nil, ErrDiscountNotFound
	}
	return d, nil
}

func (s *DiscountService) Delete(ctx context.Context, id int64) error {
	ok, err := s.discounts.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDiscountNotFound
	}
	return nil
}

// Usage reports redemption counts. Limits are shown, not enforced.
func (s *DiscountService) Usage(ctx context.Context, id int64, userID *int64) (*DiscountUsageSummary, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	total, byUser, err := s.usage.CountByDiscount(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	out := &DiscountUsageSummary{
		DiscountID:        d.ID,
		TimesUsed:         total,
		UsageLimit:        d.UsageLimit,
		UsageLimitPerUser: d.UsageLimitPerUser,
	}
	if userID != nil {
		out.UserID = userID
		out.TimesUsedByUser = &byUser
	}
	return out, nil
}

func fromInput(in models.DiscountInput) (*models.Discount, error) {
	if in.Type != models.DiscountTypePercentage && in.Type != models.DiscountTypeFixed {
		return nil, errors.WithMessage(ErrInvalidDiscount, "type must be percentage or fixed")
	}
	if in.Value.IsNegative() {
		return nil, errors.WithMessage(ErrInvalidDiscount, "value must not be negative")
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, errors.WithMessage(ErrInvalidDiscount, "end_date is before start_date")
	}

	appliesTo := in.AppliesTo
	switch appliesTo {
	case "":
		appliesTo = models.AppliesToAll
	case models.AppliesToAll, models.AppliesToProducts, models.AppliesToCategories:
	default:
		return nil, errors.WithMessage(ErrInvalidDiscount, "applies_to must be all, products or categories")
	}

	d := &models.Discount{
		Code:                  strings.TrimSpace(in.Code),
		Name:                  in.Name,
		Description:           in.Description,
		Type:                  in.Type,
		Value:                 in.Value,
		MinimumOrderAmount:    in.MinimumOrderAmount,
		MaximumDiscountAmount: in.MaximumDiscountAmount,
		UsageLimit:            in.UsageLimit,
		UsageLimitPerUser:     in.UsageLimitPerUser,
		StartDate:             in.StartDate,
		EndDate:               in.EndDate,
		AppliesTo:             appliesTo,
		ApplicationID:         in.ApplicationID,
	}
	if in.IsActive != nil {
		d.IsActive = *in.IsActive
	}
	return d, nil
}

func codeConflict(err error) error {
	if errors.Is(err, repository.ErrDuplicateKey) {
		return ErrDiscountCodeTaken
	}
	return err
}
