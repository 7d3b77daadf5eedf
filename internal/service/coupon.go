package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/nk_store/internal/domain"
	"github.com/Skotchmaster/nk_store/internal/models"
	"github.com/Skotchmaster/nk_store/internal/repo"
)

type CouponService struct {
	Repo *repo.GormRepo
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate returns the active coupon matching code, or ErrNotFound.
func (s *CouponService) Validate(ctx context.Context, code string) (*models.Coupon, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, fmt.Errorf("coupon code required: %w", ErrValidation)
	}
	c, err := s.Repo.GetActiveCoupon(ctx, code)
	if err != nil {
		return nil, notFound(err, "coupon %s", code)
	}
	return c, nil
}

func DiscountAmount(subtotal, percent int64) int64 {
	return domain.PercentOf(subtotal, percent)
}

func (s *CouponService) Create(ctx context.Context, code string, percent int64, description string) (*models.Coupon, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, fmt.Errorf("coupon code required: %w", ErrValidation)
	}
	if percent <= 0 || percent > 100 {
		return nil, fmt.Errorf("discount must be within (0,100]: %w", ErrValidation)
	}

	c := &models.Coupon{Code: code, Discount: percent, IsActive: true, Description: strings.TrimSpace(description)}
	if err := s.Repo.CreateCoupon(ctx, c); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, fmt.Errorf("coupon %s exists: %w", code, ErrConflict)
		}
		return nil, err
	}
	return c, nil
}

func (s *CouponService) List(ctx context.Context) ([]models.Coupon, error) {
	return s.Repo.ListCoupons(ctx)
}

func (s *CouponService) SetActive(ctx context.Context, code string, active bool) error {
	code = NormalizeCode(code)
	if err := s.Repo.SetCouponActive(ctx, code, active); err != nil {
		return notFound(err, "coupon %s", code)
	}
	return nil
}

func (s *CouponService) Delete(ctx context.Context, code string) error {
	code = NormalizeCode(code)
	if err := s.Repo.DeleteCoupon(ctx, code); err != nil {
		return notFound(err, "coupon %s", code)
	}
	return nil
}
