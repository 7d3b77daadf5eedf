package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Skotchmaster/nk_store/internal/domain"
	"github.com/Skotchmaster/nk_store/internal/models"
	"github.com/Skotchmaster/nk_store/internal/repo"
)

type WishlistService struct {
	Repo *repo.GormRepo
}

func (s *WishlistService) List(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	if userID == "" {
		return nil, fmt.Errorf("user required: %w", ErrValidation)
	}
	return s.Repo.ListWishlist(ctx, userID)
}

// Toggle saves the product, or drops it when it is already saved, and
// reports whether it is saved afterwards.
func (s *WishlistService) Toggle(ctx context.Context, userID, productID string) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("user required: %w", ErrValidation)
	}
	removed, err := s.Repo.RemoveWishlistItem(ctx, userID, productID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}

	p, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		return false, notFound(err, "product %s", productID)
	}
	it := &models.WishlistItem{
		UserID:    userID,
		ProductID: p.ID,
		Name:      p.Name,
		Price:     domain.DisplayPrice(p).Price,
		ImageURL:  p.ImageURL,
		AddedAt:   time.Now().UTC(),
	}
	if err := s.Repo.AddWishlistItem(ctx, it); err != nil {
		return false, err
	}
	return true, nil
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID string) error {
	removed, err := s.Repo.RemoveWishlistItem(ctx, userID, productID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("wishlist item %s: %w", productID, ErrNotFound)
	}
	return nil
}
