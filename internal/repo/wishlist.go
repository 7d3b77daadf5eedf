package repo

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/nk_store/internal/models"
)

func (r *GormRepo) ListWishlist(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	var out []models.WishlistItem
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// AddWishlistItem keeps the first snapshot when the product is already saved.
func (r *GormRepo) AddWishlistItem(ctx context.Context, it *models.WishlistItem) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(it).Error
}

// RemoveWishlistItem reports whether there was an entry to remove.
func (r *GormRepo) RemoveWishlistItem(ctx context.Context, userID, productID string) (bool, error) {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
