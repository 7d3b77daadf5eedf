package repo

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/nk_store/internal/models"
)

// LoadCart returns the saved lines for key; a missing or expired cart is empty.
func (r *GormRepo) LoadCart(ctx context.Context, key string) (models.CartLines, error) {
	var cart models.Cart
	res := r.DB.WithContext(ctx).
		Where("cart_key = ? AND expires_at > ?", key, time.Now().UTC()).
		Limit(1).
		Find(&cart)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return models.CartLines{}, nil
	}
	return cart.Lines, nil
}

func (r *GormRepo) SaveCart(ctx context.Context, key string, lines models.CartLines, ttl time.Duration) error {
	now := time.Now().UTC()
	cart := models.Cart{Key: key, Lines: lines, ExpiresAt: now.Add(ttl), UpdatedAt: now}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"lines", "expires_at", "updated_at"}),
		}).
		Create(&cart).Error
}

func (r *GormRepo) DeleteCart(ctx context.Context, key string) error {
	return r.DB.WithContext(ctx).Where("cart_key = ?", key).Delete(&models.Cart{}).Error
}

// PurgeExpiredCarts removes carts past their expiry and reports how many.
func (r *GormRepo) PurgeExpiredCarts(ctx context.Context) (int64, error) {
	res := r.DB.WithContext(ctx).Where("expires_at <= ?", time.Now().UTC()).Delete(&models.Cart{})
	return res.RowsAffected, res.Error
}
