package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/nk_store/internal/models"
)

func (r *GormRepo) CreateReview(ctx context.Context, rv *models.Review) error {
	return r.DB.WithContext(ctx).Create(rv).Error
}

func (r *GormRepo) GetReview(ctx context.Context, id string) (*models.Review, error) {
	var rv models.Review
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&rv).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

// UpdateReview rewrites rating and comment and marks the review edited.
func (r *GormRepo) UpdateReview(ctx context.Context, id string, rating int64, comment string) error {
	res := r.DB.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).Updates(map[string]any{
		"rating":     rating,
		"comment":    comment,
		"edited":     true,
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) DeleteReview(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Review{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListReviews pages reviews newest first; an empty productID lists all products.
func (r *GormRepo) ListReviews(ctx context.Context, productID string, offset, limit int) (int64, []models.Review, error) {
	q := r.DB.WithContext(ctx).Model(&models.Review{})
	if productID != "" {
		q = q.Where("product_id = ?", productID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}
	var items []models.Review
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

type ReviewStats struct {
	Reviews int64
	Points  int64
}

// ReviewStats sums the ratings a product has received.
func (r *GormRepo) ReviewStats(ctx context.Context, productID string) (ReviewStats, error) {
	var st ReviewStats
	err := r.DB.WithContext(ctx).
		Model(&models.Review{}).
		Select("COUNT(*) AS reviews, COALESCE(SUM(rating), 0) AS points").
		Where("product_id = ?", productID).
		Scan(&st).Error
	return st, err
}
