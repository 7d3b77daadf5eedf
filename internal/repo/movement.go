package repo

import (
	"context"

	"github.com/Skotchmaster/nk_store/internal/models"
)

func (r *GormRepo) RecordMovements(ctx context.Context, ms []models.StockMovement) error {
	if len(ms) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(&ms).Error
}

func (r *GormRepo) ListMovements(ctx context.Context, orderID string) ([]models.StockMovement, error) {
	var out []models.StockMovement
	if err := r.DB.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListFailedMovements returns ledger entries that need manual follow-up.
func (r *GormRepo) ListFailedMovements(ctx context.Context, limit int) ([]models.StockMovement, error) {
	var out []models.StockMovement
	if err := r.DB.WithContext(ctx).
		Where("status <> ?", models.MovementApplied).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
