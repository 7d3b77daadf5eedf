package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/nk_store/internal/models"
)

// CreateOrder inserts o; an existing id yields ErrDuplicate and nothing is written.
func (r *GormRepo) CreateOrder(ctx context.Context, o *models.Order) error {
	res := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(o)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDuplicate
	}
	return nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrdersByUser(ctx context.Context, userID string, offset, limit int) (int64, []models.Order, error) {
	return r.listOrders(ctx, r.DB.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID), offset, limit)
}

// ListOrders lists every order, optionally restricted to one status.
func (r *GormRepo) ListOrders(ctx context.Context, status models.OrderStatus, offset, limit int) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return r.listOrders(ctx, q, offset, limit)
}

func (r *GormRepo) listOrders(ctx context.Context, q *gorm.DB, offset, limit int) (int64, []models.Order, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	orders := make([]models.Order, 0, limit)
	if err := q.Session(&gorm.Session{}).Order("created_at DESC").Order("id ASC").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

func (r *GormRepo) AllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus moves an order from one status to another only if it is
// still in from. ErrStaleStatus reports a lost race.
func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id string, from, to models.OrderStatus) error {
	res := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}

func (r *GormRepo) SetReconciliation(ctx context.Context, id, state string) error {
	return r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]any{"reconciliation": state, "updated_at": time.Now().UTC()}).Error
}
