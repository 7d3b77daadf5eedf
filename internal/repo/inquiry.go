package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/nk_store/internal/models"
)

func (r *GormRepo) CreateInquiry(ctx context.Context, in *models.Inquiry) error {
	return r.DB.WithContext(ctx).Create(in).Error
}

func (r *GormRepo) ListInquiries(ctx context.Context, offset, limit int) (int64, []models.Inquiry, error) {
	q := r.DB.WithContext(ctx).Model(&models.Inquiry{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}
	var items []models.Inquiry
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) CountUnreadInquiries(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Inquiry{}).Where("status = ?", models.InquiryUnread).Count(&n).Error
	return n, err
}

func (r *GormRepo) SetInquiryStatus(ctx context.Context, id, status string) error {
	res := r.DB.WithContext(ctx).Model(&models.Inquiry{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) DeleteInquiry(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Inquiry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
