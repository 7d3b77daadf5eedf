package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/nk_store/internal/models"
)

func (r *GormRepo) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// EnsureUser creates the user row on first sign-in and keeps email and name
// in sync with the identity provider afterwards.
func (r *GormRepo) EnsureUser(ctx context.Context, id, email, name string) (*models.User, error) {
	fresh := models.User{ID: id, Email: email, DisplayName: name, Role: models.RoleUser}
	if err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&fresh).Error; err != nil {
		return nil, err
	}

	u, err := r.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if email != "" && email != u.Email {
		changes["email"] = email
		u.Email = email
	}
	if name != "" && u.DisplayName == "" {
		changes["display_name"] = name
		u.DisplayName = name
	}
	if len(changes) > 0 {
		if err := r.updateUser(ctx, id, changes); err != nil {
			return nil, err
		}
	}
	return u, nil
}

type ProfileUpdate struct {
	DisplayName *string
	Phone       *string
	City        *string
}

func (r *GormRepo) UpdateProfile(ctx context.Context, id string, p ProfileUpdate) error {
	changes := map[string]any{}
	if p.DisplayName != nil {
		changes["display_name"] = *p.DisplayName
	}
	if p.Phone != nil {
		changes["phone"] = *p.Phone
	}
	if p.City != nil {
		changes["city"] = *p.City
	}
	if len(changes) == 0 {
		return nil
	}
	return r.updateUser(ctx, id, changes)
}

func (r *GormRepo) SetOrderUpdates(ctx context.Context, id string, enabled bool) error {
	return r.updateUser(ctx, id, map[string]any{"order_updates": enabled})
}

func (r *GormRepo) SetRole(ctx context.Context, id, role string) error {
	return r.updateUser(ctx, id, map[string]any{"role": role})
}

func (r *GormRepo) SetAddresses(ctx context.Context, id string, addrs models.Addresses) error {
	return r.updateUser(ctx, id, map[string]any{"addresses": addrs})
}

func (r *GormRepo) updateUser(ctx context.Context, id string, changes map[string]any) error {
	changes["updated_at"] = time.Now().UTC()
	res := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
