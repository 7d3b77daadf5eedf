package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrVersionConflict means the row changed since it was read.
	ErrVersionConflict = errors.New("version conflict")
	ErrDuplicate       = errors.New("duplicate key")
	// ErrStaleStatus means a conditional status write found a different status.
	ErrStaleStatus = errors.New("status changed concurrently")
)

type GormRepo struct {
	DB *gorm.DB
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
