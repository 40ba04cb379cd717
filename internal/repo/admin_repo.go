package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
)

// GetAdminByUsername fetches an admin by exact username, or ErrNotFound.
func GetAdminByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.Admin, error) {
	var a domain.Admin
	if err := db.WithContext(ctx).Where("username = ?", username).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAdmin fetches an admin by id, or ErrNotFound.
func GetAdmin(ctx context.Context, db *gorm.DB, id uint) (*domain.Admin, error) {
	var a domain.Admin
	if err := db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAdmin inserts a new admin row.
func CreateAdmin(ctx context.Context, db *gorm.DB, a *domain.Admin) error {
	return db.WithContext(ctx).Create(a).Error
}

// UpdateAdminPassword replaces the stored hash. Returns ErrNotFound when the
// admin does not exist.
func UpdateAdminPassword(ctx context.Context, db *gorm.DB, id uint, hash string) error {
	res := db.WithContext(ctx).Model(&domain.Admin{}).Where("id = ?", id).
		Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountAdmins returns the number of admin accounts.
func CountAdmins(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Admin{}).Count(&n).Error
	return n, err
}
