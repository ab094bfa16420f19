package db

import (
	"time"

	"app/internal/domain/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	seedAdminEmail    = "admin@weddingdresscms.com"
	seedAdminPassword = "Admin123!"
)

// Seed は初期管理者を作成する。既にいれば何もしない（冪等）。
func Seed(gormDB *gorm.DB) error {
	var count int64
	if err := gormDB.Model(&model.User{}).
		Where("email = ?", seedAdminEmail).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.User{
		Email:        seedAdminEmail,
		PasswordHash: string(hash),
		FirstName:    "Admin",
		LastName:     "User",
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
		Roles: []model.UserRole{
			{Role: model.RoleAdmin},
		},
	}

	return gormDB.Create(&admin).Error
}
