// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "newmeclass_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

func FindUserByID(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByEmail(db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailExists termasuk akun yang sudah soft-delete (kolom email unique).
func EmailExists(db *gorm.DB, email string) (bool, error) {
	var n int64
	err := db.Unscoped().Model(&userModel.UserModel{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

func ReferralCodeExists(db *gorm.DB, code string) (bool, error) {
	var n int64
	err := db.Unscoped().Model(&userModel.UserModel{}).Where("referral_code = ?", code).Count(&n).Error
	return n > 0, err
}

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	return db.Create(user).Error
}

func UpdateUserPassword(db *gorm.DB, userID uuid.UUID, newPassword string) error {
	return db.Model(&userModel.UserModel{}).Where("id = ?", userID).Update("password", newPassword).Error
}

func UpdateUserColumns(db *gorm.DB, userID uuid.UUID, updates map[string]any) error {
	return db.Model(&userModel.UserModel{}).Where("id = ?", userID).Updates(updates).Error
}

func TouchLastLogin(db *gorm.DB, userID uuid.UUID, ip string) error {
	return db.Model(&userModel.UserModel{}).Where("id = ?", userID).
		UpdateColumns(map[string]any{"last_login_at": time.Now().UTC(), "ip_address": ip}).Error
}
