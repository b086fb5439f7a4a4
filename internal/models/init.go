package models

import (
	"github.com/land-deals/backend/internal/constants"
	"github.com/land-deals/backend/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin creates the default admin account when no users exist.
func InitDefaultAdmin(username, password string) error {
	var count int64
	DB.Model(&User{}).Count(&count)

	if count > 0 {
		// Make sure the builtin admin keeps its role across upgrades.
		if err := DB.Model(&User{}).Where("username = ?", "admin").
			Update("role", constants.UserRoleAdmin).Error; err != nil {
			logger.Warnw("ensure_default_admin_role_failed", "error", err)
		}
		return nil
	}

	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := User{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     username,
		Role:         constants.UserRoleAdmin,
	}

	if err := DB.Create(&user).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "username", username)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", username, "password_hidden", true)
	}

	return nil
}
