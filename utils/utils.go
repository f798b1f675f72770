package utils

import (
	"errors"
	"fmt"

	"room-rescue/models/user"

	"gorm.io/gorm"
)

// GetUserByEmail retrieves a user by email.
func GetUserByEmail(db *gorm.DB, email string) (*user.User, error) {
	if email == "" {
		return nil, errors.New("email cannot be empty")
	}

	var account user.User
	if err := db.Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &account, nil
}
