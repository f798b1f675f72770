package profile

import (
	"errors"
	"fmt"
	"time"

	"room-rescue/models/user"
	profileTypes "room-rescue/types/profile"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// Service mutates the mutable profile fields of a user record.
type Service struct {
	DB *gorm.DB
}

// NewProfileService creates a new profile service.
func NewProfileService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Update applies the patch to the user with the given email. A blank field
// leaves the stored value unchanged; fields cannot be cleared through this
// operation. Only the resulting name and room number are returned.
func (s *Service) Update(req profileTypes.UpdateRequest) (*profileTypes.UpdateResponse, error) {
	var account user.User
	if err := s.DB.Where("email = ?", req.Email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if req.Name != "" {
		account.Name = req.Name
	}
	if req.RoomNo != "" {
		account.RoomNo = req.RoomNo
	}
	account.UpdatedAt = time.Now()

	if err := s.DB.Save(&account).Error; err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	return &profileTypes.UpdateResponse{
		Name:   account.Name,
		RoomNo: account.RoomNo,
	}, nil
}
