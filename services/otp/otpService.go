package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"room-rescue/httpServices/mail"
	"room-rescue/logger"
	"room-rescue/models/otp"

	"gorm.io/gorm"
)

// Mailer delivers an issued code to its owner.
type Mailer interface {
	SendOTP(to, code string) error
}

// Service handles OTP issuance and validation.
type Service struct {
	DB     *gorm.DB
	Mailer Mailer
}

// NewOTPService creates a new OTP service with the default SMTP mailer.
func NewOTPService(db *gorm.DB) *Service {
	return &Service{
		DB:     db,
		Mailer: mail.NewSender(),
	}
}

// GenerateCode returns a random 6-digit code, zero-padded.
func (s *Service) GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Issue supersedes any existing codes for the email and stores a fresh one.
// The delete and insert run in one transaction so concurrent issuance cannot
// leave two live codes behind. Mail delivery failure does not fail the
// issuance; the code stays valid.
func (s *Service) Issue(email string) (*otp.OTP, error) {
	code, err := s.GenerateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP: %w", err)
	}

	now := time.Now()
	record := &otp.OTP{
		UserEmail: email,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(otp.Validity),
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_email = ?", email).Delete(&otp.OTP{}).Error; err != nil {
			return fmt.Errorf("failed to clear previous OTPs: %w", err)
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to create OTP record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.Mailer.SendOTP(email, code); err != nil {
		logger.Error(fmt.Sprintf("Failed to send OTP mail to %s", email), err)
	}

	return record, nil
}

// Validate checks a candidate code against the most recently issued record
// for the email. It fails closed: no record, an expired record or a mismatch
// all yield false. A matching code is consumed so it cannot be replayed.
func (s *Service) Validate(email, candidate string) (bool, error) {
	var record otp.OTP
	err := s.DB.Where("user_email = ?", email).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to find OTP record: %w", err)
	}

	if record.IsExpired() {
		return false, nil
	}

	if record.Code != candidate {
		return false, nil
	}

	if err := s.DB.Where("user_email = ?", email).Delete(&otp.OTP{}).Error; err != nil {
		return false, fmt.Errorf("failed to consume OTP: %w", err)
	}

	return true, nil
}
