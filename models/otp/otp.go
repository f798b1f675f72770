package otp

import (
	"time"
)

// Validity is how long an issued code stays usable.
const Validity = 5 * time.Minute

// OTP is a short-lived one-time code keyed by the owning email.
// The table name matches the legacy schema.
type OTP struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserEmail string    `gorm:"type:varchar(255);not null;index" json:"user_email"`
	Code      string    `gorm:"column:otp;type:varchar(6);not null" json:"otp"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

func (OTP) TableName() string {
	return "otp_store"
}

// IsExpired reports whether the code is past its expiry instant.
// The expiry instant itself counts as expired.
func (o *OTP) IsExpired() bool {
	return !time.Now().Before(o.ExpiresAt)
}
