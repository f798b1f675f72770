package user

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Role is one of the fixed account role tags.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleStaff   Role = "STAFF"
	RoleAdmin   Role = "ADMIN"
)

// IsValid reports whether the role belongs to the known vocabulary.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// User is an account record. The table name matches the legacy schema.
type User struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email      string    `gorm:"type:varchar(255);not null;unique" json:"email"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Password   string    `gorm:"type:varchar(255)" json:"-"`
	RoomNo     string    `gorm:"type:varchar(50)" json:"roomno"`
	IsVerified bool      `gorm:"type:bool;default:false" json:"is_verified"`
	Roles      RoleSlice `gorm:"type:json" json:"roles"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName keeps the table name used by the original deployment.
func (User) TableName() string {
	return "allusers"
}

// HasRole reports whether the user carries the given role tag.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RoleSlice is a custom type to store the role set as a JSON column.
type RoleSlice []Role

// Scan implements the Scanner interface for database deserialization
func (rs *RoleSlice) Scan(value interface{}) error {
	if value == nil {
		*rs = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, rs)
}

// Value implements the driver Valuer interface for database serialization
func (rs RoleSlice) Value() (driver.Value, error) {
	if rs == nil {
		return nil, nil
	}
	return json.Marshal(rs)
}
