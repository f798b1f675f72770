package auth

import (
	"room-rescue/models/user"
)

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Name     string   `json:"name" validate:"required,min=2,max=255"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8,max=72"`
	RoomNo   string   `json:"roomno"`
	Roles    []string `json:"roles" validate:"omitempty,dive,oneof=STUDENT STAFF ADMIN"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries a refresh token to exchange for a new access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse mirrors the fields the frontend consumes after login.
type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	ID           uint           `json:"id"`
	Email        string         `json:"email"`
	Name         string         `json:"name"`
	Roles        user.RoleSlice `json:"roles"`
	RoomNo       string         `json:"roomno"`
}
