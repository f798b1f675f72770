package auth

import (
	"errors"
	"fmt"

	"room-rescue/logger"
	"room-rescue/models/user"
	otpService "room-rescue/services/otp"
	"room-rescue/types"
	authTypes "room-rescue/types/auth"
	"room-rescue/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthController handles registration, login and token refresh.
type AuthController struct {
	DB         *gorm.DB
	OTPService *otpService.Service
	Logger     *logger.AsyncLogger
}

// NewAuthController creates a new auth controller.
func NewAuthController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{
		DB:         db,
		OTPService: otpService.NewOTPService(db),
		Logger:     asyncLogger,
	}
}

// Register creates an unverified account and mails a verification code.
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req authTypes.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if msg := types.ValidateStruct(req); msg != "" {
		logger.Error(msg, nil)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: msg,
			Status:  fiber.StatusBadRequest,
		})
	}

	var existing user.User
	err := h.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
			Message: "An account with this email already exists",
			Status:  fiber.StatusConflict,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Database error while checking existing user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Database error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to register user",
			Status:  fiber.StatusInternalServerError,
		})
	}

	roles := user.RoleSlice{user.RoleStudent}
	if len(req.Roles) > 0 {
		roles = user.RoleSlice{}
		for _, r := range req.Roles {
			roles = append(roles, user.Role(r))
		}
	}

	newUser := user.User{
		Email:      req.Email,
		Name:       req.Name,
		Password:   hash,
		RoomNo:     req.RoomNo,
		IsVerified: false,
		Roles:      roles,
	}

	if err := h.DB.Create(&newUser).Error; err != nil {
		logger.Error("Failed to create user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to register user",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if _, err := h.OTPService.Issue(newUser.Email); err != nil {
		// Account exists either way; the code can be re-requested.
		logger.Error(fmt.Sprintf("Failed to issue verification code for %s", newUser.Email), err)
	}

	logger.Success(fmt.Sprintf("Registered user %s", newUser.Email))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Registration successful. A verification code has been sent to your email.",
		Data: fiber.Map{
			"id":     newUser.ID,
			"email":  newUser.Email,
			"name":   newUser.Name,
			"roomno": newUser.RoomNo,
			"roles":  newUser.Roles,
		},
	})
}

// Login checks credentials and returns access and refresh tokens.
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if msg := types.ValidateStruct(req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: msg,
			Status:  fiber.StatusBadRequest,
		})
	}

	var account user.User
	if err := h.DB.Where("email = ?", req.Email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: "Invalid email or password",
				Status:  fiber.StatusUnauthorized,
			})
		}
		logger.Error("Database error during login", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Database error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if !utils.VerifyPassword(account.Password, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid email or password",
			Status:  fiber.StatusUnauthorized,
		})
	}

	if !account.IsVerified {
		return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
			Message: "Email is not verified",
			Status:  fiber.StatusForbidden,
		})
	}

	accessToken, err := utils.GenerateAccessToken(&account)
	if err != nil {
		logger.Error("Failed to generate access token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to log in",
			Status:  fiber.StatusInternalServerError,
		})
	}
	refreshToken, err := utils.GenerateRefreshToken(&account)
	if err != nil {
		logger.Error("Failed to generate refresh token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to log in",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success(fmt.Sprintf("User %s logged in", account.Email))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Login successful",
		Data: authTypes.AuthResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ID:           account.ID,
			Email:        account.Email,
			Name:         account.Name,
			Roles:        account.Roles,
			RoomNo:       account.RoomNo,
		},
	})
}

// Refresh exchanges a refresh token for a fresh access token.
func (h *AuthController) Refresh(c *fiber.Ctx) error {
	var req authTypes.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if msg := types.ValidateStruct(req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: msg,
			Status:  fiber.StatusBadRequest,
		})
	}

	claims, err := utils.ParseToken(req.RefreshToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid or expired refresh token",
			Status:  fiber.StatusUnauthorized,
		})
	}
	if typ, _ := claims["typ"].(string); typ != utils.TokenTypeRefresh {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Refresh token required",
			Status:  fiber.StatusUnauthorized,
		})
	}

	email, _ := claims["sub"].(string)
	account, err := utils.GetUserByEmail(h.DB, email)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Unknown account",
			Status:  fiber.StatusUnauthorized,
		})
	}

	accessToken, err := utils.GenerateAccessToken(account)
	if err != nil {
		logger.Error("Failed to generate access token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to refresh token",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Token refreshed",
		Token:   accessToken,
	})
}
