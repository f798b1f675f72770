package otp

import (
	"fmt"

	"room-rescue/logger"
	"room-rescue/models/user"
	otpService "room-rescue/services/otp"
	"room-rescue/types"
	otpTypes "room-rescue/types/otp"
	"room-rescue/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controller handles OTP-related HTTP requests.
type Controller struct {
	DB         *gorm.DB
	Logger     *logger.AsyncLogger
	OTPService *otpService.Service
}

// NewOTPController creates a new OTP controller.
func NewOTPController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *Controller {
	return &Controller{
		DB:         db,
		Logger:     asyncLogger,
		OTPService: otpService.NewOTPService(db),
	}
}

// Send issues a verification code for a registered email. Any previously
// issued code for the email is superseded.
func (oc *Controller) Send(c *fiber.Ctx) error {
	var req otpTypes.SendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if msg := types.ValidateStruct(req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: msg,
		})
	}

	account, err := utils.GetUserByEmail(oc.DB, req.Email)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "No account with this email",
		})
	}
	if account.IsVerified {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Email is already verified",
		})
	}

	record, err := oc.OTPService.Issue(req.Email)
	if err != nil {
		logger.Error("Failed to issue OTP", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to send verification code",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Verification code sent",
		Data: otpTypes.OTPResponse{
			Message:   "Verification code sent to your email",
			ExpiresAt: record.ExpiresAt.Format("2006-01-02 15:04:05"),
			Success:   true,
		},
	})
}

// Verify validates a candidate code and flips the account's verified flag
// on success.
func (oc *Controller) Verify(c *fiber.Ctx) error {
	var req otpTypes.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if msg := types.ValidateStruct(req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: msg,
		})
	}

	valid, err := oc.OTPService.Validate(req.Email, req.Code)
	if err != nil {
		logger.Error("Failed to validate OTP", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	if !valid {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid or expired verification code",
			Data: otpTypes.OTPResponse{
				Message: "Invalid or expired verification code",
				Success: false,
			},
		})
	}

	err = oc.DB.Model(&user.User{}).
		Where("email = ?", req.Email).
		Update("is_verified", true).Error
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to mark %s verified", req.Email), err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update account",
		})
	}

	logger.Success(fmt.Sprintf("Email %s verified", req.Email))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Email verified successfully",
		Data: otpTypes.OTPResponse{
			Message: "Email verified successfully",
			Success: true,
		},
	})
}
