package profile

import (
	"errors"
	"fmt"

	"room-rescue/logger"
	profileService "room-rescue/services/profile"
	"room-rescue/types"
	profileTypes "room-rescue/types/profile"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controller handles profile edits.
type Controller struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Service *profileService.Service
}

// NewProfileController creates a new profile controller.
func NewProfileController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *Controller {
	return &Controller{
		DB:      db,
		Logger:  asyncLogger,
		Service: profileService.NewProfileService(db),
	}
}

// Update patches the caller's name and room number.
func (pc *Controller) Update(c *fiber.Ctx) error {
	var req profileTypes.UpdateRequest
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

	result, err := pc.Service.Update(req)
	if err != nil {
		if errors.Is(err, profileService.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: fmt.Sprintf("No user with email %s", req.Email),
			})
		}
		logger.Error("Failed to update profile", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update profile",
		})
	}

	logger.Success(fmt.Sprintf("Profile updated for %s", req.Email))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Profile updated",
		Data:    result,
	})
}
