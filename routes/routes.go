package routes

import (
	"room-rescue/controllers/auth"
	"room-rescue/controllers/complaint"
	"room-rescue/controllers/otp"
	"room-rescue/controllers/profile"
	"room-rescue/logger"
	"room-rescue/middleware"
	"room-rescue/models/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	authController := auth.NewAuthController(db, asyncLogger)
	otpController := otp.NewOTPController(db, asyncLogger)
	complaintController := complaint.NewComplaintController(db, asyncLogger)
	profileController := profile.NewProfileController(db, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	api := app.Group("/api")

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authController.Register)
	authGroup.Post("/login", authController.Login)
	authGroup.Post("/refresh", authController.Refresh)

	otpGroup := api.Group("/otp")
	otpGroup.Post("/send", otpController.Send)
	otpGroup.Post("/verify", otpController.Verify)

	/*=============================================================================
	| Profile Routes
	===============================================================================*/
	profileGroup := api.Group("/profile")
	profileGroup.Post("/update", middleware.RequireAuthentication(), profileController.Update)

	/*=============================================================================
	| Complaint Routes
	===============================================================================*/
	complaints := api.Group("/complaints")

	complaints.Post("/submit", middleware.RequireRoles(
		string(user.RoleStudent),
	), complaintController.Submit)

	complaints.Get("/track/:studentId", middleware.RequireAuthentication(), complaintController.Track)

	complaints.Put("/update-status/:complaintId", middleware.RequireRoles(
		string(user.RoleStaff), string(user.RoleAdmin),
	), complaintController.UpdateStatus)

	complaints.Put("/assign-staff/:complaintId", middleware.RequireRoles(
		string(user.RoleAdmin),
	), complaintController.AssignStaff)

	complaints.Get("/unassigned", middleware.RequireRoles(
		string(user.RoleStaff), string(user.RoleAdmin),
	), complaintController.Unassigned)

	complaints.Get("/assigned/:staffId", middleware.RequireRoles(
		string(user.RoleStaff), string(user.RoleAdmin),
	), complaintController.AssignedTo)

	complaints.Get("/stats", middleware.RequireRoles(
		string(user.RoleAdmin),
	), complaintController.Stats)
}
