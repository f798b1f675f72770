package complaint

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"room-rescue/logger"
	complaintModel "room-rescue/models/complaint"
	complaintService "room-rescue/services/complaint"
	"room-rescue/types"
	complaintTypes "room-rescue/types/complaint"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Controller handles complaint-related HTTP requests.
type Controller struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Service *complaintService.Service
}

// NewComplaintController creates a new complaint controller.
func NewComplaintController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *Controller {
	return &Controller{
		DB:      db,
		Logger:  asyncLogger,
		Service: complaintService.NewComplaintService(db),
	}
}

// sendResponseWithLog writes the response and pushes an audit entry to the
// async logger.
func (cc *Controller) sendResponseWithLog(c *fiber.Ctx, status int, resp types.ApiResponse) error {
	if cc.Logger != nil {
		respBody, _ := json.Marshal(resp)
		cc.Logger.Log(types.LogEntry{
			Method:       c.Method(),
			URL:          c.OriginalURL(),
			RequestBody:  string(c.Body()),
			ResponseBody: string(respBody),
			StatusCode:   status,
			CreatedAt:    time.Now(),
		})
	}
	return c.Status(status).JSON(resp)
}

// Submit stores a new complaint for the authenticated student.
func (cc *Controller) Submit(c *fiber.Ctx) error {
	var req complaintTypes.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if msg := types.ValidateStruct(req); msg != "" {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: msg,
		})
	}

	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return cc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}
	uid, ok := claims["uid"].(float64)
	if !ok || uid <= 0 {
		return cc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User id not found in token",
		})
	}

	draft := &complaintModel.Complaint{
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		TimeSlot:    req.TimeSlot,
		StudentID:   uint(uid),
	}

	stored, err := cc.Service.Submit(c.UserContext(), draft)
	if err != nil {
		logger.Error("Failed to submit complaint", err)
		return cc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to submit complaint",
		})
	}

	logger.Success(fmt.Sprintf("Complaint %d submitted by student %d", stored.ID, stored.StudentID))
	return cc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Complaint submitted",
		Data:    stored,
	})
}

// Track lists all complaints of one student.
func (cc *Controller) Track(c *fiber.Ctx) error {
	studentID, err := parseIDParam(c, "studentId")
	if err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid student id",
		})
	}

	complaints, err := cc.Service.Track(studentID)
	if err != nil {
		logger.Error("Failed to track complaints", err)
		return cc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch complaints",
		})
	}

	return cc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Complaints fetched",
		Data:    complaints,
	})
}

// UpdateStatus moves a complaint through its lifecycle.
func (cc *Controller) UpdateStatus(c *fiber.Ctx) error {
	complaintID, err := parseIDParam(c, "complaintId")
	if err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid complaint id",
		})
	}

	var req complaintTypes.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if msg := types.ValidateStruct(req); msg != "" {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: msg,
		})
	}

	updated, err := cc.Service.UpdateStatus(complaintID, complaintModel.Status(req.Status))
	if err != nil {
		return cc.respondWorkflowError(c, err, "Failed to update status")
	}

	return cc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Status updated",
		Data:    updated,
	})
}

// AssignStaff puts a staff member on a complaint.
func (cc *Controller) AssignStaff(c *fiber.Ctx) error {
	complaintID, err := parseIDParam(c, "complaintId")
	if err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid complaint id",
		})
	}

	var req complaintTypes.AssignStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if msg := types.ValidateStruct(req); msg != "" {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: msg,
		})
	}

	updated, err := cc.Service.Assign(complaintID, req.StaffID)
	if err != nil {
		return cc.respondWorkflowError(c, err, "Failed to assign staff")
	}

	logger.Success(fmt.Sprintf("Complaint %d assigned to staff %d", updated.ID, req.StaffID))
	return cc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Staff assigned",
		Data:    updated,
	})
}

// Unassigned lists complaints that have no staff reference yet.
func (cc *Controller) Unassigned(c *fiber.Ctx) error {
	complaints, err := cc.Service.ListUnassigned()
	if err != nil {
		logger.Error("Failed to list unassigned complaints", err)
		return cc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch complaints",
		})
	}

	return cc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Unassigned complaints fetched",
		Data:    complaints,
	})
}

// AssignedTo lists a staff member's queue.
func (cc *Controller) AssignedTo(c *fiber.Ctx) error {
	staffID, err := parseIDParam(c, "staffId")
	if err != nil {
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid staff id",
		})
	}

	complaints, err := cc.Service.ListAssignedTo(staffID)
	if err != nil {
		logger.Error("Failed to list assigned complaints", err)
		return cc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch complaints",
		})
	}

	return cc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Assigned complaints fetched",
		Data:    complaints,
	})
}

// Stats returns aggregate counts for the admin dashboard.
func (cc *Controller) Stats(c *fiber.Ctx) error {
	total, byStatus, today, thisWeek, err := cc.Service.Stats()
	if err != nil {
		logger.Error("Failed to compute complaint stats", err)
		return cc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to compute stats",
		})
	}

	statusCounts := make(map[string]int64, len(byStatus))
	for _, row := range byStatus {
		statusCounts[row.Status] = row.Count
	}

	return cc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Stats computed",
		Data: complaintTypes.StatsResponse{
			Total:          total,
			ByStatus:       statusCounts,
			SubmittedToday: today,
			SubmittedWeek:  thisWeek,
		},
	})
}

// respondWorkflowError maps service errors onto HTTP statuses.
func (cc *Controller) respondWorkflowError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, complaintService.ErrComplaintNotFound),
		errors.Is(err, complaintService.ErrStaffNotFound):
		return cc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, complaintService.ErrUnknownStatus),
		errors.Is(err, complaintService.ErrIllegalTransition),
		errors.Is(err, complaintService.ErrNotStaff):
		return cc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		logger.Error(fallback, err)
		return cc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: fallback,
		})
	}
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}
