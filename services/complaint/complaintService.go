package complaint

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"room-rescue/models/complaint"
	"room-rescue/models/user"
	"room-rescue/services/categorize"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

var (
	ErrComplaintNotFound = errors.New("complaint not found")
	ErrStaffNotFound     = errors.New("staff not found")
	ErrNotStaff          = errors.New("user does not have the STAFF role")
	ErrUnknownStatus     = errors.New("unknown status")
	ErrIllegalTransition = errors.New("illegal status transition")
)

// Categorizer suggests a category for complaint text.
type Categorizer interface {
	Suggest(ctx context.Context, title, description string) string
}

// Service implements the complaint workflow over the ledger table.
type Service struct {
	DB          *gorm.DB
	Categorizer Categorizer
}

// NewComplaintService creates a new complaint service.
func NewComplaintService(db *gorm.DB) *Service {
	return &Service{
		DB:          db,
		Categorizer: categorize.NewService(),
	}
}

// Submit stores a new complaint. Caller-supplied id, status, staff reference
// and timestamps are overwritten; the record always starts Pending with
// createdAt == updatedAt. An empty category gets a suggestion.
func (s *Service) Submit(ctx context.Context, c *complaint.Complaint) (*complaint.Complaint, error) {
	submittedAt := time.Now()
	c.ID = 0
	c.Reference = uuid.NewString()
	c.Status = complaint.StatusPending
	c.StaffID = nil
	c.CreatedAt = submittedAt
	c.UpdatedAt = submittedAt

	if strings.TrimSpace(c.Category) == "" {
		if s.Categorizer != nil {
			c.Category = s.Categorizer.Suggest(ctx, c.Title, c.Description)
		} else {
			c.Category = categorize.DefaultCategory
		}
	}

	if err := s.DB.Create(c).Error; err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}
	return c, nil
}

// Track returns every complaint submitted by the student, ordered by id
// ascending for a stable listing.
func (s *Service) Track(studentID uint) ([]complaint.Complaint, error) {
	var complaints []complaint.Complaint
	err := s.DB.Where("student_id = ?", studentID).
		Order("id ASC").
		Find(&complaints).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	return complaints, nil
}

// Assign puts a staff member on a complaint and moves it to In Progress.
// The staff id must resolve to an existing user holding the STAFF role;
// dangling references are rejected.
func (s *Service) Assign(complaintID, staffID uint) (*complaint.Complaint, error) {
	var record complaint.Complaint
	if err := s.DB.First(&record, complaintID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, fmt.Errorf("failed to load complaint: %w", err)
	}

	var staff user.User
	if err := s.DB.First(&staff, staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}
	if !staff.HasRole(user.RoleStaff) {
		return nil, ErrNotStaff
	}

	record.StaffID = &staffID
	record.Status = complaint.StatusInProgress
	record.UpdatedAt = time.Now()

	if err := s.DB.Save(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to assign staff: %w", err)
	}
	return &record, nil
}

// UpdateStatus moves a complaint to the requested status. The status must be
// part of the known vocabulary and legal per the transition table.
func (s *Service) UpdateStatus(complaintID uint, status complaint.Status) (*complaint.Complaint, error) {
	if !status.IsValid() {
		return nil, ErrUnknownStatus
	}

	var record complaint.Complaint
	if err := s.DB.First(&record, complaintID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, fmt.Errorf("failed to load complaint: %w", err)
	}

	if !complaint.CanTransition(record.Status, status) {
		return nil, ErrIllegalTransition
	}

	record.Status = status
	record.UpdatedAt = time.Now()

	if err := s.DB.Save(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	return &record, nil
}

// ListUnassigned returns complaints with no staff reference set.
func (s *Service) ListUnassigned() ([]complaint.Complaint, error) {
	var complaints []complaint.Complaint
	err := s.DB.Where("staff_id IS NULL").
		Order("id ASC").
		Find(&complaints).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list unassigned complaints: %w", err)
	}
	return complaints, nil
}

// ListAssignedTo returns the staff member's queue: their complaints whose
// status is in StaffQueueStatuses.
func (s *Service) ListAssignedTo(staffID uint) ([]complaint.Complaint, error) {
	var complaints []complaint.Complaint
	err := s.DB.Where("staff_id = ? AND status IN ?", staffID, complaint.StaffQueueStatuses).
		Order("id ASC").
		Find(&complaints).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned complaints: %w", err)
	}
	return complaints, nil
}

// StatusCount is one row of the status breakdown.
type StatusCount struct {
	Status string
	Count  int64
}

// Stats aggregates complaint totals for the admin dashboard. Day and week
// windows start at local midnight / beginning of the week.
func (s *Service) Stats() (total int64, byStatus []StatusCount, today int64, thisWeek int64, err error) {
	if err = s.DB.Model(&complaint.Complaint{}).Count(&total).Error; err != nil {
		return 0, nil, 0, 0, fmt.Errorf("failed to count complaints: %w", err)
	}

	err = s.DB.Model(&complaint.Complaint{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return 0, nil, 0, 0, fmt.Errorf("failed to count by status: %w", err)
	}

	dayStart := now.BeginningOfDay()
	if err = s.DB.Model(&complaint.Complaint{}).Where("created_at >= ?", dayStart).Count(&today).Error; err != nil {
		return 0, nil, 0, 0, fmt.Errorf("failed to count today's complaints: %w", err)
	}

	weekStart := now.BeginningOfWeek()
	if err = s.DB.Model(&complaint.Complaint{}).Where("created_at >= ?", weekStart).Count(&thisWeek).Error; err != nil {
		return 0, nil, 0, 0, fmt.Errorf("failed to count this week's complaints: %w", err)
	}

	return total, byStatus, today, thisWeek, nil
}
