package complaint

import (
	"time"
)

// Status is a complaint lifecycle state.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
	StatusClosed     Status = "Closed"
)

// StaffQueueStatuses is the fixed status subset shown on a staff member's
// queue. The subset is a design parameter, not incidental.
var StaffQueueStatuses = []Status{StatusInProgress, StatusResolved}

// IsValid reports whether the status belongs to the known vocabulary.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// transitions encodes the legal status moves. Closed is terminal; a resolved
// complaint may be reopened into In Progress.
var transitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusResolved, StatusClosed},
	StatusInProgress: {StatusResolved, StatusClosed},
	StatusResolved:   {StatusInProgress, StatusClosed},
	StatusClosed:     {},
}

// CanTransition reports whether moving from one status to the other is legal.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Complaint is a maintenance complaint record. Student and staff are held as
// plain foreign-key ids, not loaded object associations.
type Complaint struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Reference   string `gorm:"type:varchar(36);not null;unique" json:"reference"`
	Category    string `gorm:"type:varchar(100)" json:"category"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Status      Status `gorm:"type:varchar(20);not null" json:"status"`
	TimeSlot    string `gorm:"type:varchar(100)" json:"time_slot"`
	StudentID   uint   `gorm:"not null;index" json:"student_id"`
	StaffID     *uint  `gorm:"index" json:"staff_id,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
