package complaint

// SubmitRequest is the complaint submission payload. Status, timestamps and
// ids are never taken from the caller.
type SubmitRequest struct {
	Category    string `json:"category" validate:"omitempty,max=100"`
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	TimeSlot    string `json:"time_slot" validate:"omitempty,max=100"`
}

// UpdateStatusRequest carries the requested lifecycle move.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AssignStaffRequest carries the staff member to put on a complaint.
type AssignStaffRequest struct {
	StaffID uint `json:"staff_id" validate:"required"`
}

// StatsResponse is the admin dashboard aggregate.
type StatsResponse struct {
	Total          int64            `json:"total"`
	ByStatus       map[string]int64 `json:"by_status"`
	SubmittedToday int64            `json:"submitted_today"`
	SubmittedWeek  int64            `json:"submitted_this_week"`
}
