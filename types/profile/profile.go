package profile

// UpdateRequest patches the mutable profile fields. A blank field means
// "leave unchanged"; there is no way to clear a field through this operation.
type UpdateRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Name   string `json:"name" validate:"omitempty,max=255"`
	RoomNo string `json:"roomno" validate:"omitempty,max=50"`
}

// UpdateResponse returns only the resulting mutable fields, never the full
// user record.
type UpdateResponse struct {
	Name   string `json:"name"`
	RoomNo string `json:"roomno"`
}
