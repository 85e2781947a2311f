package update_draft_staff

// UpdateStaffRequest HTTP request model
type UpdateStaffRequest struct {
	StaffID string `json:"staffId"`
}
