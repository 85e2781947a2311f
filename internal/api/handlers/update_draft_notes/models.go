package update_draft_notes

// UpdateNotesRequest HTTP request model
type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}
