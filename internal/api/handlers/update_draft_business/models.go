package update_draft_business

// UpdateBusinessRequest HTTP request model
type UpdateBusinessRequest struct {
	BusinessID string `json:"businessId"`
}
