package domain

// Business is a salon or barber shop as stored in the backend
type Business struct {
	ID      string
	Name    string
	Address string
	Phone   string
}

// Ref returns the snapshot kept in a booking draft
func (b *Business) Ref() BusinessRef {
	return BusinessRef{ID: b.ID, Name: b.Name}
}

// StaffMember is a person who performs services at a business
type StaffMember struct {
	ID         string
	BusinessID string
	Name       string
	Role       string
	IsActive   bool
}

// Ref returns the snapshot kept in a booking draft
func (s *StaffMember) Ref() StaffRef {
	return StaffRef{ID: s.ID, Name: s.Name}
}

// Service is a bookable service offered by a business
type Service struct {
	ID              string  `json:"id"`
	BusinessID      string  `json:"businessId,omitempty"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}
