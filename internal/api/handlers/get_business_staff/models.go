package get_business_staff

import "github.com/m04kA/SMC-BookingFlow/internal/domain"

// StaffResponse HTTP модель мастера
type StaffResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// FromDomain конвертирует список мастеров в HTTP ответ
func FromDomain(staff []domain.StaffMember) []StaffResponse {
	result := make([]StaffResponse, 0, len(staff))
	for _, s := range staff {
		result = append(result, StaffResponse{ID: s.ID, Name: s.Name, Role: s.Role})
	}
	return result
}
