package update_draft_schedule

import (
	"time"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/pkg/types"
)

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	Date string `json:"date"` // "2025-10-15"
	Time string `json:"time"` // "14:00"
}

// validateDate проверяет формат YYYY-MM-DD
func (r *UpdateScheduleRequest) validateDate() error {
	_, err := time.Parse(domain.DateFormat, r.Date)
	return err
}

// validateTime проверяет формат HH:MM
func (r *UpdateScheduleRequest) validateTime() error {
	_, err := types.NewTimeStringFromString(r.Time)
	return err
}
