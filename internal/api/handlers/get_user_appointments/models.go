package get_user_appointments

import (
	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
)

// AppointmentsResponse HTTP модель списка бронирований.
// Stale = true, если backend не ответил и список взят из кэша.
type AppointmentsResponse struct {
	Appointments []handlers.AppointmentResponse `json:"appointments"`
	Stale        bool                           `json:"stale"`
}
