package domain

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is a server-confirmed booking
type Appointment struct {
	ID         string
	UserID     string
	BusinessID string
	StaffID    string
	ServiceIDs []string
	Date       string // YYYY-MM-DD
	StartTime  string // HH:MM
	EndTime    string // HH:MM
	TotalPrice float64
	Status     AppointmentStatus
	Notes      *string
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// IsActive returns true if the appointment still occupies a slot
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// Clone returns a deep copy
func (a Appointment) Clone() Appointment {
	c := a
	c.ServiceIDs = append([]string(nil), a.ServiceIDs...)
	if a.Notes != nil {
		notes := *a.Notes
		c.Notes = &notes
	}
	return c
}

// BookingPayload is the creation request sent to the remote booking gateway
type BookingPayload struct {
	UserID     string
	BusinessID string
	StaffID    string
	ServiceIDs []string
	Date       string
	StartTime  string
	EndTime    string
	TotalPrice float64
	Notes      *string
}

// ValidAppointmentStatuses lists every status the backend may report
var ValidAppointmentStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

// IsValid reports whether s is a known status
func (s AppointmentStatus) IsValid() bool {
	for _, valid := range ValidAppointmentStatuses {
		if s == valid {
			return true
		}
	}
	return false
}
