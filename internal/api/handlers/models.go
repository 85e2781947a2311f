package handlers

import (
	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/pkg/ptr"
)

// DraftResponse HTTP модель черновика, общая для всех ручек /draft
type DraftResponse struct {
	Business             *domain.BusinessRef `json:"business"`
	Staff                *domain.StaffRef    `json:"staff"`
	Services             []ServiceResponse   `json:"services"`
	Date                 *string             `json:"date"`
	Time                 *string             `json:"time"`
	Notes                string              `json:"notes"`
	TotalDurationMinutes int                 `json:"totalDurationMinutes"`
	TotalPrice           float64             `json:"totalPrice"`
}

// ServiceResponse HTTP модель услуги
type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// AppointmentResponse HTTP модель бронирования
type AppointmentResponse struct {
	ID         string   `json:"id"`
	BusinessID string   `json:"businessId"`
	StaffID    string   `json:"staffId"`
	ServiceIDs []string `json:"serviceIds"`
	Date       string   `json:"date"`
	StartTime  string   `json:"startTime"`
	EndTime    string   `json:"endTime"`
	TotalPrice float64  `json:"totalPrice"`
	Status     string   `json:"status"`
	Notes      *string  `json:"notes,omitempty"`
}

// FromDraft конвертирует черновик в HTTP ответ
func FromDraft(draft domain.BookingDraft) *DraftResponse {
	resp := &DraftResponse{
		Business:             draft.Business,
		Staff:                draft.Staff,
		Services:             FromServices(draft.Services),
		Notes:                draft.Notes,
		TotalDurationMinutes: draft.Totals.DurationMinutes,
		TotalPrice:           draft.Totals.Price,
	}
	if draft.Schedule.Date != "" {
		resp.Date = ptr.Ptr(draft.Schedule.Date)
	}
	if draft.Schedule.Slot != "" {
		resp.Time = ptr.Ptr(draft.Schedule.Slot)
	}
	return resp
}

// FromServices конвертирует список услуг, пустой список остаётся [] в JSON
func FromServices(services []domain.Service) []ServiceResponse {
	result := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		result = append(result, ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		})
	}
	return result
}

// FromAppointment конвертирует бронирование в HTTP ответ
func FromAppointment(a domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:         a.ID,
		BusinessID: a.BusinessID,
		StaffID:    a.StaffID,
		ServiceIDs: append([]string{}, a.ServiceIDs...),
		Date:       a.Date,
		StartTime:  a.StartTime,
		EndTime:    a.EndTime,
		TotalPrice: a.TotalPrice,
		Status:     string(a.Status),
		Notes:      a.Notes,
	}
}

// FromAppointments конвертирует список бронирований
func FromAppointments(list []domain.Appointment) []AppointmentResponse {
	result := make([]AppointmentResponse, 0, len(list))
	for _, a := range list {
		result = append(result, FromAppointment(a))
	}
	return result
}
