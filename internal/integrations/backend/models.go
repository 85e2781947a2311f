package backend

import (
	"fmt"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// Business модель бизнеса из backend
type Business struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Staff модель сотрудника из backend
type Staff struct {
	ID         string `json:"id"`
	BusinessID string `json:"business_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	IsActive   bool   `json:"is_active"`
}

// Service модель услуги из backend
type Service struct {
	ID         string  `json:"id"`
	BusinessID string  `json:"business_id"`
	Name       string  `json:"name"`
	Duration   int     `json:"duration"` // в минутах
	Price      float64 `json:"price"`
}

// Booking модель бронирования из backend
type Booking struct {
	ID         string   `json:"id"`
	UserID     string   `json:"user_id"`
	BusinessID string   `json:"business_id"`
	StaffID    string   `json:"staff_id"`
	ServiceIDs []string `json:"service_ids"`
	Date       string   `json:"date"`       // "2025-10-15"
	StartTime  string   `json:"start_time"` // "10:00"
	EndTime    string   `json:"end_time"`   // "11:30"
	TotalPrice float64  `json:"total_price"`
	Status     string   `json:"status"`
	Notes      *string  `json:"notes,omitempty"`
}

// CreateBookingRequest тело запроса на создание бронирования
type CreateBookingRequest struct {
	UserID     string   `json:"user_id"`
	BusinessID string   `json:"business_id"`
	StaffID    string   `json:"staff_id"`
	ServiceIDs []string `json:"service_ids"`
	Date       string   `json:"date"`
	StartTime  string   `json:"start_time"`
	EndTime    string   `json:"end_time"`
	TotalPrice float64  `json:"total_price"`
	Notes      *string  `json:"notes,omitempty"`
}

// ErrorResponse модель ошибки от backend
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (b *Business) toDomain() *domain.Business {
	return &domain.Business{
		ID:      b.ID,
		Name:    b.Name,
		Address: b.Address,
		Phone:   b.Phone,
	}
}

func (s *Staff) toDomain() domain.StaffMember {
	return domain.StaffMember{
		ID:         s.ID,
		BusinessID: s.BusinessID,
		Name:       s.Name,
		Role:       s.Role,
		IsActive:   s.IsActive,
	}
}

func (s *Service) toDomain() domain.Service {
	return domain.Service{
		ID:              s.ID,
		BusinessID:      s.BusinessID,
		Name:            s.Name,
		DurationMinutes: s.Duration,
		Price:           s.Price,
	}
}

func (b *Booking) toDomain() (domain.Appointment, error) {
	status := domain.AppointmentStatus(b.Status)
	if !status.IsValid() {
		return domain.Appointment{}, fmt.Errorf("%w: unknown booking status %q", ErrInvalidResponse, b.Status)
	}

	return domain.Appointment{
		ID:         b.ID,
		UserID:     b.UserID,
		BusinessID: b.BusinessID,
		StaffID:    b.StaffID,
		ServiceIDs: append([]string(nil), b.ServiceIDs...),
		Date:       b.Date,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		TotalPrice: b.TotalPrice,
		Status:     status,
		Notes:      b.Notes,
	}, nil
}

func fromDomainPayload(p domain.BookingPayload) CreateBookingRequest {
	return CreateBookingRequest{
		UserID:     p.UserID,
		BusinessID: p.BusinessID,
		StaffID:    p.StaffID,
		ServiceIDs: append([]string(nil), p.ServiceIDs...),
		Date:       p.Date,
		StartTime:  p.StartTime,
		EndTime:    p.EndTime,
		TotalPrice: p.TotalPrice,
		Notes:      p.Notes,
	}
}
