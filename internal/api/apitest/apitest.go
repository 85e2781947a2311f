// Package apitest содержит фейки backend и хранилища для тестов HTTP ручек
package apitest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingFlow/internal/api/middleware"
	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	draftStorage "github.com/m04kA/SMC-BookingFlow/internal/infra/storage/draft"
	backendClient "github.com/m04kA/SMC-BookingFlow/internal/integrations/backend"
	"github.com/m04kA/SMC-BookingFlow/internal/service/catalog"
	"github.com/m04kA/SMC-BookingFlow/internal/service/sessions"
	"github.com/m04kA/SMC-BookingFlow/pkg/logger"
)

// Фиксированные идентификаторы тестового каталога
const (
	UserID          = "11111111-1111-1111-1111-111111111111"
	BusinessID      = "22222222-2222-2222-2222-222222222222"
	OtherBusinessID = "33333333-3333-3333-3333-333333333333"
	StaffID         = "44444444-4444-4444-4444-444444444444"
	InactiveStaffID = "55555555-5555-5555-5555-555555555555"
	HaircutID       = "66666666-6666-6666-6666-666666666666"
	BeardID         = "77777777-7777-7777-7777-777777777777"
	AppointmentID   = "88888888-8888-8888-8888-888888888888"
)

// MemoryStore хранилище снапшотов в памяти
type MemoryStore struct {
	mu        sync.Mutex
	snapshots map[string]domain.DraftSnapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string]domain.DraftSnapshot)}
}

func (s *MemoryStore) Load(_ context.Context, key string) (*domain.DraftSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.snapshots[key]
	if !ok {
		return nil, draftStorage.ErrSnapshotNotFound
	}
	return &snapshot, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, snapshot domain.DraftSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[key] = snapshot
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, key)
	return nil
}

// Backend фейковый hosted backend. Ошибки задаются полями *Err.
type Backend struct {
	mu sync.Mutex

	Businesses []domain.Business
	Staff      []domain.StaffMember
	Services   []domain.Service
	Bookings   []domain.Appointment

	CatalogErr error
	CreateErr  error
	FetchErr   error
	CancelErr  error

	Created   []domain.BookingPayload
	Cancelled []string
}

// NewBackend возвращает backend с одним бизнесом, двумя мастерами и двумя услугами
func NewBackend() *Backend {
	return &Backend{
		Businesses: []domain.Business{
			{ID: BusinessID, Name: "Barber One"},
			{ID: OtherBusinessID, Name: "Nails Two"},
		},
		Staff: []domain.StaffMember{
			{ID: StaffID, BusinessID: BusinessID, Name: "Ann", Role: "barber", IsActive: true},
			{ID: InactiveStaffID, BusinessID: BusinessID, Name: "Bob", Role: "barber", IsActive: false},
		},
		Services: []domain.Service{
			{ID: HaircutID, BusinessID: BusinessID, Name: "Haircut", DurationMinutes: 30, Price: 100},
			{ID: BeardID, BusinessID: BusinessID, Name: "Beard", DurationMinutes: 20, Price: 50},
		},
	}
}

func (b *Backend) GetBusiness(_ context.Context, businessID string) (*domain.Business, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.CatalogErr != nil {
		return nil, b.CatalogErr
	}
	for _, business := range b.Businesses {
		if business.ID == businessID {
			found := business
			return &found, nil
		}
	}
	return nil, backendClient.ErrNotFound
}

func (b *Backend) GetStaffByBusiness(_ context.Context, businessID string) ([]domain.StaffMember, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.CatalogErr != nil {
		return nil, b.CatalogErr
	}
	var result []domain.StaffMember
	for _, member := range b.Staff {
		if member.BusinessID == businessID && member.IsActive {
			result = append(result, member)
		}
	}
	return result, nil
}

func (b *Backend) GetServicesByBusiness(_ context.Context, businessID string) ([]domain.Service, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.CatalogErr != nil {
		return nil, b.CatalogErr
	}
	var result []domain.Service
	for _, service := range b.Services {
		if service.BusinessID == businessID {
			result = append(result, service)
		}
	}
	return result, nil
}

func (b *Backend) CreateBooking(_ context.Context, payload domain.BookingPayload) (*domain.Appointment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Created = append(b.Created, payload)
	if b.CreateErr != nil {
		return nil, b.CreateErr
	}
	appointment := domain.Appointment{
		ID:         AppointmentID,
		UserID:     payload.UserID,
		BusinessID: payload.BusinessID,
		StaffID:    payload.StaffID,
		ServiceIDs: payload.ServiceIDs,
		Date:       payload.Date,
		StartTime:  payload.StartTime,
		EndTime:    payload.EndTime,
		TotalPrice: payload.TotalPrice,
		Status:     domain.StatusPending,
		Notes:      payload.Notes,
	}
	b.Bookings = append(b.Bookings, appointment)
	return &appointment, nil
}

func (b *Backend) GetUserBookings(_ context.Context, userID string) ([]domain.Appointment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FetchErr != nil {
		return nil, b.FetchErr
	}
	var result []domain.Appointment
	for _, a := range b.Bookings {
		if a.UserID == userID {
			result = append(result, a.Clone())
		}
	}
	return result, nil
}

func (b *Backend) CancelBooking(_ context.Context, appointmentID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Cancelled = append(b.Cancelled, appointmentID)
	if b.CancelErr != nil {
		return b.CancelErr
	}
	for i := range b.Bookings {
		if b.Bookings[i].ID == appointmentID {
			b.Bookings[i].Status = domain.StatusCancelled
		}
	}
	return nil
}

// Env собранные зависимости для теста ручки
type Env struct {
	Backend  *Backend
	Store    *MemoryStore
	Sessions *sessions.Registry
	Catalog  *catalog.Service
}

// NewEnv собирает реестр сессий и каталог поверх фейкового backend
func NewEnv() *Env {
	backend := NewBackend()
	store := NewMemoryStore()
	log := logger.NewNop()
	return &Env{
		Backend:  backend,
		Store:    store,
		Sessions: sessions.NewRegistry("test", time.Second, 0, store, backend, nil, log),
		Catalog:  catalog.NewService(backend, log),
	}
}

// Flow возвращает сессию тестового пользователя
func (e *Env) Flow() *sessions.Flow {
	return e.Sessions.Get(context.Background(), UserID)
}

// Serve выполняет запрос через роутер с одним маршрутом; X-User-ID проставляется автоматически
func Serve(method, pattern, target, body string, handler http.HandlerFunc) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Handle(pattern, middleware.Auth(handler)).Methods(method)

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set(middleware.UserIDHeader, UserID)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
