package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", "secret", time.Second, logger.NewNop())
}

func TestClient_GetStaffByBusiness_FiltersInactive(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/businesses/b1/staff", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("active"))
		assert.Equal(t, "secret", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode([]Staff{
			{ID: "s1", BusinessID: "b1", Name: "Ann", IsActive: true},
			{ID: "s2", BusinessID: "b1", Name: "Bob", IsActive: false},
			{ID: "s3", BusinessID: "b1", Name: "Cid", IsActive: true},
		})
	})

	staff, err := client.GetStaffByBusiness(context.Background(), "b1")
	require.NoError(t, err)
	require.Len(t, staff, 2)
	assert.Equal(t, "s1", staff[0].ID)
	assert.Equal(t, "s3", staff[1].ID)
}

func TestClient_GetServicesByBusiness(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/businesses/b1/services", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"x","business_id":"b1","name":"Haircut","duration":30,"price":100}]`))
	})

	services, err := client.GetServicesByBusiness(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, []domain.Service{
		{ID: "x", BusinessID: "b1", Name: "Haircut", DurationMinutes: 30, Price: 100},
	}, services)
}

func TestClient_GetBusiness_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetBusiness(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_CreateBooking(t *testing.T) {
	notes := "first visit"
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bookings", r.URL.Path)

		var req CreateBookingRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"x", "y"}, req.ServiceIDs)
		assert.Equal(t, "14:50", req.EndTime)
		assert.NotNil(t, req.Notes)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Booking{
			ID:         "a1",
			UserID:     req.UserID,
			BusinessID: req.BusinessID,
			StaffID:    req.StaffID,
			ServiceIDs: req.ServiceIDs,
			Date:       req.Date,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
			TotalPrice: req.TotalPrice,
			Status:     "pending",
			Notes:      req.Notes,
		})
	})

	appointment, err := client.CreateBooking(context.Background(), domain.BookingPayload{
		UserID:     "u1",
		BusinessID: "b1",
		StaffID:    "s1",
		ServiceIDs: []string{"x", "y"},
		Date:       "2025-10-15",
		StartTime:  "14:00",
		EndTime:    "14:50",
		TotalPrice: 150,
		Notes:      &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, "a1", appointment.ID)
	assert.Equal(t, domain.StatusPending, appointment.Status)
	assert.Equal(t, "14:50", appointment.EndTime)
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "conflict", status: http.StatusConflict, body: `{"message":"slot taken"}`, wantErr: ErrConflict},
		{name: "unprocessable", status: http.StatusUnprocessableEntity, body: `bad`, wantErr: ErrRejected},
		{name: "server error", status: http.StatusBadGateway, wantErr: ErrUnavailable},
		{name: "not found", status: http.StatusNotFound, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.CreateBooking(context.Background(), domain.BookingPayload{UserID: "u1"})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_ConflictMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":"23P01","message":"slot taken"}`))
	})

	_, err := client.CreateBooking(context.Background(), domain.BookingPayload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slot taken")
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()
	client := NewClient(srv.URL, "", time.Second, logger.NewNop())

	_, err := client.GetUserBookings(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_GetUserBookings_InvalidStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/u1/bookings", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"a1","status":"archived"}]`))
	})

	_, err := client.GetUserBookings(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_CancelBooking(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/bookings/a1/cancel", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.CancelBooking(context.Background(), "a1"))
	assert.True(t, called)
}

func TestClient_ContextErrorsStayInChain(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	t.Run("deadline", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := client.GetServicesByBusiness(ctx, "b1")
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.GetServicesByBusiness(ctx, "b1")
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
