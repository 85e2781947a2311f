package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

const maxErrorBodyBytes = 4096

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для hosted backend (бизнесы, сотрудники, услуги, бронирования).
// Ретраев нет: ошибка возвращается вызывающему как есть.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента backend
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetBusiness получает бизнес по ID
func (c *Client) GetBusiness(ctx context.Context, businessID string) (*domain.Business, error) {
	var business Business
	path := fmt.Sprintf("/businesses/%s", url.PathEscape(businessID))
	if err := c.do(ctx, http.MethodGet, path, nil, &business); err != nil {
		return nil, err
	}
	return business.toDomain(), nil
}

// GetStaffByBusiness получает активных сотрудников бизнеса
func (c *Client) GetStaffByBusiness(ctx context.Context, businessID string) ([]domain.StaffMember, error) {
	var staff []Staff
	path := fmt.Sprintf("/businesses/%s/staff?active=true", url.PathEscape(businessID))
	if err := c.do(ctx, http.MethodGet, path, nil, &staff); err != nil {
		return nil, err
	}

	result := make([]domain.StaffMember, 0, len(staff))
	for i := range staff {
		// backend может игнорировать фильтр, поэтому проверяем сами
		if !staff[i].IsActive {
			continue
		}
		result = append(result, staff[i].toDomain())
	}
	return result, nil
}

// GetServicesByBusiness получает услуги бизнеса
func (c *Client) GetServicesByBusiness(ctx context.Context, businessID string) ([]domain.Service, error) {
	var services []Service
	path := fmt.Sprintf("/businesses/%s/services", url.PathEscape(businessID))
	if err := c.do(ctx, http.MethodGet, path, nil, &services); err != nil {
		return nil, err
	}

	result := make([]domain.Service, 0, len(services))
	for i := range services {
		result = append(result, services[i].toDomain())
	}
	return result, nil
}

// CreateBooking создает бронирование
func (c *Client) CreateBooking(ctx context.Context, payload domain.BookingPayload) (*domain.Appointment, error) {
	var booking Booking
	if err := c.do(ctx, http.MethodPost, "/bookings", fromDomainPayload(payload), &booking); err != nil {
		return nil, err
	}

	appointment, err := booking.toDomain()
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// GetUserBookings получает все бронирования пользователя
func (c *Client) GetUserBookings(ctx context.Context, userID string) ([]domain.Appointment, error) {
	var bookings []Booking
	path := fmt.Sprintf("/users/%s/bookings", url.PathEscape(userID))
	if err := c.do(ctx, http.MethodGet, path, nil, &bookings); err != nil {
		return nil, err
	}

	result := make([]domain.Appointment, 0, len(bookings))
	for i := range bookings {
		appointment, err := bookings[i].toDomain()
		if err != nil {
			return nil, err
		}
		result = append(result, appointment)
	}
	return result, nil
}

// CancelBooking переводит бронирование в статус cancelled
func (c *Client) CancelBooking(ctx context.Context, appointmentID string) error {
	path := fmt.Sprintf("/bookings/%s/cancel", url.PathEscape(appointmentID))
	return c.do(ctx, http.MethodPatch, path, nil, nil)
}

// do выполняет запрос и раскладывает статус-коды по ошибкам клиента
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("backend %s %s failed: %v", method, path, err)
		return fmt.Errorf("%w: failed to execute request: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, readErrorMessage(resp.Body))
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, readErrorMessage(resp.Body))
	default:
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, readErrorMessage(resp.Body))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

// readErrorMessage достаёт message из тела ошибки, иначе возвращает тело как есть
func readErrorMessage(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, maxErrorBodyBytes))

	var errResp ErrorResponse
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}
	return strings.TrimSpace(string(data))
}
