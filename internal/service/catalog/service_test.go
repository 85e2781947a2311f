package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	backendClient "github.com/m04kA/SMC-BookingFlow/internal/integrations/backend"
	"github.com/m04kA/SMC-BookingFlow/pkg/logger"
)

type fakeBackend struct {
	business *domain.Business
	staff    []domain.StaffMember
	services []domain.Service
	err      error
}

func (f *fakeBackend) GetBusiness(context.Context, string) (*domain.Business, error) {
	return f.business, f.err
}

func (f *fakeBackend) GetStaffByBusiness(context.Context, string) ([]domain.StaffMember, error) {
	return f.staff, f.err
}

func (f *fakeBackend) GetServicesByBusiness(context.Context, string) ([]domain.Service, error) {
	return f.services, f.err
}

func TestService_FindStaff(t *testing.T) {
	svc := NewService(&fakeBackend{
		staff: []domain.StaffMember{
			{ID: "s1", BusinessID: "b1", Name: "Ann", IsActive: true},
			{ID: "s2", BusinessID: "b1", Name: "Bob", IsActive: true},
		},
	}, logger.NewNop())

	member, err := svc.FindStaff(context.Background(), "b1", "s2")
	require.NoError(t, err)
	assert.Equal(t, "Bob", member.Name)

	_, err = svc.FindStaff(context.Background(), "b1", "s9")
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestService_FindService(t *testing.T) {
	svc := NewService(&fakeBackend{
		services: []domain.Service{
			{ID: "x", Name: "Haircut", DurationMinutes: 30, Price: 100},
		},
	}, logger.NewNop())

	service, err := svc.FindService(context.Background(), "b1", "x")
	require.NoError(t, err)
	assert.Equal(t, 30, service.DurationMinutes)

	_, err = svc.FindService(context.Background(), "b1", "y")
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestService_BackendErrors(t *testing.T) {
	notFound := NewService(&fakeBackend{
		err: fmt.Errorf("%w: GET /businesses/b1", backendClient.ErrNotFound),
	}, logger.NewNop())

	_, err := notFound.GetBusiness(context.Background(), "b1")
	assert.ErrorIs(t, err, ErrBusinessNotFound)

	unavailable := NewService(&fakeBackend{
		err: fmt.Errorf("%w: timeout", backendClient.ErrUnavailable),
	}, logger.NewNop())

	_, err = unavailable.ListServices(context.Background(), "b1")
	assert.ErrorIs(t, err, ErrBackend)
	assert.ErrorIs(t, err, backendClient.ErrUnavailable)

	_, err = unavailable.FindStaff(context.Background(), "b1", "s1")
	assert.ErrorIs(t, err, ErrBackend)
}
