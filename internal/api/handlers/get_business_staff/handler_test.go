package get_business_staff

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingFlow/internal/api/apitest"
	backendClient "github.com/m04kA/SMC-BookingFlow/internal/integrations/backend"
	"github.com/m04kA/SMC-BookingFlow/pkg/logger"
)

const route = "/businesses/{businessId}/staff"

func TestHandle(t *testing.T) {
	env := apitest.NewEnv()
	h := NewHandler(env.Catalog, logger.NewNop())

	rec := apitest.Serve(http.MethodGet, route, "/businesses/"+apitest.BusinessID+"/staff", "", h.Handle)

	require.Equal(t, http.StatusOK, rec.Code)
	var staff []StaffResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &staff))
	require.Len(t, staff, 1)
	assert.Equal(t, apitest.StaffID, staff[0].ID)
	assert.Equal(t, "Ann", staff[0].Name)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		backendErr error
		wantStatus int
	}{
		{name: "invalid id", target: "/businesses/abc/staff", wantStatus: http.StatusBadRequest},
		{
			name:       "not found",
			target:     "/businesses/" + apitest.BusinessID + "/staff",
			backendErr: fmt.Errorf("%w: GET", backendClient.ErrNotFound),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "backend down",
			target:     "/businesses/" + apitest.BusinessID + "/staff",
			backendErr: fmt.Errorf("%w: timeout", backendClient.ErrUnavailable),
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := apitest.NewEnv()
			env.Backend.CatalogErr = tt.backendErr
			h := NewHandler(env.Catalog, logger.NewNop())

			rec := apitest.Serve(http.MethodGet, route, tt.target, "", h.Handle)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
