package get_draft

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingFlow/internal/api/apitest"
	"github.com/m04kA/SMC-BookingFlow/pkg/logger"
)

func TestHandle_EmptyDraft(t *testing.T) {
	env := apitest.NewEnv()
	h := NewHandler(env.Sessions, logger.NewNop())

	rec := apitest.Serve(http.MethodGet, "/draft", "/draft", "", h.Handle)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"business": null,
		"staff": null,
		"services": [],
		"date": null,
		"time": null,
		"notes": "",
		"totalDurationMinutes": 0,
		"totalPrice": 0
	}`, rec.Body.String())
}
