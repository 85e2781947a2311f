package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func TestAuth(t *testing.T) {
	var gotUserID string
	handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUserID string
	}{
		{name: "missing", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not uuid", header: "42", wantStatus: http.StatusUnauthorized},
		{
			name:       "valid",
			header:     "6F9619FF-8B86-D011-B42D-00CF4FC964FF",
			wantStatus: http.StatusNoContent,
			wantUserID: "6f9619ff-8b86-d011-b42d-00cf4fc964ff",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = ""
			req := httptest.NewRequest(http.MethodGet, "/draft", nil)
			if tt.header != "" {
				req.Header.Set(UserIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUserID, gotUserID)
		})
	}
}

type observation struct {
	method string
	route  string
	status int
}

type recordingCollector struct {
	mu   sync.Mutex
	seen []observation
}

func (c *recordingCollector) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen = append(c.seen, observation{method: method, route: route, status: status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	collector := &recordingCollector{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(collector))
	r.HandleFunc("/appointments/{appointmentId}/cancel", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/appointments/123/cancel", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, []observation{
		{method: http.MethodPatch, route: "/appointments/{appointmentId}/cancel", status: http.StatusConflict},
	}, collector.seen)
}
