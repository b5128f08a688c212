package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"campusbooking/internal/api"
	"campusbooking/pkg/config"
)

func newTestRouter() http.Handler {
	status := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSON(w, http.StatusOK, map[string]string{"status": "active"})
	})
	return NewRouter(Dependencies{
		Cfg: config.Config{
			AppEnv:         "prod",
			AllowedOrigins: []string{"http://localhost:3000"},
			Supabase:       config.SupabaseConfig{JWTSecret: "secret", JWTAudience: "authenticated"},
		},
		Status: status,
	})
}

func TestRouter_PublicRoutes(t *testing.T) {
	h := newTestRouter()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/status", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "active")
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	h := newTestRouter()

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/v1/rooms"},
		{http.MethodGet, "/v1/equipment"},
		{http.MethodGet, "/v1/catalog/bookable?type=room"},
		{http.MethodPost, "/v1/bookings"},
		{http.MethodGet, "/v1/bookings/mine"},
		{http.MethodGet, "/v1/bookings"},
		{http.MethodPost, "/v1/bookings/0b7f3c1e-5a3c-4c9e-9d2a-1f2e3d4c5b6a/approve"},
		{http.MethodGet, "/v1/reports/bookings"},
		{http.MethodGet, "/v1/reports/supplies"},
		{http.MethodGet, "/v1/me"},
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/v1/bookings", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
