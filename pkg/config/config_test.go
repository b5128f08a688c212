package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("PORT", "")
	t.Setenv("USER", "someone-else")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.HTTPAddr)
	assert.Equal(t, "campusbooking", cfg.DB.User, "DB user must not fall back to $USER")
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, "authenticated", cfg.Supabase.JWTAudience)
	assert.Equal(t, 60*time.Second, cfg.StatusPollInterval)
	assert.False(t, cfg.AvailabilityInclusiveEnd)
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "5432", cfg.DB.Port, "PORT must not leak into DB_PORT")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":7000")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SUPABASE_URL", "https://abcd.supabase.co")
	t.Setenv("SUPABASE_JWT_SECRET", "s3cret")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.edu, http://localhost:3000")
	t.Setenv("STATUS_POLL_INTERVAL", "15s")
	t.Setenv("AVAILABILITY_INCLUSIVE_END", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.HTTPAddr)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "https://abcd.supabase.co", cfg.Supabase.URL)
	assert.Equal(t, "s3cret", cfg.Supabase.JWTSecret)
	assert.Equal(t, "anon", cfg.Supabase.AnonKey)
	assert.Equal(t, []string{"https://app.example.edu", "http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, 15*time.Second, cfg.StatusPollInterval)
	assert.True(t, cfg.AvailabilityInclusiveEnd)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("STATUS_POLL_INTERVAL", "soon")

	_, err := Load()
	require.Error(t, err)
}
