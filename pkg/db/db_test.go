package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"campusbooking/pkg/config"
)

func TestErrorClassifiers(t *testing.T) {
	exclusion := fmt.Errorf("update booking: %w", &pgconn.PgError{Code: "23P01", ConstraintName: "bookings_no_approved_overlap"})
	assert.True(t, IsExclusionViolation(exclusion))
	assert.False(t, IsCheckViolation(exclusion))

	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsCheckViolation(&pgconn.PgError{Code: "23514"}))

	assert.False(t, IsExclusionViolation(errors.New("23P01")))
	assert.False(t, IsExclusionViolation(nil))
}

func TestConnStrings(t *testing.T) {
	cfg := config.Config{
		DB: config.DBConfig{Host: "localhost", Port: "5432", Name: "campusbooking", User: "u", Password: "p"},
	}
	assert.Equal(t, "postgres://u:p@localhost:5432/campusbooking?sslmode=disable", runtimeConnString(cfg))
	assert.Equal(t, runtimeConnString(cfg), migrationConnString(cfg))

	cfg.DatabaseURL = "postgres://pooler:6543/postgres?pgbouncer=true"
	cfg.DirectURL = "postgres://direct:5432/postgres"
	assert.Equal(t, cfg.DatabaseURL, runtimeConnString(cfg))
	assert.Equal(t, cfg.DirectURL, migrationConnString(cfg))
}
