package booking

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestInsertError(t *testing.T) {
	assert.ErrorIs(t, insertError(pgx.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, insertError(&pgconn.PgError{Code: "23503"}), ErrNotFound)

	var ve ValidationError
	err := insertError(fmt.Errorf("insert booking: %w", &pgconn.PgError{Code: "23514", ConstraintName: "bookings_interval_check"}))
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "INVALID_INTERVAL", ve.Code)

	other := errors.New("connection reset")
	assert.Equal(t, other, insertError(other))
}
