package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusApproved))
	assert.True(t, CanTransition(StatusPending, StatusRejected))
	assert.True(t, CanTransition(StatusApproved, StatusRejected))

	assert.False(t, CanTransition(StatusApproved, StatusPending))
	assert.False(t, CanTransition(StatusApproved, StatusApproved))
	assert.False(t, CanTransition(StatusRejected, StatusApproved))
	assert.False(t, CanTransition(StatusRejected, StatusPending))
	assert.False(t, CanTransition(Status("cancelled"), StatusRejected))
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("approved")
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, st)

	_, err = ParseStatus("Approved")
	assert.Error(t, err)
}

func TestParseItemType(t *testing.T) {
	it, err := ParseItemType("equipment")
	assert.NoError(t, err)
	assert.Equal(t, ItemEquipment, it)

	_, err = ParseItemType("supply")
	assert.Error(t, err)
}
