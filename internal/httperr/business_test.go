package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBusiness(t *testing.T) {
	err := ErrBusiness("time_conflict")
	assert.True(t, IsBusiness(err, "time_conflict"))
	assert.False(t, IsBusiness(err, "invalid_state"))

	wrapped := fmt.Errorf("booking: %w", err)
	assert.True(t, IsBusiness(wrapped, "time_conflict"))

	code, ok := BusinessCode(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "time_conflict", code)

	_, ok = BusinessCode(errors.New("boom"))
	assert.False(t, ok)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, Status("appointment_not_found"))
	assert.Equal(t, http.StatusConflict, Status("time_conflict"))
	assert.Equal(t, http.StatusConflict, Status("slot_busy"))
	assert.Equal(t, http.StatusBadRequest, Status("slot_unavailable"))
}
