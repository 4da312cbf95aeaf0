package appointment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/braids-scheduler/internal/httperr"
	"github.com/BruksfildServices01/braids-scheduler/internal/models"
)

func scheduled() models.Appointment {
	return models.Appointment{
		ID:       "a1",
		ClientID: "c1",
		Date:     "2026-10-20",
		Time:     "08:00",
		Type:     models.ServiceTwist,
		Status:   models.AppointmentScheduled,
		Price:    decimal.NewFromInt(300),
		Duration: 240,
	}
}

func TestComplete_ChangesOnlyStatus(t *testing.T) {
	ap := scheduled()
	require.NoError(t, Complete(&ap))

	want := scheduled()
	want.Status = models.AppointmentCompleted
	assert.Equal(t, want, ap)
}

func TestCancel_ChangesOnlyStatus(t *testing.T) {
	ap := scheduled()
	require.NoError(t, Cancel(&ap))

	want := scheduled()
	want.Status = models.AppointmentCancelled
	assert.Equal(t, want, ap)
}

func TestTransitions_RequireScheduled(t *testing.T) {
	for _, st := range []models.AppointmentStatus{models.AppointmentCompleted, models.AppointmentCancelled} {
		ap := scheduled()
		ap.Status = st

		assert.True(t, httperr.IsBusiness(Complete(&ap), "invalid_state"))
		assert.True(t, httperr.IsBusiness(Cancel(&ap), "invalid_state"))
		assert.Equal(t, st, ap.Status)
	}
}

func TestLookupTechnique(t *testing.T) {
	tech, ok := LookupTechnique(models.ServiceNago)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(150).Equal(tech.Price))
	assert.Equal(t, 90, tech.DurationMin)

	_, ok = LookupTechnique("Dreads")
	assert.False(t, ok)

	assert.Len(t, Techniques(), 5)
}
