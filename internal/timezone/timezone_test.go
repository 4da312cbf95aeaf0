package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocation_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.Equal(t, DefaultTimezone, Location("Nowhere/Else").String())
	assert.Equal(t, "Europe/Lisbon", Location("Europe/Lisbon").String())
}

func TestCivil_IgnoresHostZone(t *testing.T) {
	// 02:30 UTC on the 16th is still 23:30 on the 15th in São Paulo.
	utc := time.Date(2026, 10, 16, 2, 30, 0, 0, time.UTC)
	clock := FixedClock{At: utc.In(Location(DefaultTimezone))}

	c := Civil(clock)
	assert.Equal(t, CivilTime{Year: 2026, Month: time.October, Day: 15, Hour: 23, Minute: 30}, c)
	assert.Equal(t, "2026-10-15", Today(clock))
}

func TestSystemClock_UsesConfiguredZone(t *testing.T) {
	clock := NewSystemClock("Asia/Tokyo")
	assert.Equal(t, "Asia/Tokyo", clock.Now().Location().String())
	assert.Equal(t, "Asia/Tokyo", clock.Location().String())
}

func TestCivilTime_DatePadsFields(t *testing.T) {
	c := CivilTime{Year: 2026, Month: time.March, Day: 7}
	assert.Equal(t, "2026-03-07", c.Date())
}
