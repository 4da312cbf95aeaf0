package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDate(t *testing.T) {
	assert.True(t, IsDate("2026-10-15"))
	assert.False(t, IsDate("2026-10-5"))
	assert.False(t, IsDate("2026-13-01"))
	assert.False(t, IsDate("15/10/2026"))
	assert.False(t, IsDate(""))
}

func TestIsTimeOfDay(t *testing.T) {
	assert.True(t, IsTimeOfDay("08:00"))
	assert.True(t, IsTimeOfDay("23:59"))
	assert.False(t, IsTimeOfDay("8:00"))
	assert.False(t, IsTimeOfDay("24:00"))
	assert.False(t, IsTimeOfDay("08h00"))
}

func TestIsMonth(t *testing.T) {
	assert.True(t, IsMonth("2026-10"))
	assert.False(t, IsMonth("2026-1"))
	assert.False(t, IsMonth("2026-10-01"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.com "))
}
