package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/salon_test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TASKS_SECRET", "tasks-secret")

	s, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, "8080", s.Port)
	assert.Equal(t, 540, s.BusinessStartMin)
	assert.Equal(t, 1200, s.BusinessEndMin)
	assert.Equal(t, 15, s.SlotStepMin)
	assert.Equal(t, 30, s.BookingBufferMin)
	assert.Equal(t, "Europe/Madrid", s.Timezone)
}

func TestLoadSettings_Overrides(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/salon_test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TASKS_SECRET", "tasks-secret")
	t.Setenv("BUSINESS_START_MIN", "600")
	t.Setenv("SLOT_STEP_MIN", "30")

	s, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, 600, s.BusinessStartMin)
	assert.Equal(t, 30, s.SlotStepMin)
}
