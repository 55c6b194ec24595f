package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("BOOKING_START_HOUR", "")
	t.Setenv("BOOKING_END_HOUR", "")
	t.Setenv("ATTEMPT_DELAY_MS", "")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 9, cfg.BookingStartHour)
	assert.Equal(t, 18, cfg.BookingEndHour)
	assert.Equal(t, 200*time.Millisecond, cfg.AttemptDelay)
}

func TestFromEnv_Credentials(t *testing.T) {
	t.Setenv("DESKBIRD_EMAIL", "me@example.com")
	t.Setenv("DESKBIRD_PASSWORD", "pw")
	t.Setenv("DESKBIRD_APP_KEY", "key")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.HasCredentials())
}

func TestFromEnv_IncompleteCredentialsNotFatal(t *testing.T) {
	t.Setenv("DESKBIRD_EMAIL", "me@example.com")
	t.Setenv("DESKBIRD_PASSWORD", "")
	t.Setenv("DESKBIRD_APP_KEY", "key")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.False(t, cfg.HasCredentials())
}

func TestFromEnv_InvalidHours(t *testing.T) {
	t.Setenv("BOOKING_START_HOUR", "25")
	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnv_EndBeforeStart(t *testing.T) {
	t.Setenv("BOOKING_START_HOUR", "18")
	t.Setenv("BOOKING_END_HOUR", "9")
	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnv_InvalidDelay(t *testing.T) {
	t.Setenv("ATTEMPT_DELAY_MS", "-5")
	_, err := FromEnv()
	assert.Error(t, err)
}
