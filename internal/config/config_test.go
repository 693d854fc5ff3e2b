package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_PATH", "MAX_BUTTONS", "SHUFFLE_ROUNDS", "SHUFFLE_DISPLAY", "NODE_ENV", "BUTTON_WIDTH"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	assert.Equal(t, "5175", cfg.Port)
	assert.Empty(t, cfg.DBPath)
	assert.Equal(t, 100, cfg.MaxButtons)
	assert.Equal(t, 3, cfg.ShuffleRounds)
	assert.Equal(t, 2*time.Second, cfg.ShuffleDisplay)
	assert.Equal(t, 160.0, cfg.ButtonWidth)
	assert.False(t, cfg.Production)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SHUFFLE_ROUNDS", "5")
	t.Setenv("SHUFFLE_DISPLAY", "750ms")
	t.Setenv("MAX_BUTTONS", "nope")
	t.Setenv("NODE_ENV", "production")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 5, cfg.ShuffleRounds)
	assert.Equal(t, 750*time.Millisecond, cfg.ShuffleDisplay)
	assert.Equal(t, 100, cfg.MaxButtons)
	assert.True(t, cfg.Production)
}

func TestMaxButtonsZeroMeansNoCap(t *testing.T) {
	t.Setenv("MAX_BUTTONS", "0")
	assert.Equal(t, 0, Load().MaxButtons)

	t.Setenv("MAX_BUTTONS", "-1")
	assert.Equal(t, 100, Load().MaxButtons)

	// zero is still rejected where it makes no sense
	t.Setenv("SHUFFLE_ROUNDS", "0")
	assert.Equal(t, 3, Load().ShuffleRounds)
}

func TestTrustProxy(t *testing.T) {
	t.Setenv("TRUST_PROXY", "")
	assert.False(t, Load().TrustProxy)

	t.Setenv("TRUST_PROXY", "true")
	assert.True(t, Load().TrustProxy)

	t.Setenv("TRUST_PROXY", "sometimes")
	assert.False(t, Load().TrustProxy)
}
