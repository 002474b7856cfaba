package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "chromium", cfg.Browser.Channel)
	assert.False(t, cfg.Browser.Headless)

	assert.Equal(t, 800*time.Millisecond, cfg.Timeouts.Popup)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeouts.PopupSettle)
	assert.Equal(t, 5*time.Second, cfg.Timeouts.Search)
	assert.Equal(t, 2*time.Second, cfg.Timeouts.Action)
	assert.Equal(t, 8*time.Second, cfg.Timeouts.Results)
	assert.Equal(t, 400*time.Millisecond, cfg.Timeouts.Settle)
	assert.Equal(t, 15*time.Millisecond, cfg.Timeouts.TypeDelay)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("WEBTASK_BROWSER_CHANNEL", "msedge")
	t.Setenv("WEBTASK_TIMEOUTS_SEARCH", "9s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "msedge", cfg.Browser.Channel)
	assert.Equal(t, 9*time.Second, cfg.Timeouts.Search)
}
