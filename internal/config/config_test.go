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

	assert.Equal(t, "support-analytics-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 3*time.Hour, cfg.Zendesk.SyncInterval())
	assert.Equal(t, 30*time.Second, cfg.Zendesk.PageTimeout())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SYNC_INTERVAL_HOURS", "6")
	t.Setenv("ZENDESK_PAGE_TIMEOUT_SECONDS", "10")
	t.Setenv("ZENDESK_AUTHORIZATION", "c2VjcmV0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6*time.Hour, cfg.Zendesk.SyncInterval())
	assert.Equal(t, 10*time.Second, cfg.Zendesk.PageTimeout())
	assert.Equal(t, "c2VjcmV0", cfg.Zendesk.Authorization)
}
