package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/twocheckout-go/internal/config"
)

func TestLoadRequiresCredentials(t *testing.T) {
	_, err := config.LoadForTests(map[string]string{
		"TWOCO_SELLER_ID":   "",
		"TWOCO_SECRET_WORD": "tango",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "TWOCO_SELLER_ID")

	_, err = config.LoadForTests(map[string]string{
		"TWOCO_SELLER_ID":   "1001",
		"TWOCO_SECRET_WORD": "",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "TWOCO_SECRET_WORD")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"TWOCO_SELLER_ID":       "1001",
		"TWOCO_SECRET_WORD":     "tango",
		"TWOCO_SANDBOX":         "",
		"TWOCO_REQUEST_TIMEOUT": "",
		"PORT":                  "",
		"OBS_LOG_FORMAT":        "",
		"OBS_LOG_LEVEL":         "",
	})
	require.NoError(t, err)
	require.Equal(t, "1001", cfg.SellerID)
	require.False(t, cfg.Sandbox)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"TWOCO_SELLER_ID":       "1001",
		"TWOCO_SECRET_WORD":     "tango",
		"TWOCO_SANDBOX":         "true",
		"TWOCO_BASE_URL":        "http://localhost:9999",
		"TWOCO_REQUEST_TIMEOUT": "5s",
		"PORT":                  "9090",
	})
	require.NoError(t, err)
	require.True(t, cfg.Sandbox)
	require.Equal(t, "http://localhost:9999", cfg.BaseURL)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
	require.Equal(t, ":9090", cfg.HTTPAddr())
}
