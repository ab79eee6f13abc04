package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "medisync", cfg.Database.Database)
	assert.Equal(t, "disable", cfg.Database.SSLMode)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)

	assert.Equal(t, "tcp://localhost:1883", cfg.MQTT.Broker)
	assert.Equal(t, byte(1), cfg.MQTT.QoS)

	assert.False(t, cfg.Narrative.Enabled)
	assert.Equal(t, 10*time.Second, cfg.Narrative.Timeout)

	assert.Equal(t, "ward/+/vitals", cfg.Ward.VitalsTopic)
	assert.Equal(t, 10, cfg.Ward.HistoryWindow)
	assert.Equal(t, "medisync:patient:", cfg.Ward.Cache.HistoryKeyPrefix)
	assert.Equal(t, ":vitals", cfg.Ward.Cache.HistorySuffix)
	assert.Equal(t, ":alerts", cfg.Ward.Cache.AlertSuffix)
	assert.Equal(t, 300, cfg.Ward.Cache.AlertTTL)
	assert.Equal(t, "medisync:alerts", cfg.Ward.Stream.Alerts)
	assert.Equal(t, int64(10000), cfg.Ward.Stream.MaxLen)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("REDIS_ADDR", "test-redis:6380")
	t.Setenv("MQTT_BROKER", "tcp://broker:1883")
	t.Setenv("NARRATIVE_ENABLED", "true")
	t.Setenv("NARRATIVE_BASE_URL", "http://llm-gateway:8000")
	t.Setenv("NARRATIVE_TIMEOUT_SEC", "3")
	t.Setenv("WARD_HISTORY_WINDOW", "20")
	t.Setenv("CACHE_ALERT_TTL", "60")
	t.Setenv("ALERT_STREAM", "ward:alerts")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "test-redis:6380", cfg.Redis.Addr)
	assert.Equal(t, "tcp://broker:1883", cfg.MQTT.Broker)
	assert.True(t, cfg.Narrative.Enabled)
	assert.Equal(t, "http://llm-gateway:8000", cfg.Narrative.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Narrative.Timeout)
	assert.Equal(t, 20, cfg.Ward.HistoryWindow)
	assert.Equal(t, 60, cfg.Ward.Cache.AlertTTL)
	assert.Equal(t, "ward:alerts", cfg.Ward.Stream.Alerts)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("WARD_HISTORY_WINDOW", "abc")
	t.Setenv("CACHE_ALERT_TTL", "-5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Ward.HistoryWindow)
	assert.Equal(t, 300, cfg.Ward.Cache.AlertTTL)
}
