package config

import (
	"os"
	"strconv"
	"time"

	"github.com/arjunishere-e/medisync/common/config"
)

// Config 病区临床服务配置
type Config struct {
	Database  config.DatabaseConfig
	Redis     config.RedisConfig
	MQTT      config.MQTTConfig
	Narrative config.NarrativeConfig

	HTTP struct {
		Addr string // 监听地址，如 ":8080"
	}

	// 病区监测配置
	Ward struct {
		VitalsTopic   string // 监护仪上报主题，如 "ward/+/vitals"
		HistoryWindow int    // 参与评估的历史读数条数，默认 10

		// Redis 缓存配置
		Cache struct {
			HistoryKeyPrefix string // 读数历史键前缀，如 "medisync:patient:"
			HistorySuffix    string // 读数历史键后缀，如 ":vitals"
			AlertKeyPrefix   string // 告警缓存键前缀
			AlertSuffix      string // 告警缓存键后缀，如 ":alerts"
			AlertTTL         int    // 告警缓存 TTL（秒），默认 300秒
		}

		// 告警流配置
		Stream struct {
			Alerts string // 告警流名称
			MaxLen int64  // 流最大长度（近似裁剪）
		}
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load 加载配置
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	// 从环境变量加载（默认值）
	cfg.Database.Host = "localhost"
	cfg.Database.Port = 5432
	cfg.Database.User = "postgres"
	cfg.Database.Password = "postgres"
	cfg.Database.Database = "medisync"
	cfg.Database.SSLMode = "disable"
	cfg.Database.MaxConns = 20
	cfg.Database.LoadFromEnv("DB")

	cfg.Redis.Addr = "localhost:6379"
	cfg.Redis.LoadFromEnv("REDIS")

	cfg.MQTT.Broker = "tcp://localhost:1883"
	cfg.MQTT.ClientID = "medisync-alarm"
	cfg.MQTT.QoS = 1
	cfg.MQTT.LoadFromEnv("MQTT")

	cfg.Narrative.Timeout = 10 * time.Second
	cfg.Narrative.LoadFromEnv("NARRATIVE")

	// 病区监测配置
	cfg.Ward.VitalsTopic = getEnv("WARD_VITALS_TOPIC", "ward/+/vitals")
	cfg.Ward.HistoryWindow = parseInt(getEnv("WARD_HISTORY_WINDOW", ""), 10)

	cfg.Ward.Cache.HistoryKeyPrefix = getEnv("CACHE_HISTORY_PREFIX", "medisync:patient:")
	cfg.Ward.Cache.HistorySuffix = ":vitals"
	cfg.Ward.Cache.AlertKeyPrefix = getEnv("CACHE_ALERT_PREFIX", "medisync:patient:")
	cfg.Ward.Cache.AlertSuffix = ":alerts"
	cfg.Ward.Cache.AlertTTL = parseInt(getEnv("CACHE_ALERT_TTL", ""), 300)

	cfg.Ward.Stream.Alerts = getEnv("ALERT_STREAM", "medisync:alerts")
	cfg.Ward.Stream.MaxLen = int64(parseInt(getEnv("ALERT_STREAM_MAXLEN", ""), 10000))

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseInt 解析正整数，失败或非正数时返回默认值
func parseInt(value string, defaultValue int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
