package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/arjunishere-e/medisync/internal/config"
	"github.com/arjunishere-e/medisync/internal/models"
)

// ErrCacheMiss 缓存中没有数据
var ErrCacheMiss = errors.New("cache miss")

// CacheManager Redis 缓存管理器（读数历史窗口 + 告警缓存）
type CacheManager struct {
	config      *config.Config
	redisClient *redis.Client
	logger      *zap.Logger
}

// NewCacheManager 创建缓存管理器
func NewCacheManager(
	cfg *config.Config,
	redisClient *redis.Client,
	logger *zap.Logger,
) *CacheManager {
	return &CacheManager{
		config:      cfg,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (c *CacheManager) historyKey(patientID string) string {
	return fmt.Sprintf("%s%s%s",
		c.config.Ward.Cache.HistoryKeyPrefix,
		patientID,
		c.config.Ward.Cache.HistorySuffix,
	)
}

func (c *CacheManager) alertKey(patientID string) string {
	return fmt.Sprintf("%s%s%s",
		c.config.Ward.Cache.AlertKeyPrefix,
		patientID,
		c.config.Ward.Cache.AlertSuffix,
	)
}

// PushReading 将读数压入病人历史窗口（最新在前，裁剪到 HistoryWindow 条）
func (c *CacheManager) PushReading(ctx context.Context, reading models.VitalReading) error {
	jsonData, err := json.Marshal(reading)
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}

	key := c.historyKey(reading.PatientID)
	window := int64(c.config.Ward.HistoryWindow)

	pipe := c.redisClient.TxPipeline()
	pipe.LPush(ctx, key, jsonData)
	pipe.LTrim(ctx, key, 0, window-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push reading: %w", err)
	}
	return nil
}

// SeedHistory 用数据库中的历史读数重建窗口；readings 最新在前
func (c *CacheManager) SeedHistory(ctx context.Context, patientID string, readings []models.VitalReading) error {
	if len(readings) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(readings))
	for _, r := range readings {
		jsonData, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal reading: %w", err)
		}
		values = append(values, jsonData)
	}

	key := c.historyKey(patientID)
	pipe := c.redisClient.TxPipeline()
	pipe.Del(ctx, key)
	pipe.RPush(ctx, key, values...)
	pipe.LTrim(ctx, key, 0, int64(c.config.Ward.HistoryWindow)-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed history: %w", err)
	}
	return nil
}

// GetHistory 读取病人历史窗口，最新在前；窗口为空时返回 ErrCacheMiss
func (c *CacheManager) GetHistory(ctx context.Context, patientID string) ([]models.VitalReading, error) {
	vals, err := c.redisClient.LRange(ctx, c.historyKey(patientID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	if len(vals) == 0 {
		return nil, ErrCacheMiss
	}

	readings := make([]models.VitalReading, 0, len(vals))
	for _, val := range vals {
		var r models.VitalReading
		if err := json.Unmarshal([]byte(val), &r); err != nil {
			// 跳过损坏的条目
			c.logger.Warn("Skipping malformed cached reading",
				zap.String("patient_id", patientID),
				zap.Error(err),
			)
			continue
		}
		readings = append(readings, r)
	}
	return readings, nil
}

// UpdateAlertCache 更新病人活跃告警缓存
func (c *CacheManager) UpdateAlertCache(ctx context.Context, patientID string, alerts []models.Alert) error {
	key := c.alertKey(patientID)

	jsonData, err := json.Marshal(alerts)
	if err != nil {
		return fmt.Errorf("failed to marshal alert data: %w", err)
	}

	// 写入 Redis（设置 TTL）
	err = c.redisClient.Set(
		ctx,
		key,
		jsonData,
		time.Duration(c.config.Ward.Cache.AlertTTL)*time.Second,
	).Err()
	if err != nil {
		return fmt.Errorf("failed to set alert cache: %w", err)
	}

	c.logger.Debug("Updated alert cache",
		zap.String("patient_id", patientID),
		zap.String("key", key),
		zap.Int("alert_count", len(alerts)),
	)
	return nil
}

// GetAlertCache 读取病人活跃告警缓存
func (c *CacheManager) GetAlertCache(ctx context.Context, patientID string) ([]models.Alert, error) {
	val, err := c.redisClient.Get(ctx, c.alertKey(patientID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get alert cache: %w", err)
	}

	var alerts []models.Alert
	if err := json.Unmarshal([]byte(val), &alerts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal alert data: %w", err)
	}
	return alerts, nil
}

// InvalidateAlertCache 删除病人告警缓存
func (c *CacheManager) InvalidateAlertCache(ctx context.Context, patientID string) error {
	if err := c.redisClient.Del(ctx, c.alertKey(patientID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate alert cache: %w", err)
	}
	return nil
}
