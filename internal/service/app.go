package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/arjunishere-e/medisync/common/database"
	commonredis "github.com/arjunishere-e/medisync/common/redis"
	"github.com/arjunishere-e/medisync/internal/config"
	"github.com/arjunishere-e/medisync/internal/consumer"
	"github.com/arjunishere-e/medisync/internal/narrative"
	"github.com/arjunishere-e/medisync/internal/repository"
)

// App 整合各层（数据库、Redis、仓库、缓存、叙述客户端、临床服务）
type App struct {
	config      *config.Config
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger

	CacheManager *consumer.CacheManager
	Clinical     *ClinicalService
}

// NewApp 连接数据库和 Redis 并组装服务
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	// 1. 连接数据库
	db, err := database.NewPostgresDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	// 2. 连接 Redis
	redisClient, err := commonredis.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		db.Close()
		return nil, err
	}

	// 3. 创建 Repository 层
	patientRepo := repository.NewPatientRepository(db, logger)
	vitalsRepo := repository.NewVitalsRepository(db, logger)
	alertsRepo := repository.NewAlertsRepository(db, logger)
	labRepo := repository.NewLabResultsRepository(db, logger)

	// 4. 创建缓存层
	cacheManager := consumer.NewCacheManager(cfg, redisClient, logger)

	// 5. 叙述服务
	var gen narrative.Generator = narrative.Disabled{}
	if cfg.Narrative.Enabled {
		if cfg.Narrative.BaseURL == "" {
			db.Close()
			redisClient.Close()
			return nil, fmt.Errorf("narrative base URL is required when narrative service is enabled")
		}
		gen = narrative.NewClient(cfg.Narrative.BaseURL, cfg.Narrative.APIKey, cfg.Narrative.Timeout, logger)
	}

	clinical := NewClinicalService(Options{
		Patients:      patientRepo,
		Vitals:        vitalsRepo,
		Alerts:        alertsRepo,
		Labs:          labRepo,
		Cache:         cacheManager,
		Publisher:     NewStreamPublisher(redisClient, cfg.Ward.Stream.Alerts, cfg.Ward.Stream.MaxLen),
		Narrative:     gen,
		HistoryWindow: cfg.Ward.HistoryWindow,
	}, logger)

	logger.Info("Clinical service assembled",
		zap.Bool("narrative_enabled", cfg.Narrative.Enabled),
		zap.Int("history_window", cfg.Ward.HistoryWindow),
		zap.String("alert_stream", cfg.Ward.Stream.Alerts),
	)

	return &App{
		config:       cfg,
		db:           db,
		redisClient:  redisClient,
		logger:       logger,
		CacheManager: cacheManager,
		Clinical:     clinical,
	}, nil
}

// Close 关闭数据库和 Redis 连接
func (a *App) Close() error {
	a.logger.Info("Closing clinical service connections")

	if err := database.Close(a.db); err != nil {
		a.logger.Error("Failed to close database",
			zap.Error(err),
		)
	}
	if err := a.redisClient.Close(); err != nil {
		a.logger.Error("Failed to close redis",
			zap.Error(err),
		)
	}
	return nil
}
