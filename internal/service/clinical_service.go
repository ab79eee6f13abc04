package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/arjunishere-e/medisync/internal/models"
	"github.com/arjunishere-e/medisync/internal/narrative"
)

// ClinicalService 临床服务层
// 职责：
// 1. 编排评估引擎（生命体征、处方检查、化验解读）
// 2. 叙述服务调用及本地兜底
// 3. 告警物化（落库、缓存、下发）
type ClinicalService struct {
	patients  PatientStore
	vitals    VitalsStore
	alerts    AlertStore
	labs      LabStore
	cache     WardCache
	publisher AlertPublisher
	narrative narrative.Generator
	logger    *zap.Logger

	historyWindow int
	now           func() time.Time
}

// Options ClinicalService 依赖
type Options struct {
	Patients      PatientStore
	Vitals        VitalsStore
	Alerts        AlertStore
	Labs          LabStore
	Cache         WardCache
	Publisher     AlertPublisher
	Narrative     narrative.Generator
	HistoryWindow int
}

// NewClinicalService 创建临床服务；未配置叙述服务时使用 narrative.Disabled
func NewClinicalService(opts Options, logger *zap.Logger) *ClinicalService {
	gen := opts.Narrative
	if gen == nil {
		gen = narrative.Disabled{}
	}
	window := opts.HistoryWindow
	if window <= 0 {
		window = 10
	}
	return &ClinicalService{
		patients:      opts.Patients,
		vitals:        opts.Vitals,
		alerts:        opts.Alerts,
		labs:          opts.Labs,
		cache:         opts.Cache,
		publisher:     opts.Publisher,
		narrative:     gen,
		logger:        logger,
		historyWindow: window,
		now:           time.Now,
	}
}

// materializeAlerts 告警落库、失效缓存并下发
// 下发失败只记录日志；落库失败返回错误。
func (s *ClinicalService) materializeAlerts(ctx context.Context, patientID string, alerts []models.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	if err := s.alerts.CreateAlerts(ctx, alerts); err != nil {
		s.logger.Error("Failed to persist alerts",
			zap.String("patient_id", patientID),
			zap.Int("alert_count", len(alerts)),
			zap.Error(err),
		)
		return err
	}

	if err := s.cache.InvalidateAlertCache(ctx, patientID); err != nil {
		s.logger.Warn("Failed to invalidate alert cache",
			zap.String("patient_id", patientID),
			zap.Error(err),
		)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishAlerts(ctx, alerts); err != nil {
			s.logger.Error("Failed to publish alerts",
				zap.String("patient_id", patientID),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("Alerts materialized",
		zap.String("patient_id", patientID),
		zap.Int("alert_count", len(alerts)),
	)
	return nil
}
