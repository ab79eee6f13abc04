package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/arjunishere-e/medisync/internal/consumer"
	"github.com/arjunishere-e/medisync/internal/evaluator"
	"github.com/arjunishere-e/medisync/internal/models"
	"github.com/arjunishere-e/medisync/internal/narrative"
)

// EvaluateVitals 评估一次读数（不落库）；history 最新在前
func (s *ClinicalService) EvaluateVitals(ctx context.Context, reading models.VitalReading, history []models.VitalReading) *models.VitalsAssessment {
	findings := evaluator.AggregateAnomalies(reading, history)
	return &models.VitalsAssessment{
		PatientID:       reading.PatientID,
		Findings:        findings,
		HighestSeverity: evaluator.HighestSeverity(findings),
		Recommendation:  s.RecommendForAnomalies(ctx, reading, findings),
	}
}

// RecommendForAnomalies 请求叙述服务生成建议，失败时使用兜底建议
// 空发现列表不产生建议。
func (s *ClinicalService) RecommendForAnomalies(ctx context.Context, reading models.VitalReading, findings []models.AnomalyFinding) *models.Recommendation {
	if len(findings) == 0 {
		return nil
	}

	rec, err := s.narrative.AnomalyRecommendation(ctx, narrative.AnomalyRequest{
		PatientID: reading.PatientID,
		Reading:   reading,
		Findings:  findings,
	})
	if err == nil && rec != nil && strings.TrimSpace(rec.Text) != "" && rec.Urgency.Valid() {
		rec.Generated = true
		return rec
	}

	if err != nil && !errors.Is(err, narrative.ErrDisabled) {
		s.logger.Warn("Using fallback recommendation",
			zap.String("patient_id", reading.PatientID),
			zap.Error(err),
		)
	}
	fallback := evaluator.FallbackRecommendation(findings)
	return &fallback
}

// ProcessReading 处理一条新读数：
// 1. 读取历史窗口（缓存优先，未命中回源数据库）
// 2. 评估并生成建议
// 3. 存储读数、更新窗口
// 4. 物化告警
func (s *ClinicalService) ProcessReading(ctx context.Context, reading models.VitalReading) (*models.VitalsAssessment, error) {
	if reading.PatientID == "" {
		return nil, fmt.Errorf("patient_id is required")
	}
	if reading.Timestamp.IsZero() {
		reading.Timestamp = s.now().UTC()
	}

	history, err := s.loadHistory(ctx, reading.PatientID)
	if err != nil {
		return nil, err
	}

	assessment := s.EvaluateVitals(ctx, reading, history)

	if err := s.vitals.InsertReading(ctx, &reading); err != nil {
		return nil, fmt.Errorf("failed to store reading: %w", err)
	}
	if err := s.cache.PushReading(ctx, reading); err != nil {
		s.logger.Warn("Failed to push reading to history cache",
			zap.String("patient_id", reading.PatientID),
			zap.Error(err),
		)
	}

	alerts := evaluator.NewAlertBuilder(reading.PatientID).ForAnomalies(assessment.Findings, assessment.Recommendation)
	if err := s.materializeAlerts(ctx, reading.PatientID, alerts); err != nil {
		return nil, fmt.Errorf("failed to materialize alerts: %w", err)
	}
	assessment.Alerts = alerts

	return assessment, nil
}

func (s *ClinicalService) loadHistory(ctx context.Context, patientID string) ([]models.VitalReading, error) {
	history, err := s.cache.GetHistory(ctx, patientID)
	if err == nil {
		return history, nil
	}
	if !errors.Is(err, consumer.ErrCacheMiss) {
		s.logger.Warn("History cache unavailable, reading from database",
			zap.String("patient_id", patientID),
			zap.Error(err),
		)
	}

	history, err = s.vitals.RecentReadings(ctx, patientID, s.historyWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load reading history: %w", err)
	}
	if err := s.cache.SeedHistory(ctx, patientID, history); err != nil {
		s.logger.Warn("Failed to seed history cache",
			zap.String("patient_id", patientID),
			zap.Error(err),
		)
	}
	return history, nil
}
