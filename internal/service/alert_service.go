package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/arjunishere-e/medisync/internal/consumer"
	"github.com/arjunishere-e/medisync/internal/models"
)

const activeAlertLimit = 100

// ListActiveAlerts 获取病人活跃告警（缓存优先）
func (s *ClinicalService) ListActiveAlerts(ctx context.Context, patientID string) ([]models.Alert, error) {
	if patientID == "" {
		return nil, fmt.Errorf("patient_id is required")
	}

	alerts, err := s.cache.GetAlertCache(ctx, patientID)
	if err == nil {
		return alerts, nil
	}
	if !errors.Is(err, consumer.ErrCacheMiss) {
		s.logger.Warn("Alert cache unavailable",
			zap.String("patient_id", patientID),
			zap.Error(err),
		)
	}

	alerts, err = s.alerts.ListActiveAlerts(ctx, patientID, activeAlertLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	if err := s.cache.UpdateAlertCache(ctx, patientID, alerts); err != nil {
		s.logger.Warn("Failed to update alert cache",
			zap.String("patient_id", patientID),
			zap.Error(err),
		)
	}
	return alerts, nil
}

// AcknowledgeAlert 确认告警
// 业务规则：
// - alert_id 和 acknowledged_by 必填
// - 只有 active 告警可以确认
func (s *ClinicalService) AcknowledgeAlert(ctx context.Context, alertID, acknowledgedBy string) (*models.Alert, error) {
	if alertID == "" {
		return nil, fmt.Errorf("alert_id is required")
	}
	if acknowledgedBy == "" {
		return nil, fmt.Errorf("acknowledged_by is required")
	}

	alert, err := s.alerts.GetAlert(ctx, alertID)
	if err != nil {
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}

	at := s.now().UTC()
	if err := s.alerts.AcknowledgeAlert(ctx, alertID, acknowledgedBy, at); err != nil {
		s.logger.Error("Failed to acknowledge alert",
			zap.String("alert_id", alertID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to acknowledge alert: %w", err)
	}

	if err := s.cache.InvalidateAlertCache(ctx, alert.PatientID); err != nil {
		s.logger.Warn("Failed to invalidate alert cache",
			zap.String("patient_id", alert.PatientID),
			zap.Error(err),
		)
	}

	alert.Status = models.AlertAcknowledged
	alert.AcknowledgedBy = &acknowledgedBy
	alert.AcknowledgedAt = &at
	return alert, nil
}
