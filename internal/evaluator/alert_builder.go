package evaluator

import (
	"fmt"
	"strings"
	"time"

	"github.com/arjunishere-e/medisync/internal/models"

	"github.com/google/uuid"
)

// AlertBuilder 告警构建器：把发现转成可持久化的 Alert
type AlertBuilder struct {
	patientID string
	now       func() time.Time
}

// NewAlertBuilder 创建告警构建器
func NewAlertBuilder(patientID string) *AlertBuilder {
	return &AlertBuilder{
		patientID: patientID,
		now:       time.Now,
	}
}

func (b *AlertBuilder) base(source models.AlertSource, alertType, severity, message string) models.Alert {
	now := b.now().UTC()
	return models.Alert{
		AlertID:     uuid.New().String(),
		PatientID:   b.patientID,
		Source:      source,
		AlertType:   alertType,
		Severity:    severity,
		Message:     message,
		Status:      models.AlertActive,
		TriggeredAt: now,
		CreatedAt:   now,
	}
}

// ForAnomalies 为每个异常发现构建告警；rec 可为 nil
func (b *AlertBuilder) ForAnomalies(findings []models.AnomalyFinding, rec *models.Recommendation) []models.Alert {
	alerts := make([]models.Alert, 0, len(findings))
	for _, f := range findings {
		alert := b.base(models.AlertSourceVitals, string(f.Type), string(f.Severity), f.Message)
		if f.Metric != nil {
			metric := string(*f.Metric)
			alert.Metric = &metric
		}
		if rec != nil {
			text := rec.Text
			alert.Recommendation = &text
			alert.NotifyDoctor = rec.NotifyDoctor
		} else {
			alert.NotifyDoctor = f.Severity == models.SeverityCritical || f.Severity == models.SeverityHigh
		}
		alerts = append(alerts, alert)
	}
	return alerts
}

// ForInteraction 处方检查发现 → 告警
func (b *AlertBuilder) ForInteraction(f models.InteractionFinding) models.Alert {
	var msg string
	if f.Type == models.InteractionAllergy {
		msg = fmt.Sprintf("Patient allergic to: %s (prescribed %s)", f.Drug2, f.Drug1)
	} else {
		msg = fmt.Sprintf("Drug interaction: %s <-> %s", f.Drug1, f.Drug2)
	}
	alert := b.base(models.AlertSourceMedication, string(f.Type), string(f.Severity), msg)
	alert.NotifyDoctor = f.Severity == models.InteractionCritical || f.Severity == models.InteractionHigh
	return alert
}

// ForLabResult 危急化验值 → 告警
func (b *AlertBuilder) ForLabResult(result models.LabResult, status models.LabStatus, interpretation string) models.Alert {
	reading := strings.TrimSpace(result.Value + " " + result.Unit)
	msg := fmt.Sprintf("%s: %s - %s", result.Parameter, reading, interpretation)
	severity := string(models.SeverityHigh)
	if status == models.LabCritical {
		severity = string(models.SeverityCritical)
	}
	metric := result.Parameter
	alert := b.base(models.AlertSourceLab, string(status), severity, msg)
	alert.Metric = &metric
	alert.NotifyDoctor = status == models.LabCritical
	return alert
}
