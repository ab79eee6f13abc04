package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/arjunishere-e/medisync/internal/evaluator"
	"github.com/arjunishere-e/medisync/internal/lab"
	"github.com/arjunishere-e/medisync/internal/models"
	"github.com/arjunishere-e/medisync/internal/narrative"
)

// FallbackLabSummary is returned when no narrative summary could be produced.
const FallbackLabSummary = "Unable to generate summary. Please review results manually."

var labUrgencyLevels = map[string]bool{
	"routine":  true,
	"monitor":  true,
	"urgent":   true,
	"critical": true,
}

// LabReportAnalysis 化验单分析结果
type LabReportAnalysis struct {
	lab.Analysis
	PatientID string            `json:"patient_id"`
	Summary   models.LabSummary `json:"summary"`
	Alerts    []models.Alert    `json:"alerts,omitempty"`
}

// AnalyzeLabReport 逐项解读化验单、保存结果、生成摘要并物化危急值告警
// 病人性别用于选择参考范围。
func (s *ClinicalService) AnalyzeLabReport(ctx context.Context, patientID string, report models.LabReport) (*LabReportAnalysis, error) {
	if patientID == "" {
		return nil, fmt.Errorf("patient_id is required")
	}

	patient, err := s.patients.GetPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}

	analysis := lab.AnalyzeReport(report, patient.Sex)
	if err := s.labs.SaveAnalysis(ctx, patientID, analysis, s.now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to save lab analysis: %w", err)
	}

	result := &LabReportAnalysis{
		Analysis:  analysis,
		PatientID: patientID,
		Summary:   s.summarizeLabs(ctx, patientID, analysis),
	}

	builder := evaluator.NewAlertBuilder(patientID)
	var alerts []models.Alert
	for _, item := range analysis.CriticalFindings {
		alerts = append(alerts, builder.ForLabResult(item.LabResult, item.Interpretation.Status, item.Interpretation.Message))
	}
	if err := s.materializeAlerts(ctx, patientID, alerts); err != nil {
		return nil, fmt.Errorf("failed to materialize alerts: %w", err)
	}
	result.Alerts = alerts

	return result, nil
}

// summarizeLabs 请求叙述摘要；失败或空摘要使用兜底文本
func (s *ClinicalService) summarizeLabs(ctx context.Context, patientID string, analysis lab.Analysis) models.LabSummary {
	summary, err := s.narrative.LabSummary(ctx, narrative.LabRequest{
		PatientID:        patientID,
		TestName:         analysis.TestName,
		Results:          analysis.InterpretedResults,
		CriticalFindings: analysis.CriticalFindings,
	})
	if err == nil && summary != nil && strings.TrimSpace(summary.Summary) != "" {
		if !labUrgencyLevels[summary.UrgencyLevel] {
			summary.UrgencyLevel = ""
		}
		summary.Generated = true
		return *summary
	}

	if err != nil && !errors.Is(err, narrative.ErrDisabled) {
		s.logger.Warn("Using fallback lab summary",
			zap.String("patient_id", patientID),
			zap.Error(err),
		)
	}
	return models.LabSummary{Summary: FallbackLabSummary}
}
