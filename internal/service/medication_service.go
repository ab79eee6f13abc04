package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/arjunishere-e/medisync/internal/evaluator"
	"github.com/arjunishere-e/medisync/internal/interaction"
	"github.com/arjunishere-e/medisync/internal/models"
	"github.com/arjunishere-e/medisync/internal/narrative"
)

// MedicationCheck 新处方检查结果
type MedicationCheck struct {
	PatientID     string                      `json:"patient_id"`
	NewMedication models.Medication           `json:"new_medication"`
	Findings      []models.InteractionFinding `json:"findings"`
	HasCritical   bool                        `json:"has_critical"`
	Guidance      *models.InteractionGuidance `json:"guidance,omitempty"`
	Alerts        []models.Alert              `json:"alerts,omitempty"`
}

// CheckMedication 检查新处方与在用药物、过敏史的冲突
// 发现列表非空时请求用药指导，失败则不返回指导；critical 发现物化为告警。
func (s *ClinicalService) CheckMedication(ctx context.Context, patientID string, newMed models.Medication) (*MedicationCheck, error) {
	if patientID == "" {
		return nil, fmt.Errorf("patient_id is required")
	}
	if strings.TrimSpace(newMed.Name) == "" {
		return nil, fmt.Errorf("medication name is required")
	}

	patient, err := s.patients.GetPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}
	currentMeds, err := s.patients.ListActiveMedications(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load medications: %w", err)
	}

	findings := interaction.CheckInteractions(newMed, currentMeds, *patient)
	check := &MedicationCheck{
		PatientID:     patientID,
		NewMedication: newMed,
		Findings:      findings,
		HasCritical:   interaction.HasCritical(findings),
	}
	if len(findings) == 0 {
		return check, nil
	}

	guidance, err := s.narrative.InteractionGuidance(ctx, narrative.InteractionRequest{
		PatientID:          patientID,
		NewMedication:      newMed,
		CurrentMedications: currentMeds,
		Findings:           findings,
	})
	switch {
	case err != nil:
		if !errors.Is(err, narrative.ErrDisabled) {
			s.logger.Warn("Interaction guidance unavailable",
				zap.String("patient_id", patientID),
				zap.Error(err),
			)
		}
	case guidance != nil && strings.TrimSpace(guidance.Recommendation) != "":
		check.Guidance = guidance
	}

	builder := evaluator.NewAlertBuilder(patientID)
	var alerts []models.Alert
	for _, f := range findings {
		if f.Severity == models.InteractionCritical {
			alerts = append(alerts, builder.ForInteraction(f))
		}
	}
	if err := s.materializeAlerts(ctx, patientID, alerts); err != nil {
		return nil, fmt.Errorf("failed to materialize alerts: %w", err)
	}
	check.Alerts = alerts

	return check, nil
}
