package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arjunishere-e/medisync/internal/models"
	"github.com/arjunishere-e/medisync/internal/repository"
)

func wardPatient() *models.Patient {
	return &models.Patient{
		PatientID: "p-1",
		FullName:  "John Smith",
		Sex:       models.SexMale,
		Allergies: []string{"Penicillin"},
	}
}

func TestCheckMedication_CriticalWithGuidance(t *testing.T) {
	svc, f := newTestService(t)
	ctx := context.Background()
	newMed := models.Medication{Name: "Aspirin", Dosage: "81mg"}

	f.patients.On("GetPatient", ctx, "p-1").Return(wardPatient(), nil).Once()
	f.patients.On("ListActiveMedications", ctx, "p-1").Return([]models.Medication{{Name: "Warfarin"}}, nil).Once()
	f.narrative.On("InteractionGuidance", ctx, mock.Anything).Return(&models.InteractionGuidance{
		Recommendation:     "Avoid combination",
		MonitoringRequired: true,
	}, nil).Once()
	f.alerts.On("CreateAlerts", ctx, mock.MatchedBy(func(alerts []models.Alert) bool {
		return len(alerts) == 1 && alerts[0].Source == models.AlertSourceMedication &&
			alerts[0].Message == "Drug interaction: Aspirin <-> Warfarin"
	})).Return(nil).Once()
	f.cache.On("InvalidateAlertCache", ctx, "p-1").Return(nil).Once()
	f.publisher.On("PublishAlerts", ctx, mock.Anything).Return(nil).Once()

	check, err := svc.CheckMedication(ctx, "p-1", newMed)

	require.NoError(t, err)
	require.Len(t, check.Findings, 1)
	assert.Equal(t, models.InteractionCritical, check.Findings[0].Severity)
	assert.True(t, check.HasCritical)
	require.NotNil(t, check.Guidance)
	assert.Equal(t, "Avoid combination", check.Guidance.Recommendation)
	assert.Len(t, check.Alerts, 1)
	f.assertExpectations(t)
}

func TestCheckMedication_GuidanceFailureOmitted(t *testing.T) {
	svc, f := newTestService(t)
	ctx := context.Background()

	f.patients.On("GetPatient", ctx, "p-1").Return(wardPatient(), nil).Once()
	f.patients.On("ListActiveMedications", ctx, "p-1").Return([]models.Medication{{Name: "Aspirin"}}, nil).Once()
	f.narrative.On("InteractionGuidance", ctx, mock.Anything).Return(nil, errors.New("timeout")).Once()

	check, err := svc.CheckMedication(ctx, "p-1", models.Medication{Name: "Ibuprofen"})

	require.NoError(t, err)
	require.Len(t, check.Findings, 1)
	assert.Equal(t, models.InteractionModerate, check.Findings[0].Severity)
	assert.False(t, check.HasCritical)
	assert.Nil(t, check.Guidance)
	assert.Empty(t, check.Alerts)
	f.assertExpectations(t)
}

func TestCheckMedication_NoFindingsSkipsGuidance(t *testing.T) {
	svc, f := newTestService(t)
	ctx := context.Background()

	f.patients.On("GetPatient", ctx, "p-1").Return(wardPatient(), nil).Once()
	f.patients.On("ListActiveMedications", ctx, "p-1").Return([]models.Medication{}, nil).Once()

	check, err := svc.CheckMedication(ctx, "p-1", models.Medication{Name: "Paracetamol"})

	require.NoError(t, err)
	assert.Empty(t, check.Findings)
	assert.NotNil(t, check.Findings)
	f.narrative.AssertNotCalled(t, "InteractionGuidance", mock.Anything, mock.Anything)
}

func TestCheckMedication_Allergy(t *testing.T) {
	svc, f := newTestService(t)
	ctx := context.Background()

	f.patients.On("GetPatient", ctx, "p-1").Return(wardPatient(), nil).Once()
	f.patients.On("ListActiveMedications", ctx, "p-1").Return([]models.Medication{}, nil).Once()
	f.narrative.On("InteractionGuidance", ctx, mock.Anything).Return(&models.InteractionGuidance{}, nil).Once()
	f.alerts.On("CreateAlerts", ctx, mock.MatchedBy(func(alerts []models.Alert) bool {
		return len(alerts) == 1 && alerts[0].AlertType == "allergy"
	})).Return(nil).Once()
	f.cache.On("InvalidateAlertCache", ctx, "p-1").Return(nil).Once()
	f.publisher.On("PublishAlerts", ctx, mock.Anything).Return(nil).Once()

	check, err := svc.CheckMedication(ctx, "p-1", models.Medication{Name: "Amoxicillin-Penicillin"})

	require.NoError(t, err)
	require.Len(t, check.Findings, 1)
	assert.Equal(t, models.InteractionAllergy, check.Findings[0].Type)
	assert.Nil(t, check.Guidance, "empty guidance is dropped")
	f.assertExpectations(t)
}

func TestCheckMedication_PatientNotFound(t *testing.T) {
	svc, f := newTestService(t)
	ctx := context.Background()

	f.patients.On("GetPatient", ctx, "p-9").
		Return(nil, fmt.Errorf("patient p-9: %w", repository.ErrNotFound)).Once()

	_, err := svc.CheckMedication(ctx, "p-9", models.Medication{Name: "Aspirin"})

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCheckMedication_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CheckMedication(context.Background(), "", models.Medication{Name: "Aspirin"})
	assert.Error(t, err)
	_, err = svc.CheckMedication(context.Background(), "p-1", models.Medication{Name: " "})
	assert.EqualError(t, err, "medication name is required")
}
