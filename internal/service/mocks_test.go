package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/arjunishere-e/medisync/internal/lab"
	"github.com/arjunishere-e/medisync/internal/models"
	"github.com/arjunishere-e/medisync/internal/narrative"
)

type mockPatients struct{ mock.Mock }

func (m *mockPatients) GetPatient(ctx context.Context, patientID string) (*models.Patient, error) {
	args := m.Called(ctx, patientID)
	if p := args.Get(0); p != nil {
		return p.(*models.Patient), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPatients) ListActiveMedications(ctx context.Context, patientID string) ([]models.Medication, error) {
	args := m.Called(ctx, patientID)
	if meds := args.Get(0); meds != nil {
		return meds.([]models.Medication), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockVitals struct{ mock.Mock }

func (m *mockVitals) InsertReading(ctx context.Context, reading *models.VitalReading) error {
	return m.Called(ctx, reading).Error(0)
}

func (m *mockVitals) RecentReadings(ctx context.Context, patientID string, limit int) ([]models.VitalReading, error) {
	args := m.Called(ctx, patientID, limit)
	if r := args.Get(0); r != nil {
		return r.([]models.VitalReading), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAlerts struct{ mock.Mock }

func (m *mockAlerts) CreateAlerts(ctx context.Context, alerts []models.Alert) error {
	return m.Called(ctx, alerts).Error(0)
}

func (m *mockAlerts) GetAlert(ctx context.Context, alertID string) (*models.Alert, error) {
	args := m.Called(ctx, alertID)
	if a := args.Get(0); a != nil {
		return a.(*models.Alert), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAlerts) ListActiveAlerts(ctx context.Context, patientID string, limit int) ([]models.Alert, error) {
	args := m.Called(ctx, patientID, limit)
	if a := args.Get(0); a != nil {
		return a.([]models.Alert), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAlerts) AcknowledgeAlert(ctx context.Context, alertID, acknowledgedBy string, at time.Time) error {
	return m.Called(ctx, alertID, acknowledgedBy, at).Error(0)
}

type mockLabs struct{ mock.Mock }

func (m *mockLabs) SaveAnalysis(ctx context.Context, patientID string, analysis lab.Analysis, analyzedAt time.Time) error {
	return m.Called(ctx, patientID, analysis, analyzedAt).Error(0)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) GetHistory(ctx context.Context, patientID string) ([]models.VitalReading, error) {
	args := m.Called(ctx, patientID)
	if r := args.Get(0); r != nil {
		return r.([]models.VitalReading), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCache) PushReading(ctx context.Context, reading models.VitalReading) error {
	return m.Called(ctx, reading).Error(0)
}

func (m *mockCache) SeedHistory(ctx context.Context, patientID string, readings []models.VitalReading) error {
	return m.Called(ctx, patientID, readings).Error(0)
}

func (m *mockCache) GetAlertCache(ctx context.Context, patientID string) ([]models.Alert, error) {
	args := m.Called(ctx, patientID)
	if a := args.Get(0); a != nil {
		return a.([]models.Alert), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCache) UpdateAlertCache(ctx context.Context, patientID string, alerts []models.Alert) error {
	return m.Called(ctx, patientID, alerts).Error(0)
}

func (m *mockCache) InvalidateAlertCache(ctx context.Context, patientID string) error {
	return m.Called(ctx, patientID).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishAlerts(ctx context.Context, alerts []models.Alert) error {
	return m.Called(ctx, alerts).Error(0)
}

type mockNarrative struct{ mock.Mock }

func (m *mockNarrative) AnomalyRecommendation(ctx context.Context, req narrative.AnomalyRequest) (*models.Recommendation, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*models.Recommendation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNarrative) InteractionGuidance(ctx context.Context, req narrative.InteractionRequest) (*models.InteractionGuidance, error) {
	args := m.Called(ctx, req)
	if g := args.Get(0); g != nil {
		return g.(*models.InteractionGuidance), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNarrative) LabSummary(ctx context.Context, req narrative.LabRequest) (*models.LabSummary, error) {
	args := m.Called(ctx, req)
	if s := args.Get(0); s != nil {
		return s.(*models.LabSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

type fixture struct {
	patients  *mockPatients
	vitals    *mockVitals
	alerts    *mockAlerts
	labs      *mockLabs
	cache     *mockCache
	publisher *mockPublisher
	narrative *mockNarrative
}

func (f *fixture) assertExpectations(t mock.TestingT) {
	f.patients.AssertExpectations(t)
	f.vitals.AssertExpectations(t)
	f.alerts.AssertExpectations(t)
	f.labs.AssertExpectations(t)
	f.cache.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
	f.narrative.AssertExpectations(t)
}
