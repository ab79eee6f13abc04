package service

import (
	"context"
	"time"

	"github.com/arjunishere-e/medisync/internal/lab"
	"github.com/arjunishere-e/medisync/internal/models"
)

// PatientStore 病人与用药数据（repository.PatientRepository 实现）
type PatientStore interface {
	GetPatient(ctx context.Context, patientID string) (*models.Patient, error)
	ListActiveMedications(ctx context.Context, patientID string) ([]models.Medication, error)
}

// VitalsStore 读数存储（repository.VitalsRepository 实现）
type VitalsStore interface {
	InsertReading(ctx context.Context, reading *models.VitalReading) error
	RecentReadings(ctx context.Context, patientID string, limit int) ([]models.VitalReading, error)
}

// AlertStore 告警存储（repository.AlertsRepository 实现）
type AlertStore interface {
	CreateAlerts(ctx context.Context, alerts []models.Alert) error
	GetAlert(ctx context.Context, alertID string) (*models.Alert, error)
	ListActiveAlerts(ctx context.Context, patientID string, limit int) ([]models.Alert, error)
	AcknowledgeAlert(ctx context.Context, alertID, acknowledgedBy string, at time.Time) error
}

// LabStore 化验解读存储（repository.LabResultsRepository 实现）
type LabStore interface {
	SaveAnalysis(ctx context.Context, patientID string, analysis lab.Analysis, analyzedAt time.Time) error
}

// WardCache 读数历史与告警缓存（consumer.CacheManager 实现）
type WardCache interface {
	GetHistory(ctx context.Context, patientID string) ([]models.VitalReading, error)
	PushReading(ctx context.Context, reading models.VitalReading) error
	SeedHistory(ctx context.Context, patientID string, readings []models.VitalReading) error
	GetAlertCache(ctx context.Context, patientID string) ([]models.Alert, error)
	UpdateAlertCache(ctx context.Context, patientID string, alerts []models.Alert) error
	InvalidateAlertCache(ctx context.Context, patientID string) error
}

// AlertPublisher 告警下发（通知协作方）
type AlertPublisher interface {
	PublishAlerts(ctx context.Context, alerts []models.Alert) error
}
