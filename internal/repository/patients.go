package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/arjunishere-e/medisync/internal/models"
)

// PatientRepository 病人及用药仓库
type PatientRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPatientRepository 创建病人仓库
func NewPatientRepository(db *sql.DB, logger *zap.Logger) *PatientRepository {
	return &PatientRepository{
		db:     db,
		logger: logger,
	}
}

// GetPatient 根据 patient_id 获取病人（含诊断和过敏史）
func (r *PatientRepository) GetPatient(ctx context.Context, patientID string) (*models.Patient, error) {
	if patientID == "" {
		return nil, fmt.Errorf("patient_id is required")
	}

	query := `
		SELECT
			patient_id,
			full_name,
			sex,
			COALESCE(primary_diagnosis, ''),
			secondary_diagnoses,
			allergies,
			COALESCE(ward_id, ''),
			COALESCE(bed_number, '')
		FROM patients
		WHERE patient_id = $1
	`

	var patient models.Patient
	var sex sql.NullString
	err := r.db.QueryRowContext(ctx, query, patientID).Scan(
		&patient.PatientID,
		&patient.FullName,
		&sex,
		&patient.PrimaryDiagnosis,
		pq.Array(&patient.SecondaryDiagnoses),
		pq.Array(&patient.Allergies),
		&patient.WardID,
		&patient.BedNumber,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("patient %s: %w", patientID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	patient.Sex = models.ParseSex(sex.String)

	return &patient, nil
}

// ListActiveMedications 获取病人当前在用药物，按开始时间排序
func (r *PatientRepository) ListActiveMedications(ctx context.Context, patientID string) ([]models.Medication, error) {
	if patientID == "" {
		return nil, fmt.Errorf("patient_id is required")
	}

	query := `
		SELECT
			name,
			COALESCE(dosage, ''),
			allergy_triggers
		FROM medications
		WHERE patient_id = $1
		  AND status = 'active'
		ORDER BY started_at ASC, name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query medications: %w", err)
	}
	defer rows.Close()

	meds := []models.Medication{}
	for rows.Next() {
		var med models.Medication
		if err := rows.Scan(&med.Name, &med.Dosage, pq.Array(&med.AllergyTriggers)); err != nil {
			return nil, fmt.Errorf("failed to scan medication: %w", err)
		}
		meds = append(meds, med)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate medications: %w", err)
	}

	r.logger.Debug("Loaded active medications",
		zap.String("patient_id", patientID),
		zap.Int("count", len(meds)),
	)
	return meds, nil
}
