package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/arjunishere-e/medisync/internal/models"
)

// VitalsRepository 生命体征读数仓库
type VitalsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewVitalsRepository 创建读数仓库
func NewVitalsRepository(db *sql.DB, logger *zap.Logger) *VitalsRepository {
	return &VitalsRepository{
		db:     db,
		logger: logger,
	}
}

// InsertReading 写入一条读数；缺失指标写 NULL
func (r *VitalsRepository) InsertReading(ctx context.Context, reading *models.VitalReading) error {
	if reading == nil {
		return fmt.Errorf("reading is required")
	}
	if reading.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}

	query := `
		INSERT INTO vital_readings (
			patient_id,
			recorded_at,
			heart_rate,
			blood_pressure_systolic,
			blood_pressure_diastolic,
			temperature,
			spo2,
			respiratory_rate,
			motion_detected
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		reading.PatientID,
		reading.Timestamp,
		reading.HeartRate,
		reading.BloodPressureSystolic,
		reading.BloodPressureDiastolic,
		reading.Temperature,
		reading.SpO2,
		reading.RespiratoryRate,
		reading.MotionDetected,
	)
	if err != nil {
		return fmt.Errorf("failed to insert vital reading: %w", err)
	}
	return nil
}

// RecentReadings 最近 limit 条读数，最新在前
func (r *VitalsRepository) RecentReadings(ctx context.Context, patientID string, limit int) ([]models.VitalReading, error) {
	if patientID == "" {
		return nil, fmt.Errorf("patient_id is required")
	}
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT
			patient_id,
			recorded_at,
			heart_rate,
			blood_pressure_systolic,
			blood_pressure_diastolic,
			temperature,
			spo2,
			respiratory_rate,
			motion_detected
		FROM vital_readings
		WHERE patient_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, patientID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query vital readings: %w", err)
	}
	defer rows.Close()

	readings := []models.VitalReading{}
	for rows.Next() {
		var reading models.VitalReading
		var hr, sys, dia, temp, spo2, rr sql.NullFloat64
		var motion sql.NullBool
		if err := rows.Scan(
			&reading.PatientID,
			&reading.Timestamp,
			&hr,
			&sys,
			&dia,
			&temp,
			&spo2,
			&rr,
			&motion,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vital reading: %w", err)
		}

		// 处理可空字段
		reading.HeartRate = nullFloat(hr)
		reading.BloodPressureSystolic = nullFloat(sys)
		reading.BloodPressureDiastolic = nullFloat(dia)
		reading.Temperature = nullFloat(temp)
		reading.SpO2 = nullFloat(spo2)
		reading.RespiratoryRate = nullFloat(rr)
		if motion.Valid {
			v := motion.Bool
			reading.MotionDetected = &v
		}
		readings = append(readings, reading)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vital readings: %w", err)
	}
	return readings, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
