package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/arjunishere-e/medisync/internal/models"
)

// AlertsRepository 告警仓库
type AlertsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAlertsRepository 创建告警仓库
func NewAlertsRepository(db *sql.DB, logger *zap.Logger) *AlertsRepository {
	return &AlertsRepository{
		db:     db,
		logger: logger,
	}
}

const insertAlertQuery = `
	INSERT INTO alerts (
		alert_id,
		patient_id,
		source,
		alert_type,
		metric,
		severity,
		message,
		status,
		triggered_at,
		recommendation,
		notify_doctor,
		created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
	)
`

const selectAlertColumns = `
	SELECT
		alert_id,
		patient_id,
		source,
		alert_type,
		metric,
		severity,
		message,
		status,
		triggered_at,
		recommendation,
		notify_doctor,
		acknowledged_by,
		acknowledged_at,
		created_at
	FROM alerts
`

// CreateAlerts 在同一事务中写入一批告警
func (r *AlertsRepository) CreateAlerts(ctx context.Context, alerts []models.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range alerts {
		a := &alerts[i]
		if a.PatientID == "" {
			return fmt.Errorf("patient_id is required")
		}
		if _, err := tx.ExecContext(ctx,
			insertAlertQuery,
			a.AlertID,
			a.PatientID,
			string(a.Source),
			a.AlertType,
			a.Metric,
			a.Severity,
			a.Message,
			string(a.Status),
			a.TriggeredAt,
			a.Recommendation,
			a.NotifyDoctor,
			a.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to create alert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit alerts: %w", err)
	}

	r.logger.Debug("Alerts created",
		zap.String("patient_id", alerts[0].PatientID),
		zap.Int("count", len(alerts)),
	)
	return nil
}

// GetAlert 根据 alert_id 获取告警
func (r *AlertsRepository) GetAlert(ctx context.Context, alertID string) (*models.Alert, error) {
	if alertID == "" {
		return nil, fmt.Errorf("alert_id is required")
	}

	rows, err := r.db.QueryContext(ctx, selectAlertColumns+` WHERE alert_id = $1`, alertID)
	if err != nil {
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	defer rows.Close()

	alerts, err := scanAlerts(rows)
	if err != nil {
		return nil, err
	}
	if len(alerts) == 0 {
		return nil, fmt.Errorf("alert %s: %w", alertID, ErrNotFound)
	}
	return &alerts[0], nil
}

// ListActiveAlerts 病人的未确认告警，最新在前
func (r *AlertsRepository) ListActiveAlerts(ctx context.Context, patientID string, limit int) ([]models.Alert, error) {
	if patientID == "" {
		return nil, fmt.Errorf("patient_id is required")
	}
	if limit <= 0 {
		limit = 100
	}

	query := selectAlertColumns + `
		WHERE patient_id = $1
		  AND status = $2
		ORDER BY triggered_at DESC
		LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, patientID, string(models.AlertActive), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	return scanAlerts(rows)
}

// AcknowledgeAlert 确认告警（active → acknowledged）
// 已确认或不存在的告警返回 ErrNotFound。
func (r *AlertsRepository) AcknowledgeAlert(ctx context.Context, alertID, acknowledgedBy string, at time.Time) error {
	if alertID == "" {
		return fmt.Errorf("alert_id is required")
	}
	if acknowledgedBy == "" {
		return fmt.Errorf("acknowledged_by is required")
	}

	query := `
		UPDATE alerts
		SET status = $1,
		    acknowledged_by = $2,
		    acknowledged_at = $3
		WHERE alert_id = $4
		  AND status = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		string(models.AlertAcknowledged),
		acknowledgedBy,
		at,
		alertID,
		string(models.AlertActive),
	)
	if err != nil {
		return fmt.Errorf("failed to acknowledge alert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("active alert %s: %w", alertID, ErrNotFound)
	}
	return nil
}

func scanAlerts(rows *sql.Rows) ([]models.Alert, error) {
	alerts := []models.Alert{}
	for rows.Next() {
		var a models.Alert
		var source, status string
		var metric, recommendation, acknowledgedBy sql.NullString
		var acknowledgedAt sql.NullTime
		if err := rows.Scan(
			&a.AlertID,
			&a.PatientID,
			&source,
			&a.AlertType,
			&metric,
			&a.Severity,
			&a.Message,
			&status,
			&a.TriggeredAt,
			&recommendation,
			&a.NotifyDoctor,
			&acknowledgedBy,
			&acknowledgedAt,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		a.Source = models.AlertSource(source)
		a.Status = models.AlertStatus(status)
		a.Metric = nullString(metric)
		a.Recommendation = nullString(recommendation)
		a.AcknowledgedBy = nullString(acknowledgedBy)
		if acknowledgedAt.Valid {
			t := acknowledgedAt.Time
			a.AcknowledgedAt = &t
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alerts: %w", err)
	}
	return alerts, nil
}
