package models

import (
	"time"
)

// AlertSource 告警来源
type AlertSource string

const (
	AlertSourceVitals     AlertSource = "vitals"
	AlertSourceMedication AlertSource = "medication"
	AlertSourceLab        AlertSource = "lab"
)

// AlertStatus 告警状态
type AlertStatus string

const (
	AlertActive       AlertStatus = "active"
	AlertAcknowledged AlertStatus = "acknowledged"
)

// Alert 告警（对应 alerts 表）
type Alert struct {
	AlertID        string      `json:"alert_id" db:"alert_id"`
	PatientID      string      `json:"patient_id" db:"patient_id"`
	Source         AlertSource `json:"source" db:"source"`
	AlertType      string      `json:"alert_type" db:"alert_type"` // finding type, interaction type or lab status
	Metric         *string     `json:"metric,omitempty" db:"metric"`
	Severity       string      `json:"severity" db:"severity"` // medium/high/critical or moderate for interactions
	Message        string      `json:"message" db:"message"`
	Status         AlertStatus `json:"status" db:"status"`
	TriggeredAt    time.Time   `json:"triggered_at" db:"triggered_at"`
	Recommendation *string     `json:"recommendation,omitempty" db:"recommendation"`
	NotifyDoctor   bool        `json:"notify_doctor" db:"notify_doctor"`
	AcknowledgedBy *string     `json:"acknowledged_by,omitempty" db:"acknowledged_by"`
	AcknowledgedAt *time.Time  `json:"acknowledged_at,omitempty" db:"acknowledged_at"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
}
