package models

import "strings"

// FindingType 异常发现类型
type FindingType string

const (
	FindingThresholdCritical  FindingType = "threshold_critical"
	FindingThresholdWarning   FindingType = "threshold_warning"
	FindingStatisticalOutlier FindingType = "statistical_outlier"
	FindingRapidChange        FindingType = "rapid_change"
	FindingFallSuspected      FindingType = "fall_suspected"
)

// Valid reports whether t is a known finding type.
func (t FindingType) Valid() bool {
	switch t {
	case FindingThresholdCritical, FindingThresholdWarning, FindingStatisticalOutlier,
		FindingRapidChange, FindingFallSuspected:
		return true
	}
	return false
}

// Severity 异常严重程度 (medium < high < critical)
type Severity string

const (
	SeverityUnknown  Severity = "unknown"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ParseSeverity maps free text to a Severity; anything unrecognised becomes SeverityUnknown.
func ParseSeverity(s string) Severity {
	switch v := Severity(strings.ToLower(strings.TrimSpace(s))); v {
	case SeverityMedium, SeverityHigh, SeverityCritical:
		return v
	}
	return SeverityUnknown
}

// Rank 返回排序用的序数，unknown 为 0
func (s Severity) Rank() int {
	switch s {
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	case SeverityCritical:
		return 3
	}
	return 0
}

// AnomalyFinding 单次评估产生的异常发现（不单独持久化）
type AnomalyFinding struct {
	Type     FindingType `json:"type"`
	Metric   *Metric     `json:"metric,omitempty"` // nil for whole-reading findings
	Value    *float64    `json:"value,omitempty"`
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
}

// Urgency 建议的紧急程度
type Urgency string

const (
	UrgencyRoutine   Urgency = "routine"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyImmediate Urgency = "immediate"
)

// Valid reports whether u is a known urgency.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyRoutine, UrgencyUrgent, UrgencyImmediate:
		return true
	}
	return false
}

// Recommendation 针对一组异常的处置建议
// Generated is false when the text is the local fallback.
type Recommendation struct {
	Text         string  `json:"recommendation"`
	Urgency      Urgency `json:"urgency"`
	NotifyDoctor bool    `json:"notify_doctor"`
	Generated    bool    `json:"generated"`
}

// VitalsAssessment 一次读数的完整评估结果
type VitalsAssessment struct {
	PatientID       string           `json:"patient_id"`
	Findings        []AnomalyFinding `json:"findings"`
	HighestSeverity Severity         `json:"highest_severity"`
	Recommendation  *Recommendation  `json:"recommendation,omitempty"`
	Alerts          []Alert          `json:"alerts,omitempty"`
}
