package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Metric 监测的生命体征指标
type Metric string

const (
	MetricHeartRate              Metric = "heart_rate"
	MetricBloodPressureSystolic  Metric = "blood_pressure_systolic"
	MetricBloodPressureDiastolic Metric = "blood_pressure_diastolic"
	MetricTemperature            Metric = "temperature"
	MetricSpO2                   Metric = "spo2"
	MetricRespiratoryRate        Metric = "respiratory_rate"
)

// Metrics lists every monitored metric in band-table order.
var Metrics = []Metric{
	MetricHeartRate,
	MetricBloodPressureSystolic,
	MetricBloodPressureDiastolic,
	MetricTemperature,
	MetricSpO2,
	MetricRespiratoryRate,
}

// ParseMetric 解析指标名称，未知名称返回错误
func ParseMetric(s string) (Metric, error) {
	m := Metric(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown vital metric: %q", s)
	}
	return m, nil
}

// Valid reports whether m is one of the monitored metrics.
func (m Metric) Valid() bool {
	for _, known := range Metrics {
		if m == known {
			return true
		}
	}
	return false
}

// Label 返回用于消息的可读名称，如 "heart rate"
func (m Metric) Label() string {
	return strings.ReplaceAll(string(m), "_", " ")
}

// VitalReading 一次生命体征读数（监护仪上报或人工录入）
// nil 表示该指标缺失；缺失指标不参与任何规则，也不当作 0。
type VitalReading struct {
	PatientID              string    `json:"patient_id"`
	Timestamp              time.Time `json:"timestamp"`
	HeartRate              *float64  `json:"heart_rate,omitempty"`
	BloodPressureSystolic  *float64  `json:"blood_pressure_systolic,omitempty"`
	BloodPressureDiastolic *float64  `json:"blood_pressure_diastolic,omitempty"`
	Temperature            *float64  `json:"temperature,omitempty"`
	SpO2                   *float64  `json:"spo2,omitempty"`
	RespiratoryRate        *float64  `json:"respiratory_rate,omitempty"`
	MotionDetected         *bool     `json:"motion_detected,omitempty"`
}

// Value 返回指标值；nil 或非有限值视为缺失
func (r VitalReading) Value(m Metric) (float64, bool) {
	var p *float64
	switch m {
	case MetricHeartRate:
		p = r.HeartRate
	case MetricBloodPressureSystolic:
		p = r.BloodPressureSystolic
	case MetricBloodPressureDiastolic:
		p = r.BloodPressureDiastolic
	case MetricTemperature:
		p = r.Temperature
	case MetricSpO2:
		p = r.SpO2
	case MetricRespiratoryRate:
		p = r.RespiratoryRate
	}
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return 0, false
	}
	return *p, true
}
