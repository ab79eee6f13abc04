package evaluator

import (
	"fmt"
	"strconv"

	"github.com/arjunishere-e/medisync/internal/models"
)

// warningMargin 超出告警带多少单位后升级为 high
const warningMargin = 5

// Band 单个指标的固定临床范围
type Band struct {
	Metric       models.Metric
	Low          float64
	High         float64
	CriticalLow  float64
	CriticalHigh float64
}

// ThresholdBands 固定阈值表，顺序即输出顺序
var ThresholdBands = []Band{
	{Metric: models.MetricHeartRate, Low: 50, High: 120, CriticalLow: 40, CriticalHigh: 150},
	{Metric: models.MetricBloodPressureSystolic, Low: 90, High: 140, CriticalLow: 70, CriticalHigh: 180},
	{Metric: models.MetricBloodPressureDiastolic, Low: 60, High: 90, CriticalLow: 50, CriticalHigh: 120},
	{Metric: models.MetricTemperature, Low: 36, High: 37.5, CriticalLow: 35, CriticalHigh: 39.5},
	{Metric: models.MetricSpO2, Low: 95, High: 100, CriticalLow: 90, CriticalHigh: 101},
	{Metric: models.MetricRespiratoryRate, Low: 12, High: 20, CriticalLow: 8, CriticalHigh: 30},
}

// EvaluateThresholds 将单次读数与固定阈值表比较
func EvaluateThresholds(reading models.VitalReading) []models.AnomalyFinding {
	findings := []models.AnomalyFinding{}
	for _, band := range ThresholdBands {
		value, ok := reading.Value(band.Metric)
		if !ok {
			continue
		}
		if f, hit := band.evaluate(value); hit {
			findings = append(findings, f)
		}
	}
	return findings
}

func (b Band) evaluate(value float64) (models.AnomalyFinding, bool) {
	switch {
	case value <= b.CriticalLow || value >= b.CriticalHigh:
		return newMetricFinding(models.FindingThresholdCritical, b.Metric, value, models.SeverityCritical,
			fmt.Sprintf("Critical %s: %s", b.Metric.Label(), formatValue(value))), true
	case value < b.Low || value > b.High:
		severity := models.SeverityMedium
		if value < b.Low-warningMargin || value > b.High+warningMargin {
			severity = models.SeverityHigh
		}
		return newMetricFinding(models.FindingThresholdWarning, b.Metric, value, severity,
			fmt.Sprintf("Abnormal %s: %s", b.Metric.Label(), formatValue(value))), true
	}
	return models.AnomalyFinding{}, false
}

func newMetricFinding(t models.FindingType, m models.Metric, value float64, s models.Severity, msg string) models.AnomalyFinding {
	metric := m
	v := value
	return models.AnomalyFinding{
		Type:     t,
		Metric:   &metric,
		Value:    &v,
		Severity: s,
		Message:  msg,
	}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
