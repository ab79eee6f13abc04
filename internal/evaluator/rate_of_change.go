package evaluator

import (
	"fmt"
	"math"

	"github.com/arjunishere-e/medisync/internal/models"
)

const (
	trendWindow = 3
	// DefaultTrendThreshold applies to metrics without an explicit rate threshold.
	DefaultTrendThreshold = 20.0
)

// TrendThresholds 平均变化量超过该值即判定为快速变化
var TrendThresholds = map[models.Metric]float64{
	models.MetricHeartRate:             15,
	models.MetricBloodPressureSystolic: 15,
	models.MetricTemperature:           0.5,
}

// trendMetrics 聚合时按此顺序检测
var trendMetrics = []models.Metric{
	models.MetricHeartRate,
	models.MetricBloodPressureSystolic,
	models.MetricTemperature,
}

// DetectTrend 检测最近三次读数中的快速变化
// readings 按时间倒序（最新在前），当前读数在第一个位置。
func DetectTrend(readings []models.VitalReading, metric models.Metric) *models.AnomalyFinding {
	if len(readings) < trendWindow {
		return nil
	}

	values := presentValues(readings[:trendWindow], metric)
	if len(values) < 2 {
		return nil
	}

	total := 0.0
	for i := 0; i < len(values)-1; i++ {
		total += math.Abs(values[i] - values[i+1])
	}
	avgChange := total / float64(len(values)-1)

	if avgChange <= trendThreshold(metric) {
		return nil
	}

	m := metric
	return &models.AnomalyFinding{
		Type:     models.FindingRapidChange,
		Metric:   &m,
		Severity: models.SeverityMedium,
		Message:  fmt.Sprintf("Rapid change in %s detected", metric.Label()),
	}
}

func trendThreshold(metric models.Metric) float64 {
	if t, ok := TrendThresholds[metric]; ok {
		return t
	}
	return DefaultTrendThreshold
}
