package evaluator

import (
	"math"

	"github.com/arjunishere-e/medisync/internal/models"
)

const (
	// MinHistoryForStatistics 统计检测所需的最少历史读数
	MinHistoryForStatistics = 5

	zScoreCutoff       = 2.0
	outlierScoreCutoff = 3.0
	outlierHighScore   = 5.0
)

// statisticalMetrics is evaluated in this fixed order so the summed score is reproducible.
var statisticalMetrics = []models.Metric{
	models.MetricHeartRate,
	models.MetricBloodPressureSystolic,
	models.MetricTemperature,
	models.MetricSpO2,
}

// DetectStatisticalOutliers 将当前读数与历史窗口比较（z-score 累计）
// 历史顺序不影响结果，只要求数量足够。
func DetectStatisticalOutliers(reading models.VitalReading, history []models.VitalReading) []models.AnomalyFinding {
	findings := []models.AnomalyFinding{}
	if len(history) < MinHistoryForStatistics {
		return findings
	}

	score := StatisticalScore(reading, history)
	if score <= outlierScoreCutoff {
		return findings
	}

	severity := models.SeverityMedium
	if score > outlierHighScore {
		severity = models.SeverityHigh
	}
	return append(findings, models.AnomalyFinding{
		Type:     models.FindingStatisticalOutlier,
		Severity: severity,
		Message:  "Unusual combination of vital signs detected",
	})
}

// StatisticalScore 返回累计异常分数：每个指标 z>2 时累加 z-2
func StatisticalScore(reading models.VitalReading, history []models.VitalReading) float64 {
	score := 0.0
	for _, metric := range statisticalMetrics {
		current, ok := reading.Value(metric)
		if !ok {
			continue
		}
		values := presentValues(history, metric)
		if len(values) < 2 {
			continue
		}
		mean, stdDev := meanStdDev(values)
		if z := zScore(current, mean, stdDev); z > zScoreCutoff {
			score += z - zScoreCutoff
		}
	}
	return score
}

func presentValues(readings []models.VitalReading, metric models.Metric) []float64 {
	values := make([]float64, 0, len(readings))
	for _, r := range readings {
		if v, ok := r.Value(metric); ok {
			values = append(values, v)
		}
	}
	return values
}

// meanStdDev population standard deviation
func meanStdDev(values []float64) (float64, float64) {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	sq := 0.0
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(values)))
}

func zScore(value, mean, stdDev float64) float64 {
	if stdDev == 0 {
		return 0
	}
	return math.Abs((value - mean) / stdDev)
}
