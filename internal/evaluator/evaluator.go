// Package evaluator 生命体征异常检测
//
// All functions in this package are pure: they read only their arguments and
// package-level tables that are never mutated, so they are safe for concurrent use.
package evaluator

import (
	"github.com/arjunishere-e/medisync/internal/models"
)

// AggregateAnomalies 汇总一次读数的全部异常发现
// history 按时间倒序（最新在前），不包含 reading 本身。
// 输出顺序固定：阈值 → 统计 → 变化率（heart_rate, bp systolic, temperature）→ 跌倒。
func AggregateAnomalies(reading models.VitalReading, history []models.VitalReading) []models.AnomalyFinding {
	findings := EvaluateThresholds(reading)

	findings = append(findings, DetectStatisticalOutliers(reading, history)...)

	window := make([]models.VitalReading, 0, len(history)+1)
	window = append(window, reading)
	window = append(window, history...)
	for _, metric := range trendMetrics {
		if f := DetectTrend(window, metric); f != nil {
			findings = append(findings, *f)
		}
	}

	var previous *models.VitalReading
	if len(history) > 0 {
		previous = &history[0]
	}
	if f := DetectFall(reading, previous); f != nil {
		findings = append(findings, *f)
	}

	return findings
}

// HighestSeverity 返回发现列表中的最高严重程度，空列表返回 unknown
func HighestSeverity(findings []models.AnomalyFinding) models.Severity {
	highest := models.SeverityUnknown
	for _, f := range findings {
		if f.Severity.Rank() > highest.Rank() {
			highest = f.Severity
		}
	}
	return highest
}
