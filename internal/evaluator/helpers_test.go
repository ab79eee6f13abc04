package evaluator

import "github.com/arjunishere-e/medisync/internal/models"

// 辅助函数
func f64(v float64) *float64 {
	return &v
}

func boolPtr(b bool) *bool {
	return &b
}

func metricPtr(m models.Metric) *models.Metric {
	return &m
}

func hrReading(hr float64) models.VitalReading {
	return models.VitalReading{PatientID: "p-1", HeartRate: f64(hr)}
}

func normalReading() models.VitalReading {
	return models.VitalReading{
		PatientID:              "p-1",
		HeartRate:              f64(70),
		BloodPressureSystolic:  f64(120),
		BloodPressureDiastolic: f64(80),
		Temperature:            f64(36.8),
		SpO2:                   f64(98),
		RespiratoryRate:        f64(16),
	}
}
