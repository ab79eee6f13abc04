package evaluator

import (
	"github.com/arjunishere-e/medisync/internal/models"
)

// fallHeartRateFactor 心率突增倍数
const fallHeartRateFactor = 1.3

// DetectFall 运动突然停止且心率突增时判定为疑似跌倒
// 两点比较：current 与紧邻的上一次读数 previous。
func DetectFall(current models.VitalReading, previous *models.VitalReading) *models.AnomalyFinding {
	if previous == nil {
		return nil
	}
	if current.MotionDetected == nil || *current.MotionDetected {
		return nil
	}
	if previous.MotionDetected == nil || !*previous.MotionDetected {
		return nil
	}

	hr, ok := current.Value(models.MetricHeartRate)
	if !ok {
		return nil
	}
	prevHR, ok := previous.Value(models.MetricHeartRate)
	if !ok {
		return nil
	}
	if hr <= prevHR*fallHeartRateFactor {
		return nil
	}

	return &models.AnomalyFinding{
		Type:     models.FindingFallSuspected,
		Severity: models.SeverityHigh,
		Message:  "Possible fall detected - sudden movement stop with heart rate spike",
	}
}
