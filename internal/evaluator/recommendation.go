package evaluator

import (
	"github.com/arjunishere-e/medisync/internal/models"
)

// FallbackRecommendationText is used whenever the narrative service cannot answer.
const FallbackRecommendationText = "Please review the detected anomalies and assess the patient."

// FallbackRecommendation 叙述服务失败时的确定性建议
func FallbackRecommendation(findings []models.AnomalyFinding) models.Recommendation {
	rec := models.Recommendation{
		Text:    FallbackRecommendationText,
		Urgency: models.UrgencyUrgent,
	}
	for _, f := range findings {
		switch f.Severity {
		case models.SeverityCritical:
			rec.Urgency = models.UrgencyImmediate
			rec.NotifyDoctor = true
		case models.SeverityHigh:
			rec.NotifyDoctor = true
		}
	}
	return rec
}
