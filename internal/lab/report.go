package lab

import "github.com/arjunishere-e/medisync/internal/models"

// InterpretedResult 化验结果 + 解读
type InterpretedResult struct {
	models.LabResult
	Interpretation Interpretation `json:"interpretation"`
}

// Analysis 整份化验单的解读结果
type Analysis struct {
	ReportID           string              `json:"report_id,omitempty"`
	TestName           string              `json:"test_name,omitempty"`
	InterpretedResults []InterpretedResult `json:"interpreted_results"`
	CriticalFindings   []InterpretedResult `json:"critical_findings"`
}

// AnalyzeReport 逐项解读，critical 结果单独过滤出来；各项之间没有关联逻辑
func AnalyzeReport(report models.LabReport, sex models.Sex) Analysis {
	analysis := Analysis{
		ReportID:           report.ReportID,
		TestName:           report.TestName,
		InterpretedResults: make([]InterpretedResult, 0, len(report.Results)),
		CriticalFindings:   []InterpretedResult{},
	}
	for _, result := range report.Results {
		item := InterpretedResult{
			LabResult:      result,
			Interpretation: InterpretValue(result.Parameter, result.Value, sex),
		}
		analysis.InterpretedResults = append(analysis.InterpretedResults, item)
		if item.Interpretation.Status == models.LabCritical {
			analysis.CriticalFindings = append(analysis.CriticalFindings, item)
		}
	}
	return analysis
}
