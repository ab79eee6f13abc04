package models

import "strings"

// LabStatus 化验值解读状态
type LabStatus string

const (
	LabNormal   LabStatus = "normal"
	LabLow      LabStatus = "low"
	LabHigh     LabStatus = "high"
	LabCritical LabStatus = "critical"
	LabUnknown  LabStatus = "unknown"
)

// LabResult 化验报告中的一项结果；Value 为原始字符串
type LabResult struct {
	Parameter string `json:"parameter"`
	Value     string `json:"value"`
	Unit      string `json:"unit,omitempty"`
}

// LabReport 化验报告
type LabReport struct {
	ReportID  string      `json:"report_id,omitempty"`
	PatientID string      `json:"patient_id,omitempty"`
	TestType  string      `json:"test_type,omitempty"`
	TestName  string      `json:"test_name,omitempty"`
	Results   []LabResult `json:"results"`
}

// ReferenceRange 参考范围：单一范围或按性别区分
type ReferenceRange struct {
	Unit   string
	Range  *[2]float64
	Male   *[2]float64
	Female *[2]float64
}

// SexSpecific reports whether the range is split by sex.
func (r ReferenceRange) SexSpecific() bool {
	return r.Male != nil && r.Female != nil
}

// LabSummary narrative summary of a lab report
type LabSummary struct {
	Summary         string   `json:"summary"`
	KeyFindings     []string `json:"key_findings,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	UrgencyLevel    string   `json:"urgency_level,omitempty"`
	Generated       bool     `json:"generated"`
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
