package models

// Sex 用于参考范围选择的性别
type Sex string

const (
	SexMale        Sex = "male"
	SexFemale      Sex = "female"
	SexUnspecified Sex = "unspecified"
)

// ParseSex 解析性别，无法识别的值一律为 unspecified
func ParseSex(s string) Sex {
	switch normalizeToken(s) {
	case "male", "m":
		return SexMale
	case "female", "f":
		return SexFemale
	}
	return SexUnspecified
}

// Patient 病人信息（仅包含引擎用到的字段）
type Patient struct {
	PatientID          string   `json:"patient_id"`
	FullName           string   `json:"full_name"`
	Sex                Sex      `json:"sex"`
	PrimaryDiagnosis   string   `json:"primary_diagnosis,omitempty"`
	SecondaryDiagnoses []string `json:"secondary_diagnoses,omitempty"`
	Allergies          []string `json:"allergies,omitempty"`
	WardID             string   `json:"ward_id,omitempty"`
	BedNumber          string   `json:"bed_number,omitempty"`
}

// Medication 药品引用；名称不区分大小写
type Medication struct {
	Name            string   `json:"name"`
	Dosage          string   `json:"dosage,omitempty"`
	AllergyTriggers []string `json:"allergy_triggers,omitempty"`
}

// InteractionSeverity 药物相互作用严重程度
type InteractionSeverity string

const (
	InteractionModerate InteractionSeverity = "moderate"
	InteractionHigh     InteractionSeverity = "high"
	InteractionCritical InteractionSeverity = "critical"
)

// InteractionType 相互作用发现类型
type InteractionType string

const (
	InteractionKnown   InteractionType = "known_interaction"
	InteractionAllergy InteractionType = "allergy"
)

// InteractionFinding 新处方检查结果；Drug2 为药名或过敏原
type InteractionFinding struct {
	Drug1    string              `json:"drug1"`
	Drug2    string              `json:"drug2"`
	Severity InteractionSeverity `json:"severity"`
	Type     InteractionType     `json:"type"`
}

// InteractionGuidance narrative guidance for a non-empty interaction list
type InteractionGuidance struct {
	ClinicalSignificance  string `json:"clinical_significance,omitempty"`
	Recommendation        string `json:"recommendation"`
	AlternativeSuggestion string `json:"alternative_suggestion,omitempty"`
	MonitoringRequired    bool   `json:"monitoring_required"`
	ProceedWithCaution    bool   `json:"proceed_with_caution"`
}
