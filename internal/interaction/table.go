package interaction

// interactionEntry 药物及其已知相互作用药物
type interactionEntry struct {
	drug        string
	interacting []string
}

// knownInteractions 已知相互作用表（顺序用于名称解析）
var knownInteractions = []interactionEntry{
	{"warfarin", []string{"aspirin", "ibuprofen", "naproxen", "vitamin_k", "st_johns_wort"}},
	{"aspirin", []string{"warfarin", "ibuprofen", "blood_thinners", "methotrexate"}},
	{"metformin", []string{"contrast_dye", "alcohol", "cimetidine"}},
	{"lisinopril", []string{"potassium", "spironolactone", "nsaids"}},
	{"simvastatin", []string{"grapefruit", "erythromycin", "gemfibrozil"}},
	{"amlodipine", []string{"simvastatin", "cyclosporine"}},
	{"omeprazole", []string{"clopidogrel", "methotrexate"}},
	{"metoprolol", []string{"verapamil", "clonidine", "digoxin"}},
	{"prednisone", []string{"nsaids", "warfarin", "diabetes_medications"}},
	{"furosemide", []string{"digoxin", "lithium", "aminoglycosides"}},
}

// highRiskPairs 高风险组合，命中即为 critical
var highRiskPairs = [][2]string{
	{"warfarin", "aspirin"},
	{"metformin", "contrast_dye"},
	{"clopidogrel", "omeprazole"},
	{"lithium", "furosemide"},
}

// riskConditions 增加风险的合并诊断
var riskConditions = []string{"kidney_disease", "liver_disease", "elderly", "heart_failure"}
