// Package interaction 基于规则的药物相互作用与过敏检查
package interaction

import (
	"strings"
	"unicode"

	"github.com/arjunishere-e/medisync/internal/models"
)

// CheckInteractions 检查新处方与当前用药、病人过敏史之间的冲突
// 输出顺序：已知相互作用（按当前用药顺序）→ 过敏（按过敏列表顺序）。
func CheckInteractions(newMed models.Medication, currentMeds []models.Medication, patient models.Patient) []models.InteractionFinding {
	findings := []models.InteractionFinding{}

	newKey := normalizeName(newMed.Name)
	if newKey != "" {
		newInteracting := lookup(newKey)
		for _, med := range currentMeds {
			curKey := normalizeName(med.Name)
			if curKey == "" {
				continue
			}
			if !containsAny(curKey, newInteracting) && !containsAny(newKey, lookup(curKey)) {
				continue
			}
			findings = append(findings, models.InteractionFinding{
				Drug1:    newMed.Name,
				Drug2:    med.Name,
				Severity: classifySeverity(newKey, curKey, patient.SecondaryDiagnoses),
				Type:     models.InteractionKnown,
			})
		}
	}

	rawName := strings.ToLower(strings.TrimSpace(newMed.Name))
	for _, allergy := range patient.Allergies {
		label := strings.ToLower(strings.TrimSpace(allergy))
		if label == "" {
			continue
		}
		if !strings.Contains(rawName, label) && !triggersContain(newMed.AllergyTriggers, label) {
			continue
		}
		findings = append(findings, models.InteractionFinding{
			Drug1:    newMed.Name,
			Drug2:    allergy,
			Severity: models.InteractionCritical,
			Type:     models.InteractionAllergy,
		})
	}

	return findings
}

// HasCritical reports whether any finding is critical.
func HasCritical(findings []models.InteractionFinding) bool {
	for _, f := range findings {
		if f.Severity == models.InteractionCritical {
			return true
		}
	}
	return false
}

func classifySeverity(drug1, drug2 string, conditions []string) models.InteractionSeverity {
	for _, pair := range highRiskPairs {
		if (matches(drug1, pair[0]) && matches(drug2, pair[1])) ||
			(matches(drug1, pair[1]) && matches(drug2, pair[0])) {
			return models.InteractionCritical
		}
	}

	for _, c := range conditions {
		cond := normalizeName(c)
		for _, rc := range riskConditions {
			if strings.Contains(cond, rc) {
				return models.InteractionHigh
			}
		}
	}

	return models.InteractionModerate
}

// lookup 解析药名对应的表项：先精确匹配，再按表顺序取第一个包含于药名中的键
func lookup(name string) []string {
	for _, e := range knownInteractions {
		if e.drug == name {
			return e.interacting
		}
	}
	for _, e := range knownInteractions {
		if strings.Contains(name, e.drug) {
			return e.interacting
		}
	}
	return nil
}

// containsAny 药名包含任一相互作用药物名
func containsAny(name string, candidates []string) bool {
	for _, c := range candidates {
		if c != "" && strings.Contains(name, c) {
			return true
		}
	}
	return false
}

// matches 高风险组合的双向子串匹配
func matches(name, entry string) bool {
	if name == "" || entry == "" {
		return false
	}
	return strings.Contains(name, entry) || strings.Contains(entry, name)
}

func triggersContain(triggers []string, label string) bool {
	for _, t := range triggers {
		if strings.Contains(strings.ToLower(t), label) {
			return true
		}
	}
	return false
}

// normalizeName 小写、去首尾空白，空格和连字符序列替换为下划线
func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	sep := false
	for _, r := range s {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			sep = true
			continue
		}
		if sep && b.Len() > 0 {
			b.WriteByte('_')
		}
		sep = false
		b.WriteRune(r)
	}
	return b.String()
}
