// Package lab 化验值解读
package lab

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/arjunishere-e/medisync/internal/models"
)

const (
	criticalLowFactor  = 0.7
	criticalHighFactor = 1.5
)

// leadingNumber 数值前缀，如 "12.5 mg/dL" 中的 12.5
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Interpretation 单项化验结果的解读
type Interpretation struct {
	Status  models.LabStatus `json:"status"`
	Message string           `json:"message"`
	Unit    string           `json:"reference_unit,omitempty"`
	Low     *float64         `json:"reference_low,omitempty"`
	High    *float64         `json:"reference_high,omitempty"`
}

// InterpretValue 解读单项化验值；任何无法解读的输入都返回 unknown，不返回错误
func InterpretValue(parameter, value string, sex models.Sex) Interpretation {
	ref, ok := LookupReferenceRange(parameter)
	if !ok {
		return Interpretation{Status: models.LabUnknown, Message: "Reference not available"}
	}

	bounds, qualifier := selectRange(ref, sex)
	if bounds == nil {
		return Interpretation{Status: models.LabUnknown, Message: "Reference not available"}
	}
	low, high := bounds[0], bounds[1]

	interp := Interpretation{Unit: ref.Unit, Low: &low, High: &high}

	num, ok := parseValue(value)
	if !ok {
		interp.Status = models.LabUnknown
		interp.Message = "Invalid value"
		return interp
	}

	rangeText := fmt.Sprintf("%s-%s %s%s", formatBound(low), formatBound(high), ref.Unit, qualifier)
	switch {
	case num < low:
		interp.Status = models.LabLow
		if num < low*criticalLowFactor {
			interp.Status = models.LabCritical
		}
		interp.Message = fmt.Sprintf("Below normal (%s)", rangeText)
	case num > high:
		interp.Status = models.LabHigh
		if num > high*criticalHighFactor {
			interp.Status = models.LabCritical
		}
		interp.Message = fmt.Sprintf("Above normal (%s)", rangeText)
	default:
		interp.Status = models.LabNormal
		interp.Message = "Within normal range"
	}
	return interp
}

// selectRange 选择适用的范围
// 按性别区分且性别未知时，使用两者的包络 [min(low), max(high)]。
func selectRange(ref models.ReferenceRange, sex models.Sex) (*[2]float64, string) {
	if !ref.SexSpecific() {
		return ref.Range, ""
	}
	switch sex {
	case models.SexMale:
		return ref.Male, ""
	case models.SexFemale:
		return ref.Female, ""
	}
	envelope := [2]float64{
		math.Min(ref.Male[0], ref.Female[0]),
		math.Max(ref.Male[1], ref.Female[1]),
	}
	return &envelope, ", sex unspecified"
}

func parseValue(value string) (float64, bool) {
	match := leadingNumber.FindString(strings.TrimSpace(value))
	if match == "" {
		return 0, false
	}
	num, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
		return 0, false
	}
	return num, true
}

// normalizeParameter 小写并去掉所有空白
func normalizeParameter(parameter string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, parameter)
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
