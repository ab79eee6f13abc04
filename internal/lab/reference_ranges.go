package lab

import "github.com/arjunishere-e/medisync/internal/models"

func span(low, high float64) *[2]float64 {
	return &[2]float64{low, high}
}

// referenceRanges 常见化验项目参考范围，键为规范化后的参数名
var referenceRanges = map[string]models.ReferenceRange{
	// Blood count
	"hemoglobin": {Unit: "g/dL", Male: span(13.5, 17.5), Female: span(12.0, 15.5)},
	"wbc":        {Unit: "cells/mcL", Range: span(4500, 11000)},
	"rbc":        {Unit: "million/mcL", Male: span(4.5, 5.5), Female: span(4.0, 5.0)},
	"platelets":  {Unit: "cells/mcL", Range: span(150000, 400000)},
	"hematocrit": {Unit: "%", Male: span(38.8, 50), Female: span(34.9, 44.5)},

	// Metabolic panel
	"glucose":    {Unit: "mg/dL", Range: span(70, 100)},
	"creatinine": {Unit: "mg/dL", Male: span(0.7, 1.3), Female: span(0.6, 1.1)},
	"bun":        {Unit: "mg/dL", Range: span(7, 20)},
	"sodium":     {Unit: "mEq/L", Range: span(136, 145)},
	"potassium":  {Unit: "mEq/L", Range: span(3.5, 5.0)},
	"chloride":   {Unit: "mEq/L", Range: span(98, 106)},
	"co2":        {Unit: "mEq/L", Range: span(23, 29)},

	// Liver function
	"alt":       {Unit: "U/L", Range: span(7, 56)},
	"ast":       {Unit: "U/L", Range: span(10, 40)},
	"alp":       {Unit: "U/L", Range: span(44, 147)},
	"bilirubin": {Unit: "mg/dL", Range: span(0.1, 1.2)},
	"albumin":   {Unit: "g/dL", Range: span(3.5, 5.0)},

	// Lipid panel
	"cholesterol":   {Unit: "mg/dL", Range: span(0, 200)},
	"ldl":           {Unit: "mg/dL", Range: span(0, 100)},
	"hdl":           {Unit: "mg/dL", Range: span(40, 1000)},
	"triglycerides": {Unit: "mg/dL", Range: span(0, 150)},

	// Thyroid
	"tsh": {Unit: "mIU/L", Range: span(0.4, 4.0)},
	"t4":  {Unit: "mcg/dL", Range: span(4.5, 12.0)},
	"t3":  {Unit: "ng/dL", Range: span(80, 200)},
}

// LookupReferenceRange 按规范化参数名查找参考范围
func LookupReferenceRange(parameter string) (models.ReferenceRange, bool) {
	ref, ok := referenceRanges[normalizeParameter(parameter)]
	return ref, ok
}
