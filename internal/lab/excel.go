package lab

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/arjunishere-e/medisync/internal/models"
)

// AnalysisExportHeader 导出表头
var AnalysisExportHeader = []string{
	"Parameter",
	"Value",
	"Unit",
	"Status",
	"Interpretation",
	"Reference Low",
	"Reference High",
	"Reference Unit",
}

const analysisSheet = "Lab Analysis"

// GenerateAnalysisExport 生成化验解读 Excel 文件；critical 行高亮
func GenerateAnalysisExport(analysis Analysis) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(analysisSheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	criticalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#9C0006"},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#FFC7CE"},
			Pattern: 1,
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create critical style: %w", err)
	}

	for col, header := range AnalysisExportHeader {
		if err := setCellValue(f, col+1, 1, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell: %w", err)
		}
	}
	lastCol, err := excelize.ColumnNumberToName(len(AnalysisExportHeader))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to convert column number: %w", err)
	}
	if err := f.SetCellStyle(analysisSheet, "A1", lastCol+"1", headerStyle); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}

	columnWidths := []float64{18, 12, 12, 12, 40, 15, 15, 15}
	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(analysisSheet, col, col, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, item := range analysis.InterpretedResults {
		row := i + 2
		values := []interface{}{
			item.Parameter,
			item.Value,
			item.Unit,
			string(item.Interpretation.Status),
			item.Interpretation.Message,
			nil,
			nil,
			item.Interpretation.Unit,
		}
		if item.Interpretation.Low != nil {
			values[5] = *item.Interpretation.Low
		}
		if item.Interpretation.High != nil {
			values[6] = *item.Interpretation.High
		}
		for col, value := range values {
			if value == nil || value == "" {
				continue
			}
			if err := setCellValue(f, col+1, row, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell value at row %d, col %d: %w", row, col+1, err)
			}
		}
		if item.Interpretation.Status == models.LabCritical {
			start := fmt.Sprintf("A%d", row)
			end := fmt.Sprintf("%s%d", lastCol, row)
			if err := f.SetCellStyle(analysisSheet, start, end, criticalStyle); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set critical style: %w", err)
			}
		}
	}

	// 冻结表头
	if err := f.SetPanes(analysisSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}

func setCellValue(f *excelize.File, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(analysisSheet, cell, value)
}
