// Package export writes a generated quiz to an Excel workbook.
package export

import (
	"fmt"

	"mcqgen/internal/domain"

	"github.com/xuri/excelize/v2"
)

const (
	QuizSheet   = "Quiz"
	ReviewSheet = "Review"
)

// Workbook holds what is written: the table, the review and usage.
type Workbook struct {
	Subject string
	Rows    []domain.QuizRow
	Review  string
	Usage   domain.TokenUsage
}

// XLSX renders w as an .xlsx file.
func XLSX(w Workbook) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", QuizSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"#", "MCQ", "Choices", "Correct"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(QuizSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, r := range w.Rows {
		row := i + 2
		write := func(col int, v any) error {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			return f.SetCellValue(QuizSheet, cell, v)
		}
		// 1-based numbering, as shown in the web table
		for col, v := range []any{i + 1, r.MCQ, r.Choices, r.Correct} {
			if err := write(col+1, v); err != nil {
				return nil, err
			}
		}
	}

	_ = f.SetColWidth(QuizSheet, "A", "A", 5)
	_ = f.SetColWidth(QuizSheet, "B", "B", 60)
	_ = f.SetColWidth(QuizSheet, "C", "C", 80)
	_ = f.SetColWidth(QuizSheet, "D", "D", 10)

	if _, err := f.NewSheet(ReviewSheet); err != nil {
		return nil, fmt.Errorf("create review sheet: %w", err)
	}
	summary := [][2]any{
		{"Subject", w.Subject},
		{"Review", w.Review},
		{"Total Tokens", w.Usage.TotalTokens},
		{"Prompt Tokens", w.Usage.PromptTokens},
		{"Completion Tokens", w.Usage.CompletionTokens},
		{"Total Cost (USD)", w.Usage.TotalCost},
	}
	for i, kv := range summary {
		label, _ := excelize.CoordinatesToCellName(1, i+1)
		value, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := f.SetCellValue(ReviewSheet, label, kv[0]); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(ReviewSheet, value, kv[1]); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(ReviewSheet, "A", "A", 20)
	_ = f.SetColWidth(ReviewSheet, "B", "B", 100)

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
