package render

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/remarkableland/bonusgen/schedule"
)

const (
	sheetName   = "Bonus Schedule"
	maxColWidth = 50
)

// XLSX writes the spreadsheet encoding: title and period lines, the data
// table starting two rows below them, and three emphasized totals rows two
// rows below the data. Column widths track the longest value per column,
// capped at maxColWidth.
func XLSX(w io.Writer, s *schedule.Schedule) error {
	if err := validate(s); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return fmt.Errorf("creating title style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating bold style: %w", err)
	}

	f.SetCellValue(sheetName, "A1", Title)
	f.SetCellValue(sheetName, "A2", "Month Ending: "+s.Meta.PeriodEnd.Format("01/02/2006"))
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetCellStyle(sheetName, "A2", "A2", boldStyle)

	// Track the widest stringified value per column for autosizing.
	widths := make([]int, len(DisplayLabels))

	const headerRow = 3
	for col, label := range DisplayLabels {
		cell, _ := excelize.CoordinatesToCellName(col+1, headerRow)
		f.SetCellValue(sheetName, cell, label)
		f.SetCellStyle(sheetName, cell, cell, boldStyle)
		widths[col] = len(label)
	}

	for i, row := range s.Rows {
		for col, value := range rowCells(row, s.Meta.CurrencySymbol) {
			cell, _ := excelize.CoordinatesToCellName(col+1, headerRow+1+i)
			f.SetCellValue(sheetName, cell, value)
			if len(value) > widths[col] {
				widths[col] = len(value)
			}
		}
	}

	dataEnd := headerRow + len(s.Rows)
	labelCol := len(DisplayLabels) - 1
	for i, pair := range totalsCells(s.Totals, s.Meta.CurrencySymbol) {
		labelCell, _ := excelize.CoordinatesToCellName(labelCol, dataEnd+2+i)
		valueCell, _ := excelize.CoordinatesToCellName(labelCol+1, dataEnd+2+i)
		f.SetCellValue(sheetName, labelCell, pair[0])
		f.SetCellValue(sheetName, valueCell, pair[1])
		f.SetCellStyle(sheetName, labelCell, valueCell, boldStyle)
	}

	for col, width := range widths {
		name, _ := excelize.ColumnNumberToName(col + 1)
		adjusted := float64(width + 2)
		if adjusted > maxColWidth {
			adjusted = maxColWidth
		}
		if err := f.SetColWidth(sheetName, name, name, adjusted); err != nil {
			return fmt.Errorf("sizing column %s: %w", name, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
