package export

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pension-board/retiree-intake/internal/form"
)

const sheetName = "Submissions"

// minColumnWidth keeps narrow labels readable.
const minColumnWidth = 18.0

// Excel renders all records into a single-sheet workbook. The first row is
// the fixed ordered header list; fields the schema does not know are
// silently dropped; file slots are rendered as the original filename, comma
// joined for multi valued slots. Zero records yield a header-only sheet.
func Excel(records []Record) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}

	f.SetActiveSheet(index)

	if err = f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []string{"ID", "Created At"}
	for _, field := range form.Fields {
		headers = append(headers, field.Label)
	}

	for _, slot := range form.FileSlots {
		suffix := " (file)"
		if slot.MaxCount > 1 {
			suffix = " (files)"
		}

		headers = append(headers, slot.Label+suffix)
	}

	for i, h := range headers {
		cell, cerr := excelize.CoordinatesToCellName(i+1, 1)
		if cerr != nil {
			return nil, cerr
		}

		if err = f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}

		col, cerr := excelize.ColumnNumberToName(i + 1)
		if cerr != nil {
			return nil, cerr
		}

		width := float64(len(h) + 2)
		if width < minColumnWidth {
			width = minColumnWidth
		}

		if err = f.SetColWidth(sheetName, col, col, width); err != nil {
			return nil, err
		}
	}

	for rowIdx, rec := range records {
		row := []interface{}{rec.ID, rec.CreatedAt.Format("2006-01-02 15:04:05")}

		for _, field := range form.Fields {
			row = append(row, rec.Data[field.Name])
		}

		byField := rec.FilesByField()
		for _, slot := range form.FileSlots {
			names := make([]string, 0, len(byField[slot.Name]))
			for _, fr := range byField[slot.Name] {
				names = append(names, fr.Original)
			}

			row = append(row, strings.Join(names, ", "))
		}

		for colIdx, v := range row {
			cell, cerr := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if cerr != nil {
				return nil, cerr
			}

			if err = f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
