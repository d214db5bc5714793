package sheet

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Parse decodes an xlsx workbook and returns the rows of its first worksheet.
// The first non-empty row is the header; every later non-empty row becomes a
// Record keyed by those headers.
func Parse(r io.Reader) ([]*Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	return parseSheet(f, sheets[0])
}

func parseSheet(f *excelize.File, sheetName string) ([]*Record, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	headerIdx := -1
	for i, row := range rows {
		if !blankRow(row) {
			headerIdx = i
			break
		}
	}
	records := make([]*Record, 0)
	if headerIdx < 0 {
		return records, nil
	}
	headers := headerNames(padRow(rows[headerIdx], widestRow(rows[headerIdx:])))

	for rowIdx := headerIdx + 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		if blankRow(row) {
			continue
		}
		rec := NewRecord()
		for colIdx, raw := range row {
			if raw == "" || colIdx >= len(headers) {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			typ, err := f.GetCellType(sheetName, cell)
			if err != nil {
				return nil, fmt.Errorf("cell %s: %w", cell, err)
			}
			rec.Set(headers[colIdx], coerce(raw, typ))
		}
		if rec.Len() > 0 {
			records = append(records, rec)
		}
	}
	return records, nil
}

// headerNames turns the header row into unique keys. Blank headers become
// __EMPTY, __EMPTY_1, ... and repeated headers get a numeric suffix.
func headerNames(row []string) []string {
	names := make([]string, len(row))
	taken := make(map[string]bool, len(row))
	for i, h := range row {
		base := h
		if base == "" {
			base = "__EMPTY"
		}
		name := base
		for n := 1; taken[name]; n++ {
			name = base + "_" + strconv.Itoa(n)
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

// coerce maps a raw cell value onto the Value union using the stored cell type.
func coerce(raw string, typ excelize.CellType) Value {
	switch typ {
	case excelize.CellTypeBool:
		return String(boolText(raw == "1" || raw == "TRUE" || raw == "true"))
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError, excelize.CellTypeDate:
		return String(raw)
	default:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return Number(n)
		}
		return String(raw)
	}
}

// GetRows drops trailing empty cells, so a header row can be shorter than
// the data below it.
func widestRow(rows [][]string) int {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}

func blankRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
