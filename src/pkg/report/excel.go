package report

import (
	"fmt"

	"github.com/tuumbleweed/xerr"
	"github.com/xuri/excelize/v2"

	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/util"
)

// House colors: header band and the zebra fill on even data rows.
const (
	headerColor = "E60D25"
	zebraColor  = "F2F2F2"
)

const (
	minColumnWidth = 10
	maxColumnWidth = 60
)

/*
workbook wraps an excelize file during report assembly. The first sheet
replaces the default "Sheet1"; later sheets are appended.
*/
type workbook struct {
	file       *excelize.File
	sheetCount int
	usedNames  map[string]bool
}

func newWorkbook() *workbook {
	return &workbook{
		file:      excelize.NewFile(),
		usedNames: make(map[string]bool),
	}
}

/*
uniqueSheetName sanitizes and truncates a name, then deduplicates it within
the workbook. Two long names can truncate to the same 31 characters, and
excelize's NewSheet would silently reuse the existing sheet, so colliding
names get a numeric suffix carved out of the truncation budget.
*/
func (w *workbook) uniqueSheetName(name string) string {
	base := util.SafeSheetName(name)

	candidate := base
	for counter := 2; w.usedNames[candidate]; counter += 1 {
		suffix := fmt.Sprintf("_%d", counter)
		trimmed := base
		if len(trimmed)+len(suffix) > util.MaxSheetNameLength {
			trimmed = trimmed[:util.MaxSheetNameLength-len(suffix)]
		}
		candidate = trimmed + suffix
	}

	w.usedNames[candidate] = true
	return candidate
}

/*
addSheet writes one header row plus data rows onto a new sheet and applies
the shared styling: colored bold header, zebra on every second data row,
column widths sized to content.
*/
func (w *workbook) addSheet(name string, headers []string, rows [][]interface{}) (e *xerr.Error) {
	sheetName := w.uniqueSheetName(name)

	if w.sheetCount == 0 {
		renameErr := w.file.SetSheetName("Sheet1", sheetName)
		if renameErr != nil {
			return xerr.NewError(renameErr, "rename first worksheet", sheetName)
		}
	} else {
		_, newErr := w.file.NewSheet(sheetName)
		if newErr != nil {
			return xerr.NewError(newErr, "add worksheet", sheetName)
		}
	}
	w.sheetCount += 1

	for columnIndex, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(columnIndex+1, 1)
		w.file.SetCellValue(sheetName, cell, header)
	}
	for rowIndex, row := range rows {
		for columnIndex, value := range row {
			cell, _ := excelize.CoordinatesToCellName(columnIndex+1, rowIndex+2)
			w.file.SetCellValue(sheetName, cell, value)
		}
	}

	e = w.styleSheet(sheetName, headers, rows)
	return e
}

func (w *workbook) styleSheet(sheetName string, headers []string, rows [][]interface{}) (e *xerr.Error) {
	headerStyle, styleErr := w.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerColor}, Pattern: 1},
	})
	if styleErr != nil {
		return xerr.NewError(styleErr, "create header style", sheetName)
	}
	w.file.SetRowStyle(sheetName, 1, 1, headerStyle)

	zebraStyle, styleErr := w.file.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{zebraColor}, Pattern: 1},
	})
	if styleErr != nil {
		return xerr.NewError(styleErr, "create zebra style", sheetName)
	}
	// Sheet rows 2, 4, 6, ... get the zebra fill, header counted as row 1.
	for sheetRow := 2; sheetRow <= len(rows)+1; sheetRow += 2 {
		w.file.SetRowStyle(sheetName, sheetRow, sheetRow, zebraStyle)
	}

	for columnIndex := range headers {
		width := len(headers[columnIndex])
		for _, row := range rows {
			if columnIndex < len(row) {
				length := len(fmt.Sprint(row[columnIndex]))
				if length > width {
					width = length
				}
			}
		}
		columnName, _ := excelize.ColumnNumberToName(columnIndex + 1)
		adjusted := util.Clamp(float64(width+2), minColumnWidth, maxColumnWidth)
		w.file.SetColWidth(sheetName, columnName, columnName, adjusted)
	}

	return e
}

func (w *workbook) save(path string) (e *xerr.Error) {
	saveErr := w.file.SaveAs(path)
	if saveErr != nil {
		return xerr.NewError(saveErr, "save workbook", path)
	}
	closeErr := w.file.Close()
	if closeErr != nil {
		return xerr.NewError(closeErr, "close workbook", path)
	}
	return e
}
