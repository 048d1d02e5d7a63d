package loader

import (
	"bytes"
	"io"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"

	"github.com/soldes-dev/soldes/internal/model"
)

// XLSXLoader parses the first sheet of an Office Open XML workbook.
type XLSXLoader struct{}

// Format returns the loader name.
func (p *XLSXLoader) Format() string { return "xlsx" }

// Load reads the first sheet. Cells are read unformatted so that numbers are
// not rendered with thousands separators.
func (p *XLSXLoader) Load(r io.Reader) (*model.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, unreadable("opening workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, unreadable("workbook has no sheet")
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, unreadable("reading sheet %q: %v", sheets[0], err)
	}
	return newTable(rows), nil
}

// XLSLoader parses the first sheet of a legacy BIFF workbook.
type XLSLoader struct{}

// Format returns the loader name.
func (p *XLSLoader) Format() string { return "xls" }

// Load reads the first sheet. Files named .xls that are really xlsx
// containers are handed to the xlsx loader.
func (p *XLSLoader) Load(r io.Reader) (*model.RawTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, unreadable("reading workbook: %v", err)
	}

	workbook, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		if f, errX := excelize.OpenReader(bytes.NewReader(data)); errX == nil {
			f.Close()
			return (&XLSXLoader{}).Load(bytes.NewReader(data))
		}
		return nil, unreadable("opening workbook: %v", err)
	}
	if workbook.GetNumberSheets() == 0 {
		return nil, unreadable("workbook has no sheet")
	}
	sheet, err := workbook.GetSheet(0)
	if err != nil {
		return nil, unreadable("reading first sheet: %v", err)
	}

	var records [][]string
	for _, row := range sheet.GetRows() {
		var rec []string
		for _, cell := range row.GetCols() {
			rec = append(rec, cell.GetString())
		}
		records = append(records, rec)
	}
	return newTable(records), nil
}
