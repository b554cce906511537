package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rta-apps/pta-archiving-backend/pkg/server/store"
)

// hireDateLayout is how hire dates travel to the archive insert.
const hireDateLayout = "02/01/2006"

// ExpectedHeaders are the column titles a spreadsheet must carry, in the
// order they are reported when validation fails. Position in the file
// does not matter and extra columns are allowed.
var ExpectedHeaders = []string{
	"Employee ID", "Name (AR)", "Name (EN)", "Hire Date",
	"Nationality", "Job Title", "Manager", "Phone", "Email",
	"Employee Status", "Section", "Department",
}

var (
	// ErrUnsupportedType means the filename is neither .xlsx nor .csv.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrMissingHeaders means the header row lacks one of ExpectedHeaders.
	ErrMissingHeaders = errors.New("missing required headers")
	// ErrNoRows means the file parsed cleanly but carried no data rows.
	ErrNoRows = errors.New("no data rows in file")
)

// ParseFile dispatches on the filename extension and parses the
// spreadsheet into bulk-archive rows.
func ParseFile(filename string, r io.Reader) ([]store.BulkEmployee, error) {
	switch {
	case strings.HasSuffix(filename, ".xlsx"):
		return parseXLSX(r)
	case strings.HasSuffix(filename, ".csv"):
		return parseCSV(r)
	default:
		return nil, ErrUnsupportedType
	}
}

func parseCSV(r io.Reader) ([]store.BulkEmployee, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	// Spreadsheet tools commonly write UTF-8 CSV with a BOM.
	text := strings.TrimPrefix(string(data), "\uFEFF")

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrMissingHeaders
	}

	columns, err := headerIndex(records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]store.BulkEmployee, 0, len(records)-1)
	for _, record := range records[1:] {
		if !anyFilled(record) {
			continue
		}
		rows = append(rows, rowFromCells(record, columns))
	}
	return rows, nil
}

func parseXLSX(r io.Reader) ([]store.BulkEmployee, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	records, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrMissingHeaders
	}

	columns, err := headerIndex(records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]store.BulkEmployee, 0, len(records)-1)
	for i, record := range records[1:] {
		if !anyFilled(record) {
			continue
		}
		emp := rowFromCells(record, columns)
		emp.HireDate = normalizeHireDate(workbook, sheet, columns["Hire Date"], i+2, emp.HireDate)
		rows = append(rows, emp)
	}
	return rows, nil
}

// normalizeHireDate reformats Excel-native dates to DD/MM/YYYY. A raw
// numeric cell is an Excel date serial; text cells pass through as typed.
func normalizeHireDate(workbook *excelize.File, sheet string, column, row int, display string) string {
	cell, err := excelize.CoordinatesToCellName(column+1, row)
	if err != nil {
		return display
	}
	raw, err := workbook.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return display
	}
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return display
	}
	date, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return display
	}
	return date.Format(hireDateLayout)
}

// headerIndex maps header titles to column positions. A duplicated title
// resolves to its last occurrence.
func headerIndex(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[h] = i
	}
	for _, want := range ExpectedHeaders {
		if _, ok := columns[want]; !ok {
			return nil, ErrMissingHeaders
		}
	}
	return columns, nil
}

func anyFilled(record []string) bool {
	for _, cell := range record {
		if cell != "" {
			return true
		}
	}
	return false
}

// cellAt tolerates short records; sheets drop trailing empty cells.
func cellAt(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return record[i]
}

func rowFromCells(record []string, columns map[string]int) store.BulkEmployee {
	return store.BulkEmployee{
		EmpNo:       cellAt(record, columns["Employee ID"]),
		NameAR:      cellAt(record, columns["Name (AR)"]),
		NameEN:      cellAt(record, columns["Name (EN)"]),
		HireDate:    cellAt(record, columns["Hire Date"]),
		Nationality: cellAt(record, columns["Nationality"]),
		JobTitle:    cellAt(record, columns["Job Title"]),
		Manager:     cellAt(record, columns["Manager"]),
		Phone:       cellAt(record, columns["Phone"]),
		Email:       cellAt(record, columns["Email"]),
		StatusName:  cellAt(record, columns["Employee Status"]),
		Section:     cellAt(record, columns["Section"]),
		Department:  cellAt(record, columns["Department"]),
	}
}
