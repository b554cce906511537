// Package importer parses employee spreadsheets and feeds them to the
// bulk-archive store operation.
//
// Supported formats are .xlsx workbooks (first sheet) and UTF-8 CSV
// files, both with a fixed header row; see ExpectedHeaders. Extra
// columns are allowed, empty rows are skipped, and Excel-native dates
// are normalized to DD/MM/YYYY, the hire-date format the archive tables
// take.
//
// ParseFile is the shared entry: the HTTP bulk-upload endpoint calls it
// directly so it can map header and row problems onto its response
// contract, while the import CLI commands go through the Loader, which
// ties parsing to the store:
//
//	loader := importer.NewLoader(employeesStore, logger)
//	result, err := loader.LoadFromFile(ctx, "employees.xlsx")
package importer
