package excel

// RawRowData is one data row keyed by header
type RawRowData map[string]string

// SheetData is a sheet as read, before any numeric coercion
type SheetData struct {
	Headers []string
	Rows    []RawRowData
}

// SheetName is the sheet read from and written to in workbooks
const SheetName = "Sheet1"
