package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"skinrisk/adapters/datareadiness/coercer"
	"skinrisk/domain/core"
	"skinrisk/domain/survey"
	"skinrisk/internal"
	"skinrisk/ports"
)

// DataReader reads survey responses from Excel or CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	schema   *survey.Schema
	coercer  *coercer.ValueCoercer
	logger   *internal.Logger
}

var _ ports.DatasetReader = (*DataReader)(nil)

// NewDataReader creates a reader for filePath. The type is taken from the
// extension; anything other than .csv is opened as a workbook.
func NewDataReader(filePath string, schema *survey.Schema, logger *internal.Logger) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	if schema == nil {
		schema = survey.DefaultSchema()
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{
		filePath: filePath,
		fileType: fileType,
		schema:   schema,
		coercer:  coercer.NewValueCoercer(coercer.DefaultCoercionConfig()),
		logger:   logger.With("DataReader"),
	}
}

// ReadDataset reads every data row and resolves headers against the schema.
// Cells that do not parse as numbers are read as missing and counted.
func (r *DataReader) ReadDataset(ctx context.Context) (*ports.SurveyDataset, error) {
	data, err := r.ReadSheet(ctx)
	if err != nil {
		return nil, err
	}

	named := make([]string, 0, len(data.Headers))
	for _, h := range data.Headers {
		if h != "" {
			named = append(named, h)
		}
	}
	for f, names := range survey.ResolveNames(r.schema, named) {
		if len(names) > 1 {
			return nil, fmt.Errorf("%s: %w", r.filePath, core.NewDuplicateFieldError(string(f), names))
		}
	}
	columns := make([]string, len(data.Headers))
	for i, h := range data.Headers {
		if f, err := r.schema.Resolve(h); err == nil {
			columns[i] = string(f)
		} else {
			columns[i] = h
		}
	}

	ds := &ports.SurveyDataset{
		Source:  r.filePath,
		Columns: columns,
		Records: make([]survey.RawRecord, 0, len(data.Rows)),
	}
	for i, row := range data.Rows {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		values := make(map[string]survey.Value, len(row))
		for header, cell := range row {
			v, ok := r.coercer.CoerceString(cell)
			if !ok {
				ds.UnparsedCells++
			}
			values[header] = v
		}
		raw, err := survey.RawRecordFromNames(r.schema, values)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", r.filePath, i+2, err)
		}
		ds.Records = append(ds.Records, raw)
	}

	if ds.UnparsedCells > 0 {
		r.logger.Warn("%d cells in %s were not numeric and were read as missing", ds.UnparsedCells, r.filePath)
	}
	return ds, nil
}

// ReadSheet reads the file as strings
func (r *DataReader) ReadSheet(ctx context.Context) (*SheetData, error) {
	r.logger.Debug("reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

func (r *DataReader) readExcel() (*SheetData, error) {
	start := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", SheetName, err)
	}
	r.logger.Debug("%s read in %.2fms (%d rows)", SheetName, float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, fmt.Errorf("Excel file must have at least a header row and one data row")
	}
	return r.processRows(rows), nil
}

func (r *DataReader) readCSV() (*SheetData, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("CSV file must have at least a header row and one data row")
	}
	return r.processRows(rows), nil
}

// processRows keys each row by header. Short rows leave the trailing
// columns out, so they read as absent rather than blank.
func (r *DataReader) processRows(rows [][]string) *SheetData {
	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}

	data := make([]RawRowData, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rowData := make(RawRowData, len(headers))
		for j, cell := range row {
			if j < len(headers) && headers[j] != "" {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		data = append(data, rowData)
	}

	r.logger.Info("%s file processed (%d columns, %d rows)", strings.ToUpper(r.fileType), len(headers), len(data))
	return &SheetData{Headers: headers, Rows: data}
}
