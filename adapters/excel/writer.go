package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"skinrisk/ports"
)

// ReportHeaders are the columns of a batch report
var ReportHeaders = []string{"row", "assessment_id", "probability", "score", "tier", "missing_features", "model", "error"}

// ReportWriter writes batch assessments as a workbook or CSV
type ReportWriter struct {
	filePath string
}

var _ ports.ReportWriter = (*ReportWriter)(nil)

// NewReportWriter writes to filePath; a .csv extension selects CSV
func NewReportWriter(filePath string) *ReportWriter {
	return &ReportWriter{filePath: filePath}
}

// WriteReport writes one line per row, in the order given
func (w *ReportWriter) WriteReport(ctx context.Context, rows []ports.AssessmentRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	lines := make([][]string, 0, len(rows)+1)
	lines = append(lines, ReportHeaders)
	for _, r := range rows {
		lines = append(lines, reportLine(r))
	}

	if strings.EqualFold(filepath.Ext(w.filePath), ".csv") {
		return w.writeCSV(lines)
	}
	return w.writeExcel(lines)
}

func reportLine(r ports.AssessmentRow) []string {
	line := make([]string, len(ReportHeaders))
	line[0] = strconv.Itoa(r.Row)
	if a := r.Assessment; a != nil {
		line[1] = a.ID.String()
		line[2] = strconv.FormatFloat(a.Probability, 'f', 4, 64)
		line[3] = strconv.Itoa(a.Score)
		line[4] = a.Tier.String()
		line[5] = strconv.Itoa(a.MissingFeatures)
		line[6] = a.Model
	}
	line[7] = r.Err
	return line
}

func (w *ReportWriter) writeCSV(lines [][]string) error {
	file, err := os.Create(w.filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV report: %w", err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.WriteAll(lines); err != nil {
		return fmt.Errorf("failed to write CSV report: %w", err)
	}
	return nil
}

func (w *ReportWriter) writeExcel(lines [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, line := range lines {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(line))
		for j, v := range line {
			row[j] = v
		}
		// Numeric columns are stored as numbers so the sheet sorts properly.
		if i > 0 {
			for _, j := range []int{0, 2, 3, 5} {
				if n, err := strconv.ParseFloat(line[j], 64); err == nil {
					row[j] = n
				}
			}
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write report row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(w.filePath); err != nil {
		return fmt.Errorf("failed to save Excel report: %w", err)
	}
	return nil
}
