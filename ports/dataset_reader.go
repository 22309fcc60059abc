package ports

import (
	"context"

	"skinrisk/domain/survey"
)

// SurveyDataset is a batch of raw records read from a file
type SurveyDataset struct {
	Source  string
	Columns []string
	Records []survey.RawRecord
	// Cells that could not be parsed as numbers; they were read as missing.
	UnparsedCells int
}

// DatasetReader loads survey responses in bulk
type DatasetReader interface {
	ReadDataset(ctx context.Context) (*SurveyDataset, error)
}
