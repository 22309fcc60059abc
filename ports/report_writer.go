package ports

import (
	"context"

	"skinrisk/domain/risk"
)

// AssessmentRow is one line of a batch report. Err is set when the row could
// not be scored.
type AssessmentRow struct {
	Row        int              `json:"row"`
	Assessment *risk.Assessment `json:"assessment,omitempty"`
	Err        string           `json:"error,omitempty"`
}

// ReportWriter persists a batch of assessments
type ReportWriter interface {
	WriteReport(ctx context.Context, rows []AssessmentRow) error
}
